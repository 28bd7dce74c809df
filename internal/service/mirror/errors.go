package mirror

import "errors"

// Common errors for the service layer.
var (
	// ErrUnsupportedMediaType indicates that a media item is neither a photo nor a video.
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	// ErrUnresolvedSourceURL indicates that no download URL was found for a media item.
	ErrUnresolvedSourceURL = errors.New("no download URL found")
	// ErrMaxAttemptsExceeded indicates that a media item failed on every allowed attempt.
	ErrMaxAttemptsExceeded = errors.New("maximum download attempts exceeded")
	// ErrCreateAlbumDir indicates that an album directory could not be created.
	ErrCreateAlbumDir = errors.New("failed to create album directory")
	// ErrPublishFile indicates that a downloaded file could not be moved into place.
	ErrPublishFile = errors.New("failed to publish downloaded file")
	// ErrPrepareTempFile indicates that the scratch file of an album could not be reset.
	ErrPrepareTempFile = errors.New("failed to prepare temporary file")
)
