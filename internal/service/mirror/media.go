package mirror

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/oshokin/flickr-mirror/internal/client/flickr"
	"github.com/oshokin/flickr-mirror/internal/constants"
	"github.com/oshokin/flickr-mirror/internal/logger"
	"github.com/oshokin/flickr-mirror/internal/utils"
)

// MediaResolver fills albums with their downloadable media.
type MediaResolver interface {
	// ResolveMedia pages through every album and returns the populated catalog.
	// Unsupported and unresolvable items are logged and left out.
	ResolveMedia(ctx context.Context, albums []*Album) (*Catalog, error)
}

// MediaResolverImpl implements MediaResolver on top of the catalog client.
type MediaResolverImpl struct {
	client   flickr.Client
	userID   string
	pageSize int
}

// NewMediaResolver creates a new media resolver.
func NewMediaResolver(client flickr.Client, userID string, pageSize int) MediaResolver {
	return &MediaResolverImpl{
		client:   client,
		userID:   userID,
		pageSize: pageSize,
	}
}

// ResolveMedia pages through every album and returns the populated catalog.
func (r *MediaResolverImpl) ResolveMedia(ctx context.Context, albums []*Album) (*Catalog, error) {
	catalog := NewCatalog()
	albumsCount := len(albums)

	for index, album := range albums {
		logger.Infof(ctx, "Indexing album (%d/%d): %s", index+1, albumsCount, album.Title)

		if err := r.resolveAlbum(ctx, catalog, album); err != nil {
			return nil, fmt.Errorf("failed to index album '%s': %w", album.Title, err)
		}

		catalog.Add(album)
	}

	return catalog, nil
}

func (r *MediaResolverImpl) resolveAlbum(ctx context.Context, catalog *Catalog, album *Album) error {
	items, err := fetchAllPages(ctx, r.pageSize, func(ctx context.Context, page int) ([]*flickr.Photo, error) {
		return r.client.ListAlbumMedia(ctx, album.ID, r.userID, r.pageSize, page)
	})
	if err != nil {
		return err
	}

	var photos, videos int64

	for _, item := range items {
		record, resolveErr := r.resolveItem(ctx, item)

		switch {
		case resolveErr == nil:
		case errors.Is(resolveErr, ErrUnsupportedMediaType):
			logger.Warnf(ctx, "Unsupported media detected: %s: %s of album %s (skipping download)",
				item.Media, item.Title, album.SanitizedTitle)

			catalog.Unsupported++

			continue
		case errors.Is(resolveErr, ErrUnresolvedSourceURL):
			logger.Warnf(ctx, "No download URL found for %s %s of album %s (skipping download): %v",
				item.ID, item.Title, album.SanitizedTitle, resolveErr)

			catalog.Unresolved++

			continue
		default:
			return resolveErr
		}

		album.Media.Put(record)

		if record.Type == MediaTypePhoto {
			photos++
		} else {
			videos++
		}
	}

	if photos > 0 {
		logger.Infof(ctx, "Found %d photos", photos)
	}

	if videos > 0 {
		logger.Infof(ctx, "Found %d videos", videos)
	}

	catalog.Photos += photos
	catalog.Videos += videos

	return nil
}

// resolveItem classifies an item and finds its source URL and file name.
func (r *MediaResolverImpl) resolveItem(ctx context.Context, item *flickr.Photo) (*MediaRecord, error) {
	switch item.Media {
	case flickr.MediaPhoto:
		filename := utils.URLBasename(item.URLLarge)
		if item.URLLarge == "" || filename == "" {
			return nil, fmt.Errorf("%w: listing has no url_l", ErrUnresolvedSourceURL)
		}

		return &MediaRecord{
			ID:           item.ID,
			Title:        item.Title,
			Type:         MediaTypePhoto,
			SourceURL:    item.URLLarge,
			DestFilename: filename,
		}, nil
	case flickr.MediaVideo:
		sourceURL, err := r.resolveVideoURL(ctx, item.ID)
		if err != nil {
			return nil, err
		}

		return &MediaRecord{
			ID:           item.ID,
			Title:        item.Title,
			Type:         MediaTypeVideo,
			SourceURL:    sourceURL,
			DestFilename: item.ID + constants.ExtensionVideo,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMediaType, item.Media)
	}
}

// resolveVideoURL picks the first rendition whose label contains "Video Original".
// Lookup failures other than cancellation count as unresolved.
func (r *MediaResolverImpl) resolveVideoURL(ctx context.Context, mediaID string) (string, error) {
	sizes, err := r.client.ResolveVideoURL(ctx, mediaID, r.userID)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}

		return "", fmt.Errorf("%w: %w", ErrUnresolvedSourceURL, err)
	}

	for _, size := range sizes {
		if strings.Contains(size.Label, flickr.LabelVideoOriginal) && size.Source != "" {
			return size.Source, nil
		}
	}

	return "", fmt.Errorf("%w: no %q rendition", ErrUnresolvedSourceURL, flickr.LabelVideoOriginal)
}
