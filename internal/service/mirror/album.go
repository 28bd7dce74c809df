package mirror

import (
	"context"
	"fmt"

	"github.com/oshokin/flickr-mirror/internal/client/flickr"
	"github.com/oshokin/flickr-mirror/internal/logger"
	"github.com/oshokin/flickr-mirror/internal/utils"
)

// AlbumEnumerator lists the albums of a user.
type AlbumEnumerator interface {
	// ListAlbums returns every titled album in catalog order, with empty media sets.
	ListAlbums(ctx context.Context) ([]*Album, error)
}

// AlbumEnumeratorImpl implements AlbumEnumerator on top of the catalog client.
type AlbumEnumeratorImpl struct {
	client   flickr.Client
	userID   string
	pageSize int
}

// NewAlbumEnumerator creates a new album enumerator.
func NewAlbumEnumerator(client flickr.Client, userID string, pageSize int) AlbumEnumerator {
	return &AlbumEnumeratorImpl{
		client:   client,
		userID:   userID,
		pageSize: pageSize,
	}
}

// ListAlbums returns every titled album in catalog order.
func (e *AlbumEnumeratorImpl) ListAlbums(ctx context.Context) ([]*Album, error) {
	logger.Info(ctx, "Retrieving album list")

	photosets, err := fetchAllPages(ctx, e.pageSize, func(ctx context.Context, page int) ([]*flickr.Photoset, error) {
		return e.client.ListAlbums(ctx, e.userID, e.pageSize, page)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list albums: %w", err)
	}

	albums := make([]*Album, 0, len(photosets))
	seen := make(map[string]struct{}, len(photosets))

	for _, photoset := range photosets {
		title, ok := photoset.TitleText()
		if !ok {
			logger.Debugf(ctx, "Ignoring album %s without a title", photoset.ID)

			continue
		}

		if _, ok = seen[photoset.ID]; ok {
			continue
		}

		seen[photoset.ID] = struct{}{}

		albums = append(albums, &Album{
			ID:             photoset.ID,
			Title:          title,
			SanitizedTitle: utils.SanitizeTitle(title),
			Media:          NewMediaSet(),
		})
	}

	logger.Infof(ctx, "Found %d albums", len(albums))

	return albums, nil
}
