package mirror

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/oshokin/flickr-mirror/internal/client/flickr"
	mock_flickr "github.com/oshokin/flickr-mirror/internal/client/flickr/mocks"
	"github.com/oshokin/flickr-mirror/internal/constants"
	"github.com/oshokin/flickr-mirror/internal/fetcher"
	mock_fetcher "github.com/oshokin/flickr-mirror/internal/fetcher/mocks"
	"github.com/oshokin/flickr-mirror/internal/logger"
)

const testUserID = "12345678@N01"

// newObservedContext returns a context whose log messages are captured.
func newObservedContext(t *testing.T) (context.Context, *observer.ObservedLogs) {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)

	return logger.ToContext(t.Context(), zap.New(core).Sugar()), logs
}

// newInstantPolicy returns a retry policy that never waits and counts its waits.
func newInstantPolicy(maxAttempts int64, waits *int) *RetryPolicy {
	return &RetryPolicy{
		Interval:    time.Second,
		MaxAttempts: maxAttempts,
		Sleeper: SleeperFunc(func(ctx context.Context, _ time.Duration) error {
			if waits != nil {
				*waits++
			}

			return ctx.Err()
		}),
	}
}

// newMocks creates a controller with a catalog client and fetcher mock.
func newMocks(t *testing.T) (*mock_flickr.MockClient, *mock_fetcher.MockFetcher) {
	t.Helper()

	ctrl := gomock.NewController(t)

	return mock_flickr.NewMockClient(ctrl), mock_fetcher.NewMockFetcher(ctrl)
}

// photoItem builds a photo listing entry.
func photoItem(id string) *flickr.Photo {
	return &flickr.Photo{
		ID:       id,
		Title:    "photo " + id,
		Media:    flickr.MediaPhoto,
		URLLarge: "https://live.staticflickr.com/65535/" + id + "_abc_b.jpg",
	}
}

// videoItem builds a video listing entry.
func videoItem(id string) *flickr.Photo {
	return &flickr.Photo{
		ID:    id,
		Title: "video " + id,
		Media: flickr.MediaVideo,
	}
}

// videoSizes builds a rendition list containing the original rendition.
func videoSizes(id string) []*flickr.Size {
	return []*flickr.Size{
		{Label: "Large", Source: "https://live.staticflickr.com/" + id + "_b.jpg", Media: flickr.MediaPhoto},
		{Label: "Site MP4", Source: "https://www.flickr.com/photos/x/" + id + "/play/site/", Media: flickr.MediaVideo},
		{Label: flickr.LabelVideoOriginal, Source: "https://www.flickr.com/photos/x/" + id + "/play/orig/", Media: flickr.MediaVideo},
	}
}

// photosets builds n titled album entries starting at ID offset.
func photosets(offset, n int) []*flickr.Photoset {
	result := make([]*flickr.Photoset, 0, n)
	for i := range n {
		id := strconv.Itoa(offset + i)
		result = append(result, &flickr.Photoset{ID: id, Title: &flickr.Content{Content: "Album " + id}})
	}

	return result
}

// writeFileFetch returns a fetch action that writes content to the temp path.
func writeFileFetch(t *testing.T, content string) func(context.Context, string, string) (*fetcher.Result, error) {
	t.Helper()

	return func(_ context.Context, _, tempPath string) (*fetcher.Result, error) {
		require.NoError(t, os.WriteFile(tempPath, []byte(content), constants.DefaultFilePermissions))

		return &fetcher.Result{BytesWritten: int64(len(content))}, nil
	}
}
