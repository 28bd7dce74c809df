package fetcher

//go:generate $MOCKGEN -source=fetcher.go -destination=mocks/fetcher_mock.go

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/oshokin/flickr-mirror/internal/config"
	"github.com/oshokin/flickr-mirror/internal/constants"
	"github.com/oshokin/flickr-mirror/internal/logger"
	http_transport "github.com/oshokin/flickr-mirror/internal/transport/http"
	"github.com/oshokin/flickr-mirror/internal/utils"
	"github.com/oshokin/flickr-mirror/internal/version"
)

// Fetcher transfers a remote file into a temporary local path.
type Fetcher interface {
	// Fetch downloads sourceURL into tempPath, resuming a partial file if present.
	// Errors other than context cancellation are *Error.
	Fetch(ctx context.Context, sourceURL, tempPath string) (*Result, error)
}

// Result describes a finished transfer.
type Result struct {
	// BytesWritten is the number of bytes appended to the temporary file by this call.
	BytesWritten int64
	// Resumed is true when the transfer continued an existing partial file.
	Resumed bool
}

// HTTPFetcher implements Fetcher over plain HTTP GET requests.
type HTTPFetcher struct {
	cfg        *config.Config
	httpClient *http.Client
}

const (
	appendFileOptions    = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	overwriteFileOptions = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
)

// NewHTTPFetcher creates and returns a new instance of HTTPFetcher.
func NewHTTPFetcher(cfg *config.Config) Fetcher {
	return &HTTPFetcher{
		cfg: cfg,
		// No client timeout: large videos take longer than any sane fixed limit,
		// cancellation goes through the request context instead.
		httpClient: &http.Client{
			Transport: http_transport.NewUserAgentInjector(
				http_transport.NewLogTransport(http.DefaultTransport, config.DefaultMaxLogLength),
				utils.NewProductUserAgentProvider(http_transport.DefaultProductName, version.Short())),
		},
	}
}

// Fetch downloads sourceURL into tempPath.
func (f *HTTPFetcher) Fetch(ctx context.Context, sourceURL, tempPath string) (*Result, error) {
	attempts := max(f.cfg.RetryAttemptsCount, 1)

	var lastErr *Error

	for i := range attempts {
		// Randomized delay so consecutive transfers don't hammer the media hosts.
		if err := utils.RandomPause(ctx, 0, f.cfg.ParsedMaxRequestPause); err != nil {
			return nil, err
		}

		result, err := f.fetchOnce(ctx, sourceURL, tempPath)
		if err == nil {
			return result, nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		if !errors.As(err, &lastErr) || !lastErr.IsTransient() || i == attempts-1 {
			return nil, err
		}

		logger.Warnf(ctx, "Transfer of '%s' failed (%d attempts left): %v", sourceURL, attempts-i-1, err)

		if pauseErr := utils.RandomPause(ctx, f.cfg.ParsedMinRetryPause, f.cfg.ParsedMaxRetryPause); pauseErr != nil {
			return nil, pauseErr
		}
	}

	return nil, lastErr
}

func (f *HTTPFetcher) fetchOnce(ctx context.Context, sourceURL, tempPath string) (*Result, error) {
	offset, err := utils.FileSize(tempPath)
	if err != nil {
		return nil, newError(KindFilesystem, err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, http.NoBody)
	if err != nil {
		return nil, newError(KindNetwork, err)
	}

	if offset > 0 {
		request.Header.Set("Range", "bytes="+strconv.FormatInt(offset, 10)+"-")
	}

	response, err := f.httpClient.Do(request)
	if err != nil {
		return nil, newError(KindNetwork, err)
	}

	defer response.Body.Close() //nolint:errcheck // Error on close is not critical here.

	var fileOptions int

	switch {
	case response.StatusCode == http.StatusOK:
		// The server ignored the range, start over.
		fileOptions = overwriteFileOptions
		offset = 0
	case response.StatusCode == http.StatusPartialContent:
		if !strings.HasPrefix(response.Header.Get("Content-Range"), "bytes "+strconv.FormatInt(offset, 10)+"-") {
			// Drop the partial file so the next attempt starts from scratch.
			if offset > 0 {
				if truncateErr := os.Truncate(tempPath, 0); truncateErr != nil {
					return nil, newError(KindFilesystem, truncateErr)
				}
			}

			return nil, newError(KindIncomplete, ErrRangeMismatch)
		}

		fileOptions = appendFileOptions
	case response.StatusCode == http.StatusRequestedRangeNotSatisfiable && offset > 0:
		// The temporary file already holds the whole resource.
		logger.Debugf(ctx, "Temporary file '%s' is already complete (%d bytes)", tempPath, offset)

		return &Result{BytesWritten: 0, Resumed: true}, nil
	default:
		return nil, newStatusError(response.StatusCode)
	}

	if offset > 0 {
		logger.Infof(ctx, "Resuming download from %d bytes", offset)
	}

	file, err := os.OpenFile(filepath.Clean(tempPath), fileOptions, constants.DefaultFilePermissions)
	if err != nil {
		return nil, newError(KindFilesystem, err)
	}

	defer file.Close() //nolint:errcheck // Error on close is not critical here.

	var writer io.Writer = file

	if logger.Level() <= zap.InfoLevel {
		bar := progressbar.DefaultBytes(response.ContentLength, "Downloading")
		writer = io.MultiWriter(file, bar)
	}

	bytesWritten, err := f.copyBody(ctx, writer, response.Body)
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, newError(KindFilesystem, err)
		}

		return nil, newError(KindNetwork, err)
	}

	if response.ContentLength >= 0 && bytesWritten != response.ContentLength {
		return nil, newError(KindIncomplete, fmt.Errorf(
			"%w: wrote %d bytes, expected %d bytes",
			ErrIncompleteDownload,
			bytesWritten,
			response.ContentLength,
		))
	}

	return &Result{
		BytesWritten: bytesWritten,
		Resumed:      offset > 0,
	}, nil
}

// copyBody copies the response body, throttled to the configured speed limit.
func (f *HTTPFetcher) copyBody(ctx context.Context, writer io.Writer, body io.Reader) (int64, error) {
	limit := f.cfg.ParsedDownloadSpeedLimit
	if limit <= 0 {
		return io.Copy(writer, body)
	}

	var bytesWritten int64

	for {
		n, err := io.CopyN(writer, body, limit)
		bytesWritten += n

		if errors.Is(err, io.EOF) {
			return bytesWritten, nil
		}

		if err != nil {
			return bytesWritten, err
		}

		if err = utils.Sleep(ctx, time.Second); err != nil {
			return bytesWritten, err
		}
	}
}
