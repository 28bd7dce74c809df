package utils

import (
	"context"
	"math"
	"math/rand/v2"
	"mime"
	"net/url"
	"os"
	"path"
	"regexp"
	"strings"
	"time"
)

//nolint:gochecknoglobals // This is an immutable replacer used as a constant.
var titleReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	" ", "_",
)

// textContentTypePatterns is a slice of regular expressions that match content types
// considered to be text-based. This includes "text/*", "application/json", and
// "application/samlmetadata+xml".
//
//nolint:gochecknoglobals // These are immutable, pre-compiled regex patterns and used as constants.
var textContentTypePatterns = []*regexp.Regexp{
	regexp.MustCompile("^text/.+"),
	regexp.MustCompile("^application/json$"),
	regexp.MustCompile(`^application/samlmetadata\+xml`),
}

// SanitizeTitle turns an album title into a single path component.
// Slashes and backslashes become dashes, spaces become underscores.
// The replacement characters are never replaced themselves, so the function is idempotent.
func SanitizeTitle(title string) string {
	return titleReplacer.Replace(title)
}

// URLBasename returns the last path segment of a URL, ignoring its query and fragment.
// It returns an empty string if the URL cannot be parsed or has no file name.
func URLBasename(rawURL string) string {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	base := path.Base(parsedURL.Path)
	if base == "." || base == "/" {
		return ""
	}

	return base
}

// SafeUint64ToInt64 converts a uint64 value to an int64 safely,
// ensuring that the value does not exceed the maximum limit of int64.
func SafeUint64ToInt64(val uint64) int64 {
	if val > math.MaxInt64 {
		return math.MaxInt64
	}

	return int64(val)
}

// RandomPause pauses execution for a random duration between min and max values.
// It returns early with the context error if ctx is canceled while waiting.
func RandomPause(ctx context.Context, minPause, maxPause time.Duration) error {
	// Ensure minPause is always less than or equal to maxPause.
	if minPause > maxPause {
		minPause, maxPause = maxPause, minPause
	}

	delay := minPause
	if maxPause > minPause {
		//nolint:gosec // Jitter does not need a cryptographic source.
		delay += time.Duration(rand.Int64N(int64(maxPause - minPause)))
	}

	return Sleep(ctx, delay)
}

// Sleep waits for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// IsFileExist checks if a file exists at the specified path.
// It returns true if the file exists and is not a directory, false if the file does not exist,
// and an error if there was an issue accessing the file.
func IsFileExist(path string) (bool, error) {
	stat, err := os.Stat(path)
	if err == nil {
		return !stat.IsDir(), nil
	}

	if os.IsNotExist(err) {
		return false, nil
	}

	return false, err
}

// IsDirExist checks if a directory exists at the specified path.
func IsDirExist(path string) (bool, error) {
	stat, err := os.Stat(path)
	if err == nil {
		return stat.IsDir(), nil
	}

	if os.IsNotExist(err) {
		return false, nil
	}

	return false, err
}

// FileSize returns the size of the file at path, or 0 if it does not exist.
func FileSize(path string) (int64, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}

		return 0, err
	}

	return stat.Size(), nil
}

// IsTextContentType checks if the given content type represents a text-based format.
// It supports common text content types like "text/*", "application/json", and "application/samlmetadata+xml".
// It also checks that the charset, if present, is either "utf-8" or "us-ascii".
func IsTextContentType(contentType string) bool {
	parsedType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	for _, pattern := range textContentTypePatterns {
		if !pattern.MatchString(parsedType) {
			continue
		}

		charset := strings.ToLower(params["charset"])

		return charset == "" || charset == "utf-8" || charset == "us-ascii"
	}

	return false
}
