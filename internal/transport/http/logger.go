package http

import (
	"errors"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"github.com/oshokin/flickr-mirror/internal/config"
	"github.com/oshokin/flickr-mirror/internal/logger"
	"github.com/oshokin/flickr-mirror/internal/utils"
)

// LogTransport dumps catalog calls and media transfers at debug level.
// Credentials are masked in URLs and headers, and binary bodies are never dumped.
type LogTransport struct {
	next         http.RoundTripper
	maxDumpBytes uint64
}

// ErrNilRequest indicates that the HTTP request is nil.
var ErrNilRequest = errors.New("request is nil")

const maskedValue = "***"

// secretQueryParams are stripped from every logged URL.
//
//nolint:gochecknoglobals // Read-only lookup table.
var secretQueryParams = map[string]struct{}{
	"api_key":         {},
	"api_sig":         {},
	"oauth_signature": {},
	"oauth_token":     {},
	"oauth_nonce":     {},
}

// NewLogTransport wraps next. A zero maxDumpBytes means config.DefaultMaxLogLength.
func NewLogTransport(next http.RoundTripper, maxDumpBytes uint64) http.RoundTripper {
	if maxDumpBytes == 0 {
		maxDumpBytes = config.DefaultMaxLogLength
	}

	return &LogTransport{
		next:         next,
		maxDumpBytes: maxDumpBytes,
	}
}

// RoundTrip forwards req and logs the exchange when debug logging is on.
func (t *LogTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	if !logger.IsDebugLevel() {
		return t.next.RoundTrip(req)
	}

	ctx := req.Context()
	target := maskURL(req.URL)
	startedAt := time.Now()

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		logger.DebugKV(ctx, "Request failed",
			"method", req.Method,
			"url", target,
			"duration", time.Since(startedAt),
			"error", err)

		return nil, err
	}

	logger.DebugKV(ctx, "Request completed",
		"method", req.Method,
		"url", target,
		"status", resp.StatusCode,
		"content_length", resp.ContentLength,
		"content_range", resp.Header.Get("Content-Range"),
		"duration", time.Since(startedAt))

	if utils.IsTextContentType(resp.Header.Get("Content-Type")) {
		logger.Debugf(ctx, "Request: %s\nResponse: %s", t.dumpRequest(req), t.dumpResponse(resp))
	}

	return resp, nil
}

func (t *LogTransport) dumpRequest(req *http.Request) string {
	masked := req.Clone(req.Context())
	masked.URL = &url.URL{}
	*masked.URL = *req.URL
	masked.URL.RawQuery = maskQuery(req.URL.Query()).Encode()

	if masked.Header.Get("Authorization") != "" {
		masked.Header.Set("Authorization", maskedValue)
	}

	dump, err := httputil.DumpRequestOut(masked, false)
	if err != nil {
		return err.Error()
	}

	return t.truncate([]byte(strings.ReplaceAll(string(dump), url.QueryEscape(maskedValue), maskedValue)))
}

func (t *LogTransport) dumpResponse(resp *http.Response) string {
	dump, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err.Error()
	}

	return t.truncate(dump)
}

func (t *LogTransport) truncate(data []byte) string {
	if uint64(len(data)) > t.maxDumpBytes {
		return string(data[:t.maxDumpBytes]) + "... [truncated]"
	}

	return string(data)
}

// maskURL renders u without credentials.
func maskURL(u *url.URL) string {
	if u == nil {
		return ""
	}

	masked := *u
	masked.User = nil
	masked.RawQuery = maskQuery(u.Query()).Encode()

	// Encode escapes the mask, which only hurts readability.
	return strings.ReplaceAll(masked.String(), url.QueryEscape(maskedValue), maskedValue)
}

func maskQuery(query url.Values) url.Values {
	for key := range query {
		if _, secret := secretQueryParams[strings.ToLower(key)]; secret {
			query.Set(key, maskedValue)
		}
	}

	return query
}
