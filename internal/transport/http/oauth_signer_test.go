package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// authorizationParams splits an `OAuth k="v", ...` header into its parameters.
func authorizationParams(t *testing.T, header string) map[string]string {
	t.Helper()

	require.True(t, strings.HasPrefix(header, "OAuth "), "header %q", header)

	params := make(map[string]string)

	for _, part := range strings.Split(strings.TrimPrefix(header, "OAuth "), ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		require.True(t, ok, "part %q", part)

		params[key] = strings.Trim(value, `"`)
	}

	return params
}

func TestOAuthSigner_SignsRequest(t *testing.T) {
	t.Parallel()

	var (
		authorization string
		query         string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authorization = r.Header.Get("Authorization")
		query = r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	signer := NewOAuthSigner(http.DefaultTransport, OAuthCredentials{
		ConsumerKey:    "ck",
		ConsumerSecret: "cs",
		Token:          "tk",
		TokenSecret:    "ts",
	})

	req, err := http.NewRequest( //nolint:noctx // Test code, context not needed.
		http.MethodGet, server.URL+"/services/rest?method=flickr.photosets.getList", nil)
	require.NoError(t, err)

	resp, err := signer.RoundTrip(req)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.

	params := authorizationParams(t, authorization)
	assert.Equal(t, "ck", params["oauth_consumer_key"])
	assert.Equal(t, "tk", params["oauth_token"])
	assert.Equal(t, "HMAC-SHA1", params["oauth_signature_method"])
	assert.Equal(t, "1.0", params["oauth_version"])
	assert.NotEmpty(t, params["oauth_nonce"])
	assert.NotEmpty(t, params["oauth_timestamp"])
	assert.NotEmpty(t, params["oauth_signature"])

	assert.Equal(t, "method=flickr.photosets.getList", query)

	// The caller's request must not be modified.
	assert.Empty(t, req.Header.Get("Authorization"))
}

// TestOAuthSigner_KeepsInnerTransport checks that signed requests still go through next.
func TestOAuthSigner_KeepsInnerTransport(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	var seen []string

	inner := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		seen = append(seen, req.Header.Get("Authorization"))

		return http.DefaultTransport.RoundTrip(req)
	})

	signer := NewOAuthSigner(inner, OAuthCredentials{ConsumerKey: "ck", ConsumerSecret: "cs", Token: "tk", TokenSecret: "ts"})

	req, err := http.NewRequest(http.MethodGet, server.URL, nil) //nolint:noctx // Test code, context not needed.
	require.NoError(t, err)

	resp, err := signer.RoundTrip(req)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.

	require.Len(t, seen, 1)
	assert.Contains(t, seen[0], `oauth_token="tk"`)
}

func TestOAuthSigner_WithoutToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	signer := NewOAuthSigner(http.DefaultTransport, OAuthCredentials{ConsumerKey: "ck"})

	req, err := http.NewRequest(http.MethodGet, server.URL, nil) //nolint:noctx // Test code, context not needed.
	require.NoError(t, err)

	resp, err := signer.RoundTrip(req)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestOAuthSigner_NilRequest(t *testing.T) {
	t.Parallel()

	signer := NewOAuthSigner(http.DefaultTransport, OAuthCredentials{Token: "tk"})

	resp, err := signer.RoundTrip(nil) //nolint:bodyclose // Body is empty on error.
	require.ErrorIs(t, err, ErrNilRequest)
	assert.Nil(t, resp)
}
