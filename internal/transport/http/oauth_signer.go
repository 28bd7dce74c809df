package http

import (
	"context"
	"net/http"

	"github.com/dghubble/oauth1"
)

// OAuthCredentials holds an application key pair and a previously issued access token.
type OAuthCredentials struct {
	ConsumerKey    string
	ConsumerSecret string
	Token          string
	TokenSecret    string
}

// OAuthSigner is an http.RoundTripper that signs catalog requests with OAuth 1.0a (HMAC-SHA1).
// The signature travels in the Authorization header.
// Requests pass through unsigned when no token is configured.
type OAuthSigner struct {
	next   http.RoundTripper
	signed http.RoundTripper
}

// NewOAuthSigner creates a signing round tripper on top of next.
func NewOAuthSigner(next http.RoundTripper, credentials OAuthCredentials) http.RoundTripper {
	signer := &OAuthSigner{next: next}

	if credentials.Token == "" {
		return signer
	}

	// oauth1 takes its base transport from the context client.
	ctx := context.WithValue(context.Background(), oauth1.HTTPClient, &http.Client{Transport: next})

	signer.signed = oauth1.NewConfig(credentials.ConsumerKey, credentials.ConsumerSecret).
		Client(ctx, oauth1.NewToken(credentials.Token, credentials.TokenSecret)).
		Transport

	return signer
}

// RoundTrip signs a clone of req and forwards it.
func (s *OAuthSigner) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	if s.signed == nil {
		return s.next.RoundTrip(req)
	}

	return s.signed.RoundTrip(req)
}
