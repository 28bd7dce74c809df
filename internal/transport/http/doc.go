// Package http provides custom HTTP round trippers used by the catalog client and the fetcher:
// debug logging of request/response pairs, User-Agent injection, and OAuth 1.0a request signing.
package http
