// Package flickr provides the catalog client used to harvest a user's albums.
// It wraps the Flickr REST API (JSON format) behind the Client interface:
// paginated album listing, paginated album media listing with the extras needed
// to resolve photo URLs in one round trip, and rendition lookup for videos.
// Requests are rate limited, optionally OAuth-signed, and retried on transient failures.
package flickr
