package http

import "time"

const (
	// DefaultTimeout is the default timeout for catalog API requests.
	DefaultTimeout = 60 * time.Second

	// DefaultProductName identifies this tool in the User-Agent header.
	DefaultProductName = "flickr-mirror"
)
