package flickr

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedHTTPStatus indicates an unexpected HTTP status code was received.
	ErrUnexpectedHTTPStatus = errors.New("unexpected HTTP status")
	// ErrUnexpectedResponseFormat indicates that a response lacks the expected top-level object.
	ErrUnexpectedResponseFormat = errors.New("unexpected response format")
)

// APIError is returned when the API answers with "stat": "fail".
type APIError struct {
	// Method is the API method that failed.
	Method string
	// Code is the numeric error code reported by the API.
	Code int
	// Message is the human-readable error message.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s failed with code %d: %s", e.Method, e.Code, e.Message)
}
