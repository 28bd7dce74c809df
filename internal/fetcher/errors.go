package fetcher

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed transfer.
type Kind string

const (
	// KindNetwork means the connection failed or broke mid-transfer.
	KindNetwork Kind = "network"
	// KindHTTPStatus means the server answered with an unexpected status code.
	KindHTTPStatus Kind = "http-status"
	// KindFilesystem means the temporary file could not be read or written.
	KindFilesystem Kind = "filesystem"
	// KindIncomplete means the body ended before the announced length.
	KindIncomplete Kind = "incomplete"
)

var (
	// ErrUnexpectedHTTPStatus indicates an unexpected HTTP status code was received.
	ErrUnexpectedHTTPStatus = errors.New("unexpected HTTP status")
	// ErrIncompleteDownload indicates that the downloaded size doesn't match the expected size.
	ErrIncompleteDownload = errors.New("incomplete download")
	// ErrRangeMismatch indicates that a partial response does not continue the temporary file.
	ErrRangeMismatch = errors.New("content range does not match the temporary file")
)

// Error describes a failed transfer.
type Error struct {
	// Kind is the failure class.
	Kind Kind
	// StatusCode is set for KindHTTPStatus.
	StatusCode int
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Kind == KindHTTPStatus {
		return fmt.Sprintf("%s failure (%d %s): %v", e.Kind, e.StatusCode, http.StatusText(e.StatusCode), e.Err)
	}

	return fmt.Sprintf("%s failure: %v", e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsTransient reports whether repeating the transfer right away may succeed.
func (e *Error) IsTransient() bool {
	switch e.Kind {
	case KindNetwork, KindIncomplete:
		return true
	case KindHTTPStatus:
		return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
	default:
		return false
	}
}

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func newStatusError(statusCode int) *Error {
	return &Error{
		Kind:       KindHTTPStatus,
		StatusCode: statusCode,
		Err:        fmt.Errorf("%w: %d", ErrUnexpectedHTTPStatus, statusCode),
	}
}
