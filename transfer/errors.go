package transfer

import (
	"errors"
	"net/http"
	"strconv"
)

// Errors for client construction.
var (
	ErrConfigRequired = errors.New("config is required")
	ErrInvalidBaseURL = errors.New("invalid base URL")
)

// Errors for input validation.
var (
	ErrEmptyPath          = errors.New("path is required")
	ErrLocalFileNotFound  = errors.New("local file not found")
	ErrInvalidCredentials = errors.New("credentials must be in the form username:password")
)

// HTTPError is returned when the server answers with a status outside 200-299.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return "HTTP error! Status: " + strconv.Itoa(e.StatusCode) + ", Message: " + e.Body
}

// Is reports whether target matches this error.
// It matches if target is an *HTTPError with the same StatusCode.
func (e *HTTPError) Is(target error) bool {
	var t *HTTPError
	ok := errors.As(target, &t)
	if !ok {
		return false
	}
	return t.StatusCode == e.StatusCode
}

// IsNotFound returns true if the error is a 404.
func (e *HTTPError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Sentinel errors for common status codes.
// Use errors.Is() to check for these conditions.
var (
	// ErrNotFound is returned when the remote file does not exist (404).
	ErrNotFound = &HTTPError{StatusCode: http.StatusNotFound}

	// ErrUnauthorized is returned when the server rejects the credentials (401).
	ErrUnauthorized = &HTTPError{StatusCode: http.StatusUnauthorized}

	// ErrForbidden is returned when the request is not permitted (403).
	ErrForbidden = &HTTPError{StatusCode: http.StatusForbidden}
)

// TransportError is returned when no complete response was obtained, for
// example on a refused connection or a body cut off mid-read. Its message is
// the underlying transport error, unchanged.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
