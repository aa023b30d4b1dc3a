package httpclient

import (
	"errors"
	"fmt"
)

// ErrorCode classifies transport failures.
type ErrorCode int

const (
	// ErrCodeRequest indicates the request could not be constructed.
	ErrCodeRequest ErrorCode = iota
	// ErrCodeTimeout indicates a deadline or client timeout was hit.
	ErrCodeTimeout
	// ErrCodeConnection indicates a connection failure (refused, DNS, reset, etc).
	ErrCodeConnection
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeRequest:
		return "request"
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeConnection:
		return "connection"
	default:
		return "unknown"
	}
}

// TransportError is a failure to obtain any HTTP response.
type TransportError struct {
	Code   ErrorCode
	Method string
	URL    string
	Err    error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("httpclient: %s: %s %s: %v", e.Code, e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var e *TransportError
	return errors.As(err, &e) && e.Code == ErrCodeTimeout
}

// IsConnection checks if an error is a connection error.
func IsConnection(err error) bool {
	var e *TransportError
	return errors.As(err, &e) && e.Code == ErrCodeConnection
}

// IsRequest checks if an error happened while constructing the request.
func IsRequest(err error) bool {
	var e *TransportError
	return errors.As(err, &e) && e.Code == ErrCodeRequest
}
