package fetch

import (
	"errors"
	"fmt"

	"github.com/kbukum/gofetch/httpclient"
)

// Kind classifies a fetch failure.
type Kind int

const (
	// PreparingRequestFailed means the request could not be built, usually
	// because the payload encoder failed.
	PreparingRequestFailed Kind = iota + 1
	// NetworkError means no response was received.
	NetworkError
	// FetchFailed means a response arrived with a non-2xx status.
	FetchFailed
	// DecodingFailed means the response body did not have the expected shape.
	DecodingFailed
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case PreparingRequestFailed:
		return "PreparingRequestFailed"
	case NetworkError:
		return "NetworkError"
	case FetchFailed:
		return "FetchFailed"
	case DecodingFailed:
		return "DecodingFailed"
	default:
		return "Unknown"
	}
}

// Error is the only error type returned by fetch calls.
type Error struct {
	Kind Kind
	// Cause is the underlying error for PreparingRequestFailed, NetworkError
	// and DecodingFailed.
	Cause error
	// Response is set for FetchFailed. Its body has not been read. Callers
	// must read it with Bytes or Text, or Close it, to release the connection.
	Response *httpclient.RawResponse
	// Message is the decoder diagnostic for DecodingFailed.
	Message string
}

// Error implements the error interface with the rendered message.
func (e *Error) Error() string {
	return Render(e)
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Render describes a failure for humans:
//
//	PreparingRequestFailed, NetworkError  the cause's message
//	FetchFailed                           "404 Not Found: GET http://host/books/9"
//	DecodingFailed                        the decoder diagnostic, verbatim
func Render(e *Error) string {
	if e == nil {
		return ""
	}
	switch e.Kind {
	case FetchFailed:
		if r := e.Response; r != nil {
			return fmt.Sprintf("%d %s: %s %s", r.StatusCode, r.StatusText(), r.Method, r.URL)
		}
	case DecodingFailed:
		return e.Message
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Message
}

func preparing(cause error) *Error {
	return &Error{Kind: PreparingRequestFailed, Cause: cause}
}

func network(cause error) *Error {
	return &Error{Kind: NetworkError, Cause: cause}
}

func fetchFailed(resp *httpclient.RawResponse) *Error {
	return &Error{Kind: FetchFailed, Response: resp}
}

func decodingFailed(message string, cause error) *Error {
	return &Error{Kind: DecodingFailed, Message: message, Cause: cause}
}

// AsError extracts the *Error from err.
func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

func isKind(err error, k Kind) bool {
	e, ok := AsError(err)
	return ok && e.Kind == k
}

// IsPreparingRequestFailed checks if err is a PreparingRequestFailed error.
func IsPreparingRequestFailed(err error) bool { return isKind(err, PreparingRequestFailed) }

// IsNetworkError checks if err is a NetworkError error.
func IsNetworkError(err error) bool { return isKind(err, NetworkError) }

// IsFetchFailed checks if err is a FetchFailed error.
func IsFetchFailed(err error) bool { return isKind(err, FetchFailed) }

// IsDecodingFailed checks if err is a DecodingFailed error.
func IsDecodingFailed(err error) bool { return isKind(err, DecodingFailed) }

// StatusCode returns the response status of a FetchFailed error, or 0.
func StatusCode(err error) int {
	e, ok := AsError(err)
	if !ok || e.Kind != FetchFailed || e.Response == nil {
		return 0
	}
	return e.Response.StatusCode
}
