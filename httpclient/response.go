package httpclient

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
)

// ErrBodyConsumed is returned when a response body is read a second time.
var ErrBodyConsumed = errors.New("httpclient: response body already consumed")

// RawResponse is an HTTP response whose body has not been read yet.
// The body can be read exactly once, with Bytes or Text.
type RawResponse struct {
	StatusCode int
	// Status is the status line as received, e.g. "404 Not Found".
	Status string
	Header http.Header
	Method string
	URL    string

	body     io.ReadCloser
	consumed atomic.Bool
}

// NewRawResponse wraps a response body. A nil body reads as empty.
func NewRawResponse(method, url string, statusCode int, header http.Header, body io.ReadCloser) *RawResponse {
	if body == nil {
		body = http.NoBody
	}
	if header == nil {
		header = make(http.Header)
	}
	return &RawResponse{
		StatusCode: statusCode,
		Status:     strconv.Itoa(statusCode) + " " + http.StatusText(statusCode),
		Header:     header,
		Method:     method,
		URL:        url,
		body:       body,
	}
}

func fromHTTP(req *http.Request, resp *http.Response) *RawResponse {
	r := NewRawResponse(req.Method, req.URL.String(), resp.StatusCode, resp.Header, resp.Body)
	if resp.Status != "" {
		r.Status = resp.Status
	}
	return r
}

// IsSuccess reports a 2xx status.
func (r *RawResponse) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// StatusText returns the reason phrase, e.g. "Not Found".
func (r *RawResponse) StatusText() string {
	if _, text, ok := strings.Cut(r.Status, " "); ok && text != "" {
		return text
	}
	return http.StatusText(r.StatusCode)
}

// Consumed reports whether the body has been read or closed.
func (r *RawResponse) Consumed() bool {
	return r.consumed.Load()
}

// Bytes reads and closes the body. Subsequent calls return ErrBodyConsumed.
func (r *RawResponse) Bytes() ([]byte, error) {
	if !r.consumed.CompareAndSwap(false, true) {
		return nil, ErrBodyConsumed
	}
	defer func() { _ = r.body.Close() }()
	return io.ReadAll(r.body)
}

// Text reads the body as a string. Subsequent calls return ErrBodyConsumed.
func (r *RawResponse) Text() (string, error) {
	b, err := r.Bytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Close releases an unread body. It is a no-op once the body was read.
func (r *RawResponse) Close() error {
	if !r.consumed.CompareAndSwap(false, true) {
		return nil
	}
	return r.body.Close()
}
