package httpclient

import (
	"io"
	"net/http"
)

// Header is a single request header. Headers are applied in order with
// http.Header.Set, so the last value written for a name wins.
type Header struct {
	Name  string
	Value string
}

// Property adjusts the outgoing request after headers are applied.
type Property func(*http.Request)

// Options describe one request.
type Options struct {
	// Method defaults to GET.
	Method string
	// Headers are applied after the adapter's default headers.
	Headers []Header
	// Body is sent verbatim. Nil means no body.
	Body io.Reader
	// Properties run last, in order.
	Properties []Property
}

// QueryParam returns a Property that sets a query parameter.
func QueryParam(key, value string) Property {
	return func(req *http.Request) {
		q := req.URL.Query()
		q.Set(key, value)
		req.URL.RawQuery = q.Encode()
	}
}

// SetHeader returns a Property that sets a header.
func SetHeader(name, value string) Property {
	return func(req *http.Request) {
		req.Header.Set(name, value)
	}
}
