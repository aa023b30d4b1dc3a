package fetch

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/kbukum/gofetch/httpclient"
)

const (
	contentTypeJSON = "application/json"
	headerAccept    = "Accept"
	headerType      = "Content-Type"
)

// build assembles transport options. It performs no I/O.
func (c *Client) build(o *callOptions, decoding bool) (httpclient.Options, *Error) {
	opts := httpclient.Options{
		Method:     o.effectiveMethod(),
		Properties: o.properties,
	}

	var defaults []httpclient.Header
	switch {
	case o.multipart != nil:
		body, contentType, err := o.multipart.Encode()
		if err != nil {
			return opts, preparing(err)
		}
		opts.Body = body
		if !hasHeader(o.headers, headerType) {
			defaults = append(defaults, httpclient.Header{Name: headerType, Value: contentType})
		}
	case o.payload != nil:
		data, err := c.encodePayload(o)
		if err != nil {
			return opts, preparing(err)
		}
		opts.Body = bytes.NewReader(data)
		if !hasHeader(o.headers, headerType) {
			defaults = append(defaults, httpclient.Header{Name: headerType, Value: contentTypeJSON})
		}
	}
	if decoding && !hasHeader(o.headers, headerAccept) {
		defaults = append(defaults, httpclient.Header{Name: headerAccept, Value: contentTypeJSON})
	}

	opts.Headers = append(defaults, o.headers...)
	return opts, nil
}

func (c *Client) encodePayload(o *callOptions) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError("encoder", r)
		}
	}()
	return o.payload(c, o)
}

func hasHeader(headers []httpclient.Header, name string) bool {
	for _, h := range headers {
		if http.CanonicalHeaderKey(h.Name) == name {
			return true
		}
	}
	return false
}

func panicError(stage string, r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("fetch: %s panicked: %w", stage, err)
	}
	return fmt.Errorf("fetch: %s panicked: %v", stage, r)
}
