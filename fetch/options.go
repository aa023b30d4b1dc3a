package fetch

import (
	"net/http"

	"github.com/kbukum/gofetch/codec"
	"github.com/kbukum/gofetch/httpclient"
)

// Option configures a single call.
type Option func(*callOptions)

type callOptions struct {
	method     string
	headers    []httpclient.Header
	properties []httpclient.Property

	caseStrategy *codec.CaseStrategy
	extra        *codec.Registry
	extraSet     bool

	// encoder holds a codec.Encoder[D] and decoder a codec.Decoder[R].
	encoder any
	decoder any

	payload   func(c *Client, o *callOptions) ([]byte, error)
	multipart *httpclient.MultipartBody

	noBodyMessage string
}

func (o *callOptions) effectiveMethod() string {
	switch {
	case o.method != "":
		return o.method
	case o.multipart != nil:
		return http.MethodPost
	default:
		return http.MethodGet
	}
}

// WithMethod sets the HTTP method of FetchAs and FetchUnit calls. Verb
// functions fix their own method.
func WithMethod(method string) Option {
	return func(o *callOptions) { o.method = method }
}

// WithHeader appends a request header. Later headers with the same name win.
func WithHeader(name, value string) Option {
	return func(o *callOptions) {
		o.headers = append(o.headers, httpclient.Header{Name: name, Value: value})
	}
}

// WithHeaders appends request headers in order.
func WithHeaders(headers ...httpclient.Header) Option {
	return func(o *callOptions) { o.headers = append(o.headers, headers...) }
}

// WithProperties appends transport properties, applied after all headers.
func WithProperties(props ...httpclient.Property) Option {
	return func(o *callOptions) { o.properties = append(o.properties, props...) }
}

// WithQueryParam sets a query parameter.
func WithQueryParam(key, value string) Option {
	return WithProperties(httpclient.QueryParam(key, value))
}

// WithRequestAuth authenticates this call, overriding the adapter's auth.
func WithRequestAuth(auth *httpclient.AuthConfig) Option {
	return WithProperties(auth.Property())
}

// WithCaseStrategy names untagged fields for this call's derived codecs.
func WithCaseStrategy(s codec.CaseStrategy) Option {
	return func(o *callOptions) { o.caseStrategy = &s }
}

// WithExtraCoders uses reg for this call instead of the client's registry.
func WithExtraCoders(reg *codec.Registry) Option {
	return func(o *callOptions) {
		o.extra = reg
		o.extraSet = true
	}
}

// WithEncoder encodes the payload with enc. D must match the payload type.
func WithEncoder[D any](enc codec.Encoder[D]) Option {
	return func(o *callOptions) { o.encoder = enc }
}

// WithDecoder decodes the response with dec. R must match the result type.
func WithDecoder[R any](dec codec.Decoder[R]) Option {
	return func(o *callOptions) { o.decoder = dec }
}

// WithData sends data as the JSON request body. A nil interface value sends
// no body.
func WithData[D any](data D) Option {
	return func(o *callOptions) {
		if any(data) == nil {
			o.payload = nil
			return
		}
		o.multipart = nil
		o.payload = func(c *Client, o *callOptions) ([]byte, error) {
			enc, err := selectEncoder[D](c, o)
			if err != nil {
				return nil, err
			}
			return enc(data)
		}
	}
}

// WithMultipart sends body as multipart/form-data instead of JSON.
func WithMultipart(body *httpclient.MultipartBody) Option {
	return func(o *callOptions) {
		o.payload = nil
		o.multipart = body
	}
}

func withNoBodyMessage(msg string) Option {
	return func(o *callOptions) { o.noBodyMessage = msg }
}

// withVerb appends the verb's fixed options after the caller's without
// writing into the caller's backing array.
func withVerb(opts []Option, fixed ...Option) []Option {
	out := make([]Option, 0, len(opts)+len(fixed))
	out = append(out, opts...)
	return append(out, fixed...)
}
