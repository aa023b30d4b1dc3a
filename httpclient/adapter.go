package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/cookiejar"
	"sort"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Adapter performs single HTTP attempts with the configured defaults.
// It is safe for concurrent use.
type Adapter struct {
	httpClient *http.Client
	config     Config
	headers    []Header
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(a *Adapter) {
		a.httpClient = hc
	}
}

// New creates an adapter with the given configuration.
func New(cfg Config, opts ...Option) (*Adapter, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	tlsCfg, err := cfg.TLS.Build()
	if err != nil {
		return nil, err
	}
	if tlsCfg != nil {
		transport.TLSClientConfig = tlsCfg
	}

	hc := &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
	}
	if cfg.Cookies {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("httpclient: cookie jar: %w", err)
		}
		hc.Jar = jar
	}

	a := &Adapter{
		httpClient: hc,
		config:     cfg,
		headers:    sortedHeaders(cfg.Headers),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// NewDefault creates an adapter with the default configuration.
func NewDefault() *Adapter {
	a, err := New(Config{})
	if err != nil {
		panic(fmt.Sprintf("httpclient: default config rejected: %v", err))
	}
	return a
}

// Perform sends one request and returns the response with its body unread.
// The status code is not interpreted. Failures to obtain a response are
// returned as *TransportError.
func (a *Adapter) Perform(ctx context.Context, url string, opts Options) (*RawResponse, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	target := a.resolve(url)

	req, err := http.NewRequestWithContext(ctx, method, target, opts.Body)
	if err != nil {
		return nil, &TransportError{Code: ErrCodeRequest, Method: method, URL: target, Err: err}
	}

	req.Header.Set("User-Agent", a.config.UserAgent)
	for _, h := range a.headers {
		req.Header.Set(h.Name, h.Value)
	}
	a.config.Auth.apply(req)
	for _, h := range opts.Headers {
		req.Header.Set(h.Name, h.Value)
	}
	for _, p := range opts.Properties {
		if p != nil {
			p(req)
		}
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, classify(ctx, req, err)
	}
	return fromHTTP(req, resp), nil
}

// resolve joins relative paths onto the base URL.
func (a *Adapter) resolve(path string) string {
	if a.config.BaseURL == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(a.config.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

func classify(ctx context.Context, req *http.Request, err error) *TransportError {
	code := ErrCodeConnection
	var netErr net.Error
	if ctx.Err() != nil || (errors.As(err, &netErr) && netErr.Timeout()) {
		code = ErrCodeTimeout
	}
	return &TransportError{Code: code, Method: req.Method, URL: req.URL.String(), Err: err}
}

func sortedHeaders(m map[string]string) []Header {
	headers := make([]Header, 0, len(m))
	for name, value := range m {
		headers = append(headers, Header{Name: name, Value: value})
	}
	sort.Slice(headers, func(i, j int) bool { return headers[i].Name < headers[j].Name })
	return headers
}

// Name returns the configured adapter name.
func (a *Adapter) Name() string {
	return a.config.Name
}

// Config returns the adapter's effective configuration.
func (a *Adapter) Config() Config {
	return a.config
}

// Unwrap returns the underlying *http.Client.
func (a *Adapter) Unwrap() *http.Client {
	return a.httpClient
}

// Close releases idle connections.
func (a *Adapter) Close(_ context.Context) error {
	a.httpClient.CloseIdleConnections()
	return nil
}
