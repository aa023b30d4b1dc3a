package fetch

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/gofetch/codec"
	"github.com/kbukum/gofetch/httpclient"
	"github.com/kbukum/gofetch/logger"
	"github.com/kbukum/gofetch/observability"
)

// Transport performs one HTTP request. *httpclient.Adapter implements it.
//
// Perform must not read the response body. It returns a
// *httpclient.TransportError when no response was received.
type Transport interface {
	Perform(ctx context.Context, url string, opts httpclient.Options) (*httpclient.RawResponse, error)
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, url string, opts httpclient.Options) (*httpclient.RawResponse, error)

// Perform calls f.
func (f TransportFunc) Perform(ctx context.Context, url string, opts httpclient.Options) (*httpclient.RawResponse, error) {
	return f(ctx, url, opts)
}

// Client carries the transport, codec cache and defaults shared by calls.
// It is safe for concurrent use.
type Client struct {
	transport    Transport
	codecs       *codec.Cache
	caseStrategy codec.CaseStrategy
	extra        *codec.Registry
	log          *logger.Logger
	tracer       trace.TracerProvider
	meter        metric.MeterProvider
	instruments  *observability.Instruments
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTransport replaces the transport.
func WithTransport(t Transport) ClientOption {
	return func(c *Client) { c.transport = t }
}

// WithCodecCache uses cache instead of codec.DefaultCache.
func WithCodecCache(cache *codec.Cache) ClientOption {
	return func(c *Client) { c.codecs = cache }
}

// WithLogger sets the logger for call events.
func WithLogger(l *logger.Logger) ClientOption {
	return func(c *Client) { c.log = l }
}

// WithDefaultCaseStrategy sets the case strategy for calls that do not set one.
func WithDefaultCaseStrategy(s codec.CaseStrategy) ClientOption {
	return func(c *Client) { c.caseStrategy = s }
}

// WithDefaultExtraCoders sets the registry for calls that do not set one.
func WithDefaultExtraCoders(reg *codec.Registry) ClientOption {
	return func(c *Client) { c.extra = reg }
}

// WithTracerProvider traces calls on tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) ClientOption {
	return func(c *Client) { c.tracer = tp }
}

// WithMeterProvider records call metrics on mp instead of the global provider.
func WithMeterProvider(mp metric.MeterProvider) ClientOption {
	return func(c *Client) { c.meter = mp }
}

// New creates a Client on an httpclient.Adapter built from cfg.
func New(cfg Config, opts ...ClientOption) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("fetch: invalid config: %w", err)
	}
	strategy, _ := codec.ParseCaseStrategy(cfg.CaseStrategy)

	adapter, err := httpclient.New(cfg.HTTP)
	if err != nil {
		return nil, err
	}
	opts = append([]ClientOption{WithDefaultCaseStrategy(strategy)}, opts...)
	return NewWithTransport(adapter, opts...)
}

// NewWithTransport creates a Client on an existing transport.
func NewWithTransport(t Transport, opts ...ClientOption) (*Client, error) {
	c := &Client{transport: t}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		return nil, fmt.Errorf("fetch: transport is required")
	}
	if c.codecs == nil {
		c.codecs = codec.DefaultCache
	}
	if c.log == nil {
		c.log = logger.Get("fetch")
	}
	instruments, err := observability.NewInstruments(c.tracer, c.meter)
	if err != nil {
		return nil, fmt.Errorf("fetch: create instruments: %w", err)
	}
	c.instruments = instruments
	return c, nil
}

var (
	defaultOnce   sync.Once
	defaultClient *Client
)

// Default returns the process-wide client used when a nil *Client is passed.
// It uses the default adapter, the default codec cache and global telemetry.
func Default() *Client {
	defaultOnce.Do(func() {
		c, err := NewWithTransport(httpclient.NewDefault())
		if err != nil {
			panic(err)
		}
		defaultClient = c
	})
	return defaultClient
}

func orDefault(c *Client) *Client {
	if c == nil {
		return Default()
	}
	return c
}

// Codecs returns the codec cache.
func (c *Client) Codecs() *codec.Cache {
	return c.codecs
}

// CaseStrategy returns the default case strategy.
func (c *Client) CaseStrategy() codec.CaseStrategy {
	return c.caseStrategy
}
