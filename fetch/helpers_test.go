package fetch

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/kbukum/gofetch/codec"
	"github.com/kbukum/gofetch/fetch/fetchtest"
	"github.com/kbukum/gofetch/httpclient"
	"github.com/kbukum/gofetch/logger"
)

// countingTransport counts Perform calls before delegating.
type countingTransport struct {
	next  Transport
	calls atomic.Int64
}

func (t *countingTransport) Perform(ctx context.Context, url string, opts httpclient.Options) (*httpclient.RawResponse, error) {
	t.calls.Add(1)
	return t.next.Perform(ctx, url, opts)
}

func newTestServer(t *testing.T) *fetchtest.Server {
	t.Helper()
	srv := fetchtest.NewServer()
	t.Cleanup(srv.Close)
	return srv
}

func newAdapter(t *testing.T, cfg httpclient.Config) *httpclient.Adapter {
	t.Helper()
	a, err := httpclient.New(cfg)
	if err != nil {
		t.Fatalf("httpclient.New() error: %v", err)
	}
	return a
}

// newTestClient returns a client on a fresh codec cache whose relative URLs
// resolve against a new test server.
func newTestClient(t *testing.T, opts ...ClientOption) (*Client, *fetchtest.Server, *countingTransport) {
	t.Helper()
	srv := newTestServer(t)
	transport := &countingTransport{next: newAdapter(t, httpclient.Config{BaseURL: srv.BaseURL()})}

	base := []ClientOption{WithLogger(logger.Nop()), WithCodecCache(codec.NewCache())}
	c, err := NewWithTransport(transport, append(base, opts...)...)
	if err != nil {
		t.Fatalf("NewWithTransport() error: %v", err)
	}
	return c, srv, transport
}

func mustFetchError(t *testing.T, err error, kind Kind) *Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	e, ok := AsError(err)
	if !ok {
		t.Fatalf("expected *fetch.Error, got %T: %v", err, err)
	}
	if e.Kind != kind {
		t.Fatalf("expected kind %s, got %s: %v", kind, e.Kind, e)
	}
	return e
}

type nopCloser struct{ *strings.Reader }

func (nopCloser) Close() error { return nil }
