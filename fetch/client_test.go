package fetch

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/goccy/go-json"

	"github.com/kbukum/gofetch/codec"
	"github.com/kbukum/gofetch/fetch/fetchtest"
	"github.com/kbukum/gofetch/httpclient"
	"github.com/kbukum/gofetch/logger"
	"github.com/kbukum/gofetch/observability"
)

func TestNew_FromConfig(t *testing.T) {
	srv := newTestServer(t)

	c, err := New(Config{
		HTTP:         httpclient.Config{BaseURL: srv.BaseURL()},
		CaseStrategy: "snake",
	}, WithLogger(logger.Nop()), WithCodecCache(codec.NewCache()))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if c.CaseStrategy() != codec.SnakeCase {
		t.Errorf("expected snake case, got %s", c.CaseStrategy())
	}

	book, err := GetAs[fetchtest.Book](context.Background(), c, "/books/1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if book.ID != 1 {
		t.Errorf("expected book 1, got %d", book.ID)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"case strategy", Config{CaseStrategy: "kebab"}, "case_strategy"},
		{"base url", Config{HTTP: httpclient.Config{BaseURL: "ftp://files"}}, "http.base_url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestNewWithTransport_RequiresTransport(t *testing.T) {
	if _, err := NewWithTransport(nil); err == nil {
		t.Error("expected error for nil transport")
	}
}

func TestClient_Telemetry(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	c, _, _ := newTestClient(t, WithTracerProvider(tp), WithMeterProvider(mp))
	ctx := context.Background()

	if _, err := GetAs[fetchtest.Book](ctx, c, "/books/1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := GetAs[fetchtest.Book](ctx, c, "/status/503"); !IsFetchFailed(err) {
		t.Fatalf("expected FetchFailed, got %v", err)
	}

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	ok, failed := spans[0], spans[1]
	if ok.Name() != "fetch GET" {
		t.Errorf("expected span name 'fetch GET', got %q", ok.Name())
	}
	okAttrs := attribute.NewSet(ok.Attributes()...)
	if v, _ := okAttrs.Value(observability.AttrHTTPStatus); v.AsInt64() != 200 {
		t.Errorf("expected status 200, got %d", v.AsInt64())
	}
	if v, _ := okAttrs.Value(observability.AttrCaseStrategy); v.AsString() != "preserve" {
		t.Errorf("expected case strategy preserve, got %q", v.AsString())
	}
	if v, _ := okAttrs.Value(observability.AttrCallID); v.AsString() == "" {
		t.Error("expected a call id")
	}

	if failed.Status().Code != codes.Error {
		t.Errorf("expected error status, got %v", failed.Status().Code)
	}
	failedAttrs := attribute.NewSet(failed.Attributes()...)
	if v, _ := failedAttrs.Value(observability.AttrErrorKind); v.AsString() != "FetchFailed" {
		t.Errorf("expected error kind FetchFailed, got %q", v.AsString())
	}
	if v, _ := failedAttrs.Value(observability.AttrHTTPStatus); v.AsInt64() != 503 {
		t.Errorf("expected status 503, got %d", v.AsInt64())
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("Collect() error: %v", err)
	}
	var points []metricdata.DataPoint[int64]
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == observability.MetricCalls {
				points = m.Data.(metricdata.Sum[int64]).DataPoints
			}
		}
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 call data points, got %d", len(points))
	}
	kinds := map[string]bool{}
	for _, dp := range points {
		v, _ := dp.Attributes.Value(observability.AttrErrorKind)
		kinds[v.AsString()] = true
	}
	if !kinds["FetchFailed"] {
		t.Errorf("expected a FetchFailed data point, got %v", kinds)
	}
}

func TestClient_LogsCalls(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "fetch-test", &buf)
	c, _, _ := newTestClient(t, WithLogger(log))
	ctx := context.Background()

	if _, err := GetAs[fetchtest.Book](ctx, c, "/books/1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := GetAs[fetchtest.Book](ctx, c, "/authors/1"); !IsDecodingFailed(err) {
		t.Fatalf("expected DecodingFailed, got %v", err)
	}

	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid log line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	if len(entries) != 4 {
		t.Fatalf("expected 4 log entries, got %d: %s", len(entries), buf.String())
	}

	completed, failed := entries[1], entries[3]
	if completed["message"] != "fetch completed" || completed["status"] != float64(200) {
		t.Errorf("unexpected completion entry: %v", completed)
	}
	if failed["level"] != "warn" || failed["error_kind"] != "DecodingFailed" {
		t.Errorf("unexpected failure entry: %v", failed)
	}
	if failed["call_id"] == "" || failed["call_id"] == completed["call_id"] {
		t.Errorf("expected distinct call ids, got %v and %v", completed["call_id"], failed["call_id"])
	}
}
