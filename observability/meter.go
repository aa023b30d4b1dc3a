package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// InitMeter creates an OTLP/HTTP meter provider and installs it globally.
// The caller shuts it down on exit.
func InitMeter(ctx context.Context, cfg Config) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("observability: metric exporter: %w", err)
	}

	res, err := newResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("observability: resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.MetricInterval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.MetricInterval))
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)
	return mp, nil
}

// Meter returns the gofetch meter from mp, or from the global provider when
// mp is nil.
func Meter(mp metric.MeterProvider) metric.Meter {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	return mp.Meter(InstrumentationName)
}

// Metric instrument names.
const (
	MetricCalls    = "gofetch.client.calls"
	MetricDuration = "gofetch.client.duration"
	MetricActive   = "gofetch.client.active"
)

// FetchMetrics holds the instruments recorded for every fetch call.
type FetchMetrics struct {
	calls    metric.Int64Counter
	duration metric.Float64Histogram
	active   metric.Int64UpDownCounter
}

// NewFetchMetrics creates the fetch instruments on meter.
func NewFetchMetrics(meter metric.Meter) (*FetchMetrics, error) {
	calls, err := meter.Int64Counter(MetricCalls,
		metric.WithDescription("Completed fetch calls by method and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricCalls, err)
	}

	duration, err := meter.Float64Histogram(MetricDuration,
		metric.WithDescription("Duration of fetch calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricDuration, err)
	}

	active, err := meter.Int64UpDownCounter(MetricActive,
		metric.WithDescription("Fetch calls in flight"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s gauge: %w", MetricActive, err)
	}

	return &FetchMetrics{calls: calls, duration: duration, active: active}, nil
}

// RecordStart marks a call in flight.
func (m *FetchMetrics) RecordStart(ctx context.Context, method string) {
	m.active.Add(ctx, 1, metric.WithAttributes(AttrHTTPMethod.String(method)))
}

// RecordEnd records a finished call. errorKind is empty for successes;
// status is 0 when no response was received.
func (m *FetchMetrics) RecordEnd(ctx context.Context, method, errorKind string, status int, d time.Duration) {
	attrs := []attribute.KeyValue{
		AttrHTTPMethod.String(method),
		AttrOutcome.String(outcome(errorKind)),
	}
	if errorKind != "" {
		attrs = append(attrs, AttrErrorKind.String(errorKind))
	}
	if status > 0 {
		attrs = append(attrs, AttrHTTPStatus.Int(status))
	}
	set := metric.WithAttributes(attrs...)

	m.active.Add(ctx, -1, metric.WithAttributes(AttrHTTPMethod.String(method)))
	m.calls.Add(ctx, 1, set)
	m.duration.Record(ctx, d.Seconds(), set)
}

func outcome(errorKind string) string {
	if errorKind == "" {
		return "ok"
	}
	return "error"
}
