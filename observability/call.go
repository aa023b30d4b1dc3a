package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Instruments bundles the tracer and metrics used to observe fetch calls.
type Instruments struct {
	tracer  trace.Tracer
	metrics *FetchMetrics
}

// NewInstruments creates instruments on the given providers. Nil providers
// mean the global ones.
func NewInstruments(tp trace.TracerProvider, mp metric.MeterProvider) (*Instruments, error) {
	metrics, err := NewFetchMetrics(Meter(mp))
	if err != nil {
		return nil, err
	}
	return &Instruments{tracer: Tracer(tp), metrics: metrics}, nil
}

// Call is one observed fetch call.
type Call struct {
	span    trace.Span
	metrics *FetchMetrics
	method  string
	start   time.Time
}

// StartCall opens the span "fetch METHOD" and marks the call in flight.
func (in *Instruments) StartCall(ctx context.Context, method, url, callID string) (context.Context, *Call) {
	ctx, span := in.tracer.Start(ctx, "fetch "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			AttrHTTPMethod.String(method),
			AttrURL.String(url),
			AttrCallID.String(callID),
		),
	)
	in.metrics.RecordStart(ctx, method)
	return ctx, &Call{span: span, metrics: in.metrics, method: method, start: time.Now()}
}

// SpanContext returns the span context of the call.
func (c *Call) SpanContext() trace.SpanContext {
	return c.span.SpanContext()
}

// End closes the span and records the call's metrics. errorKind is empty
// for successes; status is 0 when no response was received.
func (c *Call) End(ctx context.Context, status int, errorKind string, err error) time.Duration {
	d := time.Since(c.start)

	if status > 0 {
		c.span.SetAttributes(AttrHTTPStatus.Int(status))
	}
	c.span.SetAttributes(AttrOutcome.String(outcome(errorKind)))
	if errorKind != "" {
		c.span.SetAttributes(AttrErrorKind.String(errorKind))
		if err != nil {
			c.span.RecordError(err)
			c.span.SetStatus(codes.Error, errorKind)
		}
	}
	c.span.End()

	c.metrics.RecordEnd(ctx, c.method, errorKind, status, d)
	return d
}
