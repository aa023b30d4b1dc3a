// Package observability wires OpenTelemetry tracing and metrics for gofetch.
//
// Setup installs OTLP/HTTP tracer and meter providers as the globals:
//
//	shutdown, err := observability.Setup(ctx, observability.Config{
//	    Enabled:     true,
//	    ServiceName: "fetchctl",
//	    Endpoint:    "localhost:4318",
//	})
//	defer shutdown(ctx)
//
// Every fetch call is observed through Instruments: one span named
// "fetch METHOD" and one data point on each of the call counter and the
// duration histogram, tagged with the outcome.
package observability
