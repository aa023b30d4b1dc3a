package observability

import (
	"context"
	"errors"

	"github.com/kbukum/gofetch/logger"
)

// ShutdownFunc flushes and stops the providers created by Setup.
type ShutdownFunc func(context.Context) error

// Setup initializes tracing and metrics export per cfg. When cfg.Enabled is
// false it does nothing and returns a no-op shutdown.
func Setup(ctx context.Context, cfg Config) (ShutdownFunc, error) {
	cfg.ApplyDefaults()
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tp, err := InitTracer(ctx, cfg)
	if err != nil {
		return nil, err
	}
	mp, err := InitMeter(ctx, cfg)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}

	logger.Get("observability").Info("telemetry initialized", logger.Fields(
		"service", cfg.ServiceName,
		"endpoint", cfg.Endpoint,
		"sample_rate", cfg.SampleRate,
	))

	return func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}
