package exprkit

import (
	"log/slog"

	"github.com/randalmurphal/exprkit/pkg/exprkit/history"
	"github.com/randalmurphal/exprkit/pkg/exprkit/observability"
)

// engineConfig holds configuration for an Engine.
type engineConfig struct {
	logger     *slog.Logger
	metrics    observability.MetricsRecorder
	spans      observability.SpanManager
	strict     bool
	history    history.Store
	batchLimit int
}

// defaultEngineConfig returns the default engine configuration.
func defaultEngineConfig() engineConfig {
	return engineConfig{
		metrics:    observability.NoopMetrics{},
		spans:      observability.NoopSpanManager{},
		batchLimit: 8,
	}
}

// Option configures an Engine.
type Option func(*engineConfig)

// WithLogger sets the logger used for evaluation and stage events.
// Default: no logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics via the global meter provider.
// Default: disabled.
//
// Example:
//
//	otel.SetMeterProvider(provider)
//	engine := exprkit.New(exprkit.WithMetrics(true))
func WithMetrics(enabled bool) Option {
	return func(c *engineConfig) {
		if enabled {
			c.metrics = observability.NewMetricsRecorder()
		} else {
			c.metrics = observability.NoopMetrics{}
		}
	}
}

// WithTracing enables OpenTelemetry spans via the global tracer provider.
// Each evaluation gets an "exprkit.evaluate" span with one child per stage.
// Default: disabled.
func WithTracing(enabled bool) Option {
	return func(c *engineConfig) {
		if enabled {
			c.spans = observability.NewSpanManager()
		} else {
			c.spans = observability.NoopSpanManager{}
		}
	}
}

// WithStrictLexing rejects stray characters instead of skipping them.
// Default: false.
func WithStrictLexing(strict bool) Option {
	return func(c *engineConfig) {
		c.strict = strict
	}
}

// WithHistory records every evaluation in store. A failed save is logged
// and does not fail the evaluation. The engine does not close the store.
func WithHistory(store history.Store) Option {
	return func(c *engineConfig) {
		c.history = store
	}
}

// WithBatchLimit sets how many expressions EvaluateBatch runs at once.
// Default: 8
func WithBatchLimit(n int) Option {
	return func(c *engineConfig) {
		if n > 0 {
			c.batchLimit = n
		}
	}
}
