package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records evaluation metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordEvaluation records a finished evaluation. kind is the error
	// kind, empty on success.
	RecordEvaluation(ctx context.Context, success bool, kind string, duration time.Duration)

	// RecordStage records one pipeline stage with its duration and error status.
	RecordStage(ctx context.Context, stage string, duration time.Duration, err error)

	// RecordTokens records the number of tokens a stage produced.
	RecordTokens(ctx context.Context, stage string, count int64)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	evaluations       metric.Int64Counter
	evaluationErrors  metric.Int64Counter
	evaluationLatency metric.Float64Histogram
	stageLatency      metric.Float64Histogram
	stageTokens       metric.Int64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("exprkit")

	evaluations, err := meter.Int64Counter("exprkit.evaluations",
		metric.WithDescription("Number of expression evaluations"),
	)
	if err != nil {
		return nil, err
	}

	evaluationErrors, err := meter.Int64Counter("exprkit.evaluation.errors",
		metric.WithDescription("Number of failed expression evaluations"),
	)
	if err != nil {
		return nil, err
	}

	evaluationLatency, err := meter.Float64Histogram("exprkit.evaluation.latency_ms",
		metric.WithDescription("End-to-end evaluation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	stageLatency, err := meter.Float64Histogram("exprkit.stage.latency_ms",
		metric.WithDescription("Pipeline stage latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	stageTokens, err := meter.Int64Histogram("exprkit.stage.tokens",
		metric.WithDescription("Tokens produced by a pipeline stage"),
		metric.WithUnit("{token}"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		evaluations:       evaluations,
		evaluationErrors:  evaluationErrors,
		evaluationLatency: evaluationLatency,
		stageLatency:      stageLatency,
		stageTokens:       stageTokens,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordEvaluation records a finished evaluation.
func (m *otelMetrics) RecordEvaluation(ctx context.Context, success bool, kind string, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.Bool("success", success),
	}
	m.evaluations.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.evaluationLatency.Record(ctx, Milliseconds(duration), metric.WithAttributes(attrs...))

	if !success {
		m.evaluationErrors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("error_kind", kind),
		))
	}
}

// RecordStage records one pipeline stage.
func (m *otelMetrics) RecordStage(ctx context.Context, stage string, duration time.Duration, err error) {
	m.stageLatency.Record(ctx, Milliseconds(duration), metric.WithAttributes(
		attribute.String("stage", stage),
		attribute.Bool("success", err == nil),
	))
}

// RecordTokens records a stage's token count.
func (m *otelMetrics) RecordTokens(ctx context.Context, stage string, count int64) {
	m.stageTokens.Record(ctx, count, metric.WithAttributes(
		attribute.String("stage", stage),
	))
}
