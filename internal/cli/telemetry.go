package cli

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/randalmurphal/exprkit/internal/cli/config"
	"github.com/randalmurphal/exprkit/pkg/exprkit/observability"
)

// telemetry owns the OpenTelemetry providers installed for one CLI run.
type telemetry struct {
	logger *slog.Logger
	reader *sdkmetric.ManualReader
	meters *sdkmetric.MeterProvider
	traces *sdktrace.TracerProvider
}

// setupTelemetry installs global meter and tracer providers when enabled.
// Metrics are collected once at shutdown; spans are logged as they end.
func setupTelemetry(cfg *config.Config, logger *slog.Logger) *telemetry {
	t := &telemetry{logger: logger}

	if cfg.Metrics {
		t.reader = sdkmetric.NewManualReader()
		t.meters = sdkmetric.NewMeterProvider(sdkmetric.WithReader(t.reader))
		otel.SetMeterProvider(t.meters)
	}
	if cfg.Tracing {
		t.traces = sdktrace.NewTracerProvider(sdktrace.WithSyncer(&logExporter{logger: logger}))
		otel.SetTracerProvider(t.traces)
	}
	return t
}

// Shutdown logs collected metrics and flushes the providers.
func (t *telemetry) Shutdown(ctx context.Context) error {
	var errs []error

	if t.meters != nil {
		var rm metricdata.ResourceMetrics
		if err := t.reader.Collect(ctx, &rm); err != nil {
			errs = append(errs, err)
		} else {
			logMetrics(t.logger, rm)
		}
		errs = append(errs, t.meters.Shutdown(ctx))
	}
	if t.traces != nil {
		errs = append(errs, t.traces.Shutdown(ctx))
	}
	return errors.Join(errs...)
}

// logMetrics writes one log line per metric.
func logMetrics(logger *slog.Logger, rm metricdata.ResourceMetrics) {
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				var total int64
				for _, dp := range data.DataPoints {
					total += dp.Value
				}
				logger.Info("metric", "name", m.Name, "sum", total)
			case metricdata.Histogram[float64]:
				count, sum := histogramTotals(data)
				logger.Info("metric", "name", m.Name, "count", count, "sum", sum, "unit", m.Unit)
			case metricdata.Histogram[int64]:
				count, sum := histogramTotals(data)
				logger.Info("metric", "name", m.Name, "count", count, "sum", sum)
			default:
				logger.Info("metric", "name", m.Name)
			}
		}
	}
}

func histogramTotals[N int64 | float64](h metricdata.Histogram[N]) (uint64, N) {
	var count uint64
	var sum N
	for _, dp := range h.DataPoints {
		count += dp.Count
		sum += dp.Sum
	}
	return count, sum
}

// logExporter is a span exporter that writes finished spans to a logger.
type logExporter struct {
	logger *slog.Logger
}

func (e *logExporter) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, span := range spans {
		attrs := []any{
			"name", span.Name(),
			"trace_id", span.SpanContext().TraceID().String(),
			"span_id", span.SpanContext().SpanID().String(),
			"duration_ms", observability.Milliseconds(span.EndTime().Sub(span.StartTime())),
			"status", span.Status().Code.String(),
		}
		if span.Parent().IsValid() {
			attrs = append(attrs, "parent_id", span.Parent().SpanID().String())
		}
		if desc := span.Status().Description; desc != "" {
			attrs = append(attrs, "error", desc)
		}
		e.logger.Info("span", attrs...)
	}
	return nil
}

func (e *logExporter) Shutdown(context.Context) error { return nil }
