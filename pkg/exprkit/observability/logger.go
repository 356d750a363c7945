// Package observability provides structured logging, metrics and tracing
// for expression evaluation.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds evaluation context to a logger.
// Returns a new logger with eval_id and expression fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "3f2c...", "x + 1")
//	enriched.Debug("substituting") // includes eval_id, expression
func EnrichLogger(logger *slog.Logger, evalID, expression string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("eval_id", evalID),
		slog.String("expression", expression),
	)
}

// LogEvaluationStart logs the start of an evaluation.
func LogEvaluationStart(logger *slog.Logger) {
	if logger == nil {
		return
	}
	logger.Debug("evaluation starting")
}

// LogEvaluationComplete logs a successful evaluation.
func LogEvaluationComplete(logger *slog.Logger, durationMs float64, resultType string) {
	if logger == nil {
		return
	}
	logger.Info("evaluation completed",
		slog.Float64("duration_ms", durationMs),
		slog.String("result_type", resultType),
	)
}

// LogEvaluationError logs a failed evaluation along with the stage that
// failed and the error kind.
func LogEvaluationError(logger *slog.Logger, err error, stage, kind string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Warn("evaluation failed",
		slog.String("error", err.Error()),
		slog.String("stage", stage),
		slog.String("error_kind", kind),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogStage logs completion of one pipeline stage.
func LogStage(logger *slog.Logger, stage string, tokenCount int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("stage completed",
		slog.String("stage", stage),
		slog.Int("tokens", tokenCount),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogHistoryError logs a failed history write (non-fatal).
func LogHistoryError(logger *slog.Logger, op string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("history write failed",
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in
// milliseconds with microsecond resolution.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return Milliseconds(time.Since(start))
	}
}

// Milliseconds converts d to fractional milliseconds.
func Milliseconds(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
