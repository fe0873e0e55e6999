// Package observability provides logging, metrics, and tracing for the
// services built on diagramlens.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
// The analysis functions in the root package stay free of side effects;
// only callers such as the assistant record telemetry.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds query context to a logger.
// Returns a new logger with query_id and element_id fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "q-123", "box-1")
//	enriched.Info("explaining") // includes query_id, element_id
func EnrichLogger(logger *slog.Logger, queryID, elementID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("query_id", queryID),
		slog.String("element_id", elementID),
	)
}

// LogQueryStart logs the start of a query.
func LogQueryStart(logger *slog.Logger, op string) {
	if logger == nil {
		return
	}
	logger.Debug("query starting",
		slog.String("op", op),
	)
}

// LogQueryComplete logs successful query completion.
func LogQueryComplete(logger *slog.Logger, op string, durationMs float64, neighbors int, cached bool) {
	if logger == nil {
		return
	}
	logger.Info("query completed",
		slog.String("op", op),
		slog.Float64("duration_ms", durationMs),
		slog.Int("neighbors", neighbors),
		slog.Bool("cached", cached),
	)
}

// LogQueryError logs query failure.
func LogQueryError(logger *slog.Logger, op string, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("query failed",
		slog.String("op", op),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogTraversal logs the outcome of a traversal reconstruction.
func LogTraversal(logger *slog.Logger, strategy string, nodes, edges int) {
	if logger == nil {
		return
	}
	logger.Debug("traversal reconstructed",
		slog.String("strategy", strategy),
		slog.Int("nodes", nodes),
		slog.Int("edges", edges),
	)
}

// LogLLMAttempt logs a failed language model attempt that will be retried.
func LogLLMAttempt(logger *slog.Logger, attempt int, err error) {
	if logger == nil {
		return
	}
	logger.Warn("llm call failed, retrying",
		slog.Int("attempt", attempt),
		slog.String("error", err.Error()),
	)
}

// LogCacheError logs a cache failure (non-fatal).
func LogCacheError(logger *slog.Logger, op string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("cache operation failed",
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000
	}
}
