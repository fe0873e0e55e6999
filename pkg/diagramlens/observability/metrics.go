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

// MetricsRecorder records diagramlens metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordQuery records a completed query with its duration and error status.
	RecordQuery(ctx context.Context, op string, duration time.Duration, err error)

	// RecordNeighbors records how many neighbors a neighborhood query found.
	RecordNeighbors(ctx context.Context, count int)

	// RecordTraversal records which strategy a traversal used.
	RecordTraversal(ctx context.Context, strategy string)

	// RecordLLMCall records one language model call.
	RecordLLMCall(ctx context.Context, model string, duration time.Duration, tokens int, err error)

	// RecordCacheLookup records a response cache lookup.
	RecordCacheLookup(ctx context.Context, hit bool)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	queries      metric.Int64Counter
	queryLatency metric.Float64Histogram
	queryErrors  metric.Int64Counter
	neighbors    metric.Int64Histogram
	traversals   metric.Int64Counter
	llmCalls     metric.Int64Counter
	llmLatency   metric.Float64Histogram
	llmTokens    metric.Int64Counter
	cacheLookups metric.Int64Counter
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

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("diagramlens")
	m := &otelMetrics{}
	var err error

	if m.queries, err = meter.Int64Counter("diagramlens.query.count",
		metric.WithDescription("Number of queries"),
	); err != nil {
		return nil, err
	}
	if m.queryLatency, err = meter.Float64Histogram("diagramlens.query.latency_ms",
		metric.WithDescription("Query latency in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, err
	}
	if m.queryErrors, err = meter.Int64Counter("diagramlens.query.errors",
		metric.WithDescription("Number of failed queries"),
	); err != nil {
		return nil, err
	}
	if m.neighbors, err = meter.Int64Histogram("diagramlens.neighbors.count",
		metric.WithDescription("Neighbors found within the proximity radius"),
	); err != nil {
		return nil, err
	}
	if m.traversals, err = meter.Int64Counter("diagramlens.traversal.strategy",
		metric.WithDescription("Traversals by edge strategy"),
	); err != nil {
		return nil, err
	}
	if m.llmCalls, err = meter.Int64Counter("diagramlens.llm.calls",
		metric.WithDescription("Number of language model calls"),
	); err != nil {
		return nil, err
	}
	if m.llmLatency, err = meter.Float64Histogram("diagramlens.llm.latency_ms",
		metric.WithDescription("Language model call latency in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, err
	}
	if m.llmTokens, err = meter.Int64Counter("diagramlens.llm.tokens",
		metric.WithDescription("Tokens consumed by language model calls"),
	); err != nil {
		return nil, err
	}
	if m.cacheLookups, err = meter.Int64Counter("diagramlens.cache.lookups",
		metric.WithDescription("Response cache lookups"),
	); err != nil {
		return nil, err
	}
	return m, nil
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

// RecordQuery records a query.
func (m *otelMetrics) RecordQuery(ctx context.Context, op string, duration time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.String("op", op))

	m.queries.Add(ctx, 1, attrs)
	m.queryLatency.Record(ctx, float64(duration.Microseconds())/1000, attrs)
	if err != nil {
		m.queryErrors.Add(ctx, 1, attrs)
	}
}

// RecordNeighbors records a neighbor count.
func (m *otelMetrics) RecordNeighbors(ctx context.Context, count int) {
	m.neighbors.Record(ctx, int64(count))
}

// RecordTraversal records a traversal strategy.
func (m *otelMetrics) RecordTraversal(ctx context.Context, strategy string) {
	m.traversals.Add(ctx, 1, metric.WithAttributes(attribute.String("strategy", strategy)))
}

// RecordLLMCall records a language model call.
func (m *otelMetrics) RecordLLMCall(ctx context.Context, model string, duration time.Duration, tokens int, err error) {
	attrs := metric.WithAttributes(
		attribute.String("model", model),
		attribute.Bool("success", err == nil),
	)
	m.llmCalls.Add(ctx, 1, attrs)
	m.llmLatency.Record(ctx, float64(duration.Microseconds())/1000, attrs)
	if tokens > 0 {
		m.llmTokens.Add(ctx, int64(tokens), metric.WithAttributes(attribute.String("model", model)))
	}
}

// RecordCacheLookup records a cache lookup.
func (m *otelMetrics) RecordCacheLookup(ctx context.Context, hit bool) {
	m.cacheLookups.Add(ctx, 1, metric.WithAttributes(attribute.Bool("hit", hit)))
}
