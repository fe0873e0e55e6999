package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// NoopMetrics is a MetricsRecorder that does nothing.
type NoopMetrics struct{}

// Compile-time interface check.
var _ MetricsRecorder = NoopMetrics{}

// RecordQuery does nothing.
func (NoopMetrics) RecordQuery(_ context.Context, _ string, _ time.Duration, _ error) {}

// RecordNeighbors does nothing.
func (NoopMetrics) RecordNeighbors(_ context.Context, _ int) {}

// RecordTraversal does nothing.
func (NoopMetrics) RecordTraversal(_ context.Context, _ string) {}

// RecordLLMCall does nothing.
func (NoopMetrics) RecordLLMCall(_ context.Context, _ string, _ time.Duration, _ int, _ error) {}

// RecordCacheLookup does nothing.
func (NoopMetrics) RecordCacheLookup(_ context.Context, _ bool) {}

// NoopSpanManager is a SpanManager that does nothing.
type NoopSpanManager struct{}

// Compile-time interface check.
var _ SpanManager = NoopSpanManager{}

var noopSpan = noop.Span{}

// StartQuerySpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartQuerySpan(ctx context.Context, _, _, _ string) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// StartLLMSpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartLLMSpan(ctx context.Context, _ string) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// EndSpanWithError does nothing.
func (NoopSpanManager) EndSpanWithError(_ trace.Span, _ error) {}

// AddSpanEvent does nothing.
func (NoopSpanManager) AddSpanEvent(_ context.Context, _ string, _ ...attribute.KeyValue) {}
