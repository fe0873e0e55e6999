package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the diagramlens tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("diagramlens")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartQuerySpan starts a span for one assistant query.
	StartQuerySpan(ctx context.Context, op, queryID, elementID string) (context.Context, trace.Span)

	// StartLLMSpan starts a span for a language model call.
	// It should be a child of the query span.
	StartLLMSpan(ctx context.Context, model string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartQuerySpan starts a span for one assistant query.
func (m *otelSpanManager) StartQuerySpan(ctx context.Context, op, queryID, elementID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "diagramlens."+op,
		trace.WithAttributes(
			attribute.String("query.id", queryID),
			attribute.String("element.id", elementID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartLLMSpan starts a span for a language model call.
func (m *otelSpanManager) StartLLMSpan(ctx context.Context, model string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "diagramlens.llm",
		trace.WithAttributes(
			attribute.String("llm.model", model),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
