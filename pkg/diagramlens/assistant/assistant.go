// Package assistant answers questions about diagram elements with a
// language model.
//
// It runs the pure analysis in the diagramlens package (classification,
// neighborhood, prompt synthesis), sends the prompt through an llm.Client
// with retries, and caches the answer. Every call gets a query id that
// appears in logs, spans and errors.
//
// Example:
//
//	a := assistant.New(client,
//	    assistant.WithCache(store),
//	    assistant.WithLogger(slog.Default()),
//	)
//	exp, err := a.Explain(ctx, snap, "box-1", "Photosynthesis", diagramlens.DepthShort)
package assistant

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/diagramlens/pkg/diagramlens"
	"github.com/randalmurphal/diagramlens/pkg/diagramlens/cache"
	"github.com/randalmurphal/diagramlens/pkg/diagramlens/config"
	"github.com/randalmurphal/diagramlens/pkg/diagramlens/llm"
	"github.com/randalmurphal/diagramlens/pkg/diagramlens/observability"
)

// Operation names used in logs, spans and metrics.
const (
	OpExplain  = "explain"
	OpGenerate = "generate"
	OpOrder    = "order"
)

// Assistant explains diagram elements and generates diagrams.
// It is immutable after New and safe for concurrent use.
type Assistant struct {
	client   llm.Client
	store    cache.Store
	logger   *slog.Logger
	metrics  observability.MetricsRecorder
	spans    observability.SpanManager
	settings config.Settings
	retry    *llm.RetryConfig

	opts []diagramlens.Option
}

// Explanation is the answer to an Explain call.
type Explanation struct {
	QueryID    string                        `json:"query_id"`
	ElementID  string                        `json:"element_id"`
	Descriptor string                        `json:"descriptor"`
	Summary    string                        `json:"summary"`
	Neighbors  []diagramlens.NeighborContext `json:"neighbors"`
	Prompt     string                        `json:"prompt"`
	Text       string                        `json:"text"`
	Cached     bool                          `json:"cached"`
	Usage      llm.TokenUsage                `json:"usage"`
}

// New creates an Assistant backed by client.
func New(client llm.Client, opts ...Option) *Assistant {
	a := &Assistant{
		client:   client,
		metrics:  observability.NoopMetrics{},
		spans:    observability.NoopSpanManager{},
		settings: config.Defaults(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.retry == nil {
		cfg := llm.DefaultRetry
		if a.settings.LLM.MaxAttempts > 0 {
			cfg.MaxAttempts = a.settings.LLM.MaxAttempts
		}
		a.retry = &cfg
	}
	a.opts = a.settings.Options()
	return a
}

// Explain produces an explanation of the element elementID in snap.
//
// The element's neighborhood is computed with the configured radius,
// turned into a short or deep prompt, and answered by the model. A
// cached answer for the same model and prompt is returned without a
// model call.
func (a *Assistant) Explain(ctx context.Context, snap *diagramlens.Snapshot, elementID, topic string, depth diagramlens.Depth) (exp *Explanation, err error) {
	queryID := uuid.NewString()
	logger := observability.EnrichLogger(a.logger, queryID, elementID)
	done := observability.TimedOperation()
	start := time.Now()

	observability.LogQueryStart(logger, OpExplain)
	ctx, span := a.spans.StartQuerySpan(ctx, OpExplain, queryID, elementID)
	defer func() {
		a.spans.EndSpanWithError(span, err)
		a.metrics.RecordQuery(ctx, OpExplain, time.Since(start), err)
		if err != nil {
			observability.LogQueryError(logger, OpExplain, err, done())
			return
		}
		observability.LogQueryComplete(logger, OpExplain, done(), len(exp.Neighbors), exp.Cached)
	}()

	fail := func(err error) error {
		return &QueryError{QueryID: queryID, Op: OpExplain, ElementID: elementID, Err: err}
	}

	if snap == nil || snap.Len() == 0 {
		return nil, fail(diagramlens.ErrEmptySnapshot)
	}
	focal, ok := snap.Lookup(elementID)
	if !ok {
		return nil, fail(diagramlens.ErrElementNotFound)
	}

	nctx := diagramlens.Neighborhood(focal, snap.Elements(), a.opts...)
	a.metrics.RecordNeighbors(ctx, len(nctx.Neighbors))
	descriptor, _ := diagramlens.Describe(focal)
	prompt := diagramlens.BuildPrompt(depth, focal, topic, nctx.Neighbors, a.opts...)

	ans, err := a.complete(ctx, logger, prompt)
	if err != nil {
		return nil, fail(err)
	}

	return &Explanation{
		QueryID:    queryID,
		ElementID:  elementID,
		Descriptor: descriptor,
		Summary:    nctx.Summary,
		Neighbors:  nctx.Neighbors,
		Prompt:     prompt,
		Text:       ans.text,
		Cached:     ans.cached,
		Usage:      ans.usage,
	}, nil
}

// GenerateDiagram asks the model for a Mermaid flowchart explaining
// topic and returns the source with any Markdown fence removed.
func (a *Assistant) GenerateDiagram(ctx context.Context, topic string) (src string, err error) {
	queryID := uuid.NewString()
	logger := observability.EnrichLogger(a.logger, queryID, "")
	done := observability.TimedOperation()
	start := time.Now()

	observability.LogQueryStart(logger, OpGenerate)
	ctx, span := a.spans.StartQuerySpan(ctx, OpGenerate, queryID, "")
	var cached bool
	defer func() {
		a.spans.EndSpanWithError(span, err)
		a.metrics.RecordQuery(ctx, OpGenerate, time.Since(start), err)
		if err != nil {
			observability.LogQueryError(logger, OpGenerate, err, done())
			return
		}
		observability.LogQueryComplete(logger, OpGenerate, done(), 0, cached)
	}()

	if strings.TrimSpace(topic) == "" {
		return "", &QueryError{QueryID: queryID, Op: OpGenerate, Err: ErrEmptyTopic}
	}

	ans, err := a.complete(ctx, logger, diagramlens.DiagramPrompt(topic))
	if err != nil {
		return "", &QueryError{QueryID: queryID, Op: OpGenerate, Err: err}
	}
	cached = ans.cached
	return llm.StripFences(ans.text), nil
}

// Order reconstructs the reading order of snap. A nil snapshot yields
// an empty traversal.
func (a *Assistant) Order(ctx context.Context, snap *diagramlens.Snapshot) diagramlens.Traversal {
	queryID := uuid.NewString()
	logger := observability.EnrichLogger(a.logger, queryID, "")
	start := time.Now()

	ctx, span := a.spans.StartQuerySpan(ctx, OpOrder, queryID, "")
	defer a.spans.EndSpanWithError(span, nil)

	var t diagramlens.Traversal
	if snap == nil {
		t = diagramlens.Traverse(nil)
	} else {
		t = snap.Traverse()
	}

	observability.LogTraversal(logger, string(t.Strategy), len(t.Order), len(t.Edges))
	a.metrics.RecordTraversal(ctx, string(t.Strategy))
	a.metrics.RecordQuery(ctx, OpOrder, time.Since(start), nil)
	return t
}

// answer is the outcome of one cached or live model call.
type answer struct {
	text   string
	usage  llm.TokenUsage
	cached bool
}

// complete answers prompt from the cache or the model. Cache failures
// are logged and never fail the call.
func (a *Assistant) complete(ctx context.Context, logger *slog.Logger, prompt string) (answer, error) {
	model := a.settings.LLM.Model
	key := cache.Key(model, prompt)

	if a.store != nil {
		text, err := a.store.Get(key)
		switch {
		case err == nil:
			a.metrics.RecordCacheLookup(ctx, true)
			a.spans.AddSpanEvent(ctx, "cache.hit", attribute.String("cache.key", key))
			return answer{text: text, cached: true}, nil
		case errors.Is(err, cache.ErrNotFound):
			a.metrics.RecordCacheLookup(ctx, false)
		default:
			a.metrics.RecordCacheLookup(ctx, false)
			observability.LogCacheError(logger, "get", err)
		}
	}

	req := llm.CompletionRequest{
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Model:       model,
		MaxTokens:   a.settings.LLM.MaxTokens,
		Temperature: a.settings.LLM.Temperature,
	}

	cfg := *a.retry
	onRetry := cfg.OnRetry
	cfg.OnRetry = func(attempt int, err error) {
		observability.LogLLMAttempt(logger, attempt, err)
		if onRetry != nil {
			onRetry(attempt, err)
		}
	}

	result := llm.WithRetryContext(ctx, cfg, func(ctx context.Context) (*llm.CompletionResponse, error) {
		return a.call(ctx, req)
	})
	if result.Err != nil {
		return answer{}, result.Err
	}

	text := strings.TrimSpace(result.Value.Content)
	if a.store != nil {
		if err := a.store.Put(key, text); err != nil {
			observability.LogCacheError(logger, "put", err)
		}
	}
	return answer{text: text, usage: result.Value.Usage}, nil
}

// call performs a single model request inside an llm span.
func (a *Assistant) call(ctx context.Context, req llm.CompletionRequest) (resp *llm.CompletionResponse, err error) {
	llmCtx, span := a.spans.StartLLMSpan(ctx, req.Model)
	start := time.Now()
	defer func() {
		tokens := 0
		if resp != nil {
			tokens = resp.Usage.TotalTokens
		}
		a.metrics.RecordLLMCall(ctx, req.Model, time.Since(start), tokens, err)
		a.spans.EndSpanWithError(span, err)
	}()

	resp, err = a.client.Complete(llmCtx, req)
	if err != nil {
		return nil, err
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return nil, llm.NewError("complete", llm.ErrEmptyResponse, true)
	}
	return resp, nil
}
