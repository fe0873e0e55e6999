package assistant_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/diagramlens/pkg/diagramlens"
	"github.com/randalmurphal/diagramlens/pkg/diagramlens/assistant"
	"github.com/randalmurphal/diagramlens/pkg/diagramlens/cache"
	"github.com/randalmurphal/diagramlens/pkg/diagramlens/config"
	"github.com/randalmurphal/diagramlens/pkg/diagramlens/llm"
)

// fastRetry keeps retry tests quick.
var fastRetry = llm.RetryConfig{
	MaxAttempts:    3,
	InitialBackoff: time.Millisecond,
	MaxBackoff:     2 * time.Millisecond,
	BackoffFactor:  2,
}

// photosynthesis is a two-box diagram joined by a bound arrow, plus one
// box far outside the default radius.
func photosynthesis() *diagramlens.Snapshot {
	return diagramlens.NewSnapshot([]diagramlens.Element{
		{ID: "sun", Type: diagramlens.TypeRectangle, Text: "Sun", X: 0, Y: 0, Width: 100, Height: 50},
		{
			ID: "arrow", Type: diagramlens.TypeArrow, X: 100, Y: 25, Width: 100,
			StartBinding: &diagramlens.Binding{ElementID: "sun"},
			EndBinding:   &diagramlens.Binding{ElementID: "leaf"},
		},
		{ID: "leaf", Type: diagramlens.TypeRectangle, Text: "Leaf", X: 200, Y: 0, Width: 100, Height: 50},
		{ID: "far", Type: diagramlens.TypeEllipse, Text: "Glucose", X: 2000, Y: 2000, Width: 100, Height: 50},
	})
}

func decodeLogs(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var records []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		records = append(records, rec)
	}
	return records
}

func TestExplain_Short(t *testing.T) {
	mock := llm.NewMockClient("  Supplies the light energy that drives the leaf.  ").
		WithUsage(llm.TokenUsage{InputTokens: 40, OutputTokens: 10, TotalTokens: 50})
	a := assistant.New(mock)

	exp, err := a.Explain(context.Background(), photosynthesis(), "sun", "Photosynthesis", diagramlens.DepthShort)

	require.NoError(t, err)
	assert.Equal(t, "sun", exp.ElementID)
	assert.Equal(t, `"Sun" (Box)`, exp.Descriptor)
	assert.Equal(t, `Sun (Box) — connected/near: arrow, "Leaf"`, exp.Summary)
	require.Len(t, exp.Neighbors, 2)
	assert.Equal(t, "arrow", exp.Neighbors[0].ID)
	assert.Equal(t, 100, exp.Neighbors[0].Distance)
	assert.Equal(t, "leaf", exp.Neighbors[1].ID)
	assert.Equal(t, "Supplies the light energy that drives the leaf.", exp.Text)
	assert.False(t, exp.Cached)
	assert.Equal(t, 50, exp.Usage.TotalTokens)

	_, err = uuid.Parse(exp.QueryID)
	assert.NoError(t, err)

	assert.Contains(t, exp.Prompt, "Topic: Photosynthesis")
	assert.Contains(t, exp.Prompt, `Selected element: "Sun" (Box)`)
	assert.Contains(t, exp.Prompt, `Nearby elements: arrow, "Leaf"`)
	assert.Contains(t, exp.Prompt, "2-3 sentences")

	call := mock.LastCall()
	require.NotNil(t, call)
	require.Len(t, call.Messages, 1)
	assert.Equal(t, llm.RoleUser, call.Messages[0].Role)
	assert.Equal(t, exp.Prompt, call.Messages[0].Content)
	assert.Equal(t, config.Defaults().LLM.Model, call.Model)
}

func TestExplain_Deep(t *testing.T) {
	mock := llm.NewMockClient("deep answer")
	a := assistant.New(mock)

	exp, err := a.Explain(context.Background(), photosynthesis(), "leaf", "Photosynthesis", diagramlens.DepthDeep)

	require.NoError(t, err)
	assert.Contains(t, exp.Prompt, "deep-dive")
	assert.Contains(t, exp.Prompt, "mnemonic")
}

func TestExplain_NoNeighborsOmitsNearbyLine(t *testing.T) {
	mock := llm.NewMockClient("alone")
	a := assistant.New(mock)

	exp, err := a.Explain(context.Background(), photosynthesis(), "far", "", diagramlens.DepthShort)

	require.NoError(t, err)
	assert.Empty(t, exp.Neighbors)
	assert.Equal(t, "Glucose (Oval)", exp.Summary)
	assert.NotContains(t, exp.Prompt, "Nearby elements")
	assert.Contains(t, exp.Prompt, "Topic: this diagram")
}

func TestExplain_SettingsRadius(t *testing.T) {
	s := config.Defaults()
	s.Radius = 150
	a := assistant.New(llm.NewMockClient("x"), assistant.WithSettings(s))

	exp, err := a.Explain(context.Background(), photosynthesis(), "sun", "t", diagramlens.DepthShort)

	require.NoError(t, err)
	require.Len(t, exp.Neighbors, 1)
	assert.Equal(t, "arrow", exp.Neighbors[0].ID)
}

func TestExplain_ElementNotFound(t *testing.T) {
	mock := llm.NewMockClient("unused")
	a := assistant.New(mock)

	_, err := a.Explain(context.Background(), photosynthesis(), "missing", "t", diagramlens.DepthShort)

	require.Error(t, err)
	assert.ErrorIs(t, err, diagramlens.ErrElementNotFound)

	var qerr *assistant.QueryError
	require.ErrorAs(t, err, &qerr)
	assert.Equal(t, assistant.OpExplain, qerr.Op)
	assert.Equal(t, "missing", qerr.ElementID)
	assert.NotEmpty(t, qerr.QueryID)
	assert.Contains(t, err.Error(), "explain element missing")
	assert.Zero(t, mock.CallCount())
}

func TestExplain_EmptySnapshot(t *testing.T) {
	a := assistant.New(llm.NewMockClient("unused"))

	_, err := a.Explain(context.Background(), nil, "sun", "t", diagramlens.DepthShort)
	assert.ErrorIs(t, err, diagramlens.ErrEmptySnapshot)

	_, err = a.Explain(context.Background(), diagramlens.NewSnapshot(nil), "sun", "t", diagramlens.DepthShort)
	assert.ErrorIs(t, err, diagramlens.ErrEmptySnapshot)
}

func TestExplain_CacheHit(t *testing.T) {
	store, err := cache.NewMemoryStore(8)
	require.NoError(t, err)
	mock := llm.NewMockClient("cached answer")
	a := assistant.New(mock, assistant.WithCache(store))
	snap := photosynthesis()

	first, err := a.Explain(context.Background(), snap, "sun", "Photosynthesis", diagramlens.DepthShort)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := a.Explain(context.Background(), snap, "sun", "Photosynthesis", diagramlens.DepthShort)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, "cached answer", second.Text)
	assert.NotEqual(t, first.QueryID, second.QueryID)

	assert.Equal(t, 1, mock.CallCount())
	assert.Equal(t, 1, store.Len())

	// A different depth is a different prompt.
	_, err = a.Explain(context.Background(), snap, "sun", "Photosynthesis", diagramlens.DepthDeep)
	require.NoError(t, err)
	assert.Equal(t, 2, mock.CallCount())
}

func TestExplain_CacheFailureIsNonFatal(t *testing.T) {
	store, err := cache.NewMemoryStore(8)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	a := assistant.New(llm.NewMockClient("answer"), assistant.WithCache(store), assistant.WithLogger(logger))

	exp, err := a.Explain(context.Background(), photosynthesis(), "sun", "t", diagramlens.DepthShort)

	require.NoError(t, err)
	assert.Equal(t, "answer", exp.Text)

	var cacheWarnings int
	for _, rec := range decodeLogs(t, &buf) {
		if rec["msg"] == "cache operation failed" {
			cacheWarnings++
		}
	}
	assert.Equal(t, 2, cacheWarnings)
}

func TestExplain_RetriesTransientErrors(t *testing.T) {
	transient := llm.NewError("complete", errors.New("503 unavailable"), true)
	mock := llm.NewMockClient("recovered").WithErrors(transient, transient, nil)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	a := assistant.New(mock, assistant.WithRetry(fastRetry), assistant.WithLogger(logger))

	exp, err := a.Explain(context.Background(), photosynthesis(), "sun", "t", diagramlens.DepthShort)

	require.NoError(t, err)
	assert.Equal(t, "recovered", exp.Text)
	assert.Equal(t, 3, mock.CallCount())

	var retries int
	for _, rec := range decodeLogs(t, &buf) {
		if rec["msg"] == "llm call failed, retrying" {
			retries++
			assert.Equal(t, exp.QueryID, rec["query_id"])
		}
	}
	assert.Equal(t, 2, retries)
}

func TestExplain_PermanentErrorIsNotRetried(t *testing.T) {
	permanent := llm.NewError("complete", errors.New("invalid argument"), false)
	mock := llm.NewMockClient("unused").WithError(permanent)
	a := assistant.New(mock, assistant.WithRetry(fastRetry))

	_, err := a.Explain(context.Background(), photosynthesis(), "sun", "t", diagramlens.DepthShort)

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, mock.CallCount())
}

func TestExplain_EmptyModelOutputIsRetried(t *testing.T) {
	mock := llm.NewMockClient("").WithResponses("   ", "finally")
	a := assistant.New(mock, assistant.WithRetry(fastRetry))

	exp, err := a.Explain(context.Background(), photosynthesis(), "sun", "t", diagramlens.DepthShort)

	require.NoError(t, err)
	assert.Equal(t, "finally", exp.Text)
	assert.Equal(t, 2, mock.CallCount())
}

func TestExplain_SettingsMaxAttempts(t *testing.T) {
	s := config.Defaults()
	s.LLM.MaxAttempts = 1
	transient := llm.NewError("complete", errors.New("overloaded"), true)
	mock := llm.NewMockClient("unused").WithError(transient)
	a := assistant.New(mock, assistant.WithSettings(s))

	_, err := a.Explain(context.Background(), photosynthesis(), "sun", "t", diagramlens.DepthShort)

	require.Error(t, err)
	assert.Equal(t, 1, mock.CallCount())
}

func TestExplain_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	a := assistant.New(llm.NewMockClient("ok"), assistant.WithLogger(logger))

	exp, err := a.Explain(context.Background(), photosynthesis(), "sun", "t", diagramlens.DepthShort)
	require.NoError(t, err)

	records := decodeLogs(t, &buf)
	require.NotEmpty(t, records)
	last := records[len(records)-1]
	assert.Equal(t, "query completed", last["msg"])
	assert.Equal(t, exp.QueryID, last["query_id"])
	assert.Equal(t, "sun", last["element_id"])
	assert.Equal(t, float64(2), last["neighbors"])
}

func TestGenerateDiagram(t *testing.T) {
	mock := llm.NewMockClient("```mermaid\nflowchart TD\n  A[Light] --> B[Leaf]\n```")
	a := assistant.New(mock)

	src, err := a.GenerateDiagram(context.Background(), "Photosynthesis")

	require.NoError(t, err)
	assert.Equal(t, "flowchart TD\n  A[Light] --> B[Leaf]", src)
	require.NotNil(t, mock.LastCall())
	assert.Contains(t, mock.LastCall().Messages[0].Content, "Create a Mermaid flowchart that explains: Photosynthesis")
}

func TestGenerateDiagram_EmptyTopic(t *testing.T) {
	mock := llm.NewMockClient("unused")
	a := assistant.New(mock)

	_, err := a.GenerateDiagram(context.Background(), "   ")

	assert.ErrorIs(t, err, assistant.ErrEmptyTopic)
	var qerr *assistant.QueryError
	require.ErrorAs(t, err, &qerr)
	assert.Equal(t, assistant.OpGenerate, qerr.Op)
	assert.Zero(t, mock.CallCount())
}

func TestGenerateDiagram_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a := assistant.New(llm.NewMockClient("unused"), assistant.WithRetry(fastRetry))

	_, err := a.GenerateDiagram(ctx, "Photosynthesis")

	assert.ErrorIs(t, err, context.Canceled)
}

func TestOrder(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	a := assistant.New(llm.NewMockClient("unused"), assistant.WithLogger(logger))

	got := a.Order(context.Background(), photosynthesis())

	assert.Equal(t, diagramlens.StrategyBindings, got.Strategy)
	assert.Equal(t, []string{"sun", "far", "leaf"}, got.Order)
	assert.Equal(t, []diagramlens.Edge{{From: "sun", To: "leaf"}}, got.Edges)

	records := decodeLogs(t, &buf)
	require.Len(t, records, 1)
	assert.Equal(t, "bindings", records[0]["strategy"])
}

func TestOrder_NilSnapshot(t *testing.T) {
	a := assistant.New(llm.NewMockClient("unused"))

	got := a.Order(context.Background(), nil)

	assert.Equal(t, diagramlens.StrategyEmpty, got.Strategy)
	assert.Empty(t, got.Order)
}

func TestAssistant_ConcurrentExplain(t *testing.T) {
	store, err := cache.NewMemoryStore(16)
	require.NoError(t, err)
	a := assistant.New(llm.NewMockClient("ok"), assistant.WithCache(store), assistant.WithMetrics(true), assistant.WithTracing(true))
	snap := photosynthesis()

	errs := make(chan error, 8)
	for range 8 {
		go func() {
			_, err := a.Explain(context.Background(), snap, "leaf", "t", diagramlens.DepthShort)
			errs <- err
		}()
	}
	for range 8 {
		assert.NoError(t, <-errs)
	}
}
