package assistant

import (
	"log/slog"

	"github.com/randalmurphal/diagramlens/pkg/diagramlens/cache"
	"github.com/randalmurphal/diagramlens/pkg/diagramlens/config"
	"github.com/randalmurphal/diagramlens/pkg/diagramlens/llm"
	"github.com/randalmurphal/diagramlens/pkg/diagramlens/observability"
)

// Option configures an Assistant.
type Option func(*Assistant)

// WithCache enables response caching. A nil store disables it.
func WithCache(store cache.Store) Option {
	return func(a *Assistant) {
		a.store = store
	}
}

// WithLogger sets the logger for query logging.
// Nil disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assistant) {
		a.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics.
// Default: false
func WithMetrics(enabled bool) Option {
	return func(a *Assistant) {
		if enabled {
			a.metrics = observability.NewMetricsRecorder()
		} else {
			a.metrics = observability.NoopMetrics{}
		}
	}
}

// WithTracing enables OpenTelemetry spans for queries and model calls.
// Default: false
func WithTracing(enabled bool) Option {
	return func(a *Assistant) {
		if enabled {
			a.spans = observability.NewSpanManager()
		} else {
			a.spans = observability.NoopSpanManager{}
		}
	}
}

// WithSettings applies resolved configuration: analysis radius and
// limits, model parameters, and the retry attempt count.
func WithSettings(s config.Settings) Option {
	return func(a *Assistant) {
		a.settings = s
	}
}

// WithRetry overrides the retry policy for model calls.
//
// Example:
//
//	a := assistant.New(client, assistant.WithRetry(llm.NoRetry))
func WithRetry(cfg llm.RetryConfig) Option {
	return func(a *Assistant) {
		a.retry = &cfg
	}
}
