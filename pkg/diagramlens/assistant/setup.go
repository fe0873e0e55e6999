package assistant

import (
	"context"
	"fmt"

	"github.com/randalmurphal/diagramlens/pkg/diagramlens/cache"
	"github.com/randalmurphal/diagramlens/pkg/diagramlens/config"
	"github.com/randalmurphal/diagramlens/pkg/diagramlens/llm"
)

// MockReply is the canned answer of the mock provider.
const MockReply = "Offline mode: no language model is configured, so this is a placeholder explanation."

// NewClient builds the model client named by s.LLM.Provider.
func NewClient(ctx context.Context, s config.Settings) (llm.Client, error) {
	switch s.LLM.Provider {
	case config.ProviderGemini:
		client, err := llm.NewGeminiClient(ctx, s.LLM.APIKey,
			llm.WithModel(s.LLM.Model),
			llm.WithTimeout(s.LLM.Timeout),
		)
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.ProviderMock:
		return llm.NewMockClient(MockReply), nil
	default:
		return nil, fmt.Errorf("%w: unknown llm.provider %q", config.ErrInvalidSetting, s.LLM.Provider)
	}
}

// NewStore opens the cache backend named by s.Backend. The "none"
// backend returns a nil store, which disables caching.
func NewStore(s config.CacheSettings) (cache.Store, error) {
	switch s.Backend {
	case config.CacheMemory:
		store, err := cache.NewMemoryStore(s.Size)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.CacheSQLite:
		store, err := cache.NewSQLiteStore(s.Path)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.CacheNone, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: unknown cache.backend %q", config.ErrInvalidSetting, s.Backend)
	}
}
