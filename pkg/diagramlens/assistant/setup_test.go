package assistant_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/diagramlens/pkg/diagramlens/assistant"
	"github.com/randalmurphal/diagramlens/pkg/diagramlens/cache"
	"github.com/randalmurphal/diagramlens/pkg/diagramlens/config"
	"github.com/randalmurphal/diagramlens/pkg/diagramlens/llm"
)

func TestNewClient(t *testing.T) {
	t.Run("mock", func(t *testing.T) {
		s := config.Defaults()
		s.LLM.Provider = config.ProviderMock

		client, err := assistant.NewClient(context.Background(), s)

		require.NoError(t, err)
		resp, err := client.Complete(context.Background(), llm.UserPrompt("q"))
		require.NoError(t, err)
		assert.Equal(t, assistant.MockReply, resp.Content)
	})

	t.Run("gemini without key", func(t *testing.T) {
		s := config.Defaults()
		s.LLM.APIKey = ""

		client, err := assistant.NewClient(context.Background(), s)

		assert.ErrorIs(t, err, llm.ErrMissingAPIKey)
		assert.Nil(t, client)
	})

	t.Run("unknown provider", func(t *testing.T) {
		s := config.Defaults()
		s.LLM.Provider = "carrier-pigeon"

		_, err := assistant.NewClient(context.Background(), s)

		assert.ErrorIs(t, err, config.ErrInvalidSetting)
	})
}

func TestNewStore(t *testing.T) {
	tests := []struct {
		name    string
		backend config.CacheSettings
		wantNil bool
		wantErr bool
	}{
		{name: "memory", backend: config.CacheSettings{Backend: config.CacheMemory, Size: 4}},
		{name: "sqlite", backend: config.CacheSettings{Backend: config.CacheSQLite, Path: filepath.Join(t.TempDir(), "c.db")}},
		{name: "none", backend: config.CacheSettings{Backend: config.CacheNone}, wantNil: true},
		{name: "unknown", backend: config.CacheSettings{Backend: "redis"}, wantNil: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := assistant.NewStore(tt.backend)
			if tt.wantErr {
				assert.ErrorIs(t, err, config.ErrInvalidSetting)
			} else {
				require.NoError(t, err)
			}
			if tt.wantNil {
				assert.Nil(t, store)
				return
			}
			require.NotNil(t, store)
			defer store.Close()

			require.NoError(t, store.Put(cache.Key("k"), "v"))
			assert.Equal(t, 1, store.Len())
		})
	}
}
