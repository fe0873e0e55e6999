package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/randalmurphal/diagramlens/pkg/diagramlens/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValues_DottedPaths verifies nested lookups with defaults.
func TestValues_DottedPaths(t *testing.T) {
	v := config.NewValues(map[string]any{
		"radius": 250,
		"llm": map[string]any{
			"model":   "gemini-x",
			"timeout": "15s",
			"retries": float64(2),
			"nested":  "not a map",
		},
	})

	assert.True(t, v.Has("llm.model"))
	assert.False(t, v.Has("llm.missing"))
	assert.False(t, v.Has("llm.nested.deeper"))
	assert.Equal(t, "gemini-x", v.String("llm.model", "d"))
	assert.Equal(t, "d", v.String("radius", "d"), "wrong type returns default")
	assert.Equal(t, 250.0, v.Float("radius", 1))
	assert.Equal(t, 2, v.Int("llm.retries", 0))
	assert.Equal(t, 15*time.Second, v.Duration("llm.timeout", time.Second))
	assert.Equal(t, time.Second, v.Duration("llm.model", time.Second))
}

func TestValues_NumericCoercion(t *testing.T) {
	tests := []struct {
		name  string
		value any
		wantI int
		wantF float64
	}{
		{"int", 3, 3, 3},
		{"int64", int64(4), 4, 4},
		{"whole float", float64(5), 5, 5},
		{"fractional float", 5.5, -1, 5.5},
		{"numeric string", " 6 ", 6, 6},
		{"bad string", "six", -1, -1},
		{"bool", true, -1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := config.NewValues(map[string]any{"n": tt.value})
			assert.Equal(t, tt.wantI, v.Int("n", -1))
			assert.Equal(t, tt.wantF, v.Float("n", -1))
		})
	}
}

func TestValues_NilMap(t *testing.T) {
	v := config.NewValues(nil)
	assert.NotNil(t, v.Raw())
	assert.True(t, v.Bool("x", true))
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "cfg.YAML")
	require.NoError(t, os.WriteFile(yamlPath, []byte("radius: 300\nllm:\n  model: y-model\n"), 0o600))
	v, err := config.FromFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, 300.0, v.Float("radius", 0))
	assert.Equal(t, "y-model", v.String("llm.model", ""))

	jsonPath := filepath.Join(dir, "cfg.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"cache": {"size": 10}}`), 0o600))
	v, err = config.FromFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, 10, v.Int("cache.size", 0))

	tomlPath := filepath.Join(dir, "cfg.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(""), 0o600))
	_, err = config.FromFile(tomlPath)
	assert.ErrorIs(t, err, config.ErrUnsupportedFormat)

	_, err = config.FromFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	_, err = config.Parse([]byte("radius: [unclosed"), config.FormatYAML)
	assert.Error(t, err)
}

func TestFormatOf(t *testing.T) {
	testCases := []struct {
		path    string
		want    config.Format
		wantErr bool
	}{
		{"a.yaml", config.FormatYAML, false},
		{"dir/a.YML", config.FormatYAML, false},
		{"a.Json", config.FormatJSON, false},
		{"a.toml", "", true},
		{"noext", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			got, err := config.FormatOf(tc.path)
			if tc.wantErr {
				assert.ErrorIs(t, err, config.ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParse(t *testing.T) {
	v, err := config.Parse([]byte(`{"llm": {"model": "j-model"}}`), config.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "j-model", v.String("llm.model", ""))

	v, err = config.Parse(nil, config.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 400.0, v.Float("radius", 400))

	v, err = config.Parse([]byte(""), config.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, config.Defaults(), config.FromValues(v))

	_, err = config.Parse([]byte("{"), config.FormatJSON)
	assert.ErrorContains(t, err, "decode json settings")

	_, err = config.Parse([]byte("a: 1"), config.Format("toml"))
	assert.ErrorIs(t, err, config.ErrUnsupportedFormat)
}

func TestFromValues_Defaults(t *testing.T) {
	s := config.FromValues(config.NewValues(nil))

	assert.Equal(t, config.Defaults(), s)
	assert.Equal(t, 400.0, s.Radius)
	assert.Equal(t, 4, s.ShortLimit)
	assert.Equal(t, 6, s.DeepLimit)
	assert.NoError(t, s.Validate())
	assert.Len(t, s.Options(), 4)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diagramlens.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
radius: 250
deep_limit: 8
llm:
  provider: MOCK
  timeout: 5s
cache:
  backend: sqlite
  path: /tmp/x.db
`), 0o600))

	t.Setenv(config.EnvRadius, "320")
	t.Setenv(config.EnvModel, "env-model")
	t.Setenv(config.EnvGemini, "")
	t.Setenv(config.EnvGoogle, "google-key")

	s, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 320.0, s.Radius)
	assert.Equal(t, 8, s.DeepLimit)
	assert.Equal(t, config.ProviderMock, s.LLM.Provider)
	assert.Equal(t, "env-model", s.LLM.Model)
	assert.Equal(t, "google-key", s.LLM.APIKey)
	assert.Equal(t, 5*time.Second, s.LLM.Timeout)
	assert.Equal(t, config.CacheSQLite, s.Cache.Backend)
}

func TestLoad_NoFile(t *testing.T) {
	t.Setenv(config.EnvRadius, "not-a-number")
	t.Setenv(config.EnvCache, "none")

	s, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 400.0, s.Radius, "unparsable override keeps the file value")
	assert.Equal(t, config.CacheNone, s.Cache.Backend)
}

func TestValidate_JoinsErrors(t *testing.T) {
	s := config.Defaults()
	s.Radius = 0
	s.DeepLimit = -1
	s.LLM.Provider = "openai"
	s.Cache.Backend = "redis"

	err := s.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidSetting)
	assert.Contains(t, err.Error(), "radius")
	assert.Contains(t, err.Error(), "deep_limit")
	assert.Contains(t, err.Error(), "openai")
	assert.Contains(t, err.Error(), "redis")
}
