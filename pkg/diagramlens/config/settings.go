package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/randalmurphal/diagramlens/pkg/diagramlens"
)

// Sentinel errors for configuration loading.
var (
	// ErrUnsupportedFormat indicates a config file extension that is not YAML or JSON.
	ErrUnsupportedFormat = errors.New("unsupported config file extension")

	// ErrInvalidSetting indicates a setting failed validation.
	ErrInvalidSetting = errors.New("invalid setting")
)

// Provider names accepted in llm.provider.
const (
	ProviderGemini = "gemini"
	ProviderMock   = "mock"
)

// Cache backend names accepted in cache.backend.
const (
	CacheMemory = "memory"
	CacheSQLite = "sqlite"
	CacheNone   = "none"
)

// Environment variables consulted by Load.
const (
	EnvRadius   = "DIAGRAMLENS_RADIUS"
	EnvModel    = "DIAGRAMLENS_MODEL"
	EnvProvider = "DIAGRAMLENS_PROVIDER"
	EnvCache    = "DIAGRAMLENS_CACHE"
	EnvGemini   = "GEMINI_API_KEY"
	EnvGoogle   = "GOOGLE_API_KEY"
)

// Settings is the resolved configuration of the analysis engine and the
// services around it.
type Settings struct {
	Radius       float64
	SummaryLimit int
	ShortLimit   int
	DeepLimit    int

	LLM   LLMSettings
	Cache CacheSettings
}

// LLMSettings configures the language model client.
type LLMSettings struct {
	Provider    string
	Model       string
	APIKey      string
	Timeout     time.Duration
	MaxAttempts int
	Temperature float64
	MaxTokens   int
}

// CacheSettings configures the response cache.
type CacheSettings struct {
	Backend string
	Size    int
	Path    string
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Radius:       diagramlens.DefaultRadius,
		SummaryLimit: diagramlens.DefaultSummaryLimit,
		ShortLimit:   diagramlens.DefaultShortLimit,
		DeepLimit:    diagramlens.DefaultDeepLimit,
		LLM: LLMSettings{
			Provider:    ProviderGemini,
			Model:       "gemini-2.0-flash",
			Timeout:     60 * time.Second,
			MaxAttempts: 3,
			Temperature: 0.4,
			MaxTokens:   1024,
		},
		Cache: CacheSettings{
			Backend: CacheMemory,
			Size:    256,
			Path:    "diagramlens.db",
		},
	}
}

// FromValues overlays v onto the defaults.
func FromValues(v Values) Settings {
	d := Defaults()
	return Settings{
		Radius:       v.Float("radius", d.Radius),
		SummaryLimit: v.Int("summary_limit", d.SummaryLimit),
		ShortLimit:   v.Int("short_limit", d.ShortLimit),
		DeepLimit:    v.Int("deep_limit", d.DeepLimit),
		LLM: LLMSettings{
			Provider:    strings.ToLower(v.String("llm.provider", d.LLM.Provider)),
			Model:       v.String("llm.model", d.LLM.Model),
			APIKey:      v.String("llm.api_key", d.LLM.APIKey),
			Timeout:     v.Duration("llm.timeout", d.LLM.Timeout),
			MaxAttempts: v.Int("llm.max_attempts", d.LLM.MaxAttempts),
			Temperature: v.Float("llm.temperature", d.LLM.Temperature),
			MaxTokens:   v.Int("llm.max_tokens", d.LLM.MaxTokens),
		},
		Cache: CacheSettings{
			Backend: strings.ToLower(v.String("cache.backend", d.Cache.Backend)),
			Size:    v.Int("cache.size", d.Cache.Size),
			Path:    v.String("cache.path", d.Cache.Path),
		},
	}
}

// Load resolves settings from an optional file plus the environment.
//
// An empty path skips the file. Environment variables override file
// values. The result is validated before it is returned.
func Load(path string) (Settings, error) {
	v := NewValues(nil)
	if path != "" {
		var err error
		v, err = FromFile(path)
		if err != nil {
			return Settings{}, err
		}
	}

	s := FromValues(v)
	s.applyEnv(os.LookupEnv)

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// applyEnv overlays environment overrides using lookup.
func (s *Settings) applyEnv(lookup func(string) (string, bool)) {
	env := make(map[string]any)
	if val, ok := lookup(EnvRadius); ok {
		env["radius"] = val
	}
	s.Radius = NewValues(env).Float("radius", s.Radius)

	if val, ok := lookup(EnvModel); ok && val != "" {
		s.LLM.Model = val
	}
	if val, ok := lookup(EnvProvider); ok && val != "" {
		s.LLM.Provider = strings.ToLower(val)
	}
	if val, ok := lookup(EnvCache); ok && val != "" {
		s.Cache.Backend = strings.ToLower(val)
	}
	if s.LLM.APIKey == "" {
		if val, ok := lookup(EnvGemini); ok && val != "" {
			s.LLM.APIKey = val
		} else if val, ok := lookup(EnvGoogle); ok && val != "" {
			s.LLM.APIKey = val
		}
	}
}

// Validate checks every field and joins all failures.
func (s Settings) Validate() error {
	var errs []error
	if s.Radius <= 0 {
		errs = append(errs, fmt.Errorf("%w: radius must be positive, got %v", ErrInvalidSetting, s.Radius))
	}
	for name, n := range map[string]int{
		"summary_limit": s.SummaryLimit,
		"short_limit":   s.ShortLimit,
		"deep_limit":    s.DeepLimit,
	} {
		if n <= 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidSetting, name, n))
		}
	}
	switch s.LLM.Provider {
	case ProviderGemini, ProviderMock:
	default:
		errs = append(errs, fmt.Errorf("%w: unknown llm.provider %q", ErrInvalidSetting, s.LLM.Provider))
	}
	if s.LLM.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("%w: llm.max_attempts must be at least 1", ErrInvalidSetting))
	}
	switch s.Cache.Backend {
	case CacheMemory:
		if s.Cache.Size <= 0 {
			errs = append(errs, fmt.Errorf("%w: cache.size must be positive", ErrInvalidSetting))
		}
	case CacheSQLite:
		if s.Cache.Path == "" {
			errs = append(errs, fmt.Errorf("%w: cache.path is required for sqlite", ErrInvalidSetting))
		}
	case CacheNone:
	default:
		errs = append(errs, fmt.Errorf("%w: unknown cache.backend %q", ErrInvalidSetting, s.Cache.Backend))
	}
	return errors.Join(errs...)
}

// Options converts the analysis settings into diagramlens options.
func (s Settings) Options() []diagramlens.Option {
	return []diagramlens.Option{
		diagramlens.WithRadius(s.Radius),
		diagramlens.WithSummaryLimit(s.SummaryLimit),
		diagramlens.WithShortLimit(s.ShortLimit),
		diagramlens.WithDeepLimit(s.DeepLimit),
	}
}
