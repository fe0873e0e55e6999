package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// generateFunc is the slice of the genai API the Gemini client uses.
type generateFunc func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// GeminiClient implements Client on top of the official genai SDK.
type GeminiClient struct {
	generate generateFunc
	model    string
	timeout  time.Duration
}

// GeminiOption configures GeminiClient.
type GeminiOption func(*GeminiClient)

// WithModel sets the default model.
func WithModel(model string) GeminiOption {
	return func(c *GeminiClient) {
		if model != "" {
			c.model = model
		}
	}
}

// WithTimeout sets the per-call timeout. Zero disables it.
func WithTimeout(d time.Duration) GeminiOption {
	return func(c *GeminiClient) { c.timeout = d }
}

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.0-flash"

// NewGeminiClient creates a client for the Gemini API.
func NewGeminiClient(ctx context.Context, apiKey string, opts ...GeminiOption) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, NewError("connect", ErrMissingAPIKey, false)
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, NewError("connect", err, false)
	}
	return newGeminiClient(cli.Models.GenerateContent, opts...), nil
}

func newGeminiClient(generate generateFunc, opts ...GeminiOption) *GeminiClient {
	c := &GeminiClient{
		generate: generate,
		model:    DefaultGeminiModel,
		timeout:  60 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model returns the default model name.
func (c *GeminiClient) Model() string {
	return c.model
}

// Complete implements Client.
func (c *GeminiClient) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	start := time.Now()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	model := req.Model
	if model == "" {
		model = c.model
	}

	resp, err := c.generate(ctx, model, buildContents(req), buildConfig(req))
	if err != nil {
		if ctx.Err() != nil {
			return nil, NewError("complete", ctx.Err(), false)
		}
		return nil, NewError("complete", err, isRetryableGenaiError(err))
	}

	out := parseGenaiResponse(resp)
	if strings.TrimSpace(out.Content) == "" {
		return nil, NewError("complete", ErrEmptyResponse, true)
	}
	out.Model = model
	out.Duration = time.Since(start)
	return out, nil
}

// buildContents maps conversation turns to genai contents. System
// messages are folded into the system instruction by buildConfig.
func buildContents(req CompletionRequest) []*genai.Content {
	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, m := range req.Messages {
		switch m.Role {
		case RoleSystem:
			continue
		case RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}
	return contents
}

func buildConfig(req CompletionRequest) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}

	system := []string{}
	if req.SystemPrompt != "" {
		system = append(system, req.SystemPrompt)
	}
	for _, m := range req.Messages {
		if m.Role == RoleSystem {
			system = append(system, m.Content)
		}
	}
	if len(system) > 0 {
		cfg.SystemInstruction = genai.NewContentFromText(strings.Join(system, "\n\n"), genai.RoleUser)
	}
	if req.Temperature > 0 {
		temp := float32(req.Temperature)
		cfg.Temperature = &temp
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}
	return cfg
}

func parseGenaiResponse(resp *genai.GenerateContentResponse) *CompletionResponse {
	out := &CompletionResponse{}
	if resp == nil {
		return out
	}
	out.Content = resp.Text()
	if len(resp.Candidates) > 0 && resp.Candidates[0] != nil {
		out.FinishReason = strings.ToLower(string(resp.Candidates[0].FinishReason))
	}
	if u := resp.UsageMetadata; u != nil {
		out.Usage = TokenUsage{
			InputTokens:  int(u.PromptTokenCount),
			OutputTokens: int(u.CandidatesTokenCount),
			TotalTokens:  int(u.TotalTokenCount),
		}
	}
	return out
}

// isRetryableGenaiError marks throttling and server errors as transient.
func isRetryableGenaiError(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == 429 || apiErr.Code >= 500
	}
	return isRetryableMessage(err.Error())
}

// String identifies the client in logs.
func (c *GeminiClient) String() string {
	return fmt.Sprintf("gemini:%s", c.model)
}
