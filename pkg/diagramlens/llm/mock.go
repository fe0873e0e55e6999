package llm

import (
	"context"
	"sync"
)

// MockClient is a scripted Client for tests and offline runs.
type MockClient struct {
	mu        sync.Mutex
	responses []string
	next      int
	errs      []error
	usage     TokenUsage
	calls     []CompletionRequest
}

// Compile-time interface check.
var _ Client = (*MockClient)(nil)

// NewMockClient creates a mock that always answers with response.
func NewMockClient(response string) *MockClient {
	return &MockClient{responses: []string{response}}
}

// WithResponses replaces the scripted responses. Calls cycle through them.
func (m *MockClient) WithResponses(responses ...string) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = responses
	m.next = 0
	return m
}

// WithError makes every call fail with err.
func (m *MockClient) WithError(err error) *MockClient {
	return m.WithErrors(err)
}

// WithErrors scripts the error of successive calls. The final entry
// repeats, so a trailing nil lets calls succeed after the failures.
func (m *MockClient) WithErrors(errs ...error) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs = errs
	return m
}

// WithUsage sets the token usage reported on every response.
func (m *MockClient) WithUsage(u TokenUsage) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.usage = u
	return m
}

// Complete implements Client.
func (m *MockClient) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, req)

	if err := ctx.Err(); err != nil {
		return nil, NewError("complete", err, false)
	}

	if len(m.errs) > 0 {
		err := m.errs[0]
		if len(m.errs) > 1 {
			m.errs = m.errs[1:]
		}
		if err != nil {
			return nil, err
		}
	}

	content := ""
	if len(m.responses) > 0 {
		content = m.responses[m.next%len(m.responses)]
		m.next++
	}
	return &CompletionResponse{
		Content:      content,
		Usage:        m.usage,
		Model:        req.Model,
		FinishReason: "stop",
	}, nil
}

// Calls returns a copy of every request received.
func (m *MockClient) Calls() []CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]CompletionRequest, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns the number of requests received.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// LastCall returns the most recent request, or nil if there was none.
func (m *MockClient) LastCall() *CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return nil
	}
	req := m.calls[len(m.calls)-1]
	return &req
}

// Reset clears recorded calls and rewinds the response script.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.next = 0
}
