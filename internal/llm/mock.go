package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// MockResponse is one queued reply of a MockProvider.
type MockResponse struct {
	Content      json.RawMessage
	InputTokens  int
	OutputTokens int
	Err          error
}

// MockProvider replays queued responses in order. It backs the "mock"
// provider and tests; an empty queue answers Unavailable.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse

	// Calls records every request received.
	Calls []Request
}

// NewMockProvider returns a MockProvider with responses queued.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// AddJSON queues v marshalled as a successful reply.
func (m *MockProvider) AddJSON(v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, MockResponse{Content: raw})
	return nil
}

// AddError queues a failed reply.
func (m *MockProvider) AddError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, MockResponse{Err: err})
}

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Reply, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	if len(m.responses) == 0 {
		m.mu.Unlock()
		return nil, &Error{Kind: Unavailable, Backend: ProviderMock, Err: errors.New("no queued response")}
	}
	r := m.responses[0]
	m.responses = m.responses[1:]
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.Err != nil {
		return nil, r.Err
	}
	content, err := finish(ProviderMock, req, string(r.Content), false)
	if err != nil {
		return nil, err
	}
	return &Reply{
		Content:      content,
		Model:        "mock",
		InputTokens:  r.InputTokens,
		OutputTokens: r.OutputTokens,
	}, nil
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// CallCount returns how many requests were received.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
