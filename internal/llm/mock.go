package llm

import (
	"context"
	"errors"
	"sync"
)

// MockResponse is one scripted reply. A non-nil Err is returned instead of
// a response.
type MockResponse struct {
	Content string
	Usage   Usage
	Err     error
}

var errScriptExhausted = errors.New("mock provider has no scripted replies left")

// MockProvider replays a script of replies in order and keeps every request
// it was given. Running past the end of the script fails the call the way an
// unreachable upstream would.
type MockProvider struct {
	mu     sync.Mutex
	script []MockResponse
	next   int

	// Calls holds the requests received so far. Read it only after the
	// calls under test have returned.
	Calls []Request
}

func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	if m.next >= len(m.script) {
		return nil, &ErrProviderUnavailable{Err: errScriptExhausted}
	}
	r := m.script[m.next]
	m.next++

	if r.Err != nil {
		return nil, r.Err
	}
	return &Response{
		Content:    r.Content,
		Usage:      r.Usage,
		Model:      m.ModelID(),
		StopReason: StopEnd,
	}, nil
}

func (m *MockProvider) ModelID() string { return "mock" }

// CallCount reports how many requests have been received.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Remaining reports how many scripted replies have not been used.
func (m *MockProvider) Remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.script) - m.next
}
