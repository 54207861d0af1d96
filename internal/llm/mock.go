package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockModel is the model name a MockProvider reports unless Model is set.
const MockModel = "mock"

// MockResponse is one scripted reply. A non-nil Err is returned instead
// of the content.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockCall is a request seen by a MockProvider with the purpose label it
// carried.
type MockCall struct {
	Request
	Purpose string
}

// MockProvider replays scripted responses in order. Once the script runs
// out every call fails with ErrProviderUnavailable, which is how an
// unconfigured provider behaves.
type MockProvider struct {
	// Model is reported in responses and by ModelID.
	Model string

	mu     sync.Mutex
	script []MockResponse
	calls  []MockCall
}

// NewMockProvider returns a provider that replays responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{Model: MockModel, script: responses}
}

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, MockCall{Request: req, Purpose: PurposeFrom(ctx)})
	if len(m.script) == 0 {
		return nil, &ErrProviderUnavailable{}
	}
	r := m.script[0]
	m.script = m.script[1:]
	if r.Err != nil {
		return nil, r.Err
	}
	return &Response{Content: r.Content, Usage: r.Usage, Model: m.ModelID(), StopReason: "end"}, nil
}

func (m *MockProvider) ModelID() string {
	if m.Model == "" {
		return MockModel
	}
	return m.Model
}

// AddResponse appends to the script.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, resp)
}

// Calls returns a copy of the requests seen so far.
func (m *MockProvider) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockCall(nil), m.calls...)
}

// CallCount returns how many times Generate was called.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Pending returns how many scripted responses are left.
func (m *MockProvider) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.script)
}
