package credentials

import (
	"context"
	"sync"
)

// MockProvider is a mock implementation of the Provider interface for
// testing. It is safe for concurrent use.
type MockProvider struct {
	mu sync.Mutex

	// Spy for AuthenticatedGet.
	AuthenticatedGetFunc func(ctx context.Context, url string) ([]byte, int, error)

	// Call records
	AuthenticatedGetCalls []string
}

var _ Provider = (*MockProvider)(nil)

// NewMockProvider creates a new mock instance.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// Reset clears all call records.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AuthenticatedGetCalls = nil
}

// Calls returns a copy of the recorded request URLs.
func (m *MockProvider) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.AuthenticatedGetCalls))
	copy(out, m.AuthenticatedGetCalls)
	return out
}

func (m *MockProvider) AuthenticatedGet(ctx context.Context, url string) ([]byte, int, error) {
	m.mu.Lock()
	m.AuthenticatedGetCalls = append(m.AuthenticatedGetCalls, url)
	fn := m.AuthenticatedGetFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, url)
	}
	return []byte{}, 200, nil
}
