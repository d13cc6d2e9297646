package categories

import (
	"context"
	"sync"

	"github.com/jarinudom/blitzgremlin/internal/yahoo"
)

// MockResolver is a mock implementation of the yahoo.CategoryResolver
// interface for testing. It is safe for concurrent use.
type MockResolver struct {
	mu sync.Mutex

	// Spy for Resolve.
	ResolveFunc func(ctx context.Context, league yahoo.LeagueKey) map[string]string

	// Call records
	ResolveCalls []yahoo.LeagueKey
}

var _ yahoo.CategoryResolver = (*MockResolver)(nil)

// NewMock creates a new mock instance.
func NewMock() *MockResolver {
	return &MockResolver{}
}

// Reset clears all call records.
func (m *MockResolver) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResolveCalls = nil
}

func (m *MockResolver) Resolve(ctx context.Context, league yahoo.LeagueKey) map[string]string {
	m.mu.Lock()
	m.ResolveCalls = append(m.ResolveCalls, league)
	fn := m.ResolveFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, league)
	}
	return map[string]string{}
}
