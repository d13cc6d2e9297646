package yahoo

import (
	"context"
	"sync"
)

// MockClient is a mock implementation of the FantasyClient interface for
// testing. It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Spies for method calls
	FetchOneFunc    func(ctx context.Context, league LeagueKey, player PlayerKey, scope StatScope) (EnrichedPlayerStats, error)
	FetchManyFunc   func(ctx context.Context, league LeagueKey, players []PlayerKey, scope StatScope) ([]EnrichedPlayerStats, error)
	FetchRosterFunc func(ctx context.Context, teamKey string) ([]RosterSlot, error)
	GameID          string

	// Call records
	FetchOneCalls    []FetchOneCall
	FetchManyCalls   []FetchManyCall
	FetchRosterCalls []string
}

// FetchOneCall records the arguments of one FetchOne invocation.
type FetchOneCall struct {
	League LeagueKey
	Player PlayerKey
	Scope  StatScope
}

// FetchManyCall records the arguments of one FetchMany invocation.
type FetchManyCall struct {
	League  LeagueKey
	Players []PlayerKey
	Scope   StatScope
}

var _ FantasyClient = (*MockClient)(nil)

// NewMockClient creates a new mock instance.
func NewMockClient() *MockClient {
	return &MockClient{GameID: "461"}
}

// Reset clears all call records.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchOneCalls = nil
	m.FetchManyCalls = nil
	m.FetchRosterCalls = nil
}

func (m *MockClient) FetchOne(ctx context.Context, league LeagueKey, player PlayerKey, scope StatScope) (EnrichedPlayerStats, error) {
	m.mu.Lock()
	m.FetchOneCalls = append(m.FetchOneCalls, FetchOneCall{League: league, Player: player, Scope: scope})
	fn := m.FetchOneFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, league, player, scope)
	}
	return EnrichedPlayerStats{League: league, Player: player, Scope: scope}, nil
}

func (m *MockClient) FetchMany(ctx context.Context, league LeagueKey, players []PlayerKey, scope StatScope) ([]EnrichedPlayerStats, error) {
	m.mu.Lock()
	m.FetchManyCalls = append(m.FetchManyCalls, FetchManyCall{League: league, Players: players, Scope: scope})
	fn := m.FetchManyFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, league, players, scope)
	}
	out := make([]EnrichedPlayerStats, 0, len(players))
	for _, p := range players {
		out = append(out, EnrichedPlayerStats{League: league, Player: p, Scope: scope})
	}
	return out, nil
}

func (m *MockClient) FetchRoster(ctx context.Context, teamKey string) ([]RosterSlot, error) {
	m.mu.Lock()
	m.FetchRosterCalls = append(m.FetchRosterCalls, teamKey)
	fn := m.FetchRosterFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, teamKey)
	}
	return []RosterSlot{}, nil
}

func (m *MockClient) NormalizeLeague(league string) LeagueKey {
	return NormalizeLeagueKey(m.GameID, league)
}
