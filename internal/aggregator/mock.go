package aggregator

import (
	"context"
	"sync"

	"github.com/jarinudom/blitzgremlin/internal/yahoo"
)

// MockService is a mock implementation of the Service interface for
// testing. It is safe for concurrent use.
type MockService struct {
	mu sync.Mutex

	// Spies for method calls
	StatsForPlayersFunc func(ctx context.Context, league string, players []yahoo.PlayerKey, scope yahoo.StatScope) (PlayersResult, error)
	RollupForRosterFunc func(ctx context.Context, league string, roster []RosterEntry, scope yahoo.StatScope) (RollupResult, error)
	RollupForTeamFunc   func(ctx context.Context, teamKey string, scope yahoo.StatScope) (RollupResult, error)
	InvalidateFunc      func(league string, players []yahoo.PlayerKey, scope yahoo.StatScope) int

	// Call records
	StatsForPlayersCalls []StatsForPlayersCall
	RollupForRosterCalls []RollupForRosterCall
	RollupForTeamCalls   []RollupForTeamCall
	InvalidateCalls      []InvalidateCall
}

// StatsForPlayersCall records the arguments of one StatsForPlayers invocation.
type StatsForPlayersCall struct {
	League  string
	Players []yahoo.PlayerKey
	Scope   yahoo.StatScope
}

// RollupForRosterCall records the arguments of one RollupForRoster invocation.
type RollupForRosterCall struct {
	League string
	Roster []RosterEntry
	Scope  yahoo.StatScope
}

// RollupForTeamCall records the arguments of one RollupForTeam invocation.
type RollupForTeamCall struct {
	TeamKey string
	Scope   yahoo.StatScope
}

// InvalidateCall records the arguments of one Invalidate invocation.
type InvalidateCall struct {
	League  string
	Players []yahoo.PlayerKey
	Scope   yahoo.StatScope
}

var _ Service = (*MockService)(nil)

// NewMock creates a new mock instance.
func NewMock() *MockService {
	return &MockService{}
}

// Reset clears all call records.
func (m *MockService) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StatsForPlayersCalls = nil
	m.RollupForRosterCalls = nil
	m.RollupForTeamCalls = nil
	m.InvalidateCalls = nil
}

func (m *MockService) StatsForPlayers(ctx context.Context, league string, players []yahoo.PlayerKey, scope yahoo.StatScope) (PlayersResult, error) {
	m.mu.Lock()
	m.StatsForPlayersCalls = append(m.StatsForPlayersCalls, StatsForPlayersCall{League: league, Players: players, Scope: scope})
	fn := m.StatsForPlayersFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, league, players, scope)
	}
	return PlayersResult{Results: []yahoo.EnrichedPlayerStats{}, Skipped: []yahoo.PlayerKey{}}, nil
}

func (m *MockService) RollupForRoster(ctx context.Context, league string, roster []RosterEntry, scope yahoo.StatScope) (RollupResult, error) {
	m.mu.Lock()
	m.RollupForRosterCalls = append(m.RollupForRosterCalls, RollupForRosterCall{League: league, Roster: roster, Scope: scope})
	fn := m.RollupForRosterFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, league, roster, scope)
	}
	return RollupResult{}, nil
}

func (m *MockService) RollupForTeam(ctx context.Context, teamKey string, scope yahoo.StatScope) (RollupResult, error) {
	m.mu.Lock()
	m.RollupForTeamCalls = append(m.RollupForTeamCalls, RollupForTeamCall{TeamKey: teamKey, Scope: scope})
	fn := m.RollupForTeamFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, teamKey, scope)
	}
	return RollupResult{}, nil
}

func (m *MockService) Invalidate(league string, players []yahoo.PlayerKey, scope yahoo.StatScope) int {
	m.mu.Lock()
	m.InvalidateCalls = append(m.InvalidateCalls, InvalidateCall{League: league, Players: players, Scope: scope})
	fn := m.InvalidateFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(league, players, scope)
	}
	return 0
}
