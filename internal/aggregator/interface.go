package aggregator

import (
	"context"

	"github.com/jarinudom/blitzgremlin/internal/yahoo"
)

// Service is the public entry point of the stats engine, consumed by the
// routing layer. League ids may be bare numeric; they are normalized to the
// fully-qualified key form before any upstream call.
type Service interface {
	StatsForPlayers(ctx context.Context, league string, players []yahoo.PlayerKey, scope yahoo.StatScope) (PlayersResult, error)
	RollupForRoster(ctx context.Context, league string, roster []RosterEntry, scope yahoo.StatScope) (RollupResult, error)
	RollupForTeam(ctx context.Context, teamKey string, scope yahoo.StatScope) (RollupResult, error)
	Invalidate(league string, players []yahoo.PlayerKey, scope yahoo.StatScope) int
}
