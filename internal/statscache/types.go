package statscache

import (
	"time"

	"github.com/jarinudom/blitzgremlin/internal/yahoo"
)

// Key identifies one cached stats result. The three dimensions are
// independent: the same player has distinct entries per league and per
// reporting scope. A comparable struct, not a joined string, so equality
// and hashing are well defined and key formats cannot drift.
type Key struct {
	Player yahoo.PlayerKey
	League yahoo.LeagueKey
	Scope  yahoo.StatScope
}

// NewKey builds the composite cache key for one (player, league, scope).
func NewKey(player yahoo.PlayerKey, league yahoo.LeagueKey, scope yahoo.StatScope) Key {
	return Key{Player: player, League: league, Scope: scope}
}

// Entry is one cached value together with the time it was fetched.
// FetchedAt is exposed so staleness is observable by callers.
type Entry struct {
	Value     yahoo.EnrichedPlayerStats
	FetchedAt time.Time
}
