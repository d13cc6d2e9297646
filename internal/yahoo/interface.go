package yahoo

import "context"

// FantasyClient defines the interface for fetching player statistics from
// the upstream fantasy provider. This allows for mock implementations to be
// used in tests.
type FantasyClient interface {
	// FetchOne fetches and enriches stats for a single player.
	FetchOne(ctx context.Context, league LeagueKey, player PlayerKey, scope StatScope) (EnrichedPlayerStats, error)
	// FetchMany fetches and enriches stats for several players in one
	// upstream call. It may return fewer entries than requested.
	FetchMany(ctx context.Context, league LeagueKey, players []PlayerKey, scope StatScope) ([]EnrichedPlayerStats, error)
	// FetchRoster fetches the roster of a team.
	FetchRoster(ctx context.Context, teamKey string) ([]RosterSlot, error)
	// NormalizeLeague widens a bare numeric league id into the
	// fully-qualified key form.
	NormalizeLeague(league string) LeagueKey
}

// CategoryResolver supplies the stat-id to display-name mapping of a
// league. Implementations degrade to an empty mapping on failure; category
// names are an enrichment, not a correctness requirement.
type CategoryResolver interface {
	Resolve(ctx context.Context, league LeagueKey) map[string]string
}
