package aggregator

import "github.com/jarinudom/blitzgremlin/internal/yahoo"

// PlayersResult is the outcome of a multi-player stats request: a
// best-effort set of results plus the explicit, enumerable set of requested
// keys that were dropped. Results are unordered relative to the request
// list; callers that need request order re-index by player key.
type PlayersResult struct {
	Results []yahoo.EnrichedPlayerStats `json:"results"`
	Skipped []yahoo.PlayerKey           `json:"skipped"`
}

// RosterEntry is one roster slot handed to a rollup: a player key and the
// position to aggregate it under.
type RosterEntry struct {
	Player   yahoo.PlayerKey `json:"player_key"`
	Position string          `json:"position"`
}

// RollupResult aggregates numeric stat values across a roster, grouped by
// position and overall. Non-numeric placeholder values are excluded from
// the sums but remain visible in the per-player view.
type RollupResult struct {
	ByPosition   map[string][]yahoo.StatEntry `json:"stats_by_position"`
	Totals       []yahoo.StatEntry            `json:"total_stats"`
	TotalPlayers int                          `json:"total_players"`
	Players      []yahoo.EnrichedPlayerStats  `json:"players"`
	Skipped      []yahoo.PlayerKey            `json:"skipped"`
}
