package yahoo

import "fmt"

// PlayerKey is the opaque provider-assigned identifier of a player
// (e.g. "461.p.30199"). It is the correlation key across stats, roster
// and cache entries.
type PlayerKey string

// LeagueKey is the opaque provider identifier of a scoring league, in the
// fully-qualified form "{game_id}.l.{numeric_id}". Stat values and category
// names are only meaningful relative to one league.
type LeagueKey string

// ScopeKind selects the reporting window of a stats request.
type ScopeKind string

const (
	ScopeSeason ScopeKind = "season"
	ScopeWeek   ScopeKind = "week"
)

// StatScope is the slice of accumulated statistics being requested:
// the whole season, or a single week. Week is meaningful only when
// Kind is ScopeWeek.
type StatScope struct {
	Kind ScopeKind `json:"kind"`
	Week int       `json:"week,omitempty"`
}

// SeasonScope returns the season-long scope.
func SeasonScope() StatScope {
	return StatScope{Kind: ScopeSeason}
}

// WeekScope returns the scope for a single week.
func WeekScope(week int) StatScope {
	return StatScope{Kind: ScopeWeek, Week: week}
}

func (s StatScope) String() string {
	if s.Kind == ScopeWeek {
		return fmt.Sprintf("week:%d", s.Week)
	}
	return string(ScopeSeason)
}

// StatEntry is one stat category value for a player. Value carries the
// upstream literal verbatim: it may be numeric text or a placeholder such
// as "-" when the category does not apply, which must be preserved rather
// than coerced. StatName is empty when category enrichment was unavailable.
type StatEntry struct {
	StatID   string `json:"stat_id"`
	StatName string `json:"stat_name,omitempty"`
	Value    string `json:"value"`
}

// EnrichedPlayerStats is the normalized, category-enriched result of a
// stats fetch for one player in one league. Stats keeps the upstream
// category declaration order.
type EnrichedPlayerStats struct {
	League    LeagueKey   `json:"league_key"`
	Player    PlayerKey   `json:"player_key"`
	Name      string      `json:"name"`
	Team      string      `json:"team"`
	Positions []string    `json:"positions"`
	Scope     StatScope   `json:"scope"`
	Stats     []StatEntry `json:"stats"`
}

// rawStat is a stat id/value pair as parsed from the wire, before category
// enrichment.
type rawStat struct {
	StatID string
	Value  string
}

// rawPlayerStats is the parsed but un-enriched form of one player's stats
// response.
type rawPlayerStats struct {
	PlayerKey string
	Name      string
	Team      string
	Positions []string
	Coverage  string
	Week      string
	Stats     []rawStat
}

// RosterSlot is one player's entry on a team roster.
type RosterSlot struct {
	Player   PlayerKey `json:"player_key"`
	Name     string    `json:"name"`
	Team     string    `json:"team"`
	Position string    `json:"position"`
	Slot     string    `json:"slot,omitempty"`
	Status   string    `json:"status,omitempty"`
	ByeWeek  string    `json:"bye_week,omitempty"`
	Eligible []string  `json:"eligible_positions,omitempty"`
}
