package yahoo

import (
	"fmt"
	"strings"
)

// BaseURL is the upstream Fantasy Sports API root.
const BaseURL = "https://fantasysports.yahooapis.com/fantasy/v2"

// NormalizeLeagueKey widens a bare numeric league id into the
// fully-qualified "{game_id}.l.{id}" form the upstream requires. A value
// that is not all digits is assumed to already be a full key.
func NormalizeLeagueKey(gameID, league string) LeagueKey {
	if league != "" && isDigits(league) {
		return LeagueKey(fmt.Sprintf("%s.l.%s", gameID, league))
	}
	return LeagueKey(league)
}

// LeagueKeyFromTeamKey extracts the league key prefix from a team key
// (e.g. "461.l.12345.t.7" -> "461.l.12345"). Returns "" when the team key
// does not carry one.
func LeagueKeyFromTeamKey(teamKey string) LeagueKey {
	parts := strings.Split(teamKey, ".")
	if len(parts) >= 3 && parts[1] == "l" {
		return LeagueKey(strings.Join(parts[:3], "."))
	}
	return ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// playerStatsURL builds the stats resource for one or more players scoped
// to a league. The upstream is strict about this path shape:
// league/{league_key}/players;player_keys={comma_joined_keys}/stats
// with a ";type=week;week={n}" suffix for weekly windows.
func playerStatsURL(base string, league LeagueKey, players []PlayerKey, scope StatScope) string {
	keys := make([]string, len(players))
	for i, p := range players {
		keys[i] = string(p)
	}
	url := fmt.Sprintf("%s/league/%s/players;player_keys=%s/stats", base, league, strings.Join(keys, ","))
	if scope.Kind == ScopeWeek {
		url += fmt.Sprintf(";type=week;week=%d", scope.Week)
	}
	return url
}

// SettingsURL builds the league settings resource, the source of the
// stat-id to display-name mapping.
func SettingsURL(base string, league LeagueKey) string {
	return fmt.Sprintf("%s/league/%s/settings", base, league)
}

// rosterURL builds the team roster resource.
func rosterURL(base, teamKey string) string {
	return fmt.Sprintf("%s/team/%s/roster", base, teamKey)
}
