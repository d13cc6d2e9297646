package yahoo

import (
	"fmt"
	"strconv"

	"github.com/jarinudom/blitzgremlin/internal/tree"
)

// text renders a scalar node as its string form. Decoded XML carries
// strings, but decoders fed JSON fixtures may produce numbers; both are
// preserved verbatim as text.
func text(node tree.Node) string {
	switch v := node.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// upstreamErrorDescription digs an error description out of a decoded
// response. The upstream sometimes answers 200 OK with an <error> body, and
// error payloads appear both at the top level and nested under
// fantasy_content.
func upstreamErrorDescription(node tree.Node) (string, bool) {
	for _, errNode := range []tree.Node{
		tree.At(node, "error"),
		tree.At(node, "fantasy_content", "error"),
	} {
		if errNode == nil {
			continue
		}
		if desc := text(tree.At(errNode, "description")); desc != "" {
			return desc, true
		}
		return "unknown upstream error", true
	}
	return "", false
}

// parsePlayerEntry flattens one decoded player node into rawPlayerStats.
// The second return is false when the node carries no player key, which
// means the entry is unusable.
func parsePlayerEntry(entry tree.Node) (rawPlayerStats, bool) {
	player := tree.Map(entry)
	if player == nil {
		return rawPlayerStats{}, false
	}

	out := rawPlayerStats{
		PlayerKey: text(player["player_key"]),
		Name:      text(tree.At(player, "name", "full")),
		Team:      text(player["editorial_team_abbr"]),
	}
	if out.PlayerKey == "" {
		return rawPlayerStats{}, false
	}

	for _, pos := range tree.Repeated(tree.At(player, "eligible_positions", "position")) {
		if s := text(pos); s != "" {
			out.Positions = append(out.Positions, s)
		}
	}

	ps := tree.Map(player["player_stats"])
	out.Coverage = text(ps["coverage_type"])
	if out.Coverage == "" {
		out.Coverage = text(tree.At(ps, "stats", "coverage_type"))
	}
	out.Week = text(ps["week"])
	if out.Week == "" {
		out.Week = text(tree.At(ps, "stats", "week"))
	}

	for _, statNode := range tree.Repeated(tree.At(player["player_stats"], "stats", "stat")) {
		stat := tree.Map(statNode)
		if stat == nil {
			continue
		}
		sid := text(stat["stat_id"])
		if sid == "" {
			continue
		}
		out.Stats = append(out.Stats, rawStat{StatID: sid, Value: text(stat["value"])})
	}

	return out, true
}

// parseMultiPlayerStats flattens a league-scoped players collection into
// raw per-player stats, in upstream order.
func parseMultiPlayerStats(node tree.Node) []rawPlayerStats {
	var out []rawPlayerStats
	for _, entry := range tree.Repeated(tree.At(node, "fantasy_content", "league", "players", "player")) {
		if parsed, ok := parsePlayerEntry(entry); ok {
			out = append(out, parsed)
		}
	}
	return out
}

// ParseLeagueSettings extracts the stat-id to display-name mapping from a
// league settings response. A category with no display name gets the
// synthesized "stat_<id>" fallback.
func ParseLeagueSettings(node tree.Node) map[string]string {
	mapping := make(map[string]string)
	stats := tree.At(node, "fantasy_content", "league", "settings", "stat_categories", "stats", "stat")
	for _, statNode := range tree.Repeated(stats) {
		stat := tree.Map(statNode)
		if stat == nil {
			continue
		}
		sid := text(stat["stat_id"])
		if sid == "" {
			continue
		}
		disp := text(stat["display_name"])
		if disp == "" {
			disp = text(stat["name"])
		}
		if disp == "" {
			disp = fmt.Sprintf("stat_%s", sid)
		}
		mapping[sid] = disp
	}
	return mapping
}

// parseRoster flattens a team roster response into roster slots.
func parseRoster(node tree.Node) []RosterSlot {
	var out []RosterSlot
	for _, entry := range tree.Repeated(tree.At(node, "fantasy_content", "team", "roster", "players", "player")) {
		player := tree.Map(entry)
		if player == nil {
			continue
		}
		key := text(player["player_key"])
		if key == "" {
			continue
		}
		slot := RosterSlot{
			Player:   PlayerKey(key),
			Name:     text(tree.At(player, "name", "full")),
			Team:     text(player["editorial_team_abbr"]),
			Position: text(player["primary_position"]),
			Slot:     text(tree.At(player, "selected_position", "position")),
			Status:   text(player["status"]),
			ByeWeek:  text(tree.At(player, "bye_weeks", "week")),
		}
		if slot.Position == "" {
			slot.Position = text(player["display_position"])
		}
		if slot.Status == "" {
			// Unrostered upstream entries omit status; free agent is the
			// upstream default.
			slot.Status = "FA"
		}
		for _, pos := range tree.Repeated(tree.At(player, "eligible_positions", "position")) {
			if s := text(pos); s != "" {
				slot.Eligible = append(slot.Eligible, s)
			}
		}
		out = append(out, slot)
	}
	return out
}

// enrich attaches category display names to raw stats and stamps the
// league and scope, producing the caller-facing shape. Stat order is the
// upstream declaration order, untouched.
func enrich(raw rawPlayerStats, league LeagueKey, scope StatScope, names map[string]string) EnrichedPlayerStats {
	stats := make([]StatEntry, 0, len(raw.Stats))
	for _, s := range raw.Stats {
		stats = append(stats, StatEntry{
			StatID:   s.StatID,
			StatName: names[s.StatID],
			Value:    s.Value,
		})
	}
	return EnrichedPlayerStats{
		League:    league,
		Player:    PlayerKey(raw.PlayerKey),
		Name:      raw.Name,
		Team:      raw.Team,
		Positions: raw.Positions,
		Scope:     scope,
		Stats:     stats,
	}
}
