package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/jarinudom/blitzgremlin/internal/aggregator"
	"github.com/jarinudom/blitzgremlin/internal/yahoo"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// PlayerStatsHandler serves stats for one or more players in a league.
//
// Query params:
//
//	league      – league id, bare numeric or fully qualified (required)
//	player_key  – repeated player key params
//	player_keys – comma-separated player keys
//	type        – "season" (default) or "week"
//	week        – week number, required when type=week
func (s *Server) PlayerStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		league := r.URL.Query().Get("league")
		if league == "" {
			http.Error(w, "league parameter is required", http.StatusBadRequest)
			return
		}

		players := collectPlayerKeys(r.URL.Query())
		if len(players) == 0 {
			http.Error(w, "at least one player_key is required", http.StatusBadRequest)
			return
		}

		scope, err := parseScope(r.URL.Query())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		result, err := s.Aggregator.StatsForPlayers(r.Context(), league, players, scope)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		writeJSON(w, map[string]any{
			"league":  league,
			"scope":   scope,
			"count":   len(result.Results),
			"players": result.Results,
			"skipped": result.Skipped,
		})
	}
}

// RosterRollupHandler aggregates stats across an explicit roster posted as
// JSON: {"league": "...", "roster": [{"player_key": "...", "position": "..."}]}.
func (s *Server) RosterRollupHandler() http.HandlerFunc {
	type request struct {
		League string                   `json:"league"`
		Roster []aggregator.RosterEntry `json:"roster"`
		Type   string                   `json:"type"`
		Week   int                      `json:"week"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.League == "" || len(req.Roster) == 0 {
			http.Error(w, "league and a non-empty roster are required", http.StatusBadRequest)
			return
		}

		scope := yahoo.SeasonScope()
		if req.Type == string(yahoo.ScopeWeek) || req.Week > 0 {
			if req.Week <= 0 {
				http.Error(w, "week is required when type=week", http.StatusBadRequest)
				return
			}
			scope = yahoo.WeekScope(req.Week)
		}

		result, err := s.Aggregator.RollupForRoster(r.Context(), req.League, req.Roster, scope)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, result)
	}
}

// TeamStatsHandler aggregates stats for a team's full roster, grouped by
// position.
//
// Query params:
//
//	team_key – fully qualified team key (required)
//	week     – optional week number for week-scoped stats
func (s *Server) TeamStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamKey := r.URL.Query().Get("team_key")
		if teamKey == "" {
			http.Error(w, "team_key parameter is required", http.StatusBadRequest)
			return
		}

		scope := yahoo.SeasonScope()
		if weekStr := r.URL.Query().Get("week"); weekStr != "" {
			week, err := strconv.Atoi(weekStr)
			if err != nil || week <= 0 {
				http.Error(w, "week must be a positive integer", http.StatusBadRequest)
				return
			}
			scope = yahoo.WeekScope(week)
		}

		result, err := s.Aggregator.RollupForTeam(r.Context(), teamKey, scope)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		writeJSON(w, map[string]any{
			"team_key":          teamKey,
			"scope":             scope,
			"total_players":     result.TotalPlayers,
			"stats_by_position": result.ByPosition,
			"total_stats":       result.Totals,
			"players":           result.Players,
			"skipped":           result.Skipped,
		})
	}
}

// InvalidateHandler evicts cached entries, forcing a refresh on the next
// read. With no player keys, everything for the (league, scope) pair is
// evicted.
func (s *Server) InvalidateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		league := r.URL.Query().Get("league")
		if league == "" {
			http.Error(w, "league parameter is required", http.StatusBadRequest)
			return
		}

		scope, err := parseScope(r.URL.Query())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		players := collectPlayerKeys(r.URL.Query())
		evicted := s.Aggregator.Invalidate(league, players, scope)
		log.Info("Cache entries invalidated", "league", league, "scope", scope, "evicted", evicted)

		writeJSON(w, map[string]any{
			"league":  league,
			"scope":   scope,
			"evicted": evicted,
		})
	}
}

// collectPlayerKeys gathers player keys from query args. It supports both
// repeated player_key params and a comma-separated player_keys param, and
// returns a de-duplicated, order-preserving list.
func collectPlayerKeys(args url.Values) []yahoo.PlayerKey {
	var keys []yahoo.PlayerKey
	seen := make(map[yahoo.PlayerKey]struct{})

	add := func(raw string) {
		key := yahoo.PlayerKey(strings.TrimSpace(raw))
		if key == "" {
			return
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}

	for _, raw := range args["player_key"] {
		add(raw)
	}
	if csv := args.Get("player_keys"); csv != "" {
		for _, raw := range strings.Split(csv, ",") {
			add(raw)
		}
	}
	return keys
}

// parseScope reads the type/week query params into a StatScope. week is
// mandatory with type=week and ignored for season.
func parseScope(args url.Values) (yahoo.StatScope, error) {
	kind := args.Get("type")
	weekStr := args.Get("week")

	if kind == "" || kind == string(yahoo.ScopeSeason) {
		if kind == "" && weekStr != "" {
			kind = string(yahoo.ScopeWeek)
		} else {
			return yahoo.SeasonScope(), nil
		}
	}
	if kind != string(yahoo.ScopeWeek) {
		return yahoo.StatScope{}, fmt.Errorf("type must be %q or %q", yahoo.ScopeSeason, yahoo.ScopeWeek)
	}
	week, err := strconv.Atoi(weekStr)
	if err != nil || week <= 0 {
		return yahoo.StatScope{}, errors.New("week must be a positive integer when type=week")
	}
	return yahoo.WeekScope(week), nil
}

// writeEngineError maps the engine's error taxonomy onto HTTP statuses.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, yahoo.ErrUnauthenticated):
		http.Error(w, "not authenticated with upstream provider", http.StatusUnauthorized)
	case yahoo.IsRejected(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Error("Stats request failed", "error", err)
		http.Error(w, "upstream fetch failed", http.StatusBadGateway)
	}
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}
