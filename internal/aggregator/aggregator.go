// Package aggregator combines the upstream fetcher, the category-enriched
// results and the stats cache into the engine's public operations. It owns
// the batch-to-individual fallback: the upstream batch endpoint is
// all-or-nothing on key validity, so one bad key in a batch would otherwise
// discard every good result. Decomposing trades one extra set of round
// trips for partial-success semantics.
package aggregator

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/jarinudom/blitzgremlin/internal/metrics"
	"github.com/jarinudom/blitzgremlin/internal/statscache"
	"github.com/jarinudom/blitzgremlin/internal/yahoo"
)

// Aggregator implements Service.
type Aggregator struct {
	client      yahoo.FantasyClient
	cache       *statscache.Cache
	metrics     metrics.Metrics
	concurrency int
}

var _ Service = (*Aggregator)(nil)

// New creates an Aggregator. concurrency bounds the parallel per-player
// fallback fetches; values below 1 are clamped to 1 (upstream rate limits
// apply).
func New(client yahoo.FantasyClient, cache *statscache.Cache, metricsSvc metrics.Metrics, concurrency int) *Aggregator {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Aggregator{
		client:      client,
		cache:       cache,
		metrics:     metricsSvc,
		concurrency: concurrency,
	}
}

// FetchWithFallback fetches stats for players in one batch, decomposing
// into individual per-player fetches when the batch is rejected for key
// invalidity. Returned stats are unordered; the second return value lists
// the requested keys that were dropped as invalid. Unauthenticated aborts
// at either level; transient failures propagate unmodified, retries belong
// to the caller.
func (a *Aggregator) FetchWithFallback(ctx context.Context, league yahoo.LeagueKey, players []yahoo.PlayerKey, scope yahoo.StatScope) ([]yahoo.EnrichedPlayerStats, []yahoo.PlayerKey, error) {
	if len(players) == 0 {
		return []yahoo.EnrichedPlayerStats{}, nil, nil
	}

	results, err := a.client.FetchMany(ctx, league, players, scope)
	if err == nil {
		return results, missingKeys(players, results), nil
	}

	switch {
	case errors.Is(err, yahoo.ErrUnauthenticated):
		return nil, nil, err
	case yahoo.IsRejected(err):
		log.Warn("Batch fetch rejected, retrying players individually", "league", league, "players", len(players), "error", err)
		return a.fetchIndividually(ctx, league, players, scope)
	case yahoo.IsMalformed(err):
		// A malformed batch payload cannot be safely attributed to one
		// key, so it is treated as transient rather than guessed at.
		return nil, nil, &yahoo.TransientError{Op: "batch stats fetch", Err: err}
	default:
		return nil, nil, err
	}
}

// fetchIndividually retries every requested player one at a time on a
// bounded worker pool, dropping only the keys the upstream genuinely
// rejects. In-flight fetches run detached from the caller's cancellation:
// once dispatched they complete so their results can still populate the
// cache, amortizing the cost across subsequent requests. Cancellation only
// stops new dispatches.
func (a *Aggregator) fetchIndividually(ctx context.Context, league yahoo.LeagueKey, players []yahoo.PlayerKey, scope yahoo.StatScope) ([]yahoo.EnrichedPlayerStats, []yahoo.PlayerKey, error) {
	a.metrics.IncFallbackRuns()

	detached := context.WithoutCancel(ctx)

	var (
		mu      sync.Mutex
		results []yahoo.EnrichedPlayerStats
		skipped []yahoo.PlayerKey
	)

	g := new(errgroup.Group)
	g.SetLimit(a.concurrency)

	for _, player := range players {
		if ctx.Err() != nil {
			break
		}
		player := player
		g.Go(func() error {
			stats, err := a.client.FetchOne(detached, league, player, scope)
			if err != nil {
				if errors.Is(err, yahoo.ErrUnauthenticated) {
					return err
				}
				// A malformed per-player response is attributable to
				// exactly that player, so it is dropped like a rejection.
				if yahoo.IsRejected(err) || yahoo.IsMalformed(err) {
					log.Warn("Skipping player key", "league", league, "player", player, "error", err)
					mu.Lock()
					skipped = append(skipped, player)
					mu.Unlock()
					return nil
				}
				return err
			}
			a.cache.Put(statscache.NewKey(stats.Player, league, scope), stats)
			mu.Lock()
			results = append(results, stats)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	sortKeys(skipped)
	return results, skipped, nil
}

// StatsForPlayers returns stats for the requested players, serving live
// cache entries and batching the misses into one fallback-protected fetch.
// Every successfully fetched key populates the cache. Skipped always
// enumerates exactly the requested keys that were dropped.
func (a *Aggregator) StatsForPlayers(ctx context.Context, league string, players []yahoo.PlayerKey, scope yahoo.StatScope) (PlayersResult, error) {
	lk := a.client.NormalizeLeague(league)
	requested := dedupe(players)

	results := make([]yahoo.EnrichedPlayerStats, 0, len(requested))
	var misses []yahoo.PlayerKey

	for _, player := range requested {
		if value, _, ok := a.cache.Get(statscache.NewKey(player, lk, scope)); ok {
			results = append(results, value)
			continue
		}
		misses = append(misses, player)
	}

	var skipped []yahoo.PlayerKey
	if len(misses) > 0 {
		fetched, dropped, err := a.FetchWithFallback(ctx, lk, misses, scope)
		if err != nil {
			return PlayersResult{}, err
		}
		for _, stats := range fetched {
			a.cache.Put(statscache.NewKey(stats.Player, lk, scope), stats)
			results = append(results, stats)
		}
		skipped = dropped
	}

	if len(skipped) > 0 {
		a.metrics.IncPlayersSkipped(len(skipped))
		log.Warn("Dropped invalid player keys", "league", lk, "skipped", skipped)
	}
	if skipped == nil {
		skipped = []yahoo.PlayerKey{}
	}

	return PlayersResult{Results: results, Skipped: skipped}, nil
}

// RollupForRoster fetches stats for a roster and sums numeric-parseable
// values per stat id, grouped by position and overall. Sums keep the
// upstream category declaration order. Placeholder values are skipped from
// the sums without being zero-filled.
func (a *Aggregator) RollupForRoster(ctx context.Context, league string, roster []RosterEntry, scope yahoo.StatScope) (RollupResult, error) {
	keys := make([]yahoo.PlayerKey, 0, len(roster))
	for _, entry := range roster {
		keys = append(keys, entry.Player)
	}

	res, err := a.StatsForPlayers(ctx, league, keys, scope)
	if err != nil {
		return RollupResult{}, err
	}

	byPlayer := make(map[yahoo.PlayerKey]yahoo.EnrichedPlayerStats, len(res.Results))
	for _, stats := range res.Results {
		byPlayer[stats.Player] = stats
	}

	byPosition := make(map[string]*sums)
	totals := newSums()

	for _, entry := range roster {
		stats, ok := byPlayer[entry.Player]
		if !ok {
			continue
		}
		position := entry.Position
		if position == "" {
			position = "UNKNOWN"
		}
		acc, ok := byPosition[position]
		if !ok {
			acc = newSums()
			byPosition[position] = acc
		}
		for _, stat := range stats.Stats {
			acc.add(stat)
			totals.add(stat)
		}
	}

	out := RollupResult{
		ByPosition:   make(map[string][]yahoo.StatEntry, len(byPosition)),
		Totals:       totals.entries(),
		TotalPlayers: len(res.Results),
		Players:      res.Results,
		Skipped:      res.Skipped,
	}
	for position, acc := range byPosition {
		out.ByPosition[position] = acc.entries()
	}
	return out, nil
}

// RollupForTeam fetches a team's roster from the upstream, derives the
// league key from the team key, and rolls the roster up.
func (a *Aggregator) RollupForTeam(ctx context.Context, teamKey string, scope yahoo.StatScope) (RollupResult, error) {
	league := yahoo.LeagueKeyFromTeamKey(teamKey)
	if league == "" {
		return RollupResult{}, fmt.Errorf("could not extract league key from team key %q", teamKey)
	}

	slots, err := a.client.FetchRoster(ctx, teamKey)
	if err != nil {
		return RollupResult{}, err
	}

	roster := make([]RosterEntry, 0, len(slots))
	for _, slot := range slots {
		position := slot.Position
		if position == "" {
			position = slot.Slot
		}
		roster = append(roster, RosterEntry{Player: slot.Player, Position: position})
	}

	return a.RollupForRoster(ctx, string(league), roster, scope)
}

// Invalidate evicts cached entries so the next read forces a refresh. With
// no players given, every entry for the (league, scope) pair is evicted.
// Returns the number of entries removed.
func (a *Aggregator) Invalidate(league string, players []yahoo.PlayerKey, scope yahoo.StatScope) int {
	lk := a.client.NormalizeLeague(league)
	if len(players) == 0 {
		return a.cache.InvalidateLeagueScope(lk, scope)
	}
	evicted := 0
	for _, player := range dedupe(players) {
		if a.cache.Invalidate(statscache.NewKey(player, lk, scope)) {
			evicted++
		}
	}
	return evicted
}

// missingKeys returns the requested keys absent from results, sorted.
func missingKeys(requested []yahoo.PlayerKey, results []yahoo.EnrichedPlayerStats) []yahoo.PlayerKey {
	returned := make(map[yahoo.PlayerKey]struct{}, len(results))
	for _, stats := range results {
		returned[stats.Player] = struct{}{}
	}
	var missing []yahoo.PlayerKey
	for _, player := range requested {
		if _, ok := returned[player]; !ok {
			missing = append(missing, player)
		}
	}
	sortKeys(missing)
	return missing
}

// dedupe removes duplicate keys preserving first-seen order.
func dedupe(players []yahoo.PlayerKey) []yahoo.PlayerKey {
	seen := make(map[yahoo.PlayerKey]struct{}, len(players))
	out := make([]yahoo.PlayerKey, 0, len(players))
	for _, player := range players {
		if player == "" {
			continue
		}
		if _, ok := seen[player]; ok {
			continue
		}
		seen[player] = struct{}{}
		out = append(out, player)
	}
	return out
}

func sortKeys(keys []yahoo.PlayerKey) {
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
}
