package statscache_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jarinudom/blitzgremlin/internal/metrics"
	"github.com/jarinudom/blitzgremlin/internal/statscache"
	"github.com/jarinudom/blitzgremlin/internal/yahoo"
)

// newTestCache builds a cache on a manually advanced clock.
func newTestCache(t *testing.T, ttl time.Duration) (*statscache.Cache, *metrics.Mock, func(time.Duration)) {
	t.Helper()
	current := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	m := metrics.NewMock()
	cache := statscache.New(ttl, m, statscache.WithClock(func() time.Time { return current }))
	advance := func(d time.Duration) { current = current.Add(d) }
	return cache, m, advance
}

func sampleStats(player yahoo.PlayerKey) yahoo.EnrichedPlayerStats {
	return yahoo.EnrichedPlayerStats{
		League:    "461.l.12345",
		Player:    player,
		Name:      "Patrick Mahomes",
		Team:      "KC",
		Positions: []string{"QB"},
		Scope:     yahoo.SeasonScope(),
		Stats: []yahoo.StatEntry{
			{StatID: "4", StatName: "Pass Yds", Value: "4183"},
			{StatID: "78", Value: "-"},
		},
	}
}

func sampleKey(player yahoo.PlayerKey) statscache.Key {
	return statscache.NewKey(player, "461.l.12345", yahoo.SeasonScope())
}

func TestGetMissThenHit(t *testing.T) {
	cache, m, _ := newTestCache(t, time.Hour)
	key := sampleKey("461.p.30977")

	_, _, ok := cache.Get(key)
	assert.False(t, ok)
	assert.Equal(t, 1, m.CacheMisses())

	cache.Put(key, sampleStats("461.p.30977"))
	got, fetchedAt, ok := cache.Get(key)
	require.True(t, ok)
	assert.Equal(t, sampleStats("461.p.30977"), got)
	assert.False(t, fetchedAt.IsZero())
	assert.Equal(t, 1, m.CacheHits())
}

func TestTTLBoundary(t *testing.T) {
	cache, _, advance := newTestCache(t, time.Hour)
	key := sampleKey("461.p.30977")
	cache.Put(key, sampleStats("461.p.30977"))

	advance(time.Hour - time.Second)
	_, _, ok := cache.Get(key)
	assert.True(t, ok, "entry younger than the TTL must be served")

	advance(2 * time.Second)
	_, _, ok = cache.Get(key)
	assert.False(t, ok, "entry older than the TTL must not be served")
}

func TestScopeKeysAreIndependent(t *testing.T) {
	cache, _, _ := newTestCache(t, time.Hour)
	player := yahoo.PlayerKey("461.p.30977")

	season := statscache.NewKey(player, "461.l.12345", yahoo.SeasonScope())
	week := statscache.NewKey(player, "461.l.12345", yahoo.WeekScope(5))
	otherLeague := statscache.NewKey(player, "461.l.99999", yahoo.SeasonScope())

	cache.Put(season, sampleStats(player))

	_, _, ok := cache.Get(week)
	assert.False(t, ok)
	_, _, ok = cache.Get(otherLeague)
	assert.False(t, ok)
	_, _, ok = cache.Get(season)
	assert.True(t, ok)
}

func TestGetOrFetchDoesNotCacheFailures(t *testing.T) {
	cache, _, _ := newTestCache(t, time.Hour)
	key := sampleKey("461.p.30977")

	calls := 0
	fail := func() (yahoo.EnrichedPlayerStats, error) {
		calls++
		return yahoo.EnrichedPlayerStats{}, errors.New("upstream down")
	}

	_, err := cache.GetOrFetch(key, fail)
	require.Error(t, err)
	_, err = cache.GetOrFetch(key, fail)
	require.Error(t, err)
	assert.Equal(t, 2, calls, "failures must not be cached")

	_, err = cache.GetOrFetch(key, func() (yahoo.EnrichedPlayerStats, error) {
		return sampleStats("461.p.30977"), nil
	})
	require.NoError(t, err)

	got, err := cache.GetOrFetch(key, fail)
	require.NoError(t, err)
	assert.Equal(t, sampleStats("461.p.30977"), got)
	assert.Equal(t, 2, calls, "a live entry must not trigger a fetch")
}

func TestCachedValuesAreIsolated(t *testing.T) {
	cache, _, _ := newTestCache(t, time.Hour)
	key := sampleKey("461.p.30977")

	original := sampleStats("461.p.30977")
	cache.Put(key, original)

	// Mutating what the caller handed in must not reach the cache.
	original.Stats[0].Value = "0"
	original.Positions[0] = "K"

	got, _, ok := cache.Get(key)
	require.True(t, ok)
	assert.Equal(t, "4183", got.Stats[0].Value)
	assert.Equal(t, "QB", got.Positions[0])

	// Mutating what the cache handed out must not reach other readers.
	got.Stats[1].Value = "0"
	again, _, ok := cache.Get(key)
	require.True(t, ok)
	assert.Equal(t, "-", again.Stats[1].Value)
}

func TestInvalidate(t *testing.T) {
	cache, _, _ := newTestCache(t, time.Hour)
	key := sampleKey("461.p.30977")

	assert.False(t, cache.Invalidate(key))
	cache.Put(key, sampleStats("461.p.30977"))
	assert.True(t, cache.Invalidate(key))
	_, _, ok := cache.Get(key)
	assert.False(t, ok)
}

func TestInvalidateLeagueScope(t *testing.T) {
	cache, _, _ := newTestCache(t, time.Hour)

	cache.Put(sampleKey("461.p.30977"), sampleStats("461.p.30977"))
	cache.Put(sampleKey("461.p.40899"), sampleStats("461.p.40899"))
	weekKey := statscache.NewKey("461.p.30977", "461.l.12345", yahoo.WeekScope(5))
	cache.Put(weekKey, sampleStats("461.p.30977"))

	assert.Equal(t, 2, cache.InvalidateLeagueScope("461.l.12345", yahoo.SeasonScope()))
	assert.Equal(t, 1, cache.Len())

	_, _, ok := cache.Get(weekKey)
	assert.True(t, ok, "other scopes must survive a scoped invalidation")
}
