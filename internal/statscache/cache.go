// Package statscache is the TTL-keyed store for enriched player stats.
// Reads are valid while the entry is younger than the TTL; eviction is
// lazy, checked at read time, never proactive. The cache owns its entries:
// callers always receive copies, never references into cache-owned data.
package statscache

import (
	"sync"
	"time"

	"github.com/jarinudom/blitzgremlin/internal/metrics"
	"github.com/jarinudom/blitzgremlin/internal/yahoo"
)

// Cache is a read-through TTL cache keyed by (player, league, scope).
// It is safe for concurrent use; concurrent writers of the same key are
// last-writer-wins.
type Cache struct {
	ttl     time.Duration
	metrics metrics.Metrics
	now     func() time.Time

	mu      sync.RWMutex
	entries map[Key]Entry
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New creates an empty cache with the given TTL.
func New(ttl time.Duration, metricsSvc metrics.Metrics, opts ...Option) *Cache {
	c := &Cache{
		ttl:     ttl,
		metrics: metricsSvc,
		now:     time.Now,
		entries: make(map[Key]Entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached value and its fetch time if a live entry exists.
func (c *Cache) Get(key Key) (yahoo.EnrichedPlayerStats, time.Time, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().Sub(entry.FetchedAt) >= c.ttl {
		c.metrics.IncCacheMiss()
		return yahoo.EnrichedPlayerStats{}, time.Time{}, false
	}
	c.metrics.IncCacheHit()
	return copyStats(entry.Value), entry.FetchedAt, true
}

// Put stores a freshly fetched value, overwriting any stale entry for the
// same key. There is no merging.
func (c *Cache) Put(key Key, value yahoo.EnrichedPlayerStats) {
	entry := Entry{Value: copyStats(value), FetchedAt: c.now()}
	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
}

// GetOrFetch returns the live cached value for key, or invokes fetch and
// stores the result. Failures are not cached, so the next read retries the
// fetch.
func (c *Cache) GetOrFetch(key Key, fetch func() (yahoo.EnrichedPlayerStats, error)) (yahoo.EnrichedPlayerStats, error) {
	if value, _, ok := c.Get(key); ok {
		return value, nil
	}

	value, err := fetch()
	if err != nil {
		return yahoo.EnrichedPlayerStats{}, err
	}
	c.Put(key, value)
	return copyStats(value), nil
}

// Invalidate evicts a single entry. Returns true if an entry existed.
func (c *Cache) Invalidate(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	delete(c.entries, key)
	return ok
}

// InvalidateLeagueScope evicts every player entry for one (league, scope)
// pair. Returns the number of entries evicted.
func (c *Cache) InvalidateLeagueScope(league yahoo.LeagueKey, scope yahoo.StatScope) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	evicted := 0
	for key := range c.entries {
		if key.League == league && key.Scope == scope {
			delete(c.entries, key)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of entries currently held, live or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// copyStats deep-copies an EnrichedPlayerStats so cache-owned slices are
// never aliased across requests.
func copyStats(in yahoo.EnrichedPlayerStats) yahoo.EnrichedPlayerStats {
	out := in
	if in.Positions != nil {
		out.Positions = make([]string, len(in.Positions))
		copy(out.Positions, in.Positions)
	}
	if in.Stats != nil {
		out.Stats = make([]yahoo.StatEntry, len(in.Stats))
		copy(out.Stats, in.Stats)
	}
	return out
}
