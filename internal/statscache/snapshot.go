package statscache

import (
	"io"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/jarinudom/blitzgremlin/internal/yahoo"
)

// snapshotEntry is the wire form of one cache entry. Key fields are
// flattened since msgpack map keys must be scalars.
type snapshotEntry struct {
	Player    string                    `msgpack:"player"`
	League    string                    `msgpack:"league"`
	ScopeKind string                    `msgpack:"scope_kind"`
	Week      int                       `msgpack:"week"`
	Value     yahoo.EnrichedPlayerStats `msgpack:"value"`
	FetchedAt int64                     `msgpack:"fetched_at"`
}

// Snapshot writes all current entries to w. It exists only to warm-start a
// restarted process; persistence is best-effort and never guaranteed.
func (c *Cache) Snapshot(w io.Writer) error {
	c.mu.RLock()
	out := make([]snapshotEntry, 0, len(c.entries))
	for key, entry := range c.entries {
		out = append(out, snapshotEntry{
			Player:    string(key.Player),
			League:    string(key.League),
			ScopeKind: string(key.Scope.Kind),
			Week:      key.Scope.Week,
			Value:     entry.Value,
			FetchedAt: entry.FetchedAt.UnixNano(),
		})
	}
	c.mu.RUnlock()

	return msgpack.NewEncoder(w).Encode(out)
}

// Restore loads entries from r, skipping anything already past the TTL.
// Existing entries for the same keys are overwritten.
func (c *Cache) Restore(r io.Reader) error {
	var in []snapshotEntry
	if err := msgpack.NewDecoder(r).Decode(&in); err != nil {
		return err
	}

	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, se := range in {
		fetchedAt := time.Unix(0, se.FetchedAt)
		if now.Sub(fetchedAt) >= c.ttl {
			continue
		}
		key := Key{
			Player: yahoo.PlayerKey(se.Player),
			League: yahoo.LeagueKey(se.League),
			Scope:  yahoo.StatScope{Kind: yahoo.ScopeKind(se.ScopeKind), Week: se.Week},
		}
		c.entries[key] = Entry{Value: se.Value, FetchedAt: fetchedAt}
	}
	return nil
}
