package statscache_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jarinudom/blitzgremlin/internal/metrics"
	"github.com/jarinudom/blitzgremlin/internal/statscache"
	"github.com/jarinudom/blitzgremlin/internal/yahoo"
)

func TestSnapshotRoundTrip(t *testing.T) {
	cache, _, _ := newTestCache(t, time.Hour)
	key := sampleKey("461.p.30977")
	weekKey := statscache.NewKey("461.p.40899", "461.l.12345", yahoo.WeekScope(5))
	cache.Put(key, sampleStats("461.p.30977"))
	cache.Put(weekKey, sampleStats("461.p.40899"))

	var buf bytes.Buffer
	require.NoError(t, cache.Snapshot(&buf))

	restored, _, _ := newTestCache(t, time.Hour)
	require.NoError(t, restored.Restore(&buf))
	assert.Equal(t, 2, restored.Len())

	got, _, ok := restored.Get(key)
	require.True(t, ok)
	assert.Equal(t, sampleStats("461.p.30977"), got)

	_, _, ok = restored.Get(weekKey)
	assert.True(t, ok)
}

func TestRestoreSkipsExpiredEntries(t *testing.T) {
	base := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	current := base
	cache := statscache.New(time.Hour, metrics.NewMock(), statscache.WithClock(func() time.Time { return current }))

	cache.Put(sampleKey("461.p.30977"), sampleStats("461.p.30977"))
	current = base.Add(30 * time.Minute)
	cache.Put(sampleKey("461.p.40899"), sampleStats("461.p.40899"))

	var buf bytes.Buffer
	require.NoError(t, cache.Snapshot(&buf))

	// To the restoring process the first entry is past the TTL, the
	// second is not.
	later := base.Add(75 * time.Minute)
	restored := statscache.New(time.Hour, metrics.NewMock(), statscache.WithClock(func() time.Time { return later }))
	require.NoError(t, restored.Restore(&buf))
	assert.Equal(t, 1, restored.Len())
}

func TestRestoreRejectsGarbage(t *testing.T) {
	cache, _, _ := newTestCache(t, time.Hour)
	err := cache.Restore(bytes.NewReader([]byte("definitely not msgpack")))
	assert.Error(t, err)
}
