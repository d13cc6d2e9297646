// Package categories resolves a league's stat-id to display-name mapping
// from the upstream league settings resource and caches it. League
// configuration changes rarely within a season, so the cache runs on its
// own, longer TTL than player stats.
package categories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jarinudom/blitzgremlin/internal/credentials"
	"github.com/jarinudom/blitzgremlin/internal/metrics"
	"github.com/jarinudom/blitzgremlin/internal/yahoo"
)

type cacheEntry struct {
	names     map[string]string
	fetchedAt time.Time
}

// Resolver fetches and caches league stat category mappings. Lookup
// failures degrade to an empty mapping: category names are an enrichment,
// not a correctness requirement, so callers never see an error from here.
type Resolver struct {
	creds   credentials.Provider
	dec     yahoo.Decoder
	metrics metrics.Metrics
	ttl     time.Duration
	baseURL string
	now     func() time.Time

	mu    sync.RWMutex
	cache map[yahoo.LeagueKey]cacheEntry
}

var _ yahoo.CategoryResolver = (*Resolver)(nil)

// Option configures a Resolver.
type Option func(*Resolver)

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

// WithBaseURL overrides the upstream base URL. Used in tests.
func WithBaseURL(base string) Option {
	return func(r *Resolver) { r.baseURL = base }
}

// New creates a new Resolver with the given TTL.
func New(creds credentials.Provider, dec yahoo.Decoder, metricsSvc metrics.Metrics, ttl time.Duration, opts ...Option) *Resolver {
	r := &Resolver{
		creds:   creds,
		dec:     dec,
		metrics: metricsSvc,
		ttl:     ttl,
		baseURL: yahoo.BaseURL,
		now:     time.Now,
		cache:   make(map[yahoo.LeagueKey]cacheEntry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the stat-id to display-name mapping for league. A live
// cached mapping is served without an upstream call. On fetch failure an
// empty mapping is returned and the degradation is recorded; failures are
// never cached, so the next call retries.
func (r *Resolver) Resolve(ctx context.Context, league yahoo.LeagueKey) map[string]string {
	r.mu.RLock()
	entry, ok := r.cache[league]
	r.mu.RUnlock()
	if ok && r.now().Sub(entry.fetchedAt) < r.ttl {
		return entry.names
	}

	names, err := r.fetch(ctx, league)
	if err != nil {
		log.Warn("Category lookup degraded to empty mapping", "league", league, "error", err)
		r.metrics.IncCategoryResolveFailures()
		return map[string]string{}
	}

	r.mu.Lock()
	r.cache[league] = cacheEntry{names: names, fetchedAt: r.now()}
	r.mu.Unlock()
	return names
}

// Invalidate drops the cached mapping for league.
func (r *Resolver) Invalidate(league yahoo.LeagueKey) {
	r.mu.Lock()
	delete(r.cache, league)
	r.mu.Unlock()
}

func (r *Resolver) fetch(ctx context.Context, league yahoo.LeagueKey) (map[string]string, error) {
	url := yahoo.SettingsURL(r.baseURL, league)
	log.Debug("Fetching league settings", "url", url)

	body, status, err := r.creds.AuthenticatedGet(ctx, url)
	if err != nil {
		return nil, err
	}

	node, err := r.dec.Decode(body)
	if err != nil {
		return nil, &yahoo.MalformedError{Reason: "undecodable settings response", Err: err}
	}
	if status >= 400 {
		return nil, &yahoo.TransientError{Op: "league settings fetch", Err: fmt.Errorf("upstream returned %d", status)}
	}

	names := yahoo.ParseLeagueSettings(node)
	log.Debug("Resolved stat categories", "league", league, "count", len(names))
	return names, nil
}
