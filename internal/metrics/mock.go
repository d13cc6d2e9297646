package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                      sync.Mutex
	upstreamRequests        map[string]int
	cacheHits               int
	cacheMisses             int
	fallbackRuns            int
	playersSkipped          int
	categoryResolveFailures int
	fetchDurations          []float64
	startupTime             float64
}

var _ Metrics = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		upstreamRequests: make(map[string]int),
		fetchDurations:   make([]float64, 0),
	}
}

func (m *Mock) IncUpstreamRequest(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upstreamRequests[outcome]++
}

func (m *Mock) IncCacheHit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheHits++
}

func (m *Mock) IncCacheMiss() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheMisses++
}

func (m *Mock) IncFallbackRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallbackRuns++
}

func (m *Mock) IncPlayersSkipped(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playersSkipped += n
}

func (m *Mock) IncCategoryResolveFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categoryResolveFailures++
}

func (m *Mock) ObserveFetchDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchDurations = append(m.fetchDurations, duration)
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// UpstreamRequests returns the recorded count for an outcome.
func (m *Mock) UpstreamRequests(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.upstreamRequests[outcome]
}

// CacheHits returns the number of times IncCacheHit was called.
func (m *Mock) CacheHits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cacheHits
}

// CacheMisses returns the number of times IncCacheMiss was called.
func (m *Mock) CacheMisses() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cacheMisses
}

// FallbackRuns returns the number of times IncFallbackRuns was called.
func (m *Mock) FallbackRuns() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fallbackRuns
}

// PlayersSkipped returns the accumulated skipped-player count.
func (m *Mock) PlayersSkipped() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playersSkipped
}

// CategoryResolveFailures returns the recorded degradation count.
func (m *Mock) CategoryResolveFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.categoryResolveFailures
}
