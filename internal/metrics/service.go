package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Service is the Prometheus-backed Metrics implementation.
type Service struct {
	UpstreamRequests        *prometheus.CounterVec
	CacheHits               prometheus.Counter
	CacheMisses             prometheus.Counter
	FallbackRuns            prometheus.Counter
	PlayersSkipped          prometheus.Counter
	CategoryResolveFailures prometheus.Counter
	FetchDuration           prometheus.Histogram
	StartupTimeSeconds      prometheus.Gauge
}

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "blitz_upstream_requests_total",
			Help: "The total number of upstream API requests, by outcome.",
		}, []string{"outcome"}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blitz_stats_cache_hits_total",
			Help: "The total number of stats cache reads served without an upstream call.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blitz_stats_cache_misses_total",
			Help: "The total number of stats cache reads that required a fetch.",
		}),
		FallbackRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blitz_fallback_decompositions_total",
			Help: "The total number of batch fetches decomposed into per-player retries.",
		}),
		PlayersSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blitz_players_skipped_total",
			Help: "The total number of requested player keys dropped as invalid.",
		}),
		CategoryResolveFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blitz_category_resolve_failures_total",
			Help: "The total number of league category lookups that degraded to an empty mapping.",
		}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "blitz_stats_fetch_duration_seconds",
			Help:    "The duration of upstream stats fetches.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "blitz_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.UpstreamRequests,
		s.CacheHits,
		s.CacheMisses,
		s.FallbackRuns,
		s.PlayersSkipped,
		s.CategoryResolveFailures,
		s.FetchDuration,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncUpstreamRequest(outcome string) {
	s.UpstreamRequests.WithLabelValues(outcome).Inc()
}

func (s *Service) IncCacheHit() {
	s.CacheHits.Inc()
}

func (s *Service) IncCacheMiss() {
	s.CacheMisses.Inc()
}

func (s *Service) IncFallbackRuns() {
	s.FallbackRuns.Inc()
}

func (s *Service) IncPlayersSkipped(n int) {
	s.PlayersSkipped.Add(float64(n))
}

func (s *Service) IncCategoryResolveFailures() {
	s.CategoryResolveFailures.Inc()
}

func (s *Service) ObserveFetchDuration(duration float64) {
	s.FetchDuration.Observe(duration)
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
