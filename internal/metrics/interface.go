package metrics

// Upstream request outcomes, used as the label of the request counter.
const (
	OutcomeOK              = "ok"
	OutcomeUnauthenticated = "unauthenticated"
	OutcomeRejected        = "rejected"
	OutcomeTransient       = "transient"
	OutcomeMalformed       = "malformed"
)

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncUpstreamRequest(outcome string)
	IncCacheHit()
	IncCacheMiss()
	IncFallbackRuns()
	IncPlayersSkipped(n int)
	IncCategoryResolveFailures()
	ObserveFetchDuration(duration float64)
	SetStartupTime(duration float64)
}
