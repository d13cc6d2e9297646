package http

import (
	"net/http"

	"github.com/jarinudom/blitzgremlin/internal/aggregator"
	"github.com/jarinudom/blitzgremlin/internal/config"
	"github.com/jarinudom/blitzgremlin/internal/metrics"
)

// Server is the thin routing layer over the aggregation engine. Handlers
// only translate request parameters into facade calls and marshal the
// structured results; no upstream payload ever passes through untouched.
type Server struct {
	Aggregator     aggregator.Service
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
}
