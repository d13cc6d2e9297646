package http

import (
	"net/http"

	"github.com/jarinudom/blitzgremlin/internal/aggregator"
	"github.com/jarinudom/blitzgremlin/internal/config"
	"github.com/jarinudom/blitzgremlin/internal/metrics"
)

func NewServer(agg aggregator.Service, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config) *Server {
	server := &Server{
		Aggregator:     agg,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), requestIDMiddleware, paramsMiddleware))
	s.Router.Handle("/players/stats", Chain(s.PlayerStatsHandler(), requestIDMiddleware, paramsMiddleware))
	s.Router.Handle("/roster/rollup", Chain(s.RosterRollupHandler(), requestIDMiddleware, paramsMiddleware))
	s.Router.Handle("/team/stats", Chain(s.TeamStatsHandler(), requestIDMiddleware, paramsMiddleware))
	s.Router.Handle("/invalidate", Chain(s.InvalidateHandler(), requestIDMiddleware, paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
