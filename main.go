package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jarinudom/blitzgremlin/internal/aggregator"
	"github.com/jarinudom/blitzgremlin/internal/categories"
	"github.com/jarinudom/blitzgremlin/internal/config"
	"github.com/jarinudom/blitzgremlin/internal/credentials"
	server "github.com/jarinudom/blitzgremlin/internal/http"
	"github.com/jarinudom/blitzgremlin/internal/metrics"
	"github.com/jarinudom/blitzgremlin/internal/statscache"
	"github.com/jarinudom/blitzgremlin/internal/yahoo"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	creds := credentials.NewOAuth2Provider(
		context.Background(),
		cfg.Yahoo.ClientID,
		cfg.Yahoo.ClientSecret,
		cfg.Yahoo.RefreshToken,
		cfg.HTTPTimeout,
	)
	decoder := yahoo.XMLDecoder{}
	resolver := categories.New(creds, decoder, metricsSvc, cfg.CategoryTTL)
	client := yahoo.NewClient(creds, decoder, resolver, metricsSvc, cfg.GameID)
	cache := statscache.New(cfg.StatsTTL, metricsSvc)
	restoreSnapshot(cache, cfg.SnapshotPath)
	agg := aggregator.New(client, cache, metricsSvc, cfg.FallbackConcurrency)

	s := server.NewServer(agg, metricsSvc, metricsHandler, cfg)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}

		saveSnapshot(cache, cfg.SnapshotPath)
	}

	log.Info("Server process shutting down")
}

// restoreSnapshot warm-starts the stats cache from a previous run. The
// snapshot is best-effort: any failure is logged and ignored.
func restoreSnapshot(cache *statscache.Cache, path string) {
	if path == "" {
		return
	}
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("Could not open cache snapshot", "path", path, "error", err)
		}
		return
	}
	defer f.Close()
	if err := cache.Restore(f); err != nil {
		log.Warn("Could not restore cache snapshot", "path", path, "error", err)
		return
	}
	log.Info("Cache snapshot restored", "path", path, "entries", cache.Len())
}

// saveSnapshot persists the stats cache on shutdown, best-effort.
func saveSnapshot(cache *statscache.Cache, path string) {
	if path == "" {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		log.Warn("Could not create cache snapshot", "path", path, "error", err)
		return
	}
	defer f.Close()
	if err := cache.Snapshot(f); err != nil {
		log.Warn("Could not write cache snapshot", "path", path, "error", err)
		return
	}
	log.Info("Cache snapshot written", "path", path, "entries", cache.Len())
}
