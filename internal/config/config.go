package config

import (
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	getEnvDefault := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		return fallback
	}

	getDuration := func(key, fallback string) time.Duration {
		raw := getEnvDefault(key, fallback)
		d, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("Error: Environment variable %s is not a valid duration: %s", key, raw)
		}
		return d
	}

	getInt := func(key, fallback string) int {
		raw := getEnvDefault(key, fallback)
		n, err := strconv.Atoi(raw)
		if err != nil {
			log.Fatalf("Error: Environment variable %s is not a valid integer: %s", key, raw)
		}
		return n
	}

	cfg := Config{
		Port:   getEnvDefault("PORT", "8080"),
		GameID: getEnvDefault("YAHOO_GAME_ID", "461"),
		Yahoo: YahooConfig{
			ClientID:     getEnv("YAHOO_CLIENT_ID"),
			ClientSecret: getEnv("YAHOO_CLIENT_SECRET"),
			RefreshToken: getEnv("YAHOO_REFRESH_TOKEN"),
		},
		StatsTTL:            getDuration("STATS_CACHE_TTL", "1h"),
		CategoryTTL:         getDuration("CATEGORY_CACHE_TTL", "15m"),
		FallbackConcurrency: getInt("FALLBACK_CONCURRENCY", "4"),
		HTTPTimeout:         getDuration("HTTP_TIMEOUT", "10s"),
		SnapshotPath:        getEnvDefault("CACHE_SNAPSHOT_PATH", ""),
	}
	return cfg
}
