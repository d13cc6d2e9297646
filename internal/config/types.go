package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	Port                string
	GameID              string
	Yahoo               YahooConfig
	StatsTTL            time.Duration
	CategoryTTL         time.Duration
	FallbackConcurrency int
	HTTPTimeout         time.Duration
	SnapshotPath        string
}

// YahooConfig holds the upstream OAuth2 credentials.
type YahooConfig struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}
