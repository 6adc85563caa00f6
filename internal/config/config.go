// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
)

// TierRule is the configuration shape of one threshold table row.
type TierRule struct {
	Label       string `koanf:"label"`
	MinCoins    int    `koanf:"min_coins"`
	MinActivity int    `koanf:"min_activity"`
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// APIKey is the bearer credential for the recognition oracle.
	// An empty key fails batches with a configuration error; it is not a crash.
	APIKey string `koanf:"api_key"`

	// OracleBaseURL is the OpenAI-compatible API root.
	OracleBaseURL string `koanf:"oracle_base_url"`

	// OracleModel names the vision model used for recognition.
	OracleModel string `koanf:"oracle_model"`

	// RequestTimeoutMS bounds a single oracle round-trip.
	RequestTimeoutMS int `koanf:"request_timeout_ms"`

	// Retry policy for transient oracle failures.
	RetryMaxAttempts      int     `koanf:"retry_max_attempts"`
	RetryInitialDelayMS   int     `koanf:"retry_initial_delay_ms"`
	RetryMaxDelayMS       int     `koanf:"retry_max_delay_ms"`
	RetryBackoffMultiplier float64 `koanf:"retry_backoff_multiplier"`

	// OracleRPS rate-limits outbound oracle calls; 0 disables the limiter.
	OracleRPS float64 `koanf:"oracle_rps"`

	// MaxImageBytes caps a single uploaded image.
	MaxImageBytes int64 `koanf:"max_image_bytes"`

	// MaxBatchImages caps the number of images accepted in one batch.
	MaxBatchImages int `koanf:"max_batch_images"`

	// Tiers is the initial threshold table, ascending by requirement.
	Tiers []TierRule `koanf:"tiers"`
}

// New creates a Config populated with defaults. Context is accepted first to
// satisfy the project-wide convention; it is reserved for future use.
func New(_ context.Context) *Config {
	c := &Config{
		LogLevel:               "info",
		Addr:                   ":9090",
		APIKey:                 "",
		OracleBaseURL:          "https://generativelanguage.googleapis.com/v1beta/openai",
		OracleModel:            "gemini-2.0-flash",
		RequestTimeoutMS:       60_000,
		RetryMaxAttempts:       3,
		RetryInitialDelayMS:    500,
		RetryMaxDelayMS:        10_000,
		RetryBackoffMultiplier: 2.0,
		OracleRPS:              2,
		MaxImageBytes:          10 << 20,
		MaxBatchImages:         20,
		Tiers: []TierRule{
			{Label: "3普寶", MinCoins: 300, MinActivity: 300},
			{Label: "2高寶", MinCoins: 1000, MinActivity: 1500},
			{Label: "1稀寶", MinCoins: 3000, MinActivity: 3000},
			{Label: "2稀寶", MinCoins: 5000, MinActivity: 6000},
			{Label: "至尊", MinCoins: 5000, MinActivity: 15000},
		},
	}
	return c
}
