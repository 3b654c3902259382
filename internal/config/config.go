// Package config loads runtime settings from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full environment surface of the recommender.
type Config struct {
	// Gemini credentials. At least one key is required; two enable rotation.
	APIKey1 string `env:"GEMINI_API_KEY_1"`
	APIKey2 string `env:"GEMINI_API_KEY_2"`

	Model          string        `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`
	BaseURL        string        `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com"`
	MaxRetries     int           `env:"MAX_RETRIES" envDefault:"3"`
	RetryDelay     time.Duration `env:"RETRY_DELAY" envDefault:"2s"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	CacheBackend string        `env:"CACHE_BACKEND" envDefault:"memory"`
	CacheSize    int           `env:"CACHE_SIZE" envDefault:"50"`
	CacheTTL     time.Duration `env:"CACHE_TTL" envDefault:"24h"` // redis backend only
	RedisAddr    string        `env:"REDIS_ADDR" envDefault:"127.0.0.1:6379"`

	StoreBackend string `env:"STORE_BACKEND" envDefault:"json"` // json | sqlite | none
	DataDir      string `env:"DATA_DIR" envDefault:"data"`

	// Optional diagnostics listener; empty disables it.
	MetricsAddr string `env:"METRICS_ADDR"`

	// Optional TTF font for roadmap images.
	RoadmapFont string `env:"ROADMAP_FONT"`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// APIKeys returns the configured keys in rotation order, skipping unset slots.
func (c Config) APIKeys() []string {
	var keys []string
	if c.APIKey1 != "" {
		keys = append(keys, c.APIKey1)
	}
	if c.APIKey2 != "" {
		keys = append(keys, c.APIKey2)
	}
	return keys
}
