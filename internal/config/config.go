// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Sudheer128/cloud4india-sub003/core/pricing"
	"github.com/Sudheer128/cloud4india-sub003/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Upstream contains direct admin API settings
	Upstream UpstreamConfig `json:"upstream"`

	// WarmCache contains CMS cache settings
	WarmCache WarmCacheConfig `json:"warm_cache"`

	// Sync contains catalog sync settings
	Sync SyncConfig `json:"sync"`

	// Pricing contains pricing overrides
	Pricing PricingConfig `json:"pricing"`

	// HTTP contains API server settings
	HTTP HTTPConfig `json:"http"`

	// Redis contains the optional snapshot cache tier
	Redis RedisConfig `json:"redis"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// UpstreamConfig contains direct admin API settings
type UpstreamConfig struct {
	// BaseURL is the admin API root
	BaseURL string `json:"base_url"`

	// APIKey is the bearer token for the admin API
	APIKey string `json:"api_key"`

	// TimeoutSeconds bounds each upstream request
	TimeoutSeconds int `json:"timeout_seconds"`
}

// WarmCacheConfig contains CMS cache settings
type WarmCacheConfig struct {
	// BaseURL is the CMS root serving the aggregate document
	BaseURL string `json:"base_url"`

	// TimeoutSeconds bounds the aggregate fetch
	TimeoutSeconds int `json:"timeout_seconds"`
}

// SyncConfig contains catalog sync settings
type SyncConfig struct {
	// TTLSeconds is how long a snapshot stays fresh
	TTLSeconds int `json:"ttl_seconds"`

	// PlanWorkers bounds concurrent per-service plan fetches
	PlanWorkers int `json:"plan_workers"`

	// DefaultRateCard is used when a request names none
	DefaultRateCard string `json:"default_rate_card"`
}

// PricingConfig contains pricing overrides applied on the defaults
type PricingConfig struct {
	// DefaultCurrency is used when a request names none
	DefaultCurrency string `json:"default_currency"`

	// Overrides adjusts currency rates, discounts and GST
	Overrides pricing.Overrides `json:"overrides"`
}

// HTTPConfig contains API server settings
type HTTPConfig struct {
	// Port the API server listens on
	Port int `json:"port"`

	// Mode is the gin mode: debug, release or test
	Mode string `json:"mode"`
}

// RedisConfig contains the optional snapshot cache tier
type RedisConfig struct {
	// Enabled turns the Redis tier on
	Enabled bool `json:"enabled"`

	// Addr is host:port
	Addr string `json:"addr"`

	// Password is optional
	Password string `json:"password,omitempty"`

	// DB selects the redis database
	DB int `json:"db"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Upstream: UpstreamConfig{
			BaseURL:        "https://portal.cloud4india.com/backend/api",
			TimeoutSeconds: 15,
		},
		WarmCache: WarmCacheConfig{
			BaseURL:        "http://localhost:4002",
			TimeoutSeconds: 10,
		},
		Sync: SyncConfig{
			TTLSeconds:      300, // 5 minutes
			PlanWorkers:     8,
			DefaultRateCard: "default",
		},
		Pricing: PricingConfig{
			DefaultCurrency: "INR",
		},
		HTTP: HTTPConfig{
			Port: 8080,
			Mode: "release",
		},
		Redis: RedisConfig{
			Enabled: false,
			Addr:    "localhost:6379",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file, then applies environment
// variable overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
		} else if err := json.Unmarshal(data, config); err != nil {
			return nil, err
		}
	}

	config.applyEnv()
	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// applyEnv overrides file values with environment variables.
func (c *Config) applyEnv() {
	c.Upstream.BaseURL = getEnv("CLOUD4INDIA_API_URL", c.Upstream.BaseURL)
	c.Upstream.APIKey = getEnv("CLOUD4INDIA_API_KEY", c.Upstream.APIKey)
	c.WarmCache.BaseURL = getEnv("CMS_URL", c.WarmCache.BaseURL)
	c.Sync.TTLSeconds = getEnvInt("SYNC_TTL_SECONDS", c.Sync.TTLSeconds)
	c.Sync.PlanWorkers = getEnvInt("SYNC_PLAN_WORKERS", c.Sync.PlanWorkers)
	c.Sync.DefaultRateCard = getEnv("DEFAULT_RATE_CARD", c.Sync.DefaultRateCard)
	c.Pricing.DefaultCurrency = getEnv("DEFAULT_CURRENCY", c.Pricing.DefaultCurrency)
	c.HTTP.Port = getEnvInt("PORT", c.HTTP.Port)
	c.HTTP.Mode = getEnv("GIN_MODE", c.HTTP.Mode)
	c.Redis.Addr = getEnv("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	if v := os.Getenv("REDIS_ENABLED"); v != "" {
		c.Redis.Enabled = v == "true" || v == "1"
	}
}

// PricingSettings resolves the effective pricing settings: built-in
// defaults with the config overrides applied.
func (c *Config) PricingSettings() pricing.Settings {
	return pricing.DefaultSettings().Merge(c.Pricing.Overrides)
}

// SyncTTL returns the snapshot TTL as a duration.
func (c *Config) SyncTTL() time.Duration {
	return time.Duration(c.Sync.TTLSeconds) * time.Second
}

// UpstreamTimeout returns the upstream request timeout as a duration.
func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.Upstream.TimeoutSeconds) * time.Second
}

// WarmCacheTimeout returns the warm cache timeout as a duration.
func (c *Config) WarmCacheTimeout() time.Duration {
	return time.Duration(c.WarmCache.TimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
