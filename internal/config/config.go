// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package config

import (
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. .env file: copied into the process environment when present
//  2. Defaults: Built-in sensible defaults for all optional settings
//  3. Config File: Optional YAML config file (config.yaml)
//  4. Environment Variables: Override any setting via environment variables
//
// Configuration Categories:
//
//  1. Infrastructure:
//     - Server: HTTP listener
//     - Database: store driver (duckdb, sqlite, postgres) and seeding
//     - NATS: order event stream (embedded JetStream by default)
//
//  2. Recommendation:
//     - Recommend: filter weights, limits and model hyperparameters
//
//  3. Collaborators:
//     - Mood: keyword or Gemini-backed mood detection
//     - Weather: OpenWeatherMap or random conditions, with a Badger cache
//     - Places: Google Places nearby restaurant search
//
//  4. Security and observability:
//     - Security: CORS and rate limiting
//     - Logging: level, format and caller info
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Recommend RecommendConfig `koanf:"recommend"`
	Mood      MoodConfig      `koanf:"mood"`
	Weather   WeatherConfig   `koanf:"weather"`
	Places    PlacesConfig    `koanf:"places"`
	NATS      NATSConfig      `koanf:"nats"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // development, staging, production
}

// Store drivers.
const (
	DriverDuckDB   = "duckdb"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DatabaseConfig selects and tunes the catalog/order store.
//
// Environment Variables:
//   - DB_DRIVER: duckdb (default), sqlite or postgres
//   - DUCKDB_PATH: DuckDB file path (default: /data/foodaware.duckdb)
//   - DUCKDB_MAX_MEMORY: DuckDB memory cap (default: 1GB)
//   - DATABASE_DSN: connection string for sqlite/postgres
//   - SEED_ON_START: load synthetic data when the store is empty
//   - SEED_DIR: load users.csv, food_items.csv and orders.csv from this directory instead
type DatabaseConfig struct {
	Driver                 string `koanf:"driver"`
	Path                   string `koanf:"path"`
	MaxMemory              string `koanf:"max_memory"`
	Threads                int    `koanf:"threads"` // 0 = NumCPU
	PreserveInsertionOrder bool   `koanf:"preserve_insertion_order"`
	DSN                    string `koanf:"dsn"`
	SeedOnStart            bool   `koanf:"seed_on_start"`
	SeedDir                string `koanf:"seed_dir"`
	SeedValue              int64  `koanf:"seed_value"`
}

// RecommendConfig holds hybrid engine settings.
//
// Environment Variables:
//   - RECOMMEND_WEIGHT_COLLABORATIVE / _CONTENT / _CONTEXT: filter weights (0.4/0.3/0.3)
//   - RECOMMEND_DEFAULT_N: list length when none is requested (10)
//   - RECOMMEND_MAX_N: hard cap on list length (100)
//   - RECOMMEND_FILTER_TIMEOUT: per-filter deadline (10s)
//   - RECOMMEND_SEED: base seed for random fallbacks (42)
//   - RECOMMEND_MF_FACTORS / _EPOCHS / _LEARNING_RATE / _REGULARIZATION: matrix factorization
type RecommendConfig struct {
	WeightCollaborative float64       `koanf:"weight_collaborative"`
	WeightContent       float64       `koanf:"weight_content"`
	WeightContext       float64       `koanf:"weight_context"`
	DefaultN            int           `koanf:"default_n"`
	MaxN                int           `koanf:"max_n"`
	CandidateMultiplier int           `koanf:"candidate_multiplier"`
	FilterTimeout       time.Duration `koanf:"filter_timeout"`
	Seed                int64         `koanf:"seed"`

	MFFactors        int     `koanf:"mf_factors"`
	MFEpochs         int     `koanf:"mf_epochs"`
	MFLearningRate   float64 `koanf:"mf_learning_rate"`
	MFRegularization float64 `koanf:"mf_regularization"`
}

// Mood detector providers.
const (
	MoodProviderKeyword = "keyword"
	MoodProviderGemini  = "gemini"
)

// MoodConfig selects the mood detector.
//
// Environment Variables:
//   - MOOD_PROVIDER: keyword (default) or gemini
//   - GEMINI_API_KEY: API key for the gemini provider
//   - GEMINI_MODEL: model name (default: gemini-1.5-flash)
//   - MOOD_TIMEOUT: per-call deadline for the LLM (default: 10s)
type MoodConfig struct {
	Provider     string        `koanf:"provider"`
	GeminiAPIKey string        `koanf:"gemini_api_key"`
	GeminiModel  string        `koanf:"gemini_model"`
	Timeout      time.Duration `koanf:"timeout"`
	Seed         int64         `koanf:"seed"`
}

// Weather providers.
const (
	WeatherProviderOpenWeather = "openweather"
	WeatherProviderRandom      = "random"
)

// WeatherConfig configures current-conditions lookup.
//
// Environment Variables:
//   - WEATHER_PROVIDER: openweather or random (default: openweather when WEATHER_API_KEY is set)
//   - WEATHER_API_KEY: OpenWeatherMap API key
//   - WEATHER_BASE_URL: API base URL (default: https://api.openweathermap.org)
//   - WEATHER_RATE_LIMIT: outbound requests per second (default: 1)
//   - WEATHER_CACHE_PATH: Badger directory; empty keeps the cache in memory
//   - WEATHER_CACHE_TTL: how long a report stays fresh (default: 15m)
type WeatherConfig struct {
	Provider     string        `koanf:"provider"`
	APIKey       string        `koanf:"api_key"`
	BaseURL      string        `koanf:"base_url"`
	Timeout      time.Duration `koanf:"timeout"`
	RateLimit    float64       `koanf:"rate_limit"`
	CacheEnabled bool          `koanf:"cache_enabled"`
	CachePath    string        `koanf:"cache_path"`
	CacheTTL     time.Duration `koanf:"cache_ttl"`
}

// PlacesConfig configures the nearby restaurant search.
//
// Environment Variables:
//   - GOOGLE_MAPS_API_KEY: enables the search when set
//   - PLACES_BASE_URL: API base URL (default: https://maps.googleapis.com)
//   - PLACES_RADIUS: search radius in meters (default: 1500)
type PlacesConfig struct {
	APIKey  string        `koanf:"api_key"`
	BaseURL string        `koanf:"base_url"`
	Radius  int           `koanf:"radius"`
	Timeout time.Duration `koanf:"timeout"`
}

// NATSConfig holds order event stream settings.
//
// Environment Variables:
//   - NATS_ENABLED: publish orders as events (default: true)
//   - NATS_URL: server URL (default: nats://127.0.0.1:4222)
//   - NATS_EMBEDDED: run an in-process server (default: true)
//   - NATS_STORE_DIR: JetStream storage directory
//   - NATS_TOPIC: order topic (default: orders.recorded)
type NATSConfig struct {
	Enabled             bool   `koanf:"enabled"`
	URL                 string `koanf:"url"`
	EmbeddedServer      bool   `koanf:"embedded_server"`
	StoreDir            string `koanf:"store_dir"`
	MaxMemory           int64  `koanf:"max_memory"`
	MaxStore            int64  `koanf:"max_store"`
	StreamRetentionDays int    `koanf:"stream_retention_days"`
	Topic               string `koanf:"topic"`
	DurableName         string `koanf:"durable_name"`
	QueueGroup          string `koanf:"queue_group"`
	SubscribersCount    int    `koanf:"subscribers_count"`
}

// SecurityConfig holds CORS and rate limit settings
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	TrustedProxies    []string      `koanf:"trusted_proxies"`
}

// LoggingConfig holds logging configuration.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load loads configuration from all sources.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
