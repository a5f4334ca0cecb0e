// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/foodaware/config.yaml",
	"/etc/foodaware/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotEnvPathEnvVar overrides the .env file location.
const DotEnvPathEnvVar = "DOTENV_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Database: DatabaseConfig{
			Driver:                 DriverDuckDB,
			Path:                   "/data/foodaware.duckdb",
			MaxMemory:              "1GB",
			PreserveInsertionOrder: true,
			SeedOnStart:            true,
			SeedValue:              42,
		},
		Recommend: RecommendConfig{
			WeightCollaborative: 0.4,
			WeightContent:       0.3,
			WeightContext:       0.3,
			DefaultN:            10,
			MaxN:                100,
			CandidateMultiplier: 2,
			FilterTimeout:       10 * time.Second,
			Seed:                42,
			MFFactors:           100,
			MFEpochs:            20,
			MFLearningRate:      0.005,
			MFRegularization:    0.02,
		},
		Mood: MoodConfig{
			Provider:    MoodProviderKeyword,
			GeminiModel: "gemini-1.5-flash",
			Timeout:     10 * time.Second,
			Seed:        42,
		},
		Weather: WeatherConfig{
			BaseURL:      "https://api.openweathermap.org",
			Timeout:      10 * time.Second,
			RateLimit:    1,
			CacheEnabled: true,
			CacheTTL:     15 * time.Minute,
		},
		Places: PlacesConfig{
			BaseURL: "https://maps.googleapis.com",
			Radius:  1500,
			Timeout: 10 * time.Second,
		},
		NATS: NATSConfig{
			Enabled:             true,
			URL:                 "nats://127.0.0.1:4222",
			EmbeddedServer:      true,
			StoreDir:            "/data/nats/jetstream",
			MaxMemory:           256 << 20,
			MaxStore:            1 << 30,
			StreamRetentionDays: 7,
			Topic:               "orders.recorded",
			DurableName:         "foodaware-orders",
			QueueGroup:          "order-writers",
			SubscribersCount:    2,
		},
		Security: SecurityConfig{
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadDotEnv copies KEY=VALUE pairs from a .env file into the process
// environment. Variables already set win. A missing file is not an error.
func LoadDotEnv() error {
	path := os.Getenv(DotEnvPathEnvVar)
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	cfg.resolveWeatherProvider()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// resolveWeatherProvider picks openweather when a key is configured and
// random otherwise, unless a provider was named explicitly.
func (c *Config) resolveWeatherProvider() {
	if c.Weather.Provider != "" {
		return
	}
	if c.Weather.APIKey != "" {
		c.Weather.Provider = WeatherProviderOpenWeather
		return
	}
	c.Weather.Provider = WeatherProviderRandom
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
	"security.trusted_proxies",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envMappings maps environment variable names to koanf config paths.
var envMappings = map[string]string{
	// Server
	"http_port":   "server.port",
	"http_host":   "server.host",
	"http_timeout": "server.timeout",
	"environment": "server.environment",

	// Database
	"db_driver":                       "database.driver",
	"duckdb_path":                     "database.path",
	"duckdb_max_memory":               "database.max_memory",
	"duckdb_threads":                  "database.threads",
	"duckdb_preserve_insertion_order": "database.preserve_insertion_order",
	"database_dsn":                    "database.dsn",
	"seed_on_start":                   "database.seed_on_start",
	"seed_dir":                        "database.seed_dir",
	"seed_value":                      "database.seed_value",

	// Recommendation engine
	"recommend_weight_collaborative":  "recommend.weight_collaborative",
	"recommend_weight_content":        "recommend.weight_content",
	"recommend_weight_context":        "recommend.weight_context",
	"recommend_default_n":             "recommend.default_n",
	"recommend_max_n":                 "recommend.max_n",
	"recommend_candidate_multiplier":  "recommend.candidate_multiplier",
	"recommend_filter_timeout":        "recommend.filter_timeout",
	"recommend_seed":                  "recommend.seed",
	"recommend_mf_factors":            "recommend.mf_factors",
	"recommend_mf_epochs":             "recommend.mf_epochs",
	"recommend_mf_learning_rate":      "recommend.mf_learning_rate",
	"recommend_mf_regularization":     "recommend.mf_regularization",

	// Mood
	"mood_provider":  "mood.provider",
	"gemini_api_key": "mood.gemini_api_key",
	"gemini_model":   "mood.gemini_model",
	"mood_timeout":   "mood.timeout",
	"mood_seed":      "mood.seed",

	// Weather
	"weather_provider":      "weather.provider",
	"weather_api_key":       "weather.api_key",
	"weather_base_url":      "weather.base_url",
	"weather_timeout":       "weather.timeout",
	"weather_rate_limit":    "weather.rate_limit",
	"weather_cache_enabled": "weather.cache_enabled",
	"weather_cache_path":    "weather.cache_path",
	"weather_cache_ttl":     "weather.cache_ttl",

	// Places
	"google_maps_api_key": "places.api_key",
	"places_base_url":     "places.base_url",
	"places_radius":       "places.radius",
	"places_timeout":      "places.timeout",

	// NATS
	"nats_enabled":           "nats.enabled",
	"nats_url":               "nats.url",
	"nats_embedded":          "nats.embedded_server",
	"nats_store_dir":         "nats.store_dir",
	"nats_max_memory":        "nats.max_memory",
	"nats_max_store":         "nats.max_store",
	"nats_retention_days":    "nats.stream_retention_days",
	"nats_topic":             "nats.topic",
	"nats_durable_name":      "nats.durable_name",
	"nats_queue_group":       "nats.queue_group",
	"nats_subscribers_count": "nats.subscribers_count",

	// Security
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",
	"trusted_proxies":     "security.trusted_proxies",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - DUCKDB_PATH -> database.path
//   - WEATHER_API_KEY -> weather.api_key
//   - GOOGLE_MAPS_API_KEY -> places.api_key
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	// Unmapped variables are skipped so the rest of the environment
	// cannot pollute the config.
	return ""
}
