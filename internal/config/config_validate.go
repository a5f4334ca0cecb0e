// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package config

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateDatabase,
		c.validateRecommend,
		c.validateMood,
		c.validateWeather,
		c.validatePlaces,
		c.validateNATS,
		c.validateRateLimits,
		c.validateLogging,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

// validateDatabase validates the store selection
func (c *Config) validateDatabase() error {
	switch c.Database.Driver {
	case DriverDuckDB:
		if c.Database.Path == "" {
			return fmt.Errorf("DUCKDB_PATH is required when DB_DRIVER=duckdb")
		}
	case DriverSQLite, DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("DATABASE_DSN is required when DB_DRIVER=%s", c.Database.Driver)
		}
	default:
		return fmt.Errorf("DB_DRIVER must be one of: duckdb, sqlite, postgres")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be non-negative")
	}
	return nil
}

// validateRecommend validates engine weights, limits and hyperparameters
func (c *Config) validateRecommend() error {
	r := c.Recommend
	weights := []float64{r.WeightCollaborative, r.WeightContent, r.WeightContext}
	sum := 0.0
	for _, w := range weights {
		if w < 0 || math.IsNaN(w) {
			return fmt.Errorf("RECOMMEND_WEIGHT_* values must be non-negative")
		}
		sum += w
	}
	if sum <= 0 {
		return fmt.Errorf("at least one RECOMMEND_WEIGHT_* value must be positive")
	}
	if r.DefaultN < 1 || r.MaxN < r.DefaultN {
		return fmt.Errorf("RECOMMEND_DEFAULT_N must be at least 1 and not exceed RECOMMEND_MAX_N")
	}
	if r.CandidateMultiplier < 1 {
		return fmt.Errorf("RECOMMEND_CANDIDATE_MULTIPLIER must be at least 1")
	}
	if r.FilterTimeout <= 0 {
		return fmt.Errorf("RECOMMEND_FILTER_TIMEOUT must be positive")
	}
	if r.MFFactors < 1 || r.MFEpochs < 1 {
		return fmt.Errorf("RECOMMEND_MF_FACTORS and RECOMMEND_MF_EPOCHS must be at least 1")
	}
	if r.MFLearningRate <= 0 || r.MFRegularization < 0 {
		return fmt.Errorf("RECOMMEND_MF_LEARNING_RATE must be positive and RECOMMEND_MF_REGULARIZATION non-negative")
	}
	return nil
}

// validateMood validates the mood detector selection
func (c *Config) validateMood() error {
	switch c.Mood.Provider {
	case MoodProviderKeyword:
		return nil
	case MoodProviderGemini:
		if c.Mood.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when MOOD_PROVIDER=gemini")
		}
		if c.Mood.GeminiModel == "" {
			return fmt.Errorf("GEMINI_MODEL must not be empty")
		}
		return nil
	default:
		return fmt.Errorf("MOOD_PROVIDER must be one of: keyword, gemini")
	}
}

// validateWeather validates the weather provider and cache
func (c *Config) validateWeather() error {
	switch c.Weather.Provider {
	case WeatherProviderRandom, "":
	case WeatherProviderOpenWeather:
		if c.Weather.APIKey == "" {
			return fmt.Errorf("WEATHER_API_KEY is required when WEATHER_PROVIDER=openweather")
		}
		if err := validateHTTPURL(c.Weather.BaseURL, "WEATHER_BASE_URL"); err != nil {
			return err
		}
		if c.Weather.RateLimit <= 0 {
			return fmt.Errorf("WEATHER_RATE_LIMIT must be positive")
		}
	default:
		return fmt.Errorf("WEATHER_PROVIDER must be one of: openweather, random")
	}
	if c.Weather.CacheEnabled && c.Weather.CacheTTL <= 0 {
		return fmt.Errorf("WEATHER_CACHE_TTL must be positive when the cache is enabled")
	}
	return nil
}

// validatePlaces validates restaurant search settings (only if enabled)
func (c *Config) validatePlaces() error {
	if !c.Places.Enabled() {
		return nil
	}
	if err := validateHTTPURL(c.Places.BaseURL, "PLACES_BASE_URL"); err != nil {
		return err
	}
	if c.Places.Radius < 1 || c.Places.Radius > 50000 {
		return fmt.Errorf("PLACES_RADIUS must be between 1 and 50000")
	}
	return nil
}

// Enabled reports whether restaurant search is configured.
func (p PlacesConfig) Enabled() bool {
	return p.APIKey != ""
}

// validateNATS validates event stream configuration (only if enabled)
func (c *Config) validateNATS() error {
	if !c.NATS.Enabled {
		return nil
	}
	if c.NATS.URL == "" {
		return fmt.Errorf("NATS_URL is required when NATS_ENABLED=true")
	}
	if err := validateNATSURL(c.NATS.URL); err != nil {
		return fmt.Errorf("NATS_URL is invalid: %w", err)
	}
	if c.NATS.EmbeddedServer && c.NATS.StoreDir == "" {
		return fmt.Errorf("NATS_STORE_DIR is required when NATS_EMBEDDED=true")
	}
	if c.NATS.Topic == "" {
		return fmt.Errorf("NATS_TOPIC must not be empty")
	}
	if c.NATS.SubscribersCount < 1 {
		return fmt.Errorf("NATS_SUBSCRIBERS_COUNT must be at least 1")
	}
	if c.NATS.MaxMemory < 0 || c.NATS.MaxStore < 0 || c.NATS.StreamRetentionDays < 0 {
		return fmt.Errorf("NATS limits must be non-negative")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// IsProduction returns true if the application is running in production mode.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

// HasWildcardCORS reports whether any origin is allowed.
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
