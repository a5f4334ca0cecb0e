// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

/*
Package config provides centralized configuration management for FoodAware.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file (CONFIG_PATH or config.yaml), then environment variables. A .env
file, when present, is copied into the environment first via godotenv.

# Sections

  - ServerConfig: HTTP listener (HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT)
  - DatabaseConfig: store driver and seeding (DB_DRIVER, DUCKDB_PATH, DATABASE_DSN)
  - RecommendConfig: filter weights, list limits, model hyperparameters
  - MoodConfig: keyword or Gemini mood detection (MOOD_PROVIDER, GEMINI_API_KEY)
  - WeatherConfig: OpenWeatherMap client and Badger cache (WEATHER_API_KEY)
  - PlacesConfig: Google Places search (GOOGLE_MAPS_API_KEY)
  - NATSConfig: order event stream (NATS_ENABLED, NATS_EMBEDDED)
  - SecurityConfig: CORS and rate limiting
  - LoggingConfig: LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Only variables listed in the env mapping table are read; anything else in
the environment is ignored.

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
	store, err := database.New(&cfg.Database, logger)
*/
package config
