// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

/*
Command server runs the FoodAware HTTP API.

# Startup

 1. Configuration: .env (godotenv), optional config.yaml and environment
    variables, layered by koanf
 2. Logging: zerolog, JSON or console
 3. Store: DuckDB (default), SQLite or PostgreSQL; seeded on first start
    when DATABASE_SEED_ON_START is set
 4. Engine: collaborative, content-based and context-aware filters
 5. Collaborators: mood detector (keyword, optionally Gemini), weather
    provider (OpenWeatherMap with Badger cache, or random) and the Places
    client
 6. Event bus (NATS_ENABLED): embedded NATS with JetStream, order publisher
    and consumer
 7. Supervisor tree, then the HTTP server

# Supervision

	foodaware
	├── data-layer       order consumer
	├── messaging-layer  NATS bus, chat hub, uptime gauge
	└── api-layer        HTTP server

# Signals

SIGINT and SIGTERM cancel the root context. The HTTP server drains
in-flight requests, the hub closes its clients, and the bus flushes and
stops the embedded server. The store is closed last.

# Example

	DATABASE_DRIVER=sqlite DATABASE_DSN=./foodaware.db \
	DATABASE_SEED_ON_START=true \
	WEATHER_PROVIDER=random \
	./server
*/
package main
