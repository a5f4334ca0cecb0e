// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

// @title FoodAware API
// @version 1.0
// @description Context-aware food recommendations from order history, mood and weather.
// @description
// @description ## Recommendations
// @description
// @description The hybrid list blends three filters (collaborative 0.4, content 0.3, context 0.3 by default).
// @description Every call returns at most n items, even for unknown users, moods or weather.
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 100 requests per minute per IP address. Health probes are exempt.
// @description
// @description ## Error Responses
// @description
// @description ```json
// @description {
// @description   "status": "error",
// @description   "data": null,
// @description   "error": {"code": "VALIDATION_ERROR", "message": "n must be at most 100", "details": {"field": "n"}},
// @description   "metadata": {"timestamp": "2026-01-04T12:00:00Z", "request_id": "..."}
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/foodaware/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:3857
// @BasePath /api/v1
// @schemes http https
//
// @tag.name Core
// @tag.description Health probes
//
// @tag.name Recommendations
// @tag.description Hybrid and single-filter rankings
//
// @tag.name Context
// @tag.description Mood detection, weather and nearby restaurants
//
// @tag.name Catalog
// @tag.description Users and food items
//
// @tag.name Orders
// @tag.description Order ingestion
//
// @tag.name Chat
// @tag.description WebSocket chat assistant
package main
