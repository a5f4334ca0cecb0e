// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

/*
Package api exposes FoodAware over HTTP with the chi router.

Routes (all under /api/v1 unless noted):

	GET  /health/live                    liveness probe
	GET  /health/ready                   store and dependency checks
	GET  /recommendations                hybrid list (user_id, weather, mood, n)
	GET  /recommendations/{filter}       one filter: collaborative, content or context
	POST /mood                           {"text": "..."} -> {"mood": "Happy"}
	GET  /weather?city=                  current conditions
	GET  /restaurants?location=&keyword= nearby restaurants
	GET  /users, /users/{id}, /foods     catalog reads
	POST /orders                         record an order (published to NATS or written directly)
	GET  /chat/ws                        WebSocket chat
	GET  /metrics                        Prometheus (root)
	GET  /swagger/*                      API docs (root)

Every JSON response uses the models.APIResponse envelope:

	{"status": "success", "data": {...}, "metadata": {"timestamp": "...", "request_id": "...", "query_time_ms": 3}}
	{"status": "error", "data": null, "error": {"code": "VALIDATION_ERROR", "message": "n must be at most 100"}, "metadata": {...}}

Middleware order: request ID, real IP, panic recovery, CORS, then per-group
rate limiting and Prometheus instrumentation.
*/
package api
