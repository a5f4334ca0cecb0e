// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package models

import (
	"time"
)

// APIResponse is the envelope used by every HTTP endpoint.
//
// Status is "success" with Data populated, or "error" with Error populated:
//
//	{
//	  "status": "error",
//	  "error": {"code": "VALIDATION_ERROR", "message": "n must be between 0 and 100"},
//	  "metadata": {"timestamp": "2026-01-04T12:00:00Z", "request_id": "..."}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata accompanies every response.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	RequestID   string    `json:"request_id,omitempty"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError is a machine-readable error code plus a human-readable message.
//
// Common error codes:
//   - VALIDATION_ERROR: invalid input parameters
//   - NOT_FOUND: unknown user or filter
//   - DATABASE_ERROR: store failure
//   - UPSTREAM_ERROR: weather, mood or places provider failure
//   - RATE_LIMIT_EXCEEDED: too many requests
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is returned by the readiness probe.
type HealthStatus struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Store     string            `json:"store"`
	Checks    map[string]string `json:"checks"`
	Uptime    float64           `json:"uptime_seconds"`
	Timestamp time.Time         `json:"timestamp"`
}
