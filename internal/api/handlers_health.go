// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package api

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/tomtom215/foodaware/internal/models"
)

const healthCheckTimeout = 3 * time.Second

// HealthLive handles liveness probe requests.
// Returns 200 OK while the process is alive, regardless of dependencies.
//
// @Summary Liveness probe
// @Description Returns 200 OK if the process is alive, regardless of external dependencies.
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse "Service is alive"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, time.Time{})
}

// HealthReady handles readiness probe requests. The store is always
// checked; registered checks (NATS, hub) are added to the report.
//
// @Summary Readiness probe
// @Description Returns 200 when the store and every registered dependency are healthy, 503 otherwise.
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthStatus} "Service is ready"
// @Failure 503 {object} models.APIResponse{data=models.HealthStatus} "Service is degraded"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	checks := make(map[string]HealthCheck, len(h.deps.Checks)+1)
	for name, check := range h.deps.Checks {
		checks[name] = check
	}
	if h.deps.Store != nil {
		checks["store"] = h.deps.Store.Ping
	}

	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	health := models.HealthStatus{
		Status:    "healthy",
		Version:   h.deps.Version,
		Checks:    make(map[string]string, len(checks)),
		Uptime:    time.Since(h.startTime).Seconds(),
		Timestamp: time.Now().UTC(),
	}
	if h.deps.Store != nil {
		health.Store = h.deps.Store.Driver()
	} else {
		health.Status = "degraded"
		health.Checks["store"] = "not configured"
	}

	for _, name := range names {
		if err := checks[name](ctx); err != nil {
			health.Status = "degraded"
			health.Checks[name] = "error: " + sanitizeLogValue(err.Error())
			continue
		}
		health.Checks[name] = "ok"
	}

	status := http.StatusOK
	if health.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	respondSuccess(w, r, status, health, time.Time{})
}
