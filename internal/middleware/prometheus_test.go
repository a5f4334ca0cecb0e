// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	dto "github.com/prometheus/client_model/go"

	"github.com/tomtom215/foodaware/internal/metrics"
)

func counterValue(t *testing.T, labels ...string) float64 {
	t.Helper()
	var m dto.Metric
	if err := metrics.APIRequestsTotal.WithLabelValues(labels...).Write(&m); err != nil {
		t.Fatalf("read counter: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestPrometheusMetrics_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(PrometheusMetrics)
	r.Get("/api/v1/users/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/api/v1/foods", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("[]"))
	})

	before404 := counterValue(t, "GET", "/api/v1/users/{id}", "404")
	before200 := counterValue(t, "GET", "/api/v1/foods", "200")

	for _, path := range []string{"/api/v1/users/u1", "/api/v1/users/u2", "/api/v1/foods"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := counterValue(t, "GET", "/api/v1/users/{id}", "404") - before404; got != 2 {
		t.Errorf("users/{id} 404 count delta = %v, want 2", got)
	}
	if got := counterValue(t, "GET", "/api/v1/foods", "200") - before200; got != 1 {
		t.Errorf("foods 200 count delta = %v, want 1 (implicit status)", got)
	}
}

func TestPrometheusMetrics_WithoutRouter(t *testing.T) {
	before := counterValue(t, "POST", unmatchedRoute, "201")

	handler := PrometheusMetrics(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/raw", nil))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := counterValue(t, "POST", unmatchedRoute, "201") - before; got != 1 {
		t.Errorf("count delta = %v, want 1", got)
	}
}
