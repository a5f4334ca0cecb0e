// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/tomtom215/foodaware/internal/config"
	"github.com/tomtom215/foodaware/internal/metrics"
	"github.com/tomtom215/foodaware/internal/middleware"
)

// counterTotal sums every series of a counter vector.
func counterTotal(t *testing.T, c prometheus.Collector) float64 {
	t.Helper()
	ch := make(chan prometheus.Metric, 64)
	go func() {
		c.Collect(ch)
		close(ch)
	}()
	var total float64
	for m := range ch {
		var pb dto.Metric
		if err := m.Write(&pb); err != nil {
			t.Fatalf("write metric: %v", err)
		}
		total += pb.GetCounter().GetValue()
	}
	return total
}

func TestChiMiddlewareConfigFrom(t *testing.T) {
	t.Parallel()

	cfg := ChiMiddlewareConfigFrom(&config.SecurityConfig{
		RateLimitReqs:   5,
		RateLimitWindow: 10 * time.Second,
		CORSOrigins:     []string{"https://app.example.com"},
		TrustedProxies:  []string{"10.0.0.0/8"},
	})
	if cfg.RateLimitRequests != 5 || cfg.RateLimitWindow != 10*time.Second {
		t.Errorf("rate limit = %d/%v", cfg.RateLimitRequests, cfg.RateLimitWindow)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || len(cfg.TrustedProxies) != 1 {
		t.Errorf("cfg = %+v", cfg)
	}

	def := ChiMiddlewareConfigFrom(nil)
	if def.RateLimitRequests != 100 || def.RateLimitWindow != time.Minute {
		t.Errorf("defaults = %+v", def)
	}
}

func TestRateLimit_JSONRejection(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 2
	cfg.RateLimitWindow = time.Minute
	h := NewRouter(NewHandler(testDeps()), NewChiMiddleware(cfg)).SetupChi()

	hitsBefore := counterTotal(t, metrics.APIRateLimitHits)

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = do(t, h, http.MethodGet, "/api/v1/foods", "")
	}
	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("third request status = %d, want 429", last.Code)
	}
	env := decodeEnvelope(t, last)
	if env.Error == nil || env.Error.Code != ErrCodeRateLimited {
		t.Errorf("error = %+v", env.Error)
	}
	if last.Header().Get("Retry-After") != "60" {
		t.Errorf("Retry-After = %q", last.Header().Get("Retry-After"))
	}
	if got := counterTotal(t, metrics.APIRateLimitHits) - hitsBefore; got < 1 {
		t.Errorf("rate limit hits delta = %v, want >= 1", got)
	}

	// Probes are outside the limited group.
	if rec := do(t, h, http.MethodGet, "/api/v1/health/live", ""); rec.Code != http.StatusOK {
		t.Errorf("health status = %d", rec.Code)
	}
}

func TestRealIP_TrustedProxies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		proxies    []string
		remoteAddr string
		want       string
	}{
		{"no proxies ignores header", nil, "10.1.2.3:5000", "10.1.2.3:5000"},
		{"trusted cidr", []string{"10.0.0.0/8"}, "10.1.2.3:5000", "203.0.113.7"},
		{"trusted ip", []string{"192.168.1.1"}, "192.168.1.1:443", "203.0.113.7"},
		{"untrusted peer", []string{"192.168.1.1"}, "198.51.100.2:443", "198.51.100.2:443"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			mw := NewChiMiddleware(&ChiMiddlewareConfig{TrustedProxies: tt.proxies})

			var got string
			h := mw.RealIP()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				got = r.RemoteAddr
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			req.Header.Set("X-Real-IP", "203.0.113.7")
			h.ServeHTTP(httptest.NewRecorder(), req)

			if got != tt.want {
				t.Errorf("RemoteAddr = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRouter_RequestIDAndMetrics(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, testDeps())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/foods", nil)
	req.Header.Set(middleware.RequestIDHeader, "client-supplied-id")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get(middleware.RequestIDHeader); got != "client-supplied-id" {
		t.Errorf("response request id = %q", got)
	}
	if env := decodeEnvelope(t, rec); env.Metadata.RequestID != "client-supplied-id" {
		t.Errorf("metadata request id = %q", env.Metadata.RequestID)
	}

	if rec := do(t, h, http.MethodGet, "/metrics", ""); rec.Code != http.StatusOK {
		t.Errorf("/metrics status = %d", rec.Code)
	}
	if rec := do(t, h, http.MethodPut, "/api/v1/foods", ""); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("PUT status = %d, want 405", rec.Code)
	}
}
