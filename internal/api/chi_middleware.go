// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package api

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/tomtom215/foodaware/internal/config"
	"github.com/tomtom215/foodaware/internal/metrics"
	"github.com/tomtom215/foodaware/internal/middleware"
	"github.com/tomtom215/foodaware/internal/models"
)

// ChiMiddlewareConfig holds configuration for the chi middleware factories.
type ChiMiddlewareConfig struct {
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
	CORSMaxAge         int // seconds

	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitDisabled bool

	// TrustedProxies are the peers whose X-Forwarded-For / X-Real-IP headers
	// are honored. Empty means none.
	TrustedProxies []string
}

// DefaultChiMiddlewareConfig returns the defaults. CORS origins are empty,
// so cross-origin browsers are refused until configured.
func DefaultChiMiddlewareConfig() *ChiMiddlewareConfig {
	return &ChiMiddlewareConfig{
		CORSAllowedOrigins: []string{},
		CORSAllowedMethods: []string{"GET", "POST", "OPTIONS"},
		CORSAllowedHeaders: []string{"Content-Type", middleware.RequestIDHeader},
		CORSMaxAge:         86400,

		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
	}
}

// ChiMiddlewareConfigFrom derives the middleware configuration from the
// security section.
func ChiMiddlewareConfigFrom(sec *config.SecurityConfig) *ChiMiddlewareConfig {
	cfg := DefaultChiMiddlewareConfig()
	if sec == nil {
		return cfg
	}
	if len(sec.CORSOrigins) > 0 {
		cfg.CORSAllowedOrigins = sec.CORSOrigins
	}
	if sec.RateLimitReqs > 0 {
		cfg.RateLimitRequests = sec.RateLimitReqs
	}
	if sec.RateLimitWindow > 0 {
		cfg.RateLimitWindow = sec.RateLimitWindow
	}
	cfg.RateLimitDisabled = sec.RateLimitDisabled
	cfg.TrustedProxies = sec.TrustedProxies
	return cfg
}

// ChiMiddleware provides chi-compatible middleware built from one config.
type ChiMiddleware struct {
	config  *ChiMiddlewareConfig
	cors    func(http.Handler) http.Handler
	proxies []*net.IPNet
}

// NewChiMiddleware creates the middleware factory.
func NewChiMiddleware(cfg *ChiMiddlewareConfig) *ChiMiddleware {
	if cfg == nil {
		cfg = DefaultChiMiddlewareConfig()
	}
	return &ChiMiddleware{
		config: cfg,
		cors: cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSAllowedOrigins,
			AllowedMethods:   cfg.CORSAllowedMethods,
			AllowedHeaders:   cfg.CORSAllowedHeaders,
			ExposedHeaders:   []string{middleware.RequestIDHeader},
			AllowCredentials: false,
			MaxAge:           cfg.CORSMaxAge,
		}),
		proxies: parseProxies(cfg.TrustedProxies),
	}
}

// CORS returns the go-chi/cors handler.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// RateLimit limits requests per client IP. Rejections get the standard
// error envelope.
func (m *ChiMiddleware) RateLimit() func(http.Handler) http.Handler {
	if m.config.RateLimitDisabled || m.config.RateLimitRequests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	window := m.config.RateLimitWindow
	return httprate.Limit(
		m.config.RateLimitRequests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.APIRateLimitHits.WithLabelValues(limitedRoute(r)).Inc()
			w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
			respondAPIError(w, r, http.StatusTooManyRequests, &models.APIError{
				Code:    ErrCodeRateLimited,
				Message: "Too many requests",
			})
		}),
	)
}

// limitedRoute labels a rejected request by the route group matched so far.
// The full pattern is not known yet because routing stops at the limiter.
func limitedRoute(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// RealIP honors forwarding headers only when the direct peer is a trusted
// proxy.
func (m *ChiMiddleware) RealIP() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		withRealIP := chimiddleware.RealIP(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.trusted(r.RemoteAddr) {
				withRealIP.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (m *ChiMiddleware) trusted(remoteAddr string) bool {
	if len(m.proxies) == 0 {
		return false
	}
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	for _, n := range m.proxies {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// parseProxies accepts CIDRs and bare IPs. Invalid entries are skipped.
func parseProxies(entries []string) []*net.IPNet {
	var nets []*net.IPNet
	for _, e := range entries {
		if _, n, err := net.ParseCIDR(e); err == nil {
			nets = append(nets, n)
			continue
		}
		ip := net.ParseIP(e)
		if ip == nil {
			continue
		}
		bits := 128
		if ip.To4() != nil {
			ip = ip.To4()
			bits = 32
		}
		nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
	}
	return nets
}
