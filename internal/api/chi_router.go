// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/foodaware/internal/middleware"
	"github.com/tomtom215/foodaware/internal/models"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: mw}
}

// SetupChi builds the HTTP handler.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(router.chiMiddleware.RealIP())
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondAPIError(w, r, http.StatusNotFound, &models.APIError{Code: ErrCodeNotFound, Message: "Route not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondAPIError(w, r, http.StatusMethodNotAllowed, &models.APIError{Code: "METHOD_NOT_ALLOWED", Message: "Method not allowed"})
	})

	// Probes are not rate limited.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.PrometheusMetrics)

		r.Route("/recommendations", func(r chi.Router) {
			r.Get("/", router.handler.Recommendations)
			r.Get("/{filter}", router.handler.FilterRecommendations)
		})

		r.Post("/mood", router.handler.DetectMood)
		r.Get("/weather", router.handler.Weather)
		r.Get("/restaurants", router.handler.Restaurants)

		r.Get("/users", router.handler.Users)
		r.Get("/users/{id}", router.handler.User)
		r.Get("/foods", router.handler.Foods)

		r.Post("/orders", router.handler.CreateOrder)

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/popular-foods", router.handler.PopularFoods)
			r.Get("/weather-categories", router.handler.WeatherCategories)
			r.Get("/mood-categories", router.handler.MoodCategories)
		})

		r.Get("/chat/ws", router.handler.Chat)
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	return r
}
