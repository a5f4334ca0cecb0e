// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package api

import (
	"context"
	"time"

	"github.com/tomtom215/foodaware/internal/models"
	"github.com/tomtom215/foodaware/internal/mood"
	"github.com/tomtom215/foodaware/internal/places"
	"github.com/tomtom215/foodaware/internal/recommend"
	"github.com/tomtom215/foodaware/internal/weather"
	ws "github.com/tomtom215/foodaware/internal/websocket"
)

// Store is the part of the data store the handlers read and write.
type Store interface {
	recommend.DataProvider
	ListUsers(ctx context.Context) ([]models.User, error)
	InsertOrder(ctx context.Context, order *models.Order) error
	PopularFoods(ctx context.Context, limit int) ([]models.PopularFood, error)
	CategoryCrosstab(ctx context.Context, dimension string) ([]models.CategoryCount, error)
	Ping(ctx context.Context) error
	Driver() string
}

// Recommender produces hybrid and single-filter rankings.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) *recommend.Response
	RecommendFilter(ctx context.Context, name string, req recommend.Request) (recommend.FilterResult, error)
}

// OrderPublisher publishes order events for asynchronous storage.
type OrderPublisher interface {
	PublishOrder(ctx context.Context, order *models.Order) error
}

// HealthCheck reports whether one dependency is usable.
type HealthCheck func(ctx context.Context) error

// Deps are the handler dependencies. Publisher, Hub and Checks are optional:
// without a publisher orders are written directly, and without a hub the
// chat route answers 503.
type Deps struct {
	Store     Store
	Engine    Recommender
	Mood      mood.Detector
	Weather   weather.Provider
	Places    places.Searcher
	Publisher OrderPublisher
	Hub       *ws.Hub
	Checks    map[string]HealthCheck

	// DefaultN applies when a recommendation request has no n parameter.
	DefaultN int

	// AllowedOrigins gates WebSocket upgrades. "*" allows any origin.
	AllowedOrigins []string

	Version string
}

// Handler serves every API route.
type Handler struct {
	deps      Deps
	startTime time.Time
}

// NewHandler creates a handler.
func NewHandler(deps *Deps) *Handler {
	d := *deps
	if d.DefaultN <= 0 {
		d.DefaultN = 10
	}
	if d.Version == "" {
		d.Version = "dev"
	}
	return &Handler{deps: d, startTime: time.Now()}
}
