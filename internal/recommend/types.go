// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package recommend

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/foodaware/internal/models"
)

// Filter names. They double as weight keys and metric labels.
const (
	FilterCollaborative = "collaborative"
	FilterContent       = "content"
	FilterContext       = "context"
)

// Sentinel errors raised inside fallback chains. None of them escape the
// engine; they select which fallback strategy runs next.
var (
	// ErrUnknownUser means the user has no profile or no order history.
	ErrUnknownUser = errors.New("unknown user")

	// ErrNoData means the store holds nothing the strategy can work with.
	ErrNoData = errors.New("no data")

	// ErrVectorizer means the TF-IDF vocabulary could not be built.
	ErrVectorizer = errors.New("vectorizer failure")

	// ErrNoProvider means no DataProvider was configured.
	ErrNoProvider = errors.New("data provider not set")

	// ErrUnknownFilter is returned when a single-filter call names a filter
	// that is not registered.
	ErrUnknownFilter = errors.New("unknown filter")
)

// Candidate is the fixed output shape of every filter. Name, Cuisine and
// Category may be empty; the engine backfills them from the catalog.
// HasScore is false for filters that rank without surfacing a score.
type Candidate struct {
	FoodID   string  `json:"food_id"`
	Name     string  `json:"name,omitempty"`
	Cuisine  string  `json:"cuisine,omitempty"`
	Category string  `json:"category,omitempty"`
	Score    float64 `json:"score,omitempty"`
	HasScore bool    `json:"-"`
}

// FilterRequest is passed to each filter.
type FilterRequest struct {
	UserID  string
	Weather string
	Mood    string
	N       int

	// Seed is mixed with the request fields to derive the fallback RNG.
	Seed int64
}

// FilterResult is the outcome of one filter call. Strategy names the
// fallback strategy that produced Candidates.
type FilterResult struct {
	Candidates []Candidate
	Strategy   string
}

// Filter is an independent recommender. Implementations never fail: every
// error is absorbed by their fallback chain.
type Filter interface {
	// Name returns the filter identifier (collaborative, content, context).
	Name() string

	// Recommend returns at most req.N candidates, best first.
	Recommend(ctx context.Context, req FilterRequest) FilterResult
}

// DataProvider reads the three input tables. It is implemented by the
// database layer.
type DataProvider interface {
	// LookupUser returns the user profile and whether it exists.
	LookupUser(ctx context.Context, userID string) (models.User, bool, error)

	// ListFoods returns the catalog in stable storage order.
	ListFoods(ctx context.Context) ([]models.FoodItem, error)

	// ListOrders returns all historical orders.
	ListOrders(ctx context.Context) ([]models.Order, error)
}

// Request is a hybrid recommendation request.
type Request struct {
	UserID    string `json:"user_id"`
	Weather   string `json:"weather"`
	Mood      string `json:"mood"`
	N         int    `json:"n"`
	RequestID string `json:"request_id,omitempty"`
}

// Response is a hybrid recommendation response.
type Response struct {
	// Items is the ranked list, at most N long.
	Items []models.Recommendation `json:"items"`

	// Metadata contains timing and diagnostic information.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains timing and diagnostic information.
type ResponseMetadata struct {
	RequestID string `json:"request_id"`
	UserID    string `json:"user_id"`
	Weather   string `json:"weather"`
	Mood      string `json:"mood"`

	// Strategy is the hybrid strategy that produced Items
	// (weighted_merge, catalog_head, placeholder).
	Strategy string `json:"strategy"`

	// FilterStrategies maps each filter to the strategy it ended on.
	FilterStrategies map[string]string `json:"filter_strategies"`

	// FiltersUsed lists filters that contributed at least one candidate.
	FiltersUsed []string `json:"filters_used"`

	LatencyMS int64     `json:"latency_ms"`
	Timestamp time.Time `json:"timestamp"`
}
