// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package algorithms

import (
	"context"
	"hash/fnv"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/foodaware/internal/models"
	"github.com/tomtom215/foodaware/internal/recommend"
)

// BaseFilter provides the shared model cache for filters that fit a model
// from store contents. A fitted model is reused until the fingerprint of
// its inputs changes.
type BaseFilter struct {
	name        string
	logger      zerolog.Logger
	fingerprint uint64
	fitted      bool
	version     int
	lastFitAt   time.Time
	mu          sync.RWMutex
}

// NewBaseFilter creates a new base filter with the given name.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBaseFilter(name string, logger zerolog.Logger) BaseFilter {
	return BaseFilter{
		name:   name,
		logger: logger.With().Str("filter", name).Logger(),
	}
}

// Name returns the filter identifier.
func (b *BaseFilter) Name() string {
	return b.name
}

// Version returns how many times the model has been refit.
func (b *BaseFilter) Version() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// LastFitAt returns when the model was last fit.
func (b *BaseFilter) LastFitAt() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastFitAt
}

// isCurrent reports whether the cached model matches fp.
// Must be called while holding mu.
func (b *BaseFilter) isCurrent(fp uint64) bool {
	return b.fitted && b.fingerprint == fp
}

// markFitted records a new model fit.
// Must be called while holding the write lock.
func (b *BaseFilter) markFitted(fp uint64) {
	b.fitted = true
	b.fingerprint = fp
	b.version++
	b.lastFitAt = time.Now()
}

// ordersFingerprint hashes the fields that influence a fitted model.
func ordersFingerprint(orders []models.Order) uint64 {
	h := fnv.New64a()
	for i := range orders {
		o := &orders[i]
		_, _ = h.Write([]byte(o.UserID))
		_, _ = h.Write([]byte{0})
		_, _ = h.Write([]byte(o.FoodID))
		_, _ = h.Write([]byte{0})
		_, _ = h.Write([]byte(strconv.FormatFloat(o.EffectiveRating(), 'f', -1, 64)))
		_, _ = h.Write([]byte{1})
	}
	return h.Sum64()
}

// catalogFingerprint hashes the fields that feed the item documents.
func catalogFingerprint(foods []models.FoodItem) uint64 {
	h := fnv.New64a()
	for i := range foods {
		_, _ = h.Write([]byte(foods[i].FoodID))
		_, _ = h.Write([]byte{0})
		_, _ = h.Write([]byte(itemDocument(&foods[i])))
		_, _ = h.Write([]byte{1})
	}
	return h.Sum64()
}

// itemDocument is the text describing a food for TF-IDF.
func itemDocument(f *models.FoodItem) string {
	return f.Cuisine + " " + f.Category + " " + strings.Join(f.Tags, " ") + " " + f.Attributes
}

// emptyResult is returned for non-positive N without touching the store.
func emptyResult() recommend.FilterResult {
	return recommend.FilterResult{Candidates: []recommend.Candidate{}, Strategy: recommend.StrategyEmpty}
}

// Ensure all filters implement the interface.
var (
	_ recommend.Filter = (*Collaborative)(nil)
	_ recommend.Filter = (*ContentBased)(nil)
	_ recommend.Filter = (*ContextAware)(nil)
)

// ContextCancelled checks if the context has been canceled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
