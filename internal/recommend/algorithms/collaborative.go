// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package algorithms

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/tomtom215/foodaware/internal/models"
	"github.com/tomtom215/foodaware/internal/recommend"
)

// StrategyMatrixFactorization is the primary collaborative strategy.
const StrategyMatrixFactorization = "matrix_factorization"

// CollaborativeConfig contains configuration for the collaborative filter.
type CollaborativeConfig struct {
	MF MFConfig

	// UnknownScoreMin and UnknownScoreMax bound the random scores given to
	// users without order history.
	// Default: 3 and 5.
	UnknownScoreMin float64
	UnknownScoreMax float64
}

// Collaborative recommends foods the user has not ordered, ranked by the
// rating a matrix factorization model predicts for them.
type Collaborative struct {
	BaseFilter
	config CollaborativeConfig
	data   recommend.DataProvider
	model  *mfModel
}

// NewCollaborative creates a collaborative filter reading from data.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCollaborative(data recommend.DataProvider, cfg CollaborativeConfig, logger zerolog.Logger) *Collaborative {
	cfg.MF.applyDefaults()
	if cfg.UnknownScoreMax <= cfg.UnknownScoreMin {
		cfg.UnknownScoreMin, cfg.UnknownScoreMax = 3, 5
	}

	return &Collaborative{
		BaseFilter: NewBaseFilter(recommend.FilterCollaborative, logger),
		config:     cfg,
		data:       data,
	}
}

// Recommend implements recommend.Filter.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (c *Collaborative) Recommend(ctx context.Context, req recommend.FilterRequest) recommend.FilterResult {
	if req.N <= 0 {
		return emptyResult()
	}

	return recommend.NewChain(c.name, c.logger,
		recommend.Strategy{
			Name: StrategyMatrixFactorization,
			Run: func(ctx context.Context) ([]recommend.Candidate, error) {
				return c.predictUnordered(ctx, req)
			},
		},
		recommend.Strategy{
			Name:    recommend.StrategyRandomSample,
			Handles: recommend.On(recommend.ErrUnknownUser),
			Run: func(ctx context.Context) ([]recommend.Candidate, error) {
				return c.randomSample(ctx, req)
			},
		},
		recommend.EmptyStrategy(),
	).Run(ctx)
}

// predictUnordered scores every catalog item the user has not ordered.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (c *Collaborative) predictUnordered(ctx context.Context, req recommend.FilterRequest) ([]recommend.Candidate, error) {
	if c.data == nil {
		return nil, recommend.ErrNoProvider
	}

	orders, err := c.data.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if len(orders) == 0 {
		return nil, fmt.Errorf("orders: %w", recommend.ErrNoData)
	}

	foods, err := c.data.ListFoods(ctx)
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}

	model, err := c.fittedModel(ctx, orders)
	if err != nil {
		return nil, fmt.Errorf("fit model: %w", err)
	}

	// Fitted models are immutable.
	if !model.knowsUser(req.UserID) {
		return nil, fmt.Errorf("user %q: %w", req.UserID, recommend.ErrUnknownUser)
	}

	out := make([]recommend.Candidate, 0, len(foods))
	for i := range foods {
		if model.hasOrdered(req.UserID, foods[i].FoodID) {
			continue
		}
		out = append(out, recommend.Candidate{
			FoodID:   foods[i].FoodID,
			Score:    model.predict(req.UserID, foods[i].FoodID),
			HasScore: true,
		})
	}

	sortByScoreThenID(out)
	return recommend.TopN(out, req.N), nil
}

// fittedModel returns the cached model, refitting when orders changed.
func (c *Collaborative) fittedModel(ctx context.Context, orders []models.Order) (*mfModel, error) {
	fp := ordersFingerprint(orders)

	c.mu.RLock()
	if c.isCurrent(fp) {
		m := c.model
		c.mu.RUnlock()
		return m, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.isCurrent(fp) {
		return c.model, nil
	}

	m, err := fitMF(ctx, c.config.MF, orders)
	if err != nil {
		return nil, err
	}
	c.model = m
	c.markFitted(fp)
	c.logger.Debug().
		Int("orders", len(orders)).
		Int("users", len(m.userIndex)).
		Int("foods", len(m.itemIndex)).
		Int("version", c.version).
		Msg("matrix factorization fitted")
	return m, nil
}

// randomSample serves users without history.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (c *Collaborative) randomSample(ctx context.Context, req recommend.FilterRequest) ([]recommend.Candidate, error) {
	foods, err := c.data.ListFoods(ctx)
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	if len(foods) == 0 {
		return nil, fmt.Errorf("catalog: %w", recommend.ErrNoData)
	}

	rng := recommend.RequestRand(req, c.name)
	sample := recommend.SampleFoods(rng, foods, req.N)
	out := make([]recommend.Candidate, len(sample))
	for i := range sample {
		out[i] = recommend.Candidate{
			FoodID:   sample[i].FoodID,
			Score:    recommend.Uniform(rng, c.config.UnknownScoreMin, c.config.UnknownScoreMax),
			HasScore: true,
		}
	}
	sortByScoreThenID(out)
	return out, nil
}

func sortByScoreThenID(c []recommend.Candidate) {
	sort.Slice(c, func(i, j int) bool {
		if c[i].Score != c[j].Score {
			return c[i].Score > c[j].Score
		}
		return c[i].FoodID < c[j].FoodID
	})
}
