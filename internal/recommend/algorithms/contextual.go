// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package algorithms

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/foodaware/internal/models"
	"github.com/tomtom215/foodaware/internal/recommend"
)

// StrategyContextRules is the primary context strategy.
const StrategyContextRules = "context_rules"

// ContextConfig contains configuration for the context-aware filter.
type ContextConfig struct {
	// FillScore ranks random items used to top up a short list.
	// Default: 0.1.
	FillScore float64
}

// ContextAware ranks foods by how well their category suits the weather
// and mood. It surfaces no score.
type ContextAware struct {
	BaseFilter
	config ContextConfig
	data   recommend.DataProvider
}

// NewContextAware creates a context-aware filter reading from data.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewContextAware(data recommend.DataProvider, cfg ContextConfig, logger zerolog.Logger) *ContextAware {
	if cfg.FillScore <= 0 {
		cfg.FillScore = 0.1
	}
	return &ContextAware{
		BaseFilter: NewBaseFilter(recommend.FilterContext, logger),
		config:     cfg,
		data:       data,
	}
}

// ContextScore scores one food: +1 when its category suits the weather,
// +1 when it suits the mood, +0.5 when one of its tags is a mood category.
func ContextScore(f *models.FoodItem, weather, mood string) float64 {
	moodCats := MoodCategories(mood)
	var score float64
	if containsFold(WeatherCategories(weather), f.Category) {
		score++
	}
	if containsFold(moodCats, f.Category) {
		score++
	}
	for _, tag := range f.Tags {
		if containsFold(moodCats, tag) {
			score += 0.5
			break
		}
	}
	return score
}

func containsFold(set []string, v string) bool {
	for _, s := range set {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

// Recommend implements recommend.Filter.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (c *ContextAware) Recommend(ctx context.Context, req recommend.FilterRequest) recommend.FilterResult {
	if req.N <= 0 {
		return emptyResult()
	}

	return recommend.NewChain(c.name, c.logger,
		recommend.Strategy{
			Name: StrategyContextRules,
			Run: func(ctx context.Context) ([]recommend.Candidate, error) {
				return c.rankByRules(ctx, req)
			},
		},
		recommend.EmptyStrategy(),
	).Run(ctx)
}

type scoredFood struct {
	food  *models.FoodItem
	score float64
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (c *ContextAware) rankByRules(ctx context.Context, req recommend.FilterRequest) ([]recommend.Candidate, error) {
	if c.data == nil {
		return nil, recommend.ErrNoProvider
	}
	foods, err := c.data.ListFoods(ctx)
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	if len(foods) == 0 {
		return nil, fmt.Errorf("catalog: %w", recommend.ErrNoData)
	}

	var kept []scoredFood
	var rest []models.FoodItem
	for i := range foods {
		if s := ContextScore(&foods[i], req.Weather, req.Mood); s > 0 {
			kept = append(kept, scoredFood{food: &foods[i], score: s})
		} else {
			rest = append(rest, foods[i])
		}
	}

	if len(kept) < req.N {
		rng := recommend.RequestRand(req, c.name)
		fill := recommend.SampleFoods(rng, rest, req.N-len(kept))
		for i := range fill {
			kept = append(kept, scoredFood{food: &fill[i], score: c.config.FillScore})
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].score > kept[j].score
	})
	if len(kept) > req.N {
		kept = kept[:req.N]
	}

	out := make([]recommend.Candidate, len(kept))
	for i, k := range kept {
		out[i] = recommend.Candidate{
			FoodID:   k.food.FoodID,
			Name:     k.food.Name,
			Cuisine:  k.food.Cuisine,
			Category: k.food.Category,
		}
	}
	return out, nil
}
