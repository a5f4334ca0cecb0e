// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package algorithms

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/foodaware/internal/config"
	"github.com/tomtom215/foodaware/internal/models"
	"github.com/tomtom215/foodaware/internal/recommend"
)

func TestEngineConfig(t *testing.T) {
	t.Parallel()

	if got := EngineConfig(nil); got.Weights != recommend.DefaultConfig().Weights {
		t.Errorf("nil config weights = %+v", got.Weights)
	}

	ec := EngineConfig(&config.RecommendConfig{
		WeightCollaborative: 0.5,
		WeightContent:       0.25,
		WeightContext:       0.25,
		DefaultN:            5,
		MaxN:                50,
		FilterTimeout:       2 * time.Second,
		Seed:                7,
	})
	if ec.Weights.Collaborative != 0.5 || ec.Limits.DefaultN != 5 || ec.Limits.MaxN != 50 {
		t.Errorf("EngineConfig() = %+v", ec)
	}
	if ec.Limits.FilterTimeout != 2*time.Second || ec.Seed != 7 {
		t.Errorf("timeout/seed = %v/%d", ec.Limits.FilterTimeout, ec.Seed)
	}
	if ec.Limits.CandidateMultiplier != 2 {
		t.Errorf("zero multiplier should keep default, got %d", ec.Limits.CandidateMultiplier)
	}
}

func TestBuildEngine_RegistersAllFilters(t *testing.T) {
	t.Parallel()

	data := &mockDataProvider{foods: sampleFoods(), orders: sampleOrders()}
	engine, err := BuildEngine(&config.RecommendConfig{MFFactors: 4, MFEpochs: 5}, data, zerolog.Nop())
	if err != nil {
		t.Fatalf("BuildEngine() error = %v", err)
	}

	ctx := context.Background()
	for _, name := range []string{recommend.FilterCollaborative, recommend.FilterContent, recommend.FilterContext} {
		if _, err := engine.RecommendFilter(ctx, name, recommend.Request{UserID: "u1", Weather: "Sunny", Mood: "Happy", N: 3}); err != nil {
			t.Errorf("RecommendFilter(%s) error = %v", name, err)
		}
	}

	resp := engine.Recommend(ctx, recommend.Request{UserID: "u1", Weather: "Rainy", Mood: "Stressed", N: 4})
	if len(resp.Items) == 0 || len(resp.Items) > 4 {
		t.Errorf("items = %d, want 1..4", len(resp.Items))
	}
}

// The new user has no orders, so the collaborative filter falls back to a
// seeded random sample whose weight can outrank the context signal. What
// holds is that the context filter puts f3 first and the hybrid keeps it.
func TestBuildEngine_RainyStressedNewUser(t *testing.T) {
	t.Parallel()

	foods := []models.FoodItem{
		{FoodID: "f1", Name: "Tiramisu", Cuisine: "Italian", Category: "Dessert"},
		{FoodID: "f2", Name: "Miso Soup", Cuisine: "Japanese", Category: "Soup"},
		{FoodID: "f3", Name: "Butter Chicken", Cuisine: "Indian", Category: "Main Course"},
	}
	data := &mockDataProvider{
		foods:  foods,
		orders: []models.Order{{OrderID: "o1", UserID: "regular", FoodID: "f2", Rating: intPtr(4)}},
	}
	engine, err := BuildEngine(&config.RecommendConfig{MFFactors: 4, MFEpochs: 5}, data, zerolog.Nop())
	if err != nil {
		t.Fatalf("BuildEngine() error = %v", err)
	}

	if got := ContextScore(&foods[2], WeatherRainy, MoodStressed); got != 2 {
		t.Errorf("ContextScore(f3) = %v, want 2", got)
	}
	if got := ContextScore(&foods[0], WeatherRainy, MoodStressed); got != 0 {
		t.Errorf("ContextScore(f1) = %v, want 0", got)
	}

	ctx := context.Background()
	for _, user := range []string{"newuser0", "newuser9", "newuser17"} {
		req := recommend.Request{UserID: user, Weather: WeatherRainy, Mood: MoodStressed, N: 3}

		res, err := engine.RecommendFilter(ctx, recommend.FilterContext, req)
		if err != nil {
			t.Fatalf("RecommendFilter(context) error = %v", err)
		}
		if len(res.Candidates) == 0 || res.Candidates[0].FoodID != "f3" {
			t.Errorf("%s: context filter order = %+v, want f3 first", user, res.Candidates)
		}

		resp := engine.Recommend(ctx, req)
		if resp.Metadata.Strategy != recommend.StrategyWeightedMerge {
			t.Errorf("%s: strategy = %q", user, resp.Metadata.Strategy)
		}
		got := make(map[string]bool, len(resp.Items))
		for _, it := range resp.Items {
			got[it.FoodID] = true
		}
		if len(resp.Items) != 3 || !got["f1"] || !got["f2"] || !got["f3"] {
			t.Errorf("%s: hybrid items = %+v, want f1, f2 and f3", user, resp.Items)
		}
	}
}

func TestBuildEngine_Deterministic(t *testing.T) {
	t.Parallel()

	data := &mockDataProvider{foods: sampleFoods(), orders: sampleOrders()}
	engine, err := BuildEngine(&config.RecommendConfig{MFFactors: 4, MFEpochs: 5}, data, zerolog.Nop())
	if err != nil {
		t.Fatalf("BuildEngine() error = %v", err)
	}

	tests := []struct {
		name string
		req  recommend.Request
	}{
		{"known user", recommend.Request{UserID: "u1", Weather: "Sunny", Mood: "Happy", N: 4}},
		{"unknown user", recommend.Request{UserID: "ghost", Weather: "Rainy", Mood: "Sad", N: 4}},
		{"unknown context", recommend.Request{UserID: "ghost", Weather: "Foggy", Mood: "Bored", N: 4}},
	}

	ctx := context.Background()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := engine.Recommend(ctx, tt.req).Items
			if len(first) == 0 {
				t.Fatal("expected items")
			}
			for i := 0; i < 20; i++ {
				if again := engine.Recommend(ctx, tt.req).Items; !reflect.DeepEqual(first, again) {
					t.Fatalf("call %d = %+v, want %+v", i, again, first)
				}
			}
		})
	}
}
