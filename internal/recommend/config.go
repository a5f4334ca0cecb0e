// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package recommend

import (
	"fmt"
	"math"
	"time"
)

// Config contains all configuration for the hybrid engine.
type Config struct {
	// Weights defines the contribution of each filter to the combined score.
	Weights FilterWeights `json:"weights"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// Fallback contains the scores assigned by the degraded strategies.
	Fallback FallbackConfig `json:"fallback"`

	// Seed is mixed into every per-request RNG so identical requests
	// against an unchanged store rank identically.
	Seed int64 `json:"seed"`
}

// FilterWeights defines the linear weight applied to each filter's scores.
type FilterWeights struct {
	Collaborative float64 `json:"collaborative"`
	Content       float64 `json:"content"`
	Context       float64 `json:"context"`
}

// Sum returns the total weight.
func (w FilterWeights) Sum() float64 {
	return w.Collaborative + w.Content + w.Context
}

// Normalize returns a copy with weights rescaled to sum to 1.0.
func (w FilterWeights) Normalize() FilterWeights {
	sum := w.Sum()
	if sum == 0 {
		const equalWeight = 1.0 / 3.0
		return FilterWeights{Collaborative: equalWeight, Content: equalWeight, Context: equalWeight}
	}
	if sum == 1 {
		return w
	}
	return FilterWeights{
		Collaborative: w.Collaborative / sum,
		Content:       w.Content / sum,
		Context:       w.Context / sum,
	}
}

// ToMap returns the weights keyed by filter name.
func (w FilterWeights) ToMap() map[string]float64 {
	return map[string]float64{
		FilterCollaborative: w.Collaborative,
		FilterContent:       w.Content,
		FilterContext:       w.Context,
	}
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultN is used when a request leaves N unset at the transport layer.
	// Default: 10.
	DefaultN int `json:"default_n"`

	// MaxN caps the requested list length.
	// Default: 100.
	MaxN int `json:"max_n"`

	// CandidateMultiplier is how many candidates each filter is asked for,
	// relative to N.
	// Default: 2.
	CandidateMultiplier int `json:"candidate_multiplier"`

	// FilterTimeout bounds a single filter call.
	// Default: 10s.
	FilterTimeout time.Duration `json:"filter_timeout"`
}

// FallbackConfig contains scores for the hybrid fallback strategies.
type FallbackConfig struct {
	// CatalogScore is assigned to catalog-head items when every filter is empty.
	// Default: 0.5.
	CatalogScore float64 `json:"catalog_score"`

	// PlaceholderScore is assigned to synthetic items when the catalog is
	// empty or unreachable.
	// Default: 0.5.
	PlaceholderScore float64 `json:"placeholder_score"`

	// UnknownField fills name, cuisine or category when the catalog has no value.
	// Default: "Unknown".
	UnknownField string `json:"unknown_field"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights: FilterWeights{
			Collaborative: 0.4,
			Content:       0.3,
			Context:       0.3,
		},
		Limits: LimitsConfig{
			DefaultN:            10,
			MaxN:                100,
			CandidateMultiplier: 2,
			FilterTimeout:       10 * time.Second,
		},
		Fallback: FallbackConfig{
			CatalogScore:     0.5,
			PlaceholderScore: 0.5,
			UnknownField:     "Unknown",
		},
		Seed: 42,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	for name, w := range c.Weights.ToMap() {
		if w < 0 || math.IsNaN(w) {
			return fmt.Errorf("weights.%s must be non-negative, got %f", name, w)
		}
	}
	if c.Weights.Sum() == 0 {
		return fmt.Errorf("weights must not all be zero")
	}

	if c.Limits.DefaultN < 1 {
		return fmt.Errorf("limits.default_n must be positive, got %d", c.Limits.DefaultN)
	}
	if c.Limits.MaxN < c.Limits.DefaultN {
		return fmt.Errorf("limits.max_n must be >= limits.default_n, got %d < %d", c.Limits.MaxN, c.Limits.DefaultN)
	}
	if c.Limits.CandidateMultiplier < 1 {
		return fmt.Errorf("limits.candidate_multiplier must be positive, got %d", c.Limits.CandidateMultiplier)
	}
	if c.Limits.FilterTimeout <= 0 {
		return fmt.Errorf("limits.filter_timeout must be positive, got %v", c.Limits.FilterTimeout)
	}

	if c.Fallback.UnknownField == "" {
		return fmt.Errorf("fallback.unknown_field must not be empty")
	}

	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	// All nested structs hold value types only.
	clone := *c
	return &clone
}
