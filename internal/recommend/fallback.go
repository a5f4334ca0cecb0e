// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package recommend

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Strategy names shared by several chains.
const (
	StrategyEmpty        = "empty"
	StrategyRandomSample = "random_sample"
	StrategyNone         = "none"
)

// Strategy is one step of a fallback chain.
type Strategy struct {
	// Name identifies the strategy in logs and response metadata.
	Name string

	// Handles reports whether this strategy should run after a previous
	// strategy failed with err. It is ignored for the first strategy.
	// A nil Handles accepts every error.
	Handles func(err error) bool

	// Run produces candidates or an error that selects the next strategy.
	Run func(ctx context.Context) ([]Candidate, error)
}

// Chain is an ordered list of strategies. The first strategy always runs;
// each later one runs only if it handles the error of the last failure.
// The first success wins.
type Chain struct {
	name       string
	strategies []Strategy
	logger     zerolog.Logger
}

// NewChain creates a chain named after the filter that owns it.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewChain(name string, logger zerolog.Logger, strategies ...Strategy) *Chain {
	return &Chain{
		name:       name,
		strategies: strategies,
		logger:     logger,
	}
}

// On returns a Handles func matching any of targets via errors.Is.
func On(targets ...error) func(error) bool {
	return func(err error) bool {
		for _, t := range targets {
			if errors.Is(err, t) {
				return true
			}
		}
		return false
	}
}

// EmptyStrategy is the terminal strategy of every filter chain.
func EmptyStrategy() Strategy {
	return Strategy{
		Name: StrategyEmpty,
		Run: func(context.Context) ([]Candidate, error) {
			return []Candidate{}, nil
		},
	}
}

// Run executes the chain. It never fails: when every strategy errors the
// result is empty with Strategy set to "none".
func (c *Chain) Run(ctx context.Context) FilterResult {
	var lastErr error
	for i, s := range c.strategies {
		if i > 0 && s.Handles != nil && !s.Handles(lastErr) {
			continue
		}

		out, err := runStrategy(ctx, s)
		if err == nil {
			if i > 0 {
				c.logger.Debug().
					Str("chain", c.name).
					Str("strategy", s.Name).
					AnErr("cause", lastErr).
					Msg("fallback strategy used")
			}
			return FilterResult{Candidates: out, Strategy: s.Name}
		}

		lastErr = err
		c.logger.Debug().
			Str("chain", c.name).
			Str("strategy", s.Name).
			Err(err).
			Msg("strategy failed")
	}

	c.logger.Warn().
		Str("chain", c.name).
		Err(lastErr).
		Msg("all strategies failed")
	return FilterResult{Candidates: []Candidate{}, Strategy: StrategyNone}
}

// Names returns the strategy names in order.
func (c *Chain) Names() []string {
	names := make([]string, len(c.strategies))
	for i, s := range c.strategies {
		names[i] = s.Name
	}
	return names
}

// runStrategy turns a panic inside a strategy into an error.
func runStrategy(ctx context.Context, s Strategy) (out []Candidate, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("strategy %s panicked: %v", s.Name, r)
		}
	}()
	if out, err = s.Run(ctx); err == nil && out == nil {
		out = []Candidate{}
	}
	return out, err
}
