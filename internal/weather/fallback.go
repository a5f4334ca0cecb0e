// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package weather

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// FallbackProvider answers from primary and switches to fallback when
// primary fails. An empty city is still rejected.
type FallbackProvider struct {
	primary  Provider
	fallback Provider
	logger   zerolog.Logger
}

// NewFallbackProvider creates a two-step provider.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewFallbackProvider(primary, fallback Provider, logger zerolog.Logger) *FallbackProvider {
	return &FallbackProvider{
		primary:  primary,
		fallback: fallback,
		logger:   logger.With().Str("component", "weather").Logger(),
	}
}

// Current implements Provider.
func (p *FallbackProvider) Current(ctx context.Context, city string) (Report, error) {
	r, err := p.primary.Current(ctx, city)
	if err == nil {
		return r, nil
	}
	if errors.Is(err, ErrEmptyCity) {
		return Report{}, err
	}
	p.logger.Warn().Err(err).Str("city", city).Msg("weather lookup failed, using simulated conditions")
	return p.fallback.Current(ctx, city)
}
