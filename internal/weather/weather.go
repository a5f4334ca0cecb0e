// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

// Package weather looks up the current conditions for a city. The
// OpenWeatherMap client is rate limited, guarded by a circuit breaker and
// cached in Badger; a random provider stands in when it is unavailable.
package weather

import (
	"context"
	"errors"
	"io"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/foodaware/internal/config"
)

// Conditions understood by the context-aware rules.
const (
	Sunny        = "Sunny"
	Rainy        = "Rainy"
	Cloudy       = "Cloudy"
	PartlyCloudy = "Partly Cloudy"
	Windy        = "Windy"
	Snowy        = "Snowy"
)

// Report sources.
const (
	SourceOpenWeather = "openweather"
	SourceRandom      = "random"
	SourceCache       = "cache"
)

// ErrEmptyCity is returned when no city is given.
var ErrEmptyCity = errors.New("city is required")

// Report is the current weather for a city.
type Report struct {
	City      string    `json:"city"`
	Condition string    `json:"condition"`
	TempC     float64   `json:"temperature_c"`
	Source    string    `json:"source"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Provider returns current conditions.
type Provider interface {
	Current(ctx context.Context, city string) (Report, error)
}

// MapCondition translates an OpenWeatherMap "main" group into the rule
// vocabulary. Unknown groups pass through unchanged.
func MapCondition(main string) string {
	switch main {
	case "Clear":
		return Sunny
	case "Rain", "Drizzle", "Thunderstorm":
		return Rainy
	case "Snow":
		return Snowy
	case "Clouds":
		return Cloudy
	case "Squall", "Tornado":
		return Windy
	default:
		return main
	}
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// New assembles the provider cfg selects. With OpenWeatherMap configured,
// lookups go through the cache (when enabled) and fall back to random
// conditions on failure. The closer releases the cache and is never nil.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(cfg *config.WeatherConfig, seed int64, logger zerolog.Logger) (Provider, io.Closer, error) {
	random := NewRandomProvider(seed)
	if cfg.Provider != config.WeatherProviderOpenWeather {
		return random, nopCloser{}, nil
	}

	var primary Provider = NewOpenWeatherClient(cfg, logger)
	var closer io.Closer = nopCloser{}
	if cfg.CacheEnabled {
		cached, err := NewCachedProvider(primary, cfg.CachePath, cfg.CacheTTL, logger)
		if err != nil {
			return nil, nil, err
		}
		primary, closer = cached, cached
	}
	return NewFallbackProvider(primary, random, logger), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
