// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package weather

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/tomtom215/foodaware/internal/metrics"
)

// tempRange is the plausible temperature span for a condition, in Celsius.
type tempRange struct {
	condition string
	lo, hi    float64
}

var randomConditions = []tempRange{
	{Sunny, 20, 32},
	{Rainy, 10, 22},
	{Cloudy, 15, 25},
	{PartlyCloudy, 18, 28},
	{Windy, 12, 24},
}

// RandomProvider invents plausible conditions. It never fails.
type RandomProvider struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomProvider creates a provider seeded with seed.
func NewRandomProvider(seed int64) *RandomProvider {
	return &RandomProvider{
		rng: rand.New(rand.NewSource(seed)), //nolint:gosec // simulated weather needs no crypto randomness
	}
}

// Current implements Provider.
func (p *RandomProvider) Current(_ context.Context, city string) (Report, error) {
	p.mu.Lock()
	tr := randomConditions[p.rng.Intn(len(randomConditions))]
	temp := tr.lo + p.rng.Float64()*(tr.hi-tr.lo)
	p.mu.Unlock()

	metrics.RecordWeatherLookup(SourceRandom, nil)
	return Report{
		City:      city,
		Condition: tr.condition,
		TempC:     roundTenth(temp),
		Source:    SourceRandom,
		FetchedAt: time.Now().UTC(),
	}, nil
}
