// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package recommend

import (
	"hash/fnv"
	"math/rand"
	"sort"
	"strconv"

	"github.com/tomtom215/foodaware/internal/models"
)

// RequestRand returns an RNG seeded from the request and the filter name.
// Fallback strategies draw from it so repeated requests stay identical.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func RequestRand(req FilterRequest, filter string) *rand.Rand {
	h := fnv.New64a()
	for _, part := range []string{req.UserID, req.Weather, req.Mood, strconv.Itoa(req.N), filter} {
		_, _ = h.Write([]byte(part))
		_, _ = h.Write([]byte{0})
	}
	return rand.New(rand.NewSource(req.Seed ^ int64(h.Sum64()))) //nolint:gosec // math/rand is fine for fallback sampling
}

// Uniform draws from [lo, hi).
func Uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// SampleFoods returns up to n distinct foods in random order.
func SampleFoods(rng *rand.Rand, foods []models.FoodItem, n int) []models.FoodItem {
	if n <= 0 || len(foods) == 0 {
		return []models.FoodItem{}
	}
	if n > len(foods) {
		n = len(foods)
	}
	perm := rng.Perm(len(foods))
	out := make([]models.FoodItem, n)
	for i := 0; i < n; i++ {
		out[i] = foods[perm[i]]
	}
	return out
}

// CandidateFromFood copies catalog fields into a candidate.
func CandidateFromFood(f *models.FoodItem, score float64) Candidate {
	return Candidate{
		FoodID:   f.FoodID,
		Name:     f.Name,
		Cuisine:  f.Cuisine,
		Category: f.Category,
		Score:    score,
		HasScore: true,
	}
}

// SortByScore sorts descending by score. Ties keep their input order.
func SortByScore(c []Candidate) {
	sort.SliceStable(c, func(i, j int) bool {
		return c[i].Score > c[j].Score
	})
}

// TopN truncates c to at most n entries.
func TopN(c []Candidate, n int) []Candidate {
	if n <= 0 {
		return []Candidate{}
	}
	if len(c) > n {
		return c[:n]
	}
	return c
}
