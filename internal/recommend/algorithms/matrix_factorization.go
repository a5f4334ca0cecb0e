// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package algorithms

import (
	"context"
	"math/rand"

	"github.com/tomtom215/foodaware/internal/models"
)

// MFConfig contains configuration for biased matrix factorization.
type MFConfig struct {
	// NumFactors is the dimension of the latent factor vectors.
	// Default: 100.
	NumFactors int

	// NumEpochs is the number of SGD passes over the ratings.
	// Default: 20.
	NumEpochs int

	// LearningRate is the SGD step size.
	// Default: 0.005.
	LearningRate float64

	// Regularization is the L2 penalty on biases and factors.
	// Default: 0.02.
	Regularization float64

	// InitStdDev is the standard deviation of the factor initialization.
	// Default: 0.1.
	InitStdDev float64

	// MinRating and MaxRating clip predictions.
	// Default: 1 and 5.
	MinRating float64
	MaxRating float64

	// Seed for reproducible training.
	// If 0, uses a default seed.
	Seed int64
}

// DefaultMFConfig returns the default factorization parameters.
func DefaultMFConfig() MFConfig {
	return MFConfig{
		NumFactors:     100,
		NumEpochs:      20,
		LearningRate:   0.005,
		Regularization: 0.02,
		InitStdDev:     0.1,
		MinRating:      1,
		MaxRating:      5,
		Seed:           42,
	}
}

func (c *MFConfig) applyDefaults() {
	d := DefaultMFConfig()
	if c.NumFactors <= 0 {
		c.NumFactors = d.NumFactors
	}
	if c.NumEpochs <= 0 {
		c.NumEpochs = d.NumEpochs
	}
	if c.LearningRate <= 0 {
		c.LearningRate = d.LearningRate
	}
	if c.Regularization <= 0 {
		c.Regularization = d.Regularization
	}
	if c.InitStdDev <= 0 {
		c.InitStdDev = d.InitStdDev
	}
	if c.MaxRating <= c.MinRating {
		c.MinRating, c.MaxRating = d.MinRating, d.MaxRating
	}
	if c.Seed == 0 {
		c.Seed = d.Seed
	}
}

// mfModel is a fitted biased latent factor model:
// r(u,i) = mu + b_u + b_i + p_u . q_i
type mfModel struct {
	config MFConfig

	globalMean  float64
	userBias    []float64
	itemBias    []float64
	userFactors [][]float64
	itemFactors [][]float64

	userIndex map[string]int
	itemIndex map[string]int

	// userItems holds the foods each user has ordered.
	userItems map[string]map[string]struct{}
}

type rating struct {
	user  int
	item  int
	value float64
}

// fitMF trains a model on all orders. Orders without a rating count as
// ImplicitRating.
//
//nolint:gocyclo // ML training loops are inherently branchy
func fitMF(ctx context.Context, cfg MFConfig, orders []models.Order) (*mfModel, error) {
	m := &mfModel{
		config:    cfg,
		userIndex: make(map[string]int),
		itemIndex: make(map[string]int),
		userItems: make(map[string]map[string]struct{}),
	}

	ratings := make([]rating, 0, len(orders))
	var sum float64
	for i := range orders {
		o := &orders[i]
		u, ok := m.userIndex[o.UserID]
		if !ok {
			u = len(m.userIndex)
			m.userIndex[o.UserID] = u
			m.userItems[o.UserID] = make(map[string]struct{})
		}
		it, ok := m.itemIndex[o.FoodID]
		if !ok {
			it = len(m.itemIndex)
			m.itemIndex[o.FoodID] = it
		}
		m.userItems[o.UserID][o.FoodID] = struct{}{}

		r := o.EffectiveRating()
		ratings = append(ratings, rating{user: u, item: it, value: r})
		sum += r
	}

	if len(ratings) == 0 {
		return m, nil
	}
	m.globalMean = sum / float64(len(ratings))

	//nolint:gosec // G404: math/rand is acceptable for ML initialization (not security)
	rng := rand.New(rand.NewSource(cfg.Seed))

	numFactors := cfg.NumFactors
	m.userBias = make([]float64, len(m.userIndex))
	m.itemBias = make([]float64, len(m.itemIndex))
	m.userFactors = initFactors(rng, len(m.userIndex), numFactors, cfg.InitStdDev)
	m.itemFactors = initFactors(rng, len(m.itemIndex), numFactors, cfg.InitStdDev)

	lr := cfg.LearningRate
	reg := cfg.Regularization

	for epoch := 0; epoch < cfg.NumEpochs; epoch++ {
		if ContextCancelled(ctx) {
			return nil, ctx.Err()
		}

		rng.Shuffle(len(ratings), func(i, j int) {
			ratings[i], ratings[j] = ratings[j], ratings[i]
		})

		for _, r := range ratings {
			pu := m.userFactors[r.user]
			qi := m.itemFactors[r.item]

			var dot float64
			for f := 0; f < numFactors; f++ {
				dot += pu[f] * qi[f]
			}
			err := r.value - (m.globalMean + m.userBias[r.user] + m.itemBias[r.item] + dot)

			m.userBias[r.user] += lr * (err - reg*m.userBias[r.user])
			m.itemBias[r.item] += lr * (err - reg*m.itemBias[r.item])

			for f := 0; f < numFactors; f++ {
				puf := pu[f]
				qif := qi[f]
				pu[f] += lr * (err*qif - reg*puf)
				qi[f] += lr * (err*puf - reg*qif)
			}
		}
	}

	return m, nil
}

func initFactors(rng *rand.Rand, rows, cols int, std float64) [][]float64 {
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
		for f := range out[i] {
			out[i][f] = rng.NormFloat64() * std
		}
	}
	return out
}

// knowsUser reports whether userID appeared in the training orders.
func (m *mfModel) knowsUser(userID string) bool {
	_, ok := m.userIndex[userID]
	return ok
}

// hasOrdered reports whether the user already ordered the food.
func (m *mfModel) hasOrdered(userID, foodID string) bool {
	_, ok := m.userItems[userID][foodID]
	return ok
}

// predict estimates a rating clipped to [MinRating, MaxRating]. Terms for
// a user or food absent from training are left out.
func (m *mfModel) predict(userID, foodID string) float64 {
	est := m.globalMean

	u, knownUser := m.userIndex[userID]
	i, knownItem := m.itemIndex[foodID]
	if knownUser {
		est += m.userBias[u]
	}
	if knownItem {
		est += m.itemBias[i]
	}
	if knownUser && knownItem {
		pu := m.userFactors[u]
		qi := m.itemFactors[i]
		for f := range pu {
			est += pu[f] * qi[f]
		}
	}

	if est < m.config.MinRating {
		est = m.config.MinRating
	}
	if est > m.config.MaxRating {
		est = m.config.MaxRating
	}
	return est
}
