// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/tomtom215/foodaware/internal/models"
)

// EvalHybrid labels the combined ranking in evaluation results.
const EvalHybrid = "hybrid"

// EvalResult holds micro-averaged ranking metrics for one recommender.
type EvalResult struct {
	Name           string  `json:"name"`
	Precision      float64 `json:"precision"`
	Recall         float64 `json:"recall"`
	F1             float64 `json:"f1"`
	TruePositives  int     `json:"true_positives"`
	FalsePositives int     `json:"false_positives"`
	FalseNegatives int     `json:"false_negatives"`
	Users          int     `json:"users"`
}

// SplitOrders sorts orders by timestamp and returns the first trainFraction
// as training data and the rest as test data.
func SplitOrders(orders []models.Order, trainFraction float64) (train, test []models.Order) {
	sorted := make([]models.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	cut := int(float64(len(sorted)) * trainFraction)
	return sorted[:cut], sorted[cut:]
}

// trainView serves a fixed order set in place of the store's orders.
type trainView struct {
	DataProvider
	orders []models.Order
}

func (v *trainView) ListOrders(context.Context) ([]models.Order, error) {
	return v.orders, nil
}

// WithOrders returns a provider that reads users and foods from dp but
// returns orders instead of the stored ones.
func WithOrders(dp DataProvider, orders []models.Order) DataProvider {
	return &trainView{DataProvider: dp, orders: orders}
}

// evalCase is one test user with their context and ground truth.
type evalCase struct {
	userID  string
	weather string
	mood    string
	truth   map[string]struct{}
}

// buildCases groups test orders per user. Context comes from each user's
// latest test order.
func buildCases(test []models.Order) []evalCase {
	byUser := make(map[string]*evalCase)
	latest := make(map[string]int)
	var order []string

	for i := range test {
		o := &test[i]
		c, ok := byUser[o.UserID]
		if !ok {
			c = &evalCase{userID: o.UserID, truth: make(map[string]struct{})}
			byUser[o.UserID] = c
			order = append(order, o.UserID)
			latest[o.UserID] = i
		}
		c.truth[o.FoodID] = struct{}{}
		if !test[i].Timestamp.Before(test[latest[o.UserID]].Timestamp) {
			latest[o.UserID] = i
		}
	}

	sort.Strings(order)
	out := make([]evalCase, 0, len(order))
	for _, id := range order {
		c := byUser[id]
		last := &test[latest[id]]
		c.weather, c.mood = last.Weather, last.Mood
		out = append(out, *c)
	}
	return out
}

// Evaluate scores every registered filter and the hybrid ranking against
// the test orders at cut-off k. The engine should read a provider built
// with WithOrders over the training split.
func (e *Engine) Evaluate(ctx context.Context, test []models.Order, k int) ([]EvalResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}

	cases := buildCases(test)
	filters := e.getFilters()
	results := make([]EvalResult, 0, len(filters)+1)

	for _, f := range filters {
		acc := EvalResult{Name: f.Name()}
		for _, c := range cases {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			res, err := e.RecommendFilter(ctx, f.Name(), Request{UserID: c.userID, Weather: c.weather, Mood: c.mood, N: k})
			if err != nil {
				return nil, err
			}
			ids := make([]string, len(res.Candidates))
			for i, cand := range res.Candidates {
				ids[i] = cand.FoodID
			}
			acc.add(ids, c.truth)
		}
		results = append(results, acc.finish())
	}

	hybrid := EvalResult{Name: EvalHybrid}
	for _, c := range cases {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		resp := e.Recommend(ctx, Request{UserID: c.userID, Weather: c.weather, Mood: c.mood, N: k})
		ids := make([]string, len(resp.Items))
		for i, it := range resp.Items {
			ids[i] = it.FoodID
		}
		hybrid.add(ids, c.truth)
	}
	results = append(results, hybrid.finish())

	e.logger.Info().
		Int("test_orders", len(test)).
		Int("test_users", len(cases)).
		Int("k", k).
		Msg("evaluation complete")
	return results, nil
}

func (r *EvalResult) add(recommended []string, truth map[string]struct{}) {
	tp := 0
	seen := make(map[string]struct{}, len(recommended))
	for _, id := range recommended {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := truth[id]; ok {
			tp++
		}
	}
	r.TruePositives += tp
	r.FalsePositives += len(seen) - tp
	r.FalseNegatives += len(truth) - tp
	r.Users++
}

func (r EvalResult) finish() EvalResult {
	if d := r.TruePositives + r.FalsePositives; d > 0 {
		r.Precision = round2(float64(r.TruePositives) / float64(d))
	}
	if d := r.TruePositives + r.FalseNegatives; d > 0 {
		r.Recall = round2(float64(r.TruePositives) / float64(d))
	}
	p := float64(r.TruePositives) / math.Max(1, float64(r.TruePositives+r.FalsePositives))
	rc := float64(r.TruePositives) / math.Max(1, float64(r.TruePositives+r.FalseNegatives))
	if p+rc > 0 {
		r.F1 = round2(2 * p * rc / (p + rc))
	}
	return r
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
