// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package algorithms

import (
	"context"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/foodaware/internal/recommend"
)

func smallMF() CollaborativeConfig {
	return CollaborativeConfig{MF: MFConfig{NumFactors: 8, NumEpochs: 10}}
}

func TestCollaborative_KnownUser(t *testing.T) {
	t.Parallel()

	dp := &mockDataProvider{foods: sampleFoods(), orders: sampleOrders()}
	cf := NewCollaborative(dp, smallMF(), zerolog.Nop())

	res := cf.Recommend(context.Background(), recommend.FilterRequest{UserID: "u1", N: 10, Seed: 42})
	if res.Strategy != StrategyMatrixFactorization {
		t.Fatalf("strategy = %q", res.Strategy)
	}
	if len(res.Candidates) != 4 {
		t.Fatalf("len = %d, want 4 unordered foods", len(res.Candidates))
	}
	for i, c := range res.Candidates {
		if c.FoodID == "f1" || c.FoodID == "f2" {
			t.Errorf("already ordered food %s recommended", c.FoodID)
		}
		if c.Score < 1 || c.Score > 5 {
			t.Errorf("score %v outside [1,5]", c.Score)
		}
		if i > 0 && c.Score > res.Candidates[i-1].Score {
			t.Error("candidates not sorted descending")
		}
	}
}

func TestCollaborative_TopN(t *testing.T) {
	t.Parallel()

	dp := &mockDataProvider{foods: sampleFoods(), orders: sampleOrders()}
	cf := NewCollaborative(dp, smallMF(), zerolog.Nop())

	for _, n := range []int{0, 1, 2, 100} {
		res := cf.Recommend(context.Background(), recommend.FilterRequest{UserID: "u2", N: n})
		if len(res.Candidates) > n {
			t.Errorf("n=%d: got %d", n, len(res.Candidates))
		}
	}
}

func TestCollaborative_UnknownUserRandomSample(t *testing.T) {
	t.Parallel()

	dp := &mockDataProvider{foods: sampleFoods(), orders: sampleOrders()}
	cf := NewCollaborative(dp, smallMF(), zerolog.Nop())
	req := recommend.FilterRequest{UserID: "stranger", N: 3, Seed: 42}

	res := cf.Recommend(context.Background(), req)
	if res.Strategy != recommend.StrategyRandomSample {
		t.Fatalf("strategy = %q", res.Strategy)
	}
	if len(res.Candidates) != 3 {
		t.Fatalf("len = %d, want 3", len(res.Candidates))
	}
	for _, c := range res.Candidates {
		if c.Score < 3 || c.Score > 5 {
			t.Errorf("score %v outside [3,5]", c.Score)
		}
	}

	again := cf.Recommend(context.Background(), req)
	if !reflect.DeepEqual(res.Candidates, again.Candidates) {
		t.Error("random sample is not reproducible")
	}
}

func TestCollaborative_Degraded(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		dp   *mockDataProvider
	}{
		{"no orders", &mockDataProvider{foods: sampleFoods()}},
		{"orders unreadable", &mockDataProvider{foods: sampleFoods(), ordersErr: errStore}},
		{"foods unreadable", &mockDataProvider{orders: sampleOrders(), foodsErr: errStore}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cf := NewCollaborative(tt.dp, smallMF(), zerolog.Nop())
			res := cf.Recommend(context.Background(), recommend.FilterRequest{UserID: "u1", N: 5})
			if len(res.Candidates) != 0 {
				t.Errorf("expected empty, got %v", res.Candidates)
			}
		})
	}
}

func TestCollaborative_ModelCached(t *testing.T) {
	t.Parallel()

	dp := &mockDataProvider{foods: sampleFoods(), orders: sampleOrders()}
	cf := NewCollaborative(dp, smallMF(), zerolog.Nop())
	req := recommend.FilterRequest{UserID: "u1", N: 5}

	cf.Recommend(context.Background(), req)
	cf.Recommend(context.Background(), req)
	if cf.Version() != 1 {
		t.Errorf("version = %d, want 1 fit for unchanged orders", cf.Version())
	}

	dp.orders = append(sampleOrders(), sampleOrders()[0])
	cf.Recommend(context.Background(), req)
	if cf.Version() != 2 {
		t.Errorf("version = %d, want refit after new order", cf.Version())
	}
}

func TestFitMF_LearnsPreference(t *testing.T) {
	t.Parallel()

	cfg := DefaultMFConfig()
	cfg.NumFactors = 4
	cfg.NumEpochs = 200
	cfg.LearningRate = 0.05
	orders := sampleOrders()

	m, err := fitMF(context.Background(), cfg, orders)
	if err != nil {
		t.Fatal(err)
	}
	if !m.knowsUser("u2") || m.knowsUser("nobody") {
		t.Error("user index wrong")
	}
	if hi, lo := m.predict("u2", "f1"), m.predict("u3", "f5"); hi <= lo {
		t.Errorf("predict(u2,f1)=%v should exceed predict(u3,f5)=%v", hi, lo)
	}
	if got := m.predict("nobody", "unseen"); got < 1 || got > 5 {
		t.Errorf("cold prediction %v outside range", got)
	}
}

func TestFitMF_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := fitMF(ctx, DefaultMFConfig(), sampleOrders()); err == nil {
		t.Error("expected cancellation error")
	}
}
