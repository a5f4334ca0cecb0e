// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package recommend

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/foodaware/internal/metrics"
	"github.com/tomtom215/foodaware/internal/models"
)

// mockDataProvider implements DataProvider for testing.
type mockDataProvider struct {
	users    map[string]models.User
	foods    []models.FoodItem
	orders   []models.Order
	foodsErr error
}

func (m *mockDataProvider) LookupUser(_ context.Context, userID string) (models.User, bool, error) {
	u, ok := m.users[userID]
	return u, ok, nil
}

func (m *mockDataProvider) ListFoods(context.Context) ([]models.FoodItem, error) {
	if m.foodsErr != nil {
		return nil, m.foodsErr
	}
	return m.foods, nil
}

func (m *mockDataProvider) ListOrders(context.Context) ([]models.Order, error) {
	return m.orders, nil
}

// mockFilter implements Filter for testing.
type mockFilter struct {
	name       string
	candidates []Candidate
	panics     bool
	delay      time.Duration
	lastReq    FilterRequest
}

func (m *mockFilter) Name() string { return m.name }

func (m *mockFilter) Recommend(ctx context.Context, req FilterRequest) FilterResult {
	m.lastReq = req
	if m.panics {
		panic("boom")
	}
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return FilterResult{Candidates: []Candidate{}, Strategy: StrategyEmpty}
		}
	}
	return FilterResult{Candidates: TopN(m.candidates, req.N), Strategy: "mock"}
}

func testCatalog() []models.FoodItem {
	return []models.FoodItem{
		{FoodID: "f1", Name: "Tiramisu", Cuisine: "Italian", Category: "Dessert"},
		{FoodID: "f2", Name: "Miso Soup", Cuisine: "Japanese", Category: "Soup"},
		{FoodID: "f3", Name: "Butter Chicken", Cuisine: "Indian", Category: "Main Course"},
	}
}

func newTestEngine(t *testing.T, dp DataProvider, filters ...Filter) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if dp != nil {
		e.SetDataProvider(dp)
	}
	for _, f := range filters {
		e.RegisterFilter(f)
	}
	return e
}

func TestNewEngine(t *testing.T) {
	t.Parallel()

	t.Run("nil config uses defaults", func(t *testing.T) {
		e, err := NewEngine(nil, zerolog.Nop())
		if err != nil {
			t.Fatalf("NewEngine(nil) error = %v", err)
		}
		if e.GetConfig().Weights != DefaultConfig().Weights {
			t.Error("expected default weights")
		}
	})

	t.Run("invalid config rejected", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Limits.FilterTimeout = 0
		if _, err := NewEngine(cfg, zerolog.Nop()); err == nil {
			t.Error("expected error for invalid config")
		}
	})
}

func TestEngine_WeightedMerge(t *testing.T) {
	t.Parallel()

	dp := &mockDataProvider{foods: testCatalog()}
	cf := &mockFilter{name: FilterCollaborative, candidates: []Candidate{{FoodID: "f1", Score: 1, HasScore: true}}}
	cb := &mockFilter{name: FilterContent, candidates: []Candidate{{FoodID: "f1", Score: 1, HasScore: true}}}
	ca := &mockFilter{name: FilterContext, candidates: []Candidate{{FoodID: "f1"}}}
	e := newTestEngine(t, dp, ca, cb, cf)

	resp := e.Recommend(context.Background(), Request{UserID: "u1", N: 5})

	if resp.Metadata.Strategy != StrategyWeightedMerge {
		t.Fatalf("strategy = %q, want %q", resp.Metadata.Strategy, StrategyWeightedMerge)
	}
	if len(resp.Items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(resp.Items))
	}
	if got := resp.Items[0].Score; got != 1.0 {
		t.Errorf("combined score = %v, want exactly 1.0", got)
	}
	if resp.Items[0].Name != "Tiramisu" || resp.Items[0].Category != "Dessert" {
		t.Errorf("backfill failed: %+v", resp.Items[0])
	}
}

func TestEngine_FilterRequestsDoubleN(t *testing.T) {
	t.Parallel()

	cf := &mockFilter{name: FilterCollaborative}
	e := newTestEngine(t, &mockDataProvider{foods: testCatalog()}, cf)
	e.Recommend(context.Background(), Request{UserID: "u1", N: 4})

	if cf.lastReq.N != 8 {
		t.Errorf("filter asked for %d candidates, want 8", cf.lastReq.N)
	}
	if cf.lastReq.Seed != DefaultConfig().Seed {
		t.Errorf("seed = %d, want %d", cf.lastReq.Seed, DefaultConfig().Seed)
	}
}

func TestEngine_FirstNonEmptyFieldWins(t *testing.T) {
	t.Parallel()

	dp := &mockDataProvider{foods: nil}
	cf := &mockFilter{name: FilterCollaborative, candidates: []Candidate{{FoodID: "x", Score: 5, HasScore: true}}}
	cb := &mockFilter{name: FilterContent, candidates: []Candidate{{FoodID: "x", Name: "From CB", Cuisine: "Thai", Score: 0.5, HasScore: true}}}
	ca := &mockFilter{name: FilterContext, candidates: []Candidate{{FoodID: "x", Name: "From CA", Category: "Curry"}}}
	e := newTestEngine(t, dp, cf, cb, ca)

	resp := e.Recommend(context.Background(), Request{UserID: "u1", N: 3})
	got := resp.Items[0]
	if got.Name != "From CB" || got.Cuisine != "Thai" || got.Category != "Curry" {
		t.Errorf("merged fields = %+v", got)
	}
	want := 0.4*5 + 0.3*0.5 + 0.3*1.0
	if got.Score != want {
		t.Errorf("score = %v, want %v", got.Score, want)
	}
}

func TestEngine_UnknownFieldsFilled(t *testing.T) {
	t.Parallel()

	cf := &mockFilter{name: FilterCollaborative, candidates: []Candidate{{FoodID: "ghost", Score: 3, HasScore: true}}}
	e := newTestEngine(t, &mockDataProvider{foods: testCatalog()}, cf)

	resp := e.Recommend(context.Background(), Request{UserID: "u1", N: 3})
	got := resp.Items[0]
	if got.Name != "Unknown" || got.Cuisine != "Unknown" || got.Category != "Unknown" {
		t.Errorf("expected Unknown fields, got %+v", got)
	}
}

func TestEngine_TiesBreakByFoodID(t *testing.T) {
	t.Parallel()

	cf := &mockFilter{name: FilterCollaborative, candidates: []Candidate{
		{FoodID: "f3", Score: 2, HasScore: true},
		{FoodID: "f1", Score: 2, HasScore: true},
		{FoodID: "f2", Score: 2, HasScore: true},
	}}
	e := newTestEngine(t, &mockDataProvider{foods: testCatalog()}, cf)

	resp := e.Recommend(context.Background(), Request{UserID: "u1", N: 3})
	var ids []string
	for _, it := range resp.Items {
		ids = append(ids, it.FoodID)
	}
	if !reflect.DeepEqual(ids, []string{"f1", "f2", "f3"}) {
		t.Errorf("order = %v", ids)
	}
}

func TestEngine_CatalogHeadFallback(t *testing.T) {
	t.Parallel()

	empty := &mockFilter{name: FilterCollaborative}
	e := newTestEngine(t, &mockDataProvider{foods: testCatalog()}, empty)

	resp := e.Recommend(context.Background(), Request{UserID: "nobody", N: 2})
	if resp.Metadata.Strategy != StrategyCatalogHead {
		t.Fatalf("strategy = %q, want %q", resp.Metadata.Strategy, StrategyCatalogHead)
	}
	if len(resp.Items) != 2 || resp.Items[0].FoodID != "f1" || resp.Items[1].FoodID != "f2" {
		t.Errorf("items = %+v", resp.Items)
	}
	for _, it := range resp.Items {
		if it.Score != 0.5 {
			t.Errorf("score = %v, want 0.5", it.Score)
		}
	}
	if e.GetStats().FallbackCount != 1 {
		t.Errorf("fallback count = %d, want 1", e.GetStats().FallbackCount)
	}
}

func TestEngine_PlaceholderFallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		dp   DataProvider
	}{
		{"empty catalog", &mockDataProvider{}},
		{"unreachable catalog", &mockDataProvider{foodsErr: errors.New("connection refused")}},
		{"no provider", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := newTestEngine(t, tt.dp, &mockFilter{name: FilterContext})

			resp := e.Recommend(context.Background(), Request{UserID: "u1", N: 3})
			if resp.Metadata.Strategy != StrategyPlaceholder {
				t.Fatalf("strategy = %q, want %q", resp.Metadata.Strategy, StrategyPlaceholder)
			}
			first := models.Recommendation{FoodID: "f1", Name: "Food 1", Cuisine: "Unknown", Category: "Unknown", Score: 0.5}
			want := models.Recommendation{FoodID: "f3", Name: "Food 3", Cuisine: "Unknown", Category: "Unknown", Score: 0.5}
			if len(resp.Items) != 3 || resp.Items[0] != first || resp.Items[2] != want {
				t.Errorf("items = %+v", resp.Items)
			}
		})
	}
}

func TestEngine_LengthBound(t *testing.T) {
	t.Parallel()

	many := make([]Candidate, 50)
	for i := range many {
		many[i] = Candidate{FoodID: string(rune('a' + i%26)) + string(rune('a'+i/26)), Score: float64(i), HasScore: true}
	}
	cf := &mockFilter{name: FilterCollaborative, candidates: many}
	e := newTestEngine(t, &mockDataProvider{foods: testCatalog()}, cf)

	for _, n := range []int{-1, 0, 1, 2, 7, 10, 100, 1000} {
		resp := e.Recommend(context.Background(), Request{UserID: "u1", N: n})
		limit := n
		if limit < 0 {
			limit = 0
		}
		if len(resp.Items) > limit {
			t.Errorf("n=%d: got %d items", n, len(resp.Items))
		}
	}
}

func TestEngine_FilterIsolation(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Limits.FilterTimeout = 20 * time.Millisecond
	e, err := NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	e.SetDataProvider(&mockDataProvider{foods: testCatalog()})
	e.RegisterFilter(&mockFilter{name: FilterCollaborative, panics: true})
	e.RegisterFilter(&mockFilter{name: FilterContent, delay: time.Second, candidates: []Candidate{{FoodID: "f1", Score: 1, HasScore: true}}})
	e.RegisterFilter(&mockFilter{name: FilterContext, candidates: []Candidate{{FoodID: "f3"}}})

	resp := e.Recommend(context.Background(), Request{UserID: "u1", N: 3})
	if len(resp.Items) != 1 || resp.Items[0].FoodID != "f3" {
		t.Fatalf("items = %+v, want only f3", resp.Items)
	}
	if resp.Items[0].Score != 0.3 {
		t.Errorf("score = %v, want 0.3", resp.Items[0].Score)
	}
	if got := e.GetStats().FailureCount; got != 2 {
		t.Errorf("failure count = %d, want 2", got)
	}
	if !reflect.DeepEqual(resp.Metadata.FiltersUsed, []string{FilterContext}) {
		t.Errorf("filters used = %v", resp.Metadata.FiltersUsed)
	}
}

func TestEngine_Idempotent(t *testing.T) {
	t.Parallel()

	cf := &mockFilter{name: FilterCollaborative, candidates: []Candidate{
		{FoodID: "f2", Score: 4, HasScore: true},
		{FoodID: "f1", Score: 3, HasScore: true},
	}}
	ca := &mockFilter{name: FilterContext, candidates: []Candidate{{FoodID: "f3"}}}
	e := newTestEngine(t, &mockDataProvider{foods: testCatalog()}, cf, ca)

	req := Request{UserID: "u1", Weather: "Rainy", Mood: "Sad", N: 3}
	first := e.Recommend(context.Background(), req)
	second := e.Recommend(context.Background(), req)
	if !reflect.DeepEqual(first.Items, second.Items) {
		t.Errorf("rankings differ:\n%v\n%v", first.Items, second.Items)
	}
}

func TestEngine_RecommendFilter(t *testing.T) {
	t.Parallel()

	cb := &mockFilter{name: FilterContent, candidates: []Candidate{
		{FoodID: "f1", Score: 0.9, HasScore: true},
		{FoodID: "f2", Score: 0.8, HasScore: true},
		{FoodID: "f3", Score: 0.7, HasScore: true},
	}}
	e := newTestEngine(t, &mockDataProvider{foods: testCatalog()}, cb)

	t.Run("known filter", func(t *testing.T) {
		res, err := e.RecommendFilter(context.Background(), FilterContent, Request{UserID: "u1", N: 2})
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Candidates) != 2 || res.Strategy != "mock" {
			t.Errorf("result = %+v", res)
		}
	})

	t.Run("unknown filter", func(t *testing.T) {
		_, err := e.RecommendFilter(context.Background(), "popularity", Request{UserID: "u1", N: 2})
		if !errors.Is(err, ErrUnknownFilter) {
			t.Errorf("error = %v, want ErrUnknownFilter", err)
		}
	})
}

func TestEngine_RegisterFilterOrder(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil,
		&mockFilter{name: FilterContext},
		&mockFilter{name: FilterCollaborative},
		&mockFilter{name: FilterContent},
	)
	want := []string{FilterCollaborative, FilterContent, FilterContext}
	if got := e.GetStats().Filters; !reflect.DeepEqual(got, want) {
		t.Errorf("filters = %v, want %v", got, want)
	}
}

func TestEngine_RecordsMetrics(t *testing.T) {
	t.Parallel()

	// Filter names are unique to this test so parallel tests cannot move
	// the series asserted on exactly.
	ok := &mockFilter{name: "metrics_ok", candidates: []Candidate{{FoodID: "f1", Score: 1, HasScore: true}}}
	broken := &mockFilter{name: "metrics_panic", panics: true}
	e := newTestEngine(t, &mockDataProvider{foods: testCatalog()}, ok, broken)

	okBefore := testutil.ToFloat64(metrics.FilterStrategyTotal.WithLabelValues("metrics_ok", "mock"))
	noneBefore := testutil.ToFloat64(metrics.FilterStrategyTotal.WithLabelValues("metrics_panic", StrategyNone))
	failBefore := testutil.ToFloat64(metrics.FilterFailures.WithLabelValues("metrics_panic"))
	headBefore := testutil.ToFloat64(metrics.RecommendationsTotal.WithLabelValues(StrategyCatalogHead))

	// Neither name carries a weight, so the hybrid ends on the catalog head.
	resp := e.Recommend(context.Background(), Request{UserID: "u1", N: 2})
	if resp.Metadata.Strategy != StrategyCatalogHead {
		t.Fatalf("strategy = %q, want %q", resp.Metadata.Strategy, StrategyCatalogHead)
	}

	if got := testutil.ToFloat64(metrics.FilterStrategyTotal.WithLabelValues("metrics_ok", "mock")) - okBefore; got != 1 {
		t.Errorf("metrics_ok strategy delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.FilterStrategyTotal.WithLabelValues("metrics_panic", StrategyNone)) - noneBefore; got != 1 {
		t.Errorf("metrics_panic none delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.FilterFailures.WithLabelValues("metrics_panic")) - failBefore; got != 1 {
		t.Errorf("metrics_panic failures delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.RecommendationsTotal.WithLabelValues(StrategyCatalogHead)) - headBefore; got < 1 {
		t.Errorf("catalog_head responses delta = %v, want >= 1", got)
	}
	if n := testutil.CollectAndCount(metrics.RecommendationDuration); n == 0 {
		t.Error("recommendation duration histogram has no series")
	}
}
