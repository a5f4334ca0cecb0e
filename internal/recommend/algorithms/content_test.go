// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package algorithms

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/foodaware/internal/models"
	"github.com/tomtom215/foodaware/internal/recommend"
)

func contentProvider() *mockDataProvider {
	return &mockDataProvider{
		foods: sampleFoods(),
		users: map[string]models.User{
			"u1": {UserID: "u1", CuisinePreferences: []string{"Thai"}, DietaryRestrictions: []string{"Gluten-Free"}},
		},
	}
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	got := tokenize("The Gluten-Free Pad Thai, a dish for everyone!")
	want := []string{"gluten", "free", "pad", "thai", "dish"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tokenize = %v, want %v", got, want)
	}
}

func TestFitTFIDF(t *testing.T) {
	t.Parallel()

	t.Run("smooth idf and unit norm", func(t *testing.T) {
		m, err := fitTFIDF([]string{"thai curry", "thai soup"})
		if err != nil {
			t.Fatal(err)
		}
		// thai in both docs: ln(3/3)+1 = 1; curry in one: ln(3/2)+1.
		if got := m.idf[m.vocabulary["thai"]]; got != 1 {
			t.Errorf("idf(thai) = %v, want 1", got)
		}
		if got, want := m.idf[m.vocabulary["curry"]], math.Log(1.5)+1; math.Abs(got-want) > 1e-12 {
			t.Errorf("idf(curry) = %v, want %v", got, want)
		}
		for _, d := range m.docs {
			if n := math.Sqrt(d.dot(d)); math.Abs(n-1) > 1e-12 {
				t.Errorf("doc norm = %v, want 1", n)
			}
		}
	})

	t.Run("stop words only is a vectorizer error", func(t *testing.T) {
		_, err := fitTFIDF([]string{"the a of", "and"})
		if !errors.Is(err, recommend.ErrVectorizer) {
			t.Errorf("err = %v, want ErrVectorizer", err)
		}
	})

	t.Run("identical text has similarity one", func(t *testing.T) {
		m, _ := fitTFIDF([]string{"italian dessert sweet", "indian curry spicy"})
		sims := m.similarities("italian dessert sweet")
		if math.Abs(sims[0]-1) > 1e-12 || sims[1] != 0 {
			t.Errorf("sims = %v", sims)
		}
	})
}

func TestContentBased_RanksByPreference(t *testing.T) {
	t.Parallel()

	cb := NewContentBased(contentProvider(), ContentConfig{}, zerolog.Nop())
	res := cb.Recommend(context.Background(), recommend.FilterRequest{UserID: "u1", Weather: "Rainy", Mood: "Happy", N: 3})

	if res.Strategy != StrategyTFIDF {
		t.Fatalf("strategy = %q", res.Strategy)
	}
	if len(res.Candidates) != 3 {
		t.Fatalf("len = %d", len(res.Candidates))
	}
	top := res.Candidates[0]
	if top.FoodID != "f4" || top.Name != "Pad Thai" {
		t.Errorf("top = %+v, want Pad Thai", top)
	}
	if top.Score <= 0 || top.Score > 1 {
		t.Errorf("score %v outside (0,1]", top.Score)
	}
}

func TestContentBased_TiesKeepCatalogOrder(t *testing.T) {
	t.Parallel()

	dp := contentProvider()
	dp.users["u2"] = models.User{UserID: "u2", CuisinePreferences: []string{"Martian"}}
	cb := NewContentBased(dp, ContentConfig{}, zerolog.Nop())

	res := cb.Recommend(context.Background(), recommend.FilterRequest{UserID: "u2", N: 3})
	var ids []string
	for _, c := range res.Candidates {
		ids = append(ids, c.FoodID)
	}
	if !reflect.DeepEqual(ids, []string{"f1", "f2", "f3"}) {
		t.Errorf("ids = %v, want catalog order for all-zero scores", ids)
	}
}

func TestContentBased_UnknownUser(t *testing.T) {
	t.Parallel()

	cb := NewContentBased(contentProvider(), ContentConfig{}, zerolog.Nop())
	res := cb.Recommend(context.Background(), recommend.FilterRequest{UserID: "ghost", N: 4, Seed: 42})

	if res.Strategy != recommend.StrategyRandomSample {
		t.Fatalf("strategy = %q", res.Strategy)
	}
	if len(res.Candidates) != 4 {
		t.Fatalf("len = %d", len(res.Candidates))
	}
	for _, c := range res.Candidates {
		if c.Score < 0.5 || c.Score > 0.9 {
			t.Errorf("score %v outside [0.5,0.9]", c.Score)
		}
	}
}

func TestContentBased_CuisineMatchFallback(t *testing.T) {
	t.Parallel()

	dp := &mockDataProvider{
		foods: []models.FoodItem{
			{FoodID: "a", Cuisine: "X", Category: "a"},
			{FoodID: "b", Cuisine: "Y", Category: "b"},
			{FoodID: "c", Cuisine: "X", Category: "c"},
			{FoodID: "d", Cuisine: "Z", Category: "d", Attributes: "the"},
		},
		users: map[string]models.User{"u1": {UserID: "u1", CuisinePreferences: []string{"X"}}},
	}
	cb := NewContentBased(dp, ContentConfig{}, zerolog.Nop())

	res := cb.Recommend(context.Background(), recommend.FilterRequest{UserID: "u1", N: 3})
	if res.Strategy != StrategyCuisineMatch {
		t.Fatalf("strategy = %q, want %q", res.Strategy, StrategyCuisineMatch)
	}
	if len(res.Candidates) != 3 {
		t.Fatalf("len = %d, want padded to 3", len(res.Candidates))
	}
	matched := 0
	for i, c := range res.Candidates {
		if c.FoodID == "a" || c.FoodID == "c" {
			matched++
		}
		if i > 0 && c.Score > res.Candidates[i-1].Score {
			t.Error("not sorted")
		}
	}
	if matched != 2 {
		t.Errorf("matched items = %d, want 2", matched)
	}
}

func TestContentBased_EmptyCatalog(t *testing.T) {
	t.Parallel()

	dp := contentProvider()
	dp.foods = nil
	cb := NewContentBased(dp, ContentConfig{}, zerolog.Nop())
	res := cb.Recommend(context.Background(), recommend.FilterRequest{UserID: "u1", N: 3})
	if len(res.Candidates) != 0 {
		t.Errorf("expected empty, got %v", res.Candidates)
	}
}
