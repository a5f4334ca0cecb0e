// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/foodaware/internal/models"
)

func TestPopularFoods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantLimit  int
	}{
		{"default limit", "", http.StatusOK, defaultPopularLimit},
		{"explicit limit", "?limit=3", http.StatusOK, 3},
		{"upper bound", "?limit=50", http.StatusOK, 50},
		{"zero limit", "?limit=0", http.StatusBadRequest, 0},
		{"limit too large", "?limit=51", http.StatusBadRequest, 0},
		{"limit not integer", "?limit=many", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			deps := testDeps()
			store := deps.Store.(*mockStore)
			rating := 4.5
			store.popular = []models.PopularFood{
				{FoodID: "f1", Name: "Tiramisu", Category: "Dessert", OrderCount: 7, AvgRating: &rating},
				{FoodID: "f2", Name: "Miso Soup", Category: "Soup", OrderCount: 2},
			}

			rec := do(t, newTestServer(t, deps), http.MethodGet, "/api/v1/analytics/popular-foods"+tt.query, "")
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			env := decodeEnvelope(t, rec)
			if tt.wantStatus != http.StatusOK {
				if env.Error == nil || env.Error.Code != ErrCodeValidation {
					t.Errorf("error = %+v, want %s", env.Error, ErrCodeValidation)
				}
				return
			}

			if store.lastLimit != tt.wantLimit {
				t.Errorf("store limit = %d, want %d", store.lastLimit, tt.wantLimit)
			}
			var got []models.PopularFood
			if err := json.Unmarshal(env.Data, &got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(got) != 2 || got[0].OrderCount != 7 || got[0].AvgRating == nil || *got[0].AvgRating != 4.5 {
				t.Errorf("foods = %+v", got)
			}
			if got[1].AvgRating != nil {
				t.Errorf("unrated food avg = %v, want nil", *got[1].AvgRating)
			}
		})
	}
}

func TestCategoryCrosstab(t *testing.T) {
	t.Parallel()

	deps := testDeps()
	deps.Store.(*mockStore).crosstab = map[string][]models.CategoryCount{
		models.DimensionWeather: {
			{Context: "Rainy", Category: "Soup", OrderCount: 3},
			{Context: "Sunny", Category: "Dessert", OrderCount: 1},
		},
		models.DimensionMood: {
			{Context: "Stressed", Category: "Main Course", OrderCount: 2},
		},
	}
	h := newTestServer(t, deps)

	tests := []struct {
		target        string
		wantDimension string
		wantCells     int
	}{
		{"/api/v1/analytics/weather-categories", models.DimensionWeather, 2},
		{"/api/v1/analytics/mood-categories", models.DimensionMood, 1},
	}
	for _, tt := range tests {
		t.Run(tt.wantDimension, func(t *testing.T) {
			t.Parallel()
			rec := do(t, h, http.MethodGet, tt.target, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
			}
			var got models.CategoryCrosstab
			if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got.Dimension != tt.wantDimension || len(got.Cells) != tt.wantCells {
				t.Errorf("crosstab = %+v", got)
			}
		})
	}
}

func TestAnalytics_EmptyAndStoreFailure(t *testing.T) {
	t.Parallel()

	rec := do(t, newTestServer(t, testDeps()), http.MethodGet, "/api/v1/analytics/mood-categories", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("empty store status = %d", rec.Code)
	}
	var got models.CategoryCrosstab
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Cells == nil || len(got.Cells) != 0 {
		t.Errorf("cells = %#v, want empty list", got.Cells)
	}

	deps := testDeps()
	deps.Store.(*mockStore).statsErr = errors.New("catalog locked")
	h := newTestServer(t, deps)
	for _, target := range []string{
		"/api/v1/analytics/popular-foods",
		"/api/v1/analytics/weather-categories",
	} {
		rec := do(t, h, http.MethodGet, target, "")
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("%s status = %d", target, rec.Code)
			continue
		}
		if env := decodeEnvelope(t, rec); env.Error == nil || env.Error.Code != ErrCodeDatabase {
			t.Errorf("%s error = %+v", target, env.Error)
		}
	}
}
