// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package sqlstore

import (
	"context"
	"reflect"
	"testing"

	"github.com/tomtom215/foodaware/internal/models"
)

func TestStore_Analytics(t *testing.T) {
	t.Parallel()

	s := setupSQLite(t)
	ctx := context.Background()
	if err := s.ImportDataset(ctx, testDataset()); err != nil {
		t.Fatalf("ImportDataset() error = %v", err)
	}
	if err := s.InsertOrder(ctx, &models.Order{OrderID: "o3", UserID: "u1", FoodID: "f2", Mood: "Happy", Rating: intPtr(5)}); err != nil {
		t.Fatalf("InsertOrder() error = %v", err)
	}

	foods, err := s.PopularFoods(ctx, 5)
	if err != nil {
		t.Fatalf("PopularFoods() error = %v", err)
	}
	if len(foods) != 2 || foods[0].FoodID != "f2" || foods[0].OrderCount != 2 {
		t.Fatalf("PopularFoods() = %+v", foods)
	}
	if foods[0].AvgRating == nil || *foods[0].AvgRating != 4 {
		t.Errorf("f2 avg rating = %v, want 4", foods[0].AvgRating)
	}
	if foods[1].AvgRating != nil {
		t.Errorf("f1 avg rating = %v, want nil", *foods[1].AvgRating)
	}

	weather, err := s.CategoryCrosstab(ctx, models.DimensionWeather)
	if err != nil {
		t.Fatalf("CategoryCrosstab(weather) error = %v", err)
	}
	wantWeather := []models.CategoryCount{
		{Context: "Rainy", Category: "Soup", OrderCount: 1},
		{Context: "Sunny", Category: "Dessert", OrderCount: 1},
	}
	if !reflect.DeepEqual(weather, wantWeather) {
		t.Errorf("weather crosstab = %+v, want %+v", weather, wantWeather)
	}

	mood, err := s.CategoryCrosstab(ctx, models.DimensionMood)
	if err != nil {
		t.Fatalf("CategoryCrosstab(mood) error = %v", err)
	}
	wantMood := []models.CategoryCount{
		{Context: "Happy", Category: "Dessert", OrderCount: 1},
		{Context: "Happy", Category: "Soup", OrderCount: 1},
		{Context: "Sad", Category: "Soup", OrderCount: 1},
	}
	if !reflect.DeepEqual(mood, wantMood) {
		t.Errorf("mood crosstab = %+v, want %+v", mood, wantMood)
	}

	if _, err := s.CategoryCrosstab(ctx, "user_id"); err == nil {
		t.Error("expected error for unknown dimension")
	}
}
