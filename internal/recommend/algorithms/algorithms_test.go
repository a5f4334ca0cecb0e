// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package algorithms

import (
	"context"
	"errors"

	"github.com/tomtom215/foodaware/internal/models"
)

// mockDataProvider implements recommend.DataProvider for testing.
type mockDataProvider struct {
	users     map[string]models.User
	foods     []models.FoodItem
	orders    []models.Order
	foodsErr  error
	ordersErr error
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
	if m.ordersErr != nil {
		return nil, m.ordersErr
	}
	return m.orders, nil
}

var errStore = errors.New("store offline")

func intPtr(v int) *int { return &v }

func sampleFoods() []models.FoodItem {
	return []models.FoodItem{
		{FoodID: "f1", Name: "Tiramisu", Cuisine: "Italian", Category: "Dessert", Tags: []string{"Vegetarian"}, Attributes: "Sweet"},
		{FoodID: "f2", Name: "Miso Soup", Cuisine: "Japanese", Category: "Soup", Tags: []string{"Vegan"}, Attributes: "Savory"},
		{FoodID: "f3", Name: "Butter Chicken", Cuisine: "Indian", Category: "Main Course", Tags: []string{"Halal"}, Attributes: "Spicy"},
		{FoodID: "f4", Name: "Pad Thai", Cuisine: "Thai", Category: "Main Course", Tags: []string{"Gluten-Free"}, Attributes: "Tangy"},
		{FoodID: "f5", Name: "Tacos", Cuisine: "Mexican", Category: "Lunch", Tags: []string{"Keto"}, Attributes: "Spicy"},
		{FoodID: "f6", Name: "Pancakes", Cuisine: "American", Category: "Breakfast", Tags: []string{"Vegetarian"}, Attributes: "Sweet"},
	}
}

func sampleOrders() []models.Order {
	return []models.Order{
		{OrderID: "o1", UserID: "u1", FoodID: "f1", Rating: intPtr(5)},
		{OrderID: "o2", UserID: "u1", FoodID: "f2", Rating: intPtr(4)},
		{OrderID: "o3", UserID: "u2", FoodID: "f1", Rating: intPtr(5)},
		{OrderID: "o4", UserID: "u2", FoodID: "f3", Rating: intPtr(5)},
		{OrderID: "o5", UserID: "u2", FoodID: "f4"},
		{OrderID: "o6", UserID: "u3", FoodID: "f5", Rating: intPtr(2)},
	}
}
