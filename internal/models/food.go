// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package models

import "time"

// User is a diner profile. Preference lists keep the order in which they
// were stored.
type User struct {
	UserID              string   `json:"user_id" db:"user_id"`
	Name                string   `json:"name" db:"name"`
	Age                 int      `json:"age" db:"age"`
	Gender              string   `json:"gender" db:"gender"`
	CuisinePreferences  []string `json:"cuisine_preferences"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	Location            string   `json:"location" db:"location"`
}

// FoodItem is a single dish from the static catalog.
type FoodItem struct {
	FoodID     string   `json:"food_id" db:"food_id"`
	Name       string   `json:"name" db:"name"`
	Cuisine    string   `json:"cuisine" db:"cuisine"`
	Category   string   `json:"category" db:"category"`
	Price      float64  `json:"price" db:"price"`
	Tags       []string `json:"tags"`
	Attributes string   `json:"attributes" db:"attributes"`
}

// Order is one historical purchase. Rating is nil when the diner never rated
// the dish.
type Order struct {
	OrderID   string    `json:"order_id" db:"order_id" validate:"omitempty,max=64"`
	UserID    string    `json:"user_id" db:"user_id" validate:"required,max=64"`
	FoodID    string    `json:"food_id" db:"food_id" validate:"required,max=64"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	Mood      string    `json:"mood" db:"mood" validate:"max=32"`
	Weather   string    `json:"weather" db:"weather" validate:"max=32"`
	Location  string    `json:"location" db:"location" validate:"max=128"`
	Rating    *int      `json:"rating,omitempty" db:"rating" validate:"omitempty,min=1,max=5"`
}

// ImplicitRating is the rating assumed for an order the diner never rated.
const ImplicitRating = 1

// EffectiveRating returns the order's rating, or ImplicitRating when absent.
func (o *Order) EffectiveRating() float64 {
	if o.Rating == nil {
		return ImplicitRating
	}
	return float64(*o.Rating)
}

// Recommendation is one ranked entry returned to callers. It is produced per
// request and never stored.
type Recommendation struct {
	FoodID   string  `json:"food_id"`
	Name     string  `json:"name"`
	Cuisine  string  `json:"cuisine"`
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}
