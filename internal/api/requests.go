// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package api

// RecommendRequest holds the query parameters of both recommendation routes.
type RecommendRequest struct {
	UserID  string `json:"user_id" validate:"required,max=64"`
	Weather string `json:"weather" validate:"max=32"`
	Mood    string `json:"mood" validate:"max=32"`
	N       int    `json:"n" validate:"min=0,max=100"`
}

// MoodRequest is the body of POST /mood.
type MoodRequest struct {
	Text string `json:"text" validate:"notblank,max=2000"`
}

// MoodResponse is the data of POST /mood.
type MoodResponse struct {
	Mood string `json:"mood"`
}

// WeatherRequest holds the query of GET /weather.
type WeatherRequest struct {
	City string `json:"city" validate:"notblank,max=100"`
}

// RestaurantsRequest holds the query of GET /restaurants. Location is
// "lat,lng".
type RestaurantsRequest struct {
	Location string `json:"location" validate:"notblank,max=64"`
	Keyword  string `json:"keyword" validate:"max=100"`
}

// OrderRequest is the body of POST /orders.
type OrderRequest struct {
	UserID   string `json:"user_id" validate:"required,max=64"`
	FoodID   string `json:"food_id" validate:"required,max=64"`
	Mood     string `json:"mood" validate:"max=32"`
	Weather  string `json:"weather" validate:"max=32"`
	Location string `json:"location" validate:"max=100"`
	Rating   *int   `json:"rating" validate:"omitempty,min=1,max=5"`
}

// PopularFoodsRequest holds the query of GET /analytics/popular-foods.
type PopularFoodsRequest struct {
	Limit int `json:"limit" validate:"min=1,max=50"`
}

// FilterResponse is the data of GET /recommendations/{filter}.
type FilterResponse struct {
	Filter   string      `json:"filter"`
	Strategy string      `json:"strategy"`
	Items    interface{} `json:"items"`
}
