// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package models

// Order columns a category crosstab can be grouped by.
const (
	DimensionWeather = "weather"
	DimensionMood    = "mood"
)

// PopularFood is a dish ranked by how often it was ordered. AvgRating only
// covers rated orders and is nil when none were rated.
type PopularFood struct {
	FoodID     string   `json:"food_id" db:"food_id"`
	Name       string   `json:"name" db:"name"`
	Cuisine    string   `json:"cuisine" db:"cuisine"`
	Category   string   `json:"category" db:"category"`
	OrderCount int      `json:"order_count" db:"order_count"`
	AvgRating  *float64 `json:"avg_rating,omitempty" db:"avg_rating"`
}

// CategoryCount is one cell of a context by food category crosstab.
type CategoryCount struct {
	Context    string `json:"context" db:"context_value"`
	Category   string `json:"category" db:"category"`
	OrderCount int    `json:"order_count" db:"order_count"`
}

// CategoryCrosstab counts orders per context value and food category.
// Orders with no recorded context value are left out.
type CategoryCrosstab struct {
	Dimension string          `json:"dimension"`
	Cells     []CategoryCount `json:"cells"`
}

// ValidDimension reports whether d names a crosstab dimension.
func ValidDimension(d string) bool {
	return d == DimensionWeather || d == DimensionMood
}
