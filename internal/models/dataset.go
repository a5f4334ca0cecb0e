// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package models

// Dataset is a complete copy of the three input tables, as produced by the
// synthetic generator or read from CSV.
type Dataset struct {
	Users  []User
	Foods  []FoodItem
	Orders []Order
}

// Counts holds the row count of each table.
type Counts struct {
	Users  int64 `json:"users"`
	Foods  int64 `json:"foods"`
	Orders int64 `json:"orders"`
}

// Empty reports whether every table is empty.
func (c Counts) Empty() bool {
	return c.Users == 0 && c.Foods == 0 && c.Orders == 0
}
