// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

/*
Package models defines the data structures shared across FoodAware.

Database Models:
  - User: diner profile with ordered cuisine preferences and dietary restrictions
  - FoodItem: static catalog entry (cuisine, category, tags, attributes)
  - Order: historical purchase with the mood and weather at order time

API Models:
  - Recommendation: ranked output entry {food_id, name, cuisine, category, score}

Orders are the only training signal for collaborative filtering and the only
ground truth for offline evaluation. An order without a rating counts as an
implicit rating of 1.
*/
package models
