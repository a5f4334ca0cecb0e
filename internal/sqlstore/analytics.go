// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/foodaware/internal/metrics"
	"github.com/tomtom215/foodaware/internal/models"
)

const selectPopularFoods = `SELECT f.food_id, f.name, f.cuisine, f.category,
		COUNT(*) AS order_count, AVG(o.rating) AS avg_rating
	FROM orders o
	INNER JOIN food_items f ON f.food_id = o.food_id
	GROUP BY f.food_id, f.name, f.cuisine, f.category
	ORDER BY order_count DESC, f.food_id
	LIMIT ?`

// PopularFoods returns the most ordered dishes, ties broken by food_id.
func (s *Store) PopularFoods(ctx context.Context, limit int) ([]models.PopularFood, error) {
	start := time.Now()
	foods := make([]models.PopularFood, 0, limit)
	err := s.db.SelectContext(ctx, &foods, s.db.Rebind(selectPopularFoods), limit)
	metrics.RecordDBQuery("select", "popular_foods", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query popular foods: %w", err)
	}
	return foods, nil
}

// CategoryCrosstab counts orders per food category for each value of the
// weather or mood dimension.
func (s *Store) CategoryCrosstab(ctx context.Context, dimension string) ([]models.CategoryCount, error) {
	if !models.ValidDimension(dimension) {
		return nil, fmt.Errorf("unknown crosstab dimension %q", dimension)
	}
	query := fmt.Sprintf(`SELECT o.%[1]s AS context_value, f.category, COUNT(*) AS order_count
		FROM orders o
		INNER JOIN food_items f ON f.food_id = o.food_id
		WHERE o.%[1]s <> ''
		GROUP BY o.%[1]s, f.category
		ORDER BY context_value, f.category`, dimension)

	start := time.Now()
	cells := make([]models.CategoryCount, 0)
	err := s.db.SelectContext(ctx, &cells, query)
	metrics.RecordDBQuery("select", dimension+"_crosstab", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s crosstab: %w", dimension, err)
	}
	return cells, nil
}
