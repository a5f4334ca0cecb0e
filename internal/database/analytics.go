// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/foodaware/internal/metrics"
	"github.com/tomtom215/foodaware/internal/models"
)

// PopularFoods returns the most ordered dishes, ties broken by food_id.
// Orders for foods missing from the catalog are not counted.
func (db *DB) PopularFoods(ctx context.Context, limit int) ([]models.PopularFood, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, `
		SELECT
			f.food_id,
			f.name,
			f.cuisine,
			f.category,
			COUNT(*) AS order_count,
			AVG(o.rating) AS avg_rating
		FROM orders o
		INNER JOIN food_items f ON f.food_id = o.food_id
		GROUP BY f.food_id, f.name, f.cuisine, f.category
		ORDER BY order_count DESC, f.food_id
		LIMIT ?`, limit)
	if err != nil {
		metrics.RecordDBQuery("select", "popular_foods", time.Since(start), err)
		return nil, fmt.Errorf("failed to query popular foods: %w", err)
	}
	defer closeWithLog(rows, "rows")

	foods := make([]models.PopularFood, 0, limit)
	for rows.Next() {
		var p models.PopularFood
		var avg sql.NullFloat64
		if err := rows.Scan(&p.FoodID, &p.Name, &p.Cuisine, &p.Category, &p.OrderCount, &avg); err != nil {
			return nil, fmt.Errorf("failed to scan popular food: %w", err)
		}
		if avg.Valid {
			v := avg.Float64
			p.AvgRating = &v
		}
		foods = append(foods, p)
	}
	err = rows.Err()
	metrics.RecordDBQuery("select", "popular_foods", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to iterate popular foods: %w", err)
	}
	return foods, nil
}

// CategoryCrosstab counts orders per food category for each value of the
// weather or mood dimension.
func (db *DB) CategoryCrosstab(ctx context.Context, dimension string) ([]models.CategoryCount, error) {
	if !models.ValidDimension(dimension) {
		return nil, fmt.Errorf("unknown crosstab dimension %q", dimension)
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	// dimension is one of two fixed column names, checked above.
	query := fmt.Sprintf(`
		SELECT o.%[1]s AS context_value, f.category, COUNT(*) AS order_count
		FROM orders o
		INNER JOIN food_items f ON f.food_id = o.food_id
		WHERE o.%[1]s <> ''
		GROUP BY o.%[1]s, f.category
		ORDER BY context_value, f.category`, dimension)

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		metrics.RecordDBQuery("select", dimension+"_crosstab", time.Since(start), err)
		return nil, fmt.Errorf("failed to query %s crosstab: %w", dimension, err)
	}
	defer closeWithLog(rows, "rows")

	cells := make([]models.CategoryCount, 0)
	for rows.Next() {
		var c models.CategoryCount
		if err := rows.Scan(&c.Context, &c.Category, &c.OrderCount); err != nil {
			return nil, fmt.Errorf("failed to scan %s crosstab: %w", dimension, err)
		}
		cells = append(cells, c)
	}
	err = rows.Err()
	metrics.RecordDBQuery("select", dimension+"_crosstab", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to iterate %s crosstab: %w", dimension, err)
	}
	return cells, nil
}
