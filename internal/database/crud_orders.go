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

	"github.com/google/uuid"

	"github.com/tomtom215/foodaware/internal/logging"
	"github.com/tomtom215/foodaware/internal/metrics"
	"github.com/tomtom215/foodaware/internal/models"
)

const insertOrderSQL = `INSERT INTO orders (
	order_id, user_id, food_id, timestamp, mood, weather, location, rating
) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT DO NOTHING`

// ListOrders returns every order, oldest first. Orders sharing a timestamp
// are ordered by order_id.
func (db *DB) ListOrders(ctx context.Context) ([]models.Order, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, `
		SELECT order_id, user_id, food_id, timestamp, mood, weather, location, rating
		FROM orders
		ORDER BY timestamp, order_id`)
	if err != nil {
		metrics.RecordDBQuery("select", "orders", time.Since(start), err)
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer closeWithLog(rows, "rows")

	orders := make([]models.Order, 0)
	for rows.Next() {
		var o models.Order
		var rating sql.NullInt64
		if err := rows.Scan(&o.OrderID, &o.UserID, &o.FoodID, &o.Timestamp, &o.Mood, &o.Weather, &o.Location, &rating); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		if rating.Valid {
			r := int(rating.Int64)
			o.Rating = &r
		}
		orders = append(orders, o)
	}
	err = rows.Err()
	metrics.RecordDBQuery("select", "orders", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}
	return orders, nil
}

// InsertOrder appends one order. An empty OrderID is filled with a new
// UUID and an empty Timestamp with the current time. Re-inserting an
// existing order_id is a no-op, so redelivered events are harmless.
func (db *DB) InsertOrder(ctx context.Context, order *models.Order) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	prepareOrder(order)

	start := time.Now()
	_, err := db.conn.ExecContext(ctx, insertOrderSQL, orderArgs(order)...)
	metrics.RecordDBQuery("insert", "orders", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to insert order %s: %w", order.OrderID, err)
	}

	logging.Ctx(ctx).Debug().
		Str("order_id", order.OrderID).
		Str("food_id", order.FoodID).
		Msg("order recorded")
	return nil
}

// prepareOrder fills the generated fields of a new order.
func prepareOrder(order *models.Order) {
	if order.OrderID == "" {
		order.OrderID = uuid.NewString()
	}
	if order.Timestamp.IsZero() {
		order.Timestamp = time.Now().UTC()
	}
}

func orderArgs(o *models.Order) []any {
	var rating any
	if o.Rating != nil {
		rating = *o.Rating
	}
	return []any{o.OrderID, o.UserID, o.FoodID, o.Timestamp.UTC(), o.Mood, o.Weather, o.Location, rating}
}
