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

	"github.com/tomtom215/foodaware/internal/logging"
	"github.com/tomtom215/foodaware/internal/metrics"
	"github.com/tomtom215/foodaware/internal/models"
	"github.com/tomtom215/foodaware/internal/preferences"
)

const (
	insertUserSQL = `INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING`

	insertFoodSQL = `INSERT INTO food_items (food_id, name, cuisine, category, price, tags, attributes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING`
)

// ImportDataset writes users, then foods, then orders in one transaction.
// Rows whose primary key already exists are skipped. Foods keep the slice
// order as catalog order.
func (db *DB) ImportDataset(ctx context.Context, ds *models.Dataset) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() {
		metrics.RecordDBQuery("import", "dataset", time.Since(start), err)
	}()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.Error().
					Err(rbErr).
					AnErr("original_error", err).
					Msg("transaction rollback failed")
			}
		}
	}()

	if err = execEach(ctx, tx, insertUserSQL, len(ds.Users), func(i int) []any {
		u := &ds.Users[i]
		return []any{u.UserID, u.Name, u.Age, u.Gender,
			preferences.Format(u.CuisinePreferences), preferences.Format(u.DietaryRestrictions), u.Location}
	}); err != nil {
		return fmt.Errorf("failed to import users: %w", err)
	}

	if err = execEach(ctx, tx, insertFoodSQL, len(ds.Foods), func(i int) []any {
		f := &ds.Foods[i]
		return []any{f.FoodID, f.Name, f.Cuisine, f.Category, f.Price, preferences.Format(f.Tags), f.Attributes}
	}); err != nil {
		return fmt.Errorf("failed to import foods: %w", err)
	}

	if err = execEach(ctx, tx, insertOrderSQL, len(ds.Orders), func(i int) []any {
		prepareOrder(&ds.Orders[i])
		return orderArgs(&ds.Orders[i])
	}); err != nil {
		return fmt.Errorf("failed to import orders: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}

	db.logger.Info().
		Int("users", len(ds.Users)).
		Int("foods", len(ds.Foods)).
		Int("orders", len(ds.Orders)).
		Dur("duration", time.Since(start)).
		Msg("dataset imported")
	return nil
}

// execEach prepares query once and executes it n times.
func execEach(ctx context.Context, tx *sql.Tx, query string, n int, args func(i int) []any) error {
	if n == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer closeWithLog(stmt, "prepared statement")

	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, args(i)...); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	return nil
}

// Reset deletes every row from the three input tables.
func (db *DB) Reset(ctx context.Context) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	for _, table := range []string{"orders", "food_items", "users"} {
		start := time.Now()
		_, err := db.conn.ExecContext(ctx, "DELETE FROM "+table)
		metrics.RecordDBQuery("delete", table, time.Since(start), err)
		if err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}
