// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext bounds schema statements run during startup.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the three input tables.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range tableCreationQueries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}

// tableCreationQueries define the schema. List columns (preferences,
// restrictions, tags) are TEXT in either delimited or list-literal form and
// are decoded with preferences.Parse.
//
// food_items.seq records insertion order; the catalog is always listed in
// that order so ties in content and context scoring are stable.
var tableCreationQueries = []string{
	`CREATE SEQUENCE IF NOT EXISTS food_items_seq START 1`,

	`CREATE TABLE IF NOT EXISTS users (
		user_id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		age INTEGER NOT NULL DEFAULT 0,
		gender TEXT NOT NULL DEFAULT '',
		cuisine_preferences TEXT NOT NULL DEFAULT '',
		dietary_restrictions TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS food_items (
		food_id TEXT PRIMARY KEY,
		seq BIGINT NOT NULL DEFAULT nextval('food_items_seq'),
		name TEXT NOT NULL DEFAULT '',
		cuisine TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		price DOUBLE NOT NULL DEFAULT 0,
		tags TEXT NOT NULL DEFAULT '',
		attributes TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS orders (
		order_id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		food_id TEXT NOT NULL,
		timestamp TIMESTAMP NOT NULL,
		mood TEXT NOT NULL DEFAULT '',
		weather TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		rating INTEGER
	)`,
}
