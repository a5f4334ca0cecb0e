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

// Migration represents a versioned database migration.
type Migration struct {
	Version     int       // Unique version number (monotonically increasing)
	Name        string    // Human-readable migration name
	Description string    // Description of what this migration does
	SQL         string    // SQL statement to execute
	AppliedAt   time.Time // When the migration was applied (populated on query)
}

// schemaMigrationsTable creates the migration tracking table
const schemaMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT,
	applied_at TIMESTAMP NOT NULL
);
`

// migrations are append-only. Never modify or remove one that has shipped.
var migrations = []Migration{
	{
		Version:     1,
		Name:        "orders_user_index",
		Description: "Index orders by user for history lookups and evaluation splits",
		SQL:         `CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id)`,
	},
	{
		Version:     2,
		Name:        "orders_timestamp_index",
		Description: "Index orders by timestamp for chronological listing",
		SQL:         `CREATE INDEX IF NOT EXISTS idx_orders_timestamp ON orders(timestamp)`,
	},
	{
		Version:     3,
		Name:        "food_items_seq_index",
		Description: "Index the catalog by insertion order",
		SQL:         `CREATE INDEX IF NOT EXISTS idx_food_items_seq ON food_items(seq)`,
	},
}

// createMigrationsTable creates the schema_migrations table if it doesn't exist
func (db *DB) createMigrationsTable(ctx context.Context) error {
	_, err := db.conn.ExecContext(ctx, schemaMigrationsTable)
	return err
}

// getAppliedMigrations returns a map of version -> Migration for all applied migrations
func (db *DB) getAppliedMigrations(ctx context.Context) (map[int]Migration, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT version, name, description, applied_at FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]Migration)
	for rows.Next() {
		var m Migration
		if err := rows.Scan(&m.Version, &m.Name, &m.Description, &m.AppliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan migration row: %w", err)
		}
		applied[m.Version] = m
	}
	return applied, rows.Err()
}

// runVersionedMigrations executes only migrations that haven't been applied yet.
func (db *DB) runVersionedMigrations() error {
	ctx, cancel := schemaContext()
	defer cancel()

	if err := db.createMigrationsTable(ctx); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := db.getAppliedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	newMigrations := 0
	for _, m := range migrations {
		if _, exists := applied[m.Version]; exists {
			continue
		}

		if _, err := db.conn.ExecContext(ctx, m.SQL); err != nil {
			return fmt.Errorf("failed to execute migration v%d (%s): %w", m.Version, m.Name, err)
		}

		_, err := db.conn.ExecContext(ctx,
			`INSERT INTO schema_migrations (version, name, description, applied_at) VALUES (?, ?, ?, ?)`,
			m.Version, m.Name, m.Description, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("failed to record migration v%d: %w", m.Version, err)
		}

		newMigrations++
	}

	if newMigrations > 0 {
		db.logger.Info().Int("count", newMigrations).Msg("applied database migrations")
	}
	return nil
}

// GetCurrentSchemaVersion returns the highest applied migration version
func (db *DB) GetCurrentSchemaVersion(ctx context.Context) (int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var version int
	err := db.conn.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}
