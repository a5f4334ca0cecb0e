// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

// Package sqlstore is the relational alternative to the DuckDB store. It
// runs the same three-table schema on SQLite (modernc.org/sqlite, pure Go)
// or PostgreSQL (lib/pq) through sqlx.
package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/tomtom215/foodaware/internal/config"
)

// Store implements recommend.DataProvider and the order writer over sqlx.
type Store struct {
	db     *sqlx.DB
	driver string
	logger zerolog.Logger
}

// driverNames maps configured drivers to database/sql driver names.
var driverNames = map[string]string{
	config.DriverSQLite:   "sqlite",
	config.DriverPostgres: "postgres",
}

// New connects to the configured SQLite or PostgreSQL database and creates
// the schema. cfg.DSN is a file path or ":memory:" for SQLite and a
// connection URL for PostgreSQL.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(cfg *config.DatabaseConfig, logger zerolog.Logger) (*Store, error) {
	driverName, ok := driverNames[cfg.Driver]
	if !ok {
		return nil, fmt.Errorf("sqlstore: unsupported driver %q", cfg.Driver)
	}

	db, err := sqlx.Connect(driverName, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Driver, err)
	}

	s := &Store{
		db:     db,
		driver: cfg.Driver,
		logger: logger.With().Str("component", "sqlstore").Str("driver", cfg.Driver).Logger(),
	}
	s.configureConnectionPool()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	if err := s.createSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	s.logger.Info().Msg("store ready")
	return s, nil
}

// configureConnectionPool sizes the pool per driver. SQLite allows a single
// writer and gives every connection to ":memory:" its own database, so it
// gets exactly one connection.
func (s *Store) configureConnectionPool() {
	if s.driver == config.DriverSQLite {
		s.db.SetMaxOpenConns(1)
		s.db.SetMaxIdleConns(1)
		s.db.SetConnMaxLifetime(0)
		return
	}
	s.db.SetMaxOpenConns(10)
	s.db.SetMaxIdleConns(2)
	s.db.SetConnMaxLifetime(time.Hour)
	s.db.SetConnMaxIdleTime(5 * time.Minute)
}

// createSchema creates the three tables. The DDL is shared by both dialects.
func (s *Store) createSchema(ctx context.Context) error {
	for _, q := range schema {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

var schema = []string{
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
		seq BIGINT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		cuisine TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		price DOUBLE PRECISION NOT NULL DEFAULT 0,
		tags TEXT NOT NULL DEFAULT '',
		attributes TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		order_id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		food_id TEXT NOT NULL,
		"timestamp" TIMESTAMP NOT NULL,
		mood TEXT NOT NULL DEFAULT '',
		weather TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		rating INTEGER
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_timestamp ON orders("timestamp")`,
	`CREATE INDEX IF NOT EXISTS idx_food_items_seq ON food_items(seq)`,
}

// Driver returns the configured driver name.
func (s *Store) Driver() string {
	return s.driver
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}
