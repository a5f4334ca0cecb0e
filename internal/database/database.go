// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/rs/zerolog"

	"github.com/tomtom215/foodaware/internal/config"
)

// DB wraps the DuckDB connection and provides data access methods
type DB struct {
	conn   *sql.DB
	cfg    *config.DatabaseConfig
	logger zerolog.Logger
}

// New opens the DuckDB database at cfg.Path and initializes the schema.
// Use ":memory:" for an in-process database.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(cfg *config.DatabaseConfig, logger zerolog.Logger) (*DB, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	// 0750 per gosec G301
	if cfg.Path != ":memory:" {
		if dbDir := filepath.Dir(cfg.Path); dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	preserveOrder := "true"
	if !cfg.PreserveInsertionOrder {
		preserveOrder = "false"
	}
	maxMemory := cfg.MaxMemory
	if maxMemory == "" {
		maxMemory = "1GB"
	}

	// Extensions are never fetched at runtime; the schema needs none.
	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s&preserve_insertion_order=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		cfg.Path, numThreads, maxMemory, preserveOrder)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{
		conn:   conn,
		cfg:    cfg,
		logger: logger.With().Str("component", "database").Logger(),
	}

	db.configureConnectionPool()

	if err := db.initialize(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	db.logger.Info().
		Str("path", cfg.Path).
		Int("threads", numThreads).
		Str("max_memory", maxMemory).
		Msg("database ready")

	return db, nil
}

// configureConnectionPool sets connection pool parameters:
// NumCPU open connections, 2 idle, 1h lifetime, 5m idle time.
func (db *DB) configureConnectionPool() {
	db.conn.SetMaxOpenConns(runtime.NumCPU())
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// initialize creates tables and applies pending migrations.
func (db *DB) initialize() error {
	if err := db.createTables(); err != nil {
		return err
	}
	if err := db.runVersionedMigrations(); err != nil {
		return err
	}

	// Flush the schema so a crash before the first write does not leave a
	// WAL that has to be replayed on the next start.
	ctx, cancel := schemaContext()
	defer cancel()
	if err := db.Checkpoint(ctx); err != nil {
		db.logger.Warn().Err(err).Msg("checkpoint after schema initialization failed")
	}
	return nil
}

// Driver returns the store name used in health checks and logs.
func (db *DB) Driver() string {
	return config.DriverDuckDB
}

// Conn returns the underlying SQL database connection.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Close checkpoints the WAL and closes the connection.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.Checkpoint(ctx); err != nil {
		db.logger.Warn().Err(err).Msg("failed to checkpoint database before close")
	}
	cancel()
	return db.conn.Close()
}

// Ping checks if the database connection is alive
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.conn.PingContext(ctx)
}
