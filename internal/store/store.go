// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

// Package store opens the configured catalog and order store.
package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/foodaware/internal/config"
	"github.com/tomtom215/foodaware/internal/database"
	"github.com/tomtom215/foodaware/internal/models"
	"github.com/tomtom215/foodaware/internal/recommend"
	"github.com/tomtom215/foodaware/internal/sqlstore"
)

// OrderWriter appends orders. Writes are idempotent on order_id.
type OrderWriter interface {
	InsertOrder(ctx context.Context, order *models.Order) error
}

// Store is the full read/write surface shared by the DuckDB and sqlx stores.
type Store interface {
	recommend.DataProvider
	OrderWriter

	ListUsers(ctx context.Context) ([]models.User, error)
	ImportDataset(ctx context.Context, ds *models.Dataset) error
	Counts(ctx context.Context) (models.Counts, error)
	PopularFoods(ctx context.Context, limit int) ([]models.PopularFood, error)
	CategoryCrosstab(ctx context.Context, dimension string) ([]models.CategoryCount, error)
	Reset(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
	Driver() string
}

var (
	_ Store = (*database.DB)(nil)
	_ Store = (*sqlstore.Store)(nil)
)

// Open returns the store selected by cfg.Driver.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Open(cfg *config.DatabaseConfig, logger zerolog.Logger) (Store, error) {
	switch cfg.Driver {
	case "", config.DriverDuckDB:
		db, err := database.New(cfg, logger)
		if err != nil {
			return nil, err
		}
		return db, nil
	case config.DriverSQLite, config.DriverPostgres:
		s, err := sqlstore.New(cfg, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
