// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/foodaware/internal/models"
)

// Importer is the slice of the store the loader needs.
type Importer interface {
	Counts(ctx context.Context) (models.Counts, error)
	ImportDataset(ctx context.Context, ds *models.Dataset) error
}

// Source picks where seed data comes from. Dir wins over generation.
type Source struct {
	Dir     string
	Seed    int64
	Options Options
}

// Load reads or generates the dataset described by src.
func (src Source) Load() (*models.Dataset, error) {
	if src.Dir != "" {
		ds, err := ReadDir(src.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed data: %w", err)
		}
		return ds, nil
	}
	return Generate(src.Seed, src.Options), nil
}

// EnsureSeeded imports src into st when every table is empty. It reports
// whether anything was imported.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func EnsureSeeded(ctx context.Context, st Importer, src Source, logger zerolog.Logger) (bool, error) {
	counts, err := st.Counts(ctx)
	if err != nil {
		return false, err
	}
	if !counts.Empty() {
		logger.Debug().
			Int64("users", counts.Users).
			Int64("foods", counts.Foods).
			Int64("orders", counts.Orders).
			Msg("store already populated, skipping seed")
		return false, nil
	}

	ds, err := src.Load()
	if err != nil {
		return false, err
	}
	if err := st.ImportDataset(ctx, ds); err != nil {
		return false, fmt.Errorf("failed to import seed data: %w", err)
	}
	logger.Info().
		Str("source", src.describe()).
		Int("users", len(ds.Users)).
		Int("foods", len(ds.Foods)).
		Int("orders", len(ds.Orders)).
		Msg("store seeded")
	return true, nil
}

func (src Source) describe() string {
	if src.Dir != "" {
		return src.Dir
	}
	return "synthetic"
}
