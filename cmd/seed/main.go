// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

// Command seed loads demo data into the configured store.
//
// Without -dir it generates a synthetic dataset from -seed. With -dir it
// imports users.csv, food_items.csv and orders.csv from that directory.
// -export writes the dataset as CSV instead of (or as well as) importing it.
//
//	seed -reset                     # wipe, then generate with the default seed
//	seed -dir ./data                # import CSV files
//	seed -export ./data -import=false
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/foodaware/internal/config"
	"github.com/tomtom215/foodaware/internal/logging"
	"github.com/tomtom215/foodaware/internal/models"
	"github.com/tomtom215/foodaware/internal/seed"
	"github.com/tomtom215/foodaware/internal/store"
)

func main() {
	defaults := seed.DefaultOptions()

	dir := flag.String("dir", "", "import CSV files from this directory instead of generating")
	exportDir := flag.String("export", "", "write the dataset as CSV files to this directory")
	doImport := flag.Bool("import", true, "import the dataset into the store")
	reset := flag.Bool("reset", false, "delete existing rows before importing")
	seedValue := flag.Int64("seed", 42, "seed for the synthetic dataset")
	users := flag.Int("users", defaults.Users, "number of generated users")
	foods := flag.Int("foods", defaults.Foods, "number of generated food items")
	orders := flag.Int("orders", defaults.Orders, "number of generated orders")
	flag.Parse()

	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	logger := logging.WithComponent("seed")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := defaults
	opts.Users, opts.Foods, opts.Orders = *users, *foods, *orders
	ds, err := seed.Source{Dir: *dir, Seed: *seedValue, Options: opts}.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load dataset")
	}

	if *exportDir != "" {
		if err := seed.WriteDir(*exportDir, ds); err != nil {
			logging.Fatal().Err(err).Msg("Failed to export dataset")
		}
		logger.Info().Str("dir", *exportDir).Msg("Dataset exported")
	}

	if !*doImport {
		return
	}
	if err := importDataset(ctx, &cfg.Database, ds, *reset); err != nil {
		logging.Fatal().Err(err).Msg("Failed to import dataset")
	}
}

func importDataset(ctx context.Context, cfg *config.DatabaseConfig, ds *models.Dataset, reset bool) error {
	logger := logging.WithComponent("seed")

	st, err := store.Open(cfg, logging.Logger())
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error().Err(err).Msg("Error closing store")
		}
	}()

	if reset {
		if err := st.Reset(ctx); err != nil {
			return err
		}
		logger.Info().Msg("Store cleared")
	}
	if err := st.ImportDataset(ctx, ds); err != nil {
		return err
	}

	counts, err := st.Counts(ctx)
	if err != nil {
		return err
	}
	logger.Info().
		Str("driver", st.Driver()).
		Int64("users", counts.Users).
		Int64("foods", counts.Foods).
		Int64("orders", counts.Orders).
		Msg("Store seeded")
	return nil
}
