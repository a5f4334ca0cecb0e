// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

// Command evaluate measures recommendation quality offline. Stored orders
// are split by time, the engine is trained on the older part and each
// filter is scored on the newer part with precision, recall and F1 at k.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/goccy/go-json"

	"github.com/tomtom215/foodaware/internal/config"
	"github.com/tomtom215/foodaware/internal/logging"
	"github.com/tomtom215/foodaware/internal/recommend"
	"github.com/tomtom215/foodaware/internal/recommend/algorithms"
	"github.com/tomtom215/foodaware/internal/store"
)

func main() {
	k := flag.Int("k", 10, "cut-off rank")
	train := flag.Float64("train", 0.8, "fraction of orders, oldest first, used for training")
	asJSON := flag.Bool("json", false, "print results as JSON")
	flag.Parse()

	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := run(ctx, cfg, *train, *k)
	if err != nil {
		logging.Fatal().Err(err).Msg("Evaluation failed")
	}

	if *asJSON {
		err = json.NewEncoder(os.Stdout).Encode(results)
	} else {
		err = printTable(os.Stdout, results, *k)
	}
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to write results")
	}
}

func run(ctx context.Context, cfg *config.Config, trainFraction float64, k int) ([]recommend.EvalResult, error) {
	if trainFraction <= 0 || trainFraction >= 1 {
		return nil, fmt.Errorf("train fraction must be between 0 and 1, got %v", trainFraction)
	}

	st, err := store.Open(&cfg.Database, logging.Logger())
	if err != nil {
		return nil, err
	}
	defer st.Close()

	orders, err := st.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	trainSet, testSet := recommend.SplitOrders(orders, trainFraction)
	logging.Info().
		Int("train_orders", len(trainSet)).
		Int("test_orders", len(testSet)).
		Msg("Orders split")

	engine, err := algorithms.BuildEngine(&cfg.Recommend, recommend.WithOrders(st, trainSet), logging.Logger())
	if err != nil {
		return nil, err
	}
	return engine.Evaluate(ctx, testSet, k)
}

func printTable(w io.Writer, results []recommend.EvalResult, k int) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "RECOMMENDER\tPRECISION@%d\tRECALL@%d\tF1\tUSERS\n", k, k)
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%d\n", r.Name, r.Precision, r.Recall, r.F1, r.Users)
	}
	return tw.Flush()
}
