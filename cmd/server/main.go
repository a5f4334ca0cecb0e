// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	_ "github.com/tomtom215/foodaware/docs" // Import generated swagger docs
	"github.com/tomtom215/foodaware/internal/api"
	"github.com/tomtom215/foodaware/internal/config"
	"github.com/tomtom215/foodaware/internal/eventprocessor"
	"github.com/tomtom215/foodaware/internal/logging"
	"github.com/tomtom215/foodaware/internal/metrics"
	"github.com/tomtom215/foodaware/internal/mood"
	"github.com/tomtom215/foodaware/internal/places"
	"github.com/tomtom215/foodaware/internal/recommend/algorithms"
	"github.com/tomtom215/foodaware/internal/seed"
	"github.com/tomtom215/foodaware/internal/store"
	"github.com/tomtom215/foodaware/internal/supervisor"
	"github.com/tomtom215/foodaware/internal/supervisor/services"
	"github.com/tomtom215/foodaware/internal/weather"
	ws "github.com/tomtom215/foodaware/internal/websocket"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	started := time.Now()

	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logger := logging.Logger()

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("db_driver", cfg.Database.Driver).
		Str("weather_provider", cfg.Weather.Provider).
		Str("mood_provider", cfg.Mood.Provider).
		Bool("nats_enabled", cfg.NATS.Enabled).
		Msg("Starting FoodAware")

	if cfg.HasWildcardCORS() {
		logging.Warn().Msg("CORS allows any origin; restrict CORS_ORIGINS in production")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := store.Open(&cfg.Database, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open store")
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()

	if cfg.Database.SeedOnStart {
		src := seed.Source{Dir: cfg.Database.SeedDir, Seed: cfg.Database.SeedValue, Options: seed.DefaultOptions()}
		if _, err := seed.EnsureSeeded(ctx, st, src, logging.WithComponent("seed")); err != nil {
			logging.Error().Err(err).Msg("Failed to seed store, continuing with existing data")
		}
	}

	engine, err := algorithms.BuildEngine(&cfg.Recommend, st, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build recommendation engine")
	}

	detector, moodCloser, err := mood.New(ctx, &cfg.Mood, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create mood detector")
	}
	defer closeQuietly("mood detector", moodCloser)

	provider, weatherCloser, err := weather.New(&cfg.Weather, cfg.Recommend.Seed, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create weather provider")
	}
	defer closeQuietly("weather provider", weatherCloser)

	placesClient := places.NewClient(&cfg.Places, logger)
	if !cfg.Places.Enabled() {
		logging.Info().Msg("Places API key not set, restaurant search returns no results")
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(logging.WithComponent("supervisor")), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	})

	deps := &api.Deps{
		Store:          st,
		Engine:         engine,
		Mood:           detector,
		Weather:        provider,
		Places:         placesClient,
		Checks:         map[string]api.HealthCheck{},
		DefaultN:       cfg.Recommend.DefaultN,
		AllowedOrigins: cfg.Security.CORSOrigins,
		Version:        version,
	}

	if cfg.NATS.Enabled {
		bus, err := eventprocessor.Start(ctx, &cfg.NATS, logger)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to start event bus")
		}
		tree.AddMessagingService(services.NewBusService(bus, 30*time.Second, 10*time.Second, logger))
		tree.AddDataService(bus.NewConsumer(st))
		// Assigned only here so a disabled bus leaves a nil interface.
		deps.Publisher = bus.Publisher()
		deps.Checks["nats"] = func(context.Context) error {
			if !bus.Healthy() {
				return errors.New("nats connection down")
			}
			return nil
		}
		logging.Info().Str("url", bus.URL()).Str("topic", cfg.NATS.Topic).Msg("Order events enabled")
	} else {
		logging.Info().Msg("NATS disabled, orders are written directly to the store")
	}

	responder := api.NewChatResponder(detector, provider, engine, cfg.Recommend.DefaultN, logger)
	hub := ws.NewHub(responder, 30*time.Second, logger)
	deps.Hub = hub
	tree.AddMessagingService(hub)

	refreshUptime := metrics.SetAppInfo(version, runtime.Version(), started)
	tree.AddMessagingService(services.NewTickerService("uptime-gauge", 15*time.Second, refreshUptime))

	handler := api.NewHandler(deps)
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(&cfg.Security)))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		// WebSocket connections are hijacked, so this bounds plain requests only.
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server configured")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
		err = <-errCh
	case err = <-errCh:
		cancel()
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Shutdown complete")
}

func closeQuietly(name string, c io.Closer) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		logging.Error().Err(err).Str("component", name).Msg("Error during close")
	}
}
