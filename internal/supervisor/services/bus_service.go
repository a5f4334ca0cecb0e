// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Bus is the lifecycle of the order event bus.
type Bus interface {
	Healthy() bool
	Close(ctx context.Context)
}

// BusService owns an already started event bus: it watches its health while
// the tree runs and closes it when the tree stops. It never restarts the
// bus, since the publisher held by the API would go stale.
type BusService struct {
	bus             Bus
	checkInterval   time.Duration
	shutdownTimeout time.Duration
	logger          zerolog.Logger
}

// NewBusService wraps bus.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewBusService(bus Bus, checkInterval, shutdownTimeout time.Duration, logger zerolog.Logger) *BusService {
	if checkInterval <= 0 {
		checkInterval = 30 * time.Second
	}
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &BusService{
		bus:             bus,
		checkInterval:   checkInterval,
		shutdownTimeout: shutdownTimeout,
		logger:          logger.With().Str("component", "nats-bus").Logger(),
	}
}

// Serve implements suture.Service.
func (s *BusService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	healthy := true
	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
			s.bus.Close(shutdownCtx)
			cancel()
			return ctx.Err()

		case <-ticker.C:
			now := s.bus.Healthy()
			switch {
			case !now && healthy:
				s.logger.Warn().Msg("event bus unhealthy")
			case now && !healthy:
				s.logger.Info().Msg("event bus recovered")
			}
			healthy = now
		}
	}
}

// String names the service in supervisor logs.
func (s *BusService) String() string {
	return "nats-bus"
}
