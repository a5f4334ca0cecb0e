// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

// Package logging provides centralized zerolog-based logging for FoodAware.
//
// A global logger is configured once from LOG_LEVEL, LOG_FORMAT and
// LOG_CALLER. Components receive a zerolog.Logger and derive their own
// with a component field:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logger := logging.WithComponent("recommend")
//	logger.Info().Int("filters", 3).Msg("engine ready")
//
// Request-scoped logging reads request_id and user_id from the context:
//
//	logging.Ctx(ctx).Warn().Err(err).Msg("weather lookup failed")
//
// Two adapters route third-party logging through zerolog: SlogHandler for
// libraries that take a *slog.Logger (the suture supervisor hook) and
// WatermillLogger for the NATS publisher and subscriber.
//
// Always terminate chains with Msg or Send; an unterminated event is
// never written.
package logging
