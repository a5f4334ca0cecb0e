// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

/*
Package supervisor runs FoodAware's long-lived components under a suture/v4
supervisor tree.

	foodaware (root)
	├── data-layer       order event consumer
	├── messaging-layer  NATS bus lifecycle, chat hub
	└── api-layer        HTTP server

Each layer is its own supervisor, so a consumer that keeps failing backs off
without taking the HTTP server down. Supervisor events are logged through
sutureslog on top of the zerolog-backed slog adapter from internal/logging.

Services restart on error according to TreeConfig. A service that returns
suture.ErrDoNotRestart is removed; suture.ErrTerminateSupervisorTree stops
the whole tree.
*/
package supervisor
