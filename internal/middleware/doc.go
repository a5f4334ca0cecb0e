// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

/*
Package middleware provides the HTTP middleware FoodAware adds on top of
the chi middleware stack.

  - RequestID: honours or generates X-Request-ID, stores it for chi's
    GetReqID and for logging.Ctx, and echoes it in the response
  - PrometheusMetrics: request counters, latency histogram and in-flight
    gauge, labelled by chi route pattern so path parameters such as user
    IDs do not explode label cardinality

Both are plain func(http.Handler) http.Handler and are installed with r.Use:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
