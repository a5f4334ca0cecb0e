// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

/*
Package metrics provides Prometheus metrics collection and export for observability.

Every metric is registered with the default registry through promauto and
exposed at /metrics by promhttp:

	curl http://localhost:8080/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)

Recommendation Metrics:
  - recommendation_duration_seconds: Latency (histogram)
    Labels: kind (hybrid, collaborative, content, context)
  - recommendations_total: Hybrid responses (counter)
    Labels: strategy (weighted_merge, catalog_head, placeholder, empty)
  - recommendation_filter_strategy_total: Strategy each filter ended on (counter)
    Labels: filter, strategy
  - recommendation_filter_failures_total: Filters that contributed nothing (counter)

Collaborator Metrics:
  - mood_detections_total{provider, mood}, mood_fallbacks_total{reason}
  - weather_lookups_total{source, outcome}, weather_cache_hits_total, weather_cache_misses_total
  - places_requests_total{outcome}
  - circuit_breaker_state{name}: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total{name, result}
  - circuit_breaker_state_transitions_total{name, from_state, to_state}

Store and Event Metrics:
  - db_query_duration_seconds{operation, table}, db_query_errors_total
  - nats_messages_published_total, nats_messages_consumed_total,
    nats_messages_processed_total, nats_messages_parse_failed_total
  - nats_processing_duration_seconds
  - orders_recorded_total{path}: nats or direct

# Usage

	start := time.Now()
	resp := engine.Recommend(ctx, req)
	metrics.RecordHybrid(resp.Metadata.Strategy, len(resp.Items), time.Since(start))

# Testing

Tests read values back with prometheus/testutil or by writing a metric into
an io_prometheus_client.Metric. Counters are global, so assertions compare
against the value read before the action.
*/
package metrics
