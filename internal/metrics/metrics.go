// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Duration of store queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of store query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Metrics
	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Duration of recommendation requests in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"kind"}, // "hybrid" or a filter name
	)

	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of hybrid recommendation responses by strategy",
		},
		[]string{"strategy"}, // weighted_merge, catalog_head, placeholder, empty
	)

	RecommendationItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_items",
			Help:    "Number of items returned per hybrid response",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
		},
	)

	FilterStrategyTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_filter_strategy_total",
			Help: "Fallback strategy each filter ended on",
		},
		[]string{"filter", "strategy"},
	)

	FilterFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_filter_failures_total",
			Help: "Filter calls that contributed nothing because every strategy failed, timed out or panicked",
		},
		[]string{"filter"},
	)

	// Mood Detection Metrics
	MoodDetections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mood_detections_total",
			Help: "Total number of mood detections",
		},
		[]string{"provider", "mood"},
	)

	MoodFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mood_fallbacks_total",
			Help: "Times the primary mood detector was bypassed for the keyword detector",
		},
		[]string{"reason"}, // "error", "invalid_mood"
	)

	// Weather Metrics
	WeatherLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_lookups_total",
			Help: "Total number of weather lookups",
		},
		[]string{"source", "outcome"}, // outcome: "success", "error"
	)

	WeatherCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "weather_cache_hits_total",
			Help: "Total number of weather cache hits",
		},
	)

	WeatherCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "weather_cache_misses_total",
			Help: "Total number of weather cache misses",
		},
	)

	// Places Metrics
	PlacesRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "places_requests_total",
			Help: "Total number of nearby restaurant searches",
		},
		[]string{"outcome"},
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of active chat WebSocket connections",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
	)

	WSMessagesReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_received_total",
			Help: "Total number of WebSocket messages received",
		},
	)

	WSErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_errors_total",
			Help: "Total number of WebSocket errors",
		},
		[]string{"error_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Order Event Metrics
	NATSMessagesPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nats_messages_published_total",
			Help: "Total number of order events published to NATS",
		},
	)

	NATSMessagesConsumed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nats_messages_consumed_total",
			Help: "Total number of order events consumed from NATS",
		},
	)

	NATSMessagesProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nats_messages_processed_total",
			Help: "Total number of order events written to the store",
		},
	)

	NATSMessagesParseFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nats_messages_parse_failed_total",
			Help: "Total number of order events that failed to parse",
		},
	)

	NATSProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nats_processing_duration_seconds",
			Help:    "Duration of order event processing in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	OrdersRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_recorded_total",
			Help: "Orders accepted by the API",
		},
		[]string{"path"}, // "nats" or "direct"
	)

	// Application Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// maxErrorLabel bounds the cardinality of error_type labels.
const maxErrorLabel = 50

// RecordDBQuery records a store query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		if len(errorType) > maxErrorLabel {
			errorType = errorType[:maxErrorLabel]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordHybrid records one hybrid recommendation response.
func RecordHybrid(strategy string, items int, duration time.Duration) {
	RecommendationDuration.WithLabelValues("hybrid").Observe(duration.Seconds())
	RecommendationsTotal.WithLabelValues(strategy).Inc()
	RecommendationItems.Observe(float64(items))
}

// RecordFilterStrategy records the strategy a filter ended on. A filter that
// produced nothing through its "none" strategy also counts as a failure.
func RecordFilterStrategy(filter, strategy string) {
	FilterStrategyTotal.WithLabelValues(filter, strategy).Inc()
	if strategy == "none" {
		FilterFailures.WithLabelValues(filter).Inc()
	}
}

// RecordFilterDuration records a single-filter call.
func RecordFilterDuration(filter string, duration time.Duration) {
	RecommendationDuration.WithLabelValues(filter).Observe(duration.Seconds())
}

// RecordMoodDetection records a detected mood.
func RecordMoodDetection(provider, mood string) {
	MoodDetections.WithLabelValues(provider, mood).Inc()
}

// RecordMoodFallback records a bypass of the primary detector.
func RecordMoodFallback(reason string) {
	MoodFallbacks.WithLabelValues(reason).Inc()
}

// RecordWeatherLookup records a weather lookup outcome for a source.
func RecordWeatherLookup(source string, err error) {
	WeatherLookups.WithLabelValues(source, outcome(err)).Inc()
}

// RecordWeatherCache records a weather cache hit or miss.
func RecordWeatherCache(hit bool) {
	if hit {
		WeatherCacheHits.Inc()
	} else {
		WeatherCacheMisses.Inc()
	}
}

// RecordPlacesRequest records a nearby restaurant search outcome.
func RecordPlacesRequest(err error) {
	PlacesRequests.WithLabelValues(outcome(err)).Inc()
}

// RecordNATSPublish increments the NATS published counter
func RecordNATSPublish() {
	NATSMessagesPublished.Inc()
}

// RecordNATSConsume increments the NATS consumed counter
func RecordNATSConsume() {
	NATSMessagesConsumed.Inc()
}

// RecordNATSProcessed increments the NATS processed counter
func RecordNATSProcessed() {
	NATSMessagesProcessed.Inc()
}

// RecordNATSParseFailed increments the NATS parse failed counter
func RecordNATSParseFailed() {
	NATSMessagesParseFailed.Inc()
}

// RecordNATSProcessingDuration records the duration of order event processing
func RecordNATSProcessingDuration(duration time.Duration) {
	NATSProcessingDuration.Observe(duration.Seconds())
}

// RecordOrder records an accepted order by ingestion path.
func RecordOrder(path string) {
	OrdersRecorded.WithLabelValues(path).Inc()
}

// SetAppInfo publishes build information and returns a func that refreshes
// the uptime gauge.
func SetAppInfo(version, goVersion string, started time.Time) func() {
	AppInfo.WithLabelValues(version, goVersion).Set(1)
	return func() {
		AppUptime.Set(time.Since(started).Seconds())
	}
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
