// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

// histogramCount extracts the sample count from a histogram child.
func histogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	m, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T is not a metric", o)
	}
	var pb io_prometheus_client.Metric
	if err := m.Write(&pb); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return pb.GetHistogram().GetSampleCount()
}

func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		table     string
		err       error
		wantType  string
	}{
		{
			name:      "successful select",
			operation: "select",
			table:     "food_items",
		},
		{
			name:      "short error",
			operation: "insert",
			table:     "orders",
			err:       errors.New("connection refused"),
			wantType:  "connection refused",
		},
		{
			name:      "long error is truncated",
			operation: "select",
			table:     "users",
			err:       errors.New(strings.Repeat("x", 80)),
			wantType:  strings.Repeat("x", maxErrorLabel),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := histogramCount(t, DBQueryDuration.WithLabelValues(tt.operation, tt.table))
			RecordDBQuery(tt.operation, tt.table, 5*time.Millisecond, tt.err)
			after := histogramCount(t, DBQueryDuration.WithLabelValues(tt.operation, tt.table))
			if after != before+1 {
				t.Errorf("duration samples = %d, want %d", after, before+1)
			}

			if tt.err != nil {
				got := testutil.ToFloat64(DBQueryErrors.WithLabelValues(tt.operation, tt.table, tt.wantType))
				if got < 1 {
					t.Errorf("error counter for %q = %v, want >= 1", tt.wantType, got)
				}
			}
		})
	}
}

func TestRecordAPIRequest(t *testing.T) {
	c := APIRequestsTotal.WithLabelValues("GET", "/api/v1/foods", "200")
	before := testutil.ToFloat64(c)
	RecordAPIRequest("GET", "/api/v1/foods", 200, 10*time.Millisecond)
	if got := testutil.ToFloat64(c); got != before+1 {
		t.Errorf("api_requests_total = %v, want %v", got, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("after inc = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("after dec = %v, want %v", got, before)
	}
}

func TestRecordHybrid(t *testing.T) {
	before := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("catalog_head"))
	RecordHybrid("catalog_head", 3, 2*time.Millisecond)
	if got := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("catalog_head")); got != before+1 {
		t.Errorf("recommendations_total = %v, want %v", got, before+1)
	}
}

func TestRecordFilterStrategy(t *testing.T) {
	tests := []struct {
		name        string
		filter      string
		strategy    string
		wantFailure bool
	}{
		{"primary strategy", "collaborative", "matrix_factorization", false},
		{"fallback strategy", "content", "cuisine_match", false},
		{"nothing produced", "context", "none", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strat := FilterStrategyTotal.WithLabelValues(tt.filter, tt.strategy)
			fail := FilterFailures.WithLabelValues(tt.filter)
			beforeStrat := testutil.ToFloat64(strat)
			beforeFail := testutil.ToFloat64(fail)

			RecordFilterStrategy(tt.filter, tt.strategy)

			if got := testutil.ToFloat64(strat); got != beforeStrat+1 {
				t.Errorf("strategy counter = %v, want %v", got, beforeStrat+1)
			}
			wantFail := beforeFail
			if tt.wantFailure {
				wantFail++
			}
			if got := testutil.ToFloat64(fail); got != wantFail {
				t.Errorf("failure counter = %v, want %v", got, wantFail)
			}
		})
	}
}

func TestProviderOutcomes(t *testing.T) {
	okBefore := testutil.ToFloat64(WeatherLookups.WithLabelValues("openweather", "success"))
	errBefore := testutil.ToFloat64(WeatherLookups.WithLabelValues("openweather", "error"))
	RecordWeatherLookup("openweather", nil)
	RecordWeatherLookup("openweather", errors.New("timeout"))
	if got := testutil.ToFloat64(WeatherLookups.WithLabelValues("openweather", "success")); got != okBefore+1 {
		t.Errorf("success = %v, want %v", got, okBefore+1)
	}
	if got := testutil.ToFloat64(WeatherLookups.WithLabelValues("openweather", "error")); got != errBefore+1 {
		t.Errorf("error = %v, want %v", got, errBefore+1)
	}

	hits := testutil.ToFloat64(WeatherCacheHits)
	misses := testutil.ToFloat64(WeatherCacheMisses)
	RecordWeatherCache(true)
	RecordWeatherCache(false)
	if testutil.ToFloat64(WeatherCacheHits) != hits+1 || testutil.ToFloat64(WeatherCacheMisses) != misses+1 {
		t.Error("weather cache counters not incremented")
	}

	moodBefore := testutil.ToFloat64(MoodDetections.WithLabelValues("keyword", "Happy"))
	RecordMoodDetection("keyword", "Happy")
	if got := testutil.ToFloat64(MoodDetections.WithLabelValues("keyword", "Happy")); got != moodBefore+1 {
		t.Errorf("mood detections = %v, want %v", got, moodBefore+1)
	}

	placesBefore := testutil.ToFloat64(PlacesRequests.WithLabelValues("error"))
	RecordPlacesRequest(errors.New("denied"))
	if got := testutil.ToFloat64(PlacesRequests.WithLabelValues("error")); got != placesBefore+1 {
		t.Errorf("places errors = %v, want %v", got, placesBefore+1)
	}
}

func TestNATSMetrics(t *testing.T) {
	counters := []struct {
		name   string
		c      prometheus.Counter
		record func()
	}{
		{"published", NATSMessagesPublished, RecordNATSPublish},
		{"consumed", NATSMessagesConsumed, RecordNATSConsume},
		{"processed", NATSMessagesProcessed, RecordNATSProcessed},
		{"parse_failed", NATSMessagesParseFailed, RecordNATSParseFailed},
	}
	for _, tc := range counters {
		t.Run(tc.name, func(t *testing.T) {
			before := testutil.ToFloat64(tc.c)
			tc.record()
			if got := testutil.ToFloat64(tc.c); got != before+1 {
				t.Errorf("%s = %v, want %v", tc.name, got, before+1)
			}
		})
	}

	RecordNATSProcessingDuration(3 * time.Millisecond)

	before := testutil.ToFloat64(OrdersRecorded.WithLabelValues("direct"))
	RecordOrder("direct")
	if got := testutil.ToFloat64(OrdersRecorded.WithLabelValues("direct")); got != before+1 {
		t.Errorf("orders_recorded_total = %v, want %v", got, before+1)
	}
}

func TestSetAppInfo(t *testing.T) {
	refresh := SetAppInfo("1.0.0", "go1.25.5", time.Now().Add(-time.Minute))
	if got := testutil.ToFloat64(AppInfo.WithLabelValues("1.0.0", "go1.25.5")); got != 1 {
		t.Errorf("app_info = %v, want 1", got)
	}
	refresh()
	if got := testutil.ToFloat64(AppUptime); got < 60 {
		t.Errorf("app_uptime_seconds = %v, want >= 60", got)
	}
}

// TestMetricsRegistration verifies all metrics are properly registered
func TestMetricsRegistration(t *testing.T) {
	collectors := []prometheus.Collector{
		DBQueryDuration,
		DBQueryErrors,
		APIRequestsTotal,
		APIRequestDuration,
		APIActiveRequests,
		APIRateLimitHits,
		RecommendationDuration,
		RecommendationsTotal,
		RecommendationItems,
		FilterStrategyTotal,
		FilterFailures,
		MoodDetections,
		MoodFallbacks,
		WeatherLookups,
		WeatherCacheHits,
		WeatherCacheMisses,
		PlacesRequests,
		WSConnections,
		WSMessagesSent,
		WSMessagesReceived,
		WSErrors,
		CircuitBreakerState,
		CircuitBreakerRequests,
		CircuitBreakerTransitions,
		NATSMessagesPublished,
		NATSMessagesConsumed,
		NATSMessagesProcessed,
		NATSMessagesParseFailed,
		NATSProcessingDuration,
		OrdersRecorded,
		AppInfo,
		AppUptime,
	}

	for _, m := range collectors {
		ch := make(chan *prometheus.Desc, 10)
		m.Describe(ch)
		close(ch)

		count := 0
		for range ch {
			count++
		}
		if count == 0 {
			t.Errorf("metric has no descriptors")
		}
	}
}
