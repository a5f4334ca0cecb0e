// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

// Package breaker builds sony/gobreaker circuit breakers that report their
// state and outcomes to Prometheus. The weather, places and Gemini clients
// and the order event publisher each own one.
package breaker

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/foodaware/internal/metrics"
)

// Config holds circuit breaker settings.
type Config struct {
	Name             string
	MaxRequests      uint32        // Allowed in half-open state
	Interval         time.Duration // Reset interval for counts
	Timeout          time.Duration // Time to stay open
	FailureThreshold uint32        // Consecutive failures before opening
}

// DefaultConfig returns production defaults.
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      3,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// Breaker wraps a gobreaker circuit breaker with metrics.
type Breaker[T any] struct {
	cb *gobreaker.CircuitBreaker[T]
}

// New creates a circuit breaker that opens after cfg.FailureThreshold
// consecutive failures. State transitions are logged and exported.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New[T any](cfg Config, logger zerolog.Logger) *Breaker[T] {
	metrics.CircuitBreakerState.WithLabelValues(cfg.Name).Set(0)

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	}

	return &Breaker[T]{cb: gobreaker.NewCircuitBreaker[T](settings)}
}

// Execute runs fn behind the breaker. When the breaker is open it returns
// gobreaker.ErrOpenState without calling fn.
func (b *Breaker[T]) Execute(fn func() (T, error)) (T, error) {
	result, err := b.cb.Execute(fn)
	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(b.cb.Name(), "success").Inc()
	case IsRejected(err):
		metrics.CircuitBreakerRequests.WithLabelValues(b.cb.Name(), "rejected").Inc()
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(b.cb.Name(), "failure").Inc()
	}
	return result, err
}

// Name returns the breaker name.
func (b *Breaker[T]) Name() string {
	return b.cb.Name()
}

// State returns the current state as a string (closed, half-open, open).
func (b *Breaker[T]) State() string {
	return b.cb.State().String()
}

// IsRejected reports whether err came from the breaker refusing a call.
func IsRejected(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
