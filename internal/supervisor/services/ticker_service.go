// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package services

import (
	"context"
	"time"
)

// TickerService calls fn once at start and then every interval until its
// context is canceled. It suits cheap periodic work such as refreshing a
// gauge.
type TickerService struct {
	name     string
	interval time.Duration
	fn       func()
}

// NewTickerService wraps fn. A non-positive interval means 15 seconds.
func NewTickerService(name string, interval time.Duration, fn func()) *TickerService {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &TickerService{name: name, interval: interval, fn: fn}
}

// Serve implements suture.Service.
func (s *TickerService) Serve(ctx context.Context) error {
	s.fn()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.fn()
		}
	}
}

// String names the service in supervisor logs.
func (s *TickerService) String() string {
	return s.name
}
