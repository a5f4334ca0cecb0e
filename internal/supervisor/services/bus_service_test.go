// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type fakeBus struct {
	healthy atomic.Bool
	checks  atomic.Int32
	closed  atomic.Int32
}

func (b *fakeBus) Healthy() bool {
	b.checks.Add(1)
	return b.healthy.Load()
}

func (b *fakeBus) Close(ctx context.Context) {
	if _, ok := ctx.Deadline(); ok {
		b.closed.Add(1)
	}
}

func TestBusService_ClosesOnShutdown(t *testing.T) {
	t.Parallel()

	bus := &fakeBus{}
	svc := NewBusService(bus, 5*time.Millisecond, time.Second, zerolog.Nop())
	if svc.String() != "nats-bus" {
		t.Errorf("String() = %q", svc.String())
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for bus.checks.Load() < 2 {
		if time.Now().After(deadline) {
			t.Fatal("health never checked")
		}
		time.Sleep(time.Millisecond)
	}
	bus.healthy.Store(true)
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
	if bus.closed.Load() != 1 {
		t.Errorf("closed = %d, want 1 with a deadline", bus.closed.Load())
	}
}

func TestNewBusService_Defaults(t *testing.T) {
	t.Parallel()

	svc := NewBusService(&fakeBus{}, 0, 0, zerolog.Nop())
	if svc.checkInterval != 30*time.Second || svc.shutdownTimeout != 10*time.Second {
		t.Errorf("defaults = %v / %v", svc.checkInterval, svc.shutdownTimeout)
	}
}
