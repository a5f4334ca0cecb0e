// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package services

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

var (
	_ suture.Service = (*HTTPServerService)(nil)
	_ suture.Service = (*BusService)(nil)
)

// fakeServer blocks in ListenAndServe until Shutdown, unless listenErr is
// set.
type fakeServer struct {
	listenErr   error
	shutdownErr error
	started     chan struct{}
	stop        chan struct{}
	shutdowns   atomic.Int32
}

func newFakeServer() *fakeServer {
	return &fakeServer{started: make(chan struct{}, 1), stop: make(chan struct{})}
}

func (f *fakeServer) ListenAndServe() error {
	f.started <- struct{}{}
	if f.listenErr != nil {
		return f.listenErr
	}
	<-f.stop
	return http.ErrServerClosed
}

func (f *fakeServer) Shutdown(context.Context) error {
	f.shutdowns.Add(1)
	close(f.stop)
	return f.shutdownErr
}

func TestHTTPServerService_Serve(t *testing.T) {
	t.Parallel()

	bindErr := errors.New("bind: address already in use")
	closeErr := errors.New("shutdown deadline exceeded")

	tests := []struct {
		name        string
		listenErr   error
		shutdownErr error
		cancel      bool
		wantErr     error
		wantClosed  int32
	}{
		{"graceful shutdown", nil, nil, true, context.Canceled, 1},
		{"listen failure", bindErr, nil, false, bindErr, 0},
		{"shutdown failure", nil, closeErr, true, closeErr, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := newFakeServer()
			srv.listenErr = tt.listenErr
			srv.shutdownErr = tt.shutdownErr
			svc := NewHTTPServerService(srv, time.Second)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			errCh := make(chan error, 1)
			go func() { errCh <- svc.Serve(ctx) }()

			<-srv.started
			if tt.cancel {
				cancel()
			}

			select {
			case err := <-errCh:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Serve() = %v, want %v", err, tt.wantErr)
				}
			case <-time.After(2 * time.Second):
				t.Fatal("Serve() did not return")
			}
			if got := srv.shutdowns.Load(); got != tt.wantClosed {
				t.Errorf("shutdowns = %d, want %d", got, tt.wantClosed)
			}
		})
	}
}

func TestNewHTTPServerService_DefaultTimeout(t *testing.T) {
	t.Parallel()

	for _, d := range []time.Duration{0, -time.Second} {
		if got := NewHTTPServerService(newFakeServer(), d).shutdownTimeout; got != 10*time.Second {
			t.Errorf("timeout(%v) = %v, want 10s", d, got)
		}
	}
	if got := NewHTTPServerService(newFakeServer(), 0).String(); got != "http-server" {
		t.Errorf("String() = %q", got)
	}
}

func TestHTTPServerService_RealServer(t *testing.T) {
	t.Parallel()

	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler(), ReadHeaderTimeout: time.Second}
	svc := NewHTTPServerService(srv, time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want deadline exceeded", err)
	}
}
