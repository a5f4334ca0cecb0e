// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package places

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/foodaware/internal/config"
)

func newClient(t *testing.T, status int, body string) (*Client, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		q := r.URL.Query()
		if r.URL.Path != "/maps/api/place/nearbysearch/json" ||
			q.Get("radius") != "1500" || q.Get("type") != "restaurant" || q.Get("key") != "k" {
			t.Errorf("unexpected request %s?%s", r.URL.Path, r.URL.RawQuery)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewClient(&config.PlacesConfig{APIKey: "k", BaseURL: srv.URL}, zerolog.Nop()), &hits
}

func TestClient_Nearby(t *testing.T) {
	t.Parallel()

	c, _ := newClient(t, http.StatusOK, `{"status":"OK","results":[
		{"name":"Luigi's","vicinity":"1 Main St","rating":4.5},
		{"name":"Noodle Bar","vicinity":"2 Side St"}]}`)

	got := c.Nearby(context.Background(), "40.71,-74.00", "pasta")
	if len(got) != 2 {
		t.Fatalf("Nearby() = %+v", got)
	}
	if got[0].Name != "Luigi's" || got[0].Address != "1 Main St" || got[0].Rating == nil || *got[0].Rating != 4.5 {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].Rating != nil {
		t.Errorf("second rating = %v, want nil", *got[1].Rating)
	}
}

func TestClient_FailuresYieldEmpty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"http error", http.StatusForbidden, `{}`},
		{"api status", http.StatusOK, `{"status":"REQUEST_DENIED","error_message":"bad key"}`},
		{"bad json", http.StatusOK, `[`},
		{"zero results", http.StatusOK, `{"status":"ZERO_RESULTS","results":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, _ := newClient(t, tt.status, tt.body)
			got := c.Nearby(context.Background(), "0,0", "sushi")
			if got == nil || len(got) != 0 {
				t.Errorf("Nearby() = %#v, want empty non-nil slice", got)
			}
		})
	}
}

func TestClient_NoKeySkipsRequest(t *testing.T) {
	t.Parallel()

	c := NewClient(&config.PlacesConfig{BaseURL: "http://127.0.0.1:0"}, zerolog.Nop())
	if got := c.Nearby(context.Background(), "0,0", "tacos"); len(got) != 0 {
		t.Errorf("Nearby() = %+v", got)
	}
}
