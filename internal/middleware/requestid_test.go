// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/tomtom215/foodaware/internal/logging"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
		wantSame bool
	}{
		{"generates when missing", "", false},
		{"preserves upstream id", "req-abc-123", true},
		{"replaces oversized id", strings.Repeat("x", maxRequestIDLen+1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var ctxID, logID string
			handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctxID = GetRequestID(r.Context())
				logID = logging.RequestIDFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/foods", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			got := rec.Header().Get(RequestIDHeader)
			if got == "" || got != ctxID || got != logID {
				t.Fatalf("header=%q ctx=%q log=%q", got, ctxID, logID)
			}
			if tt.wantSame {
				if got != tt.incoming {
					t.Errorf("id = %q, want %q", got, tt.incoming)
				}
				return
			}
			if _, err := uuid.Parse(got); err != nil {
				t.Errorf("generated id %q is not a UUID", got)
			}
		})
	}
}
