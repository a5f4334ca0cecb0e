// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInit(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	Debug().Msg("debug line")
	componentLogger := WithComponent("weather")
	componentLogger.Info().Msg("component line")

	out := buf.String()
	if !strings.Contains(out, "debug line") {
		t.Errorf("debug output missing: %s", out)
	}
	if !strings.Contains(out, `"component":"weather"`) || !strings.Contains(out, `"service":"foodaware"`) {
		t.Errorf("fields missing: %s", out)
	}

	buf.Reset()
	Init(Config{Level: "warn", Output: &buf})
	Info().Msg("hidden")
	Err(errors.New("boom")).Msg("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "boom") {
		t.Errorf("level filtering wrong: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"nonsense", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.expected {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestCtx(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), NewTestLogger(&buf))
	ctx = ContextWithRequestID(ctx, "req-1")
	ctx = ContextWithUserID(ctx, "u42")

	Ctx(ctx).Warn().Msg("tagged")

	out := buf.String()
	if !strings.Contains(out, `"request_id":"req-1"`) || !strings.Contains(out, `"user_id":"u42"`) {
		t.Errorf("context fields missing: %s", out)
	}
	if RequestIDFromContext(context.Background()) != "" || UserIDFromContext(context.Background()) != "" {
		t.Error("empty context should have no ids")
	}
	if len(GenerateRequestID()) != 36 {
		t.Error("request id should be a UUID")
	}
}
