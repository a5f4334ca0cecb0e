// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package mood

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/tomtom215/foodaware/internal/breaker"
	"github.com/tomtom215/foodaware/internal/config"
	"github.com/tomtom215/foodaware/internal/metrics"
)

// ChainDetector tries primary and falls back to the keyword detector when
// primary fails or answers outside the valid set.
type ChainDetector struct {
	primary  Detector
	fallback *KeywordDetector
	logger   zerolog.Logger
}

// NewChainDetector creates a chain.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewChainDetector(primary Detector, fallback *KeywordDetector, logger zerolog.Logger) *ChainDetector {
	return &ChainDetector{
		primary:  primary,
		fallback: fallback,
		logger:   logger.With().Str("component", "mood").Logger(),
	}
}

// Detect implements Detector.
func (c *ChainDetector) Detect(ctx context.Context, text string) (Mood, error) {
	m, err := c.primary.Detect(ctx, text)
	if err == nil {
		if m.Valid() {
			return m, nil
		}
		err = fmt.Errorf("%w: %q", ErrInvalidMood, m)
	}

	reason := "error"
	switch {
	case errors.Is(err, ErrInvalidMood):
		reason = "invalid"
	case breaker.IsRejected(err):
		reason = "circuit_open"
	}
	metrics.RecordMoodFallback(reason)
	c.logger.Warn().Err(err).Str("reason", reason).Msg("primary mood detector failed, using keywords")

	return c.fallback.Detect(ctx, text)
}

// New builds the detector cfg selects. The returned closer releases any
// client the detector holds and is never nil.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(ctx context.Context, cfg *config.MoodConfig, logger zerolog.Logger) (Detector, io.Closer, error) {
	keywords := NewKeywordDetector(cfg.Seed)
	if cfg.Provider != config.MoodProviderGemini {
		return keywords, nopCloser{}, nil
	}

	gen, err := NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, nil, err
	}
	llm := NewLLMDetector(gen, cfg.Timeout, logger)
	return NewChainDetector(llm, keywords, logger), gen, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
