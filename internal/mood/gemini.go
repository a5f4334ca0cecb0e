// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package mood

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	"github.com/tomtom215/foodaware/internal/breaker"
	"github.com/tomtom215/foodaware/internal/metrics"
)

// ProviderGemini labels LLM detections in metrics.
const ProviderGemini = "gemini"

const moodInstruction = "You are a mood detection assistant. Just respond with the mood, " +
	"one of: Happy, Sad, Stressed, Relaxed, Adventurous."

// Generator produces a text completion for a prompt.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// GeminiGenerator is a Generator backed by the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiGenerator creates a Gemini client for model.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	m := client.GenerativeModel(model)
	m.SystemInstruction = genai.NewUserContent(genai.Text(moodInstruction))
	return &GeminiGenerator{client: client, model: m}, nil
}

// GenerateText implements Generator.
func (g *GeminiGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty response from Gemini")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", errors.New("unexpected response format from Gemini")
	}
	return string(text), nil
}

// Close releases the underlying client.
func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

// LLMDetector asks a language model for the mood. Calls run behind a
// circuit breaker and a per-call timeout.
type LLMDetector struct {
	gen     Generator
	cb      *breaker.Breaker[string]
	timeout time.Duration
	logger  zerolog.Logger
}

// NewLLMDetector wraps gen. A zero timeout means no extra deadline.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewLLMDetector(gen Generator, timeout time.Duration, logger zerolog.Logger) *LLMDetector {
	l := logger.With().Str("component", "mood_llm").Logger()
	return &LLMDetector{
		gen:     gen,
		cb:      breaker.New[string](breaker.DefaultConfig("gemini-mood"), l),
		timeout: timeout,
		logger:  l,
	}
}

// Detect implements Detector. A reply that is not a valid mood returns
// ErrInvalidMood.
func (d *LLMDetector) Detect(ctx context.Context, text string) (Mood, error) {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	reply, err := d.cb.Execute(func() (string, error) {
		return d.gen.GenerateText(ctx, "How am I feeling? "+text)
	})
	if err != nil {
		return "", fmt.Errorf("mood detection failed: %w", err)
	}

	m, ok := parseReply(reply)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidMood, reply)
	}
	metrics.RecordMoodDetection(ProviderGemini, string(m))
	return m, nil
}

// parseReply accepts a bare mood or a short sentence whose first matching
// word is a mood.
func parseReply(reply string) (Mood, bool) {
	if m, ok := Parse(reply); ok {
		return m, true
	}
	for _, word := range strings.Fields(reply) {
		if m, ok := Parse(word); ok {
			return m, true
		}
	}
	return "", false
}
