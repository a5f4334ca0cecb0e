// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package mood

import (
	"context"
	"math/rand"
	"strings"
	"sync"

	"github.com/tomtom215/foodaware/internal/metrics"
)

// ProviderKeyword labels keyword detections in metrics.
const ProviderKeyword = "keyword"

// keywordRule pairs a mood with the substrings that select it. Rules are
// checked in order and the first hit wins.
type keywordRule struct {
	mood     Mood
	keywords []string
}

var keywordRules = []keywordRule{
	{Happy, []string{"happy", "joy", "glad", "great", "awesome", "excellent", "good"}},
	{Sad, []string{"sad", "down", "upset", "unhappy", "depressed", "blue", "dull"}},
	{Stressed, []string{"stressed", "anxious", "nervous", "worried", "tense"}},
	{Relaxed, []string{"relaxed", "calm", "peaceful", "chill", "easy"}},
	{Adventurous, []string{"adventurous", "excited", "curious", "wild", "daring"}},
}

// weightedMood is one slot of the no-match distribution.
type weightedMood struct {
	mood   Mood
	weight float64
}

var noMatchWeights = []weightedMood{
	{Happy, 0.3},
	{Sad, 0.2},
	{Relaxed, 0.2},
	{Stressed, 0.2},
	{Adventurous, 0.1},
}

// KeywordDetector matches lowercase substrings and draws a weighted random
// mood when nothing matches. It never returns an error.
type KeywordDetector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewKeywordDetector creates a detector whose no-match draws come from seed.
func NewKeywordDetector(seed int64) *KeywordDetector {
	return &KeywordDetector{
		rng: rand.New(rand.NewSource(seed)), //nolint:gosec // mood guesses need no crypto randomness
	}
}

// Detect implements Detector.
func (d *KeywordDetector) Detect(_ context.Context, text string) (Mood, error) {
	if m, ok := MatchKeywords(text); ok {
		metrics.RecordMoodDetection(ProviderKeyword, string(m))
		return m, nil
	}
	m := d.draw()
	metrics.RecordMoodFallback("no_keyword")
	metrics.RecordMoodDetection(ProviderKeyword, string(m))
	return m, nil
}

// MatchKeywords returns the first rule mood whose keyword occurs in text.
func MatchKeywords(text string) (Mood, bool) {
	lower := strings.ToLower(text)
	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.mood, true
			}
		}
	}
	return "", false
}

func (d *KeywordDetector) draw() Mood {
	d.mu.Lock()
	r := d.rng.Float64()
	d.mu.Unlock()

	var acc float64
	for _, w := range noMatchWeights {
		acc += w.weight
		if r < acc {
			return w.mood
		}
	}
	return noMatchWeights[len(noMatchWeights)-1].mood
}
