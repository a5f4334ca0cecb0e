// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

// Package mood turns free text into one of five moods. A keyword matcher is
// always available; a Gemini-backed detector can sit in front of it.
package mood

import (
	"context"
	"errors"
	"strings"
)

// Mood is one of the five moods the context rules understand.
type Mood string

// Valid moods.
const (
	Happy       Mood = "Happy"
	Sad         Mood = "Sad"
	Stressed    Mood = "Stressed"
	Relaxed     Mood = "Relaxed"
	Adventurous Mood = "Adventurous"
)

// All lists the valid moods in rule order.
var All = []Mood{Happy, Sad, Stressed, Relaxed, Adventurous}

// ErrInvalidMood is returned when a detector produces something outside All.
var ErrInvalidMood = errors.New("invalid mood")

// Detector reads a mood from text.
type Detector interface {
	Detect(ctx context.Context, text string) (Mood, error)
}

// Parse maps s onto a valid mood, ignoring case, surrounding whitespace and
// trailing punctuation.
func Parse(s string) (Mood, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ".!?,;:\"'")
	for _, m := range All {
		if strings.EqualFold(s, string(m)) {
			return m, true
		}
	}
	return "", false
}

// Valid reports whether m is one of All.
func (m Mood) Valid() bool {
	for _, v := range All {
		if m == v {
			return true
		}
	}
	return false
}

// String returns the mood name.
func (m Mood) String() string {
	return string(m)
}
