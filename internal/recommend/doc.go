// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

// Package recommend implements the hybrid food recommendation engine.
//
// # Architecture
//
// Three independent filters score catalog items:
//
//   - Collaborative: SGD matrix factorization over historical order ratings
//   - Content: TF-IDF cosine similarity of item metadata against the user's
//     preferences plus the current weather and mood
//   - Context: rule tables mapping weather and mood to food categories
//
// The Engine asks each filter for 2N candidates in parallel, weights their
// scores (0.4 / 0.3 / 0.3 by default), sums them per food, and returns the
// top N.
//
// # Fallbacks
//
// Every filter wraps its primary strategy in a Chain of degraded strategies
// (random sample for unknown users, cuisine match when the vectorizer has no
// vocabulary, then empty). The engine itself falls back to the head of the
// catalog when all filters are empty, and to placeholder items when the
// catalog cannot be read. Recommend therefore never returns an error and
// never returns more than N items.
//
// # Determinism
//
// Fallback randomness is drawn from RequestRand, seeded from Config.Seed and
// the request fields. Identical requests against an unchanged store produce
// identical rankings.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	engine.SetDataProvider(db)
//	engine.RegisterFilter(algorithms.NewCollaborative(db, algorithms.CollaborativeConfig{}, logger))
//	engine.RegisterFilter(algorithms.NewContentBased(db, algorithms.ContentConfig{}, logger))
//	engine.RegisterFilter(algorithms.NewContextAware(db, algorithms.ContextConfig{}, logger))
//
//	resp := engine.Recommend(ctx, recommend.Request{
//	    UserID:  "u1",
//	    Weather: "Rainy",
//	    Mood:    "Stressed",
//	    N:       10,
//	})
//
// # Thread Safety
//
// The engine is safe for concurrent use. Each call reads the store
// independently and never writes to it.
package recommend
