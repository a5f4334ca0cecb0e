// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

// Package algorithms implements the three filters of the hybrid engine.
//
// Each filter implements recommend.Filter and wraps its primary strategy in
// a recommend.Chain so that it always returns a (possibly empty) list.
//
// # Filters
//
// Collaborative:
//   - Biased matrix factorization fit by SGD on (user, food, rating) triples
//   - Unknown users get a random catalog sample scored in [3, 5]
//
// ContentBased:
//   - TF-IDF over "{cuisine} {category} {tags} {attributes}" with English
//     stop words removed; cosine similarity against the user's preferences,
//     dietary restrictions, weather and mood
//   - Unknown users get a random sample scored in [0.5, 0.9]
//   - An empty vocabulary falls back to cuisine matching
//
// ContextAware:
//   - Rule tables map weather and mood to food categories
//   - Categories score +1 per matching table, tags +0.5
//
// # Thread Safety
//
// Fitted models are cached per filter and refit when the store contents
// they were built from change. Fitting takes an exclusive lock; scoring
// takes a shared lock.
package algorithms
