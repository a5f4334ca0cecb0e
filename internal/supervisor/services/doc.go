// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

// Package services adapts components with a start/shutdown lifecycle to
// suture.Service. Components that already implement Serve (the chat hub, the
// order consumer) are added to the tree directly.
package services
