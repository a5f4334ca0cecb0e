// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

// Package validation validates API request structs with
// go-playground/validator v10.
//
// A single validator instance is shared by every handler. Field names in
// error messages come from the struct's json tags, so a failing `n`
// query parameter is reported as "n must be at most 100" rather than by
// its Go field name.
//
// Custom tags:
//
//	notblank   string contains at least one non-whitespace character
//
// Usage:
//
//	type RecommendRequest struct {
//	    UserID string `json:"user_id" validate:"required,max=64"`
//	    N      int    `json:"n" validate:"min=0,max=100"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
package validation
