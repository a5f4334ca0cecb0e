// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package api

// Error codes used in APIError.Code.
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeDatabase           = "DATABASE_ERROR"
	ErrCodeUpstream           = "UPSTREAM_ERROR"
	ErrCodePublish            = "PUBLISH_ERROR"
	ErrCodeRateLimited        = "RATE_LIMIT_EXCEEDED"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
