// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package api

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/foodaware/internal/logging"
	"github.com/tomtom215/foodaware/internal/models"
	"github.com/tomtom215/foodaware/internal/validation"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 64 << 10

// sanitizeLogValue escapes control characters so client input cannot forge
// log lines.
func sanitizeLogValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&b, "\\x%02x", r)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func metadata(r *http.Request, start time.Time) models.Metadata {
	md := models.Metadata{
		Timestamp: time.Now().UTC(),
		RequestID: logging.RequestIDFromContext(r.Context()),
	}
	if !start.IsZero() {
		md.QueryTimeMS = time.Since(start).Milliseconds()
	}
	return md
}

// respondJSON writes response with status.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, response *models.APIResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("failed to write JSON response")
	}
}

// respondSuccess wraps data in a success envelope.
func respondSuccess(w http.ResponseWriter, r *http.Request, status int, data interface{}, start time.Time) {
	respondJSON(w, r, status, &models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: metadata(r, start),
	})
}

// respondError writes an error envelope. err is logged, never returned to
// the client.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	if err != nil {
		logging.Ctx(r.Context()).Error().
			Str("code", code).
			Str("path", r.URL.Path).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API error")
	}
	respondAPIError(w, r, status, &models.APIError{Code: code, Message: message})
}

func respondAPIError(w http.ResponseWriter, r *http.Request, status int, apiErr *models.APIError) {
	respondJSON(w, r, status, &models.APIResponse{
		Status:   "error",
		Metadata: metadata(r, time.Time{}),
		Error:    apiErr,
	})
}

// validateRequest runs struct validation and converts failures to an
// APIError.
func validateRequest(v interface{}) *models.APIError {
	verr := validation.ValidateStruct(v)
	if verr == nil {
		return nil
	}
	apiErr := verr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// decodeJSON reads a bounded JSON body into v. It writes the error response
// itself and returns false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeInvalidJSON, "Could not read request body", err)
		return false
	}
	if len(body) > maxBodyBytes {
		respondError(w, r, http.StatusRequestEntityTooLarge, ErrCodeValidation, "Request body too large", nil)
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeInvalidJSON, "Request body must be valid JSON", nil)
		return false
	}
	return true
}

// queryInt parses an optional integer parameter. ok is false when the value
// is present but not an integer.
func queryInt(r *http.Request, key string, def int) (value int, ok bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
