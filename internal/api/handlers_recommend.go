// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/foodaware/internal/logging"
	"github.com/tomtom215/foodaware/internal/models"
	"github.com/tomtom215/foodaware/internal/recommend"
)

// parseRecommendRequest reads and validates the shared recommendation query.
// It writes the error response itself and returns false on failure.
func (h *Handler) parseRecommendRequest(w http.ResponseWriter, r *http.Request) (recommend.Request, bool) {
	n, ok := queryInt(r, "n", h.deps.DefaultN)
	if !ok {
		respondAPIError(w, r, http.StatusBadRequest, &models.APIError{
			Code:    ErrCodeValidation,
			Message: "n must be an integer",
			Details: map[string]interface{}{"field": "n"},
		})
		return recommend.Request{}, false
	}

	q := r.URL.Query()
	req := RecommendRequest{
		UserID:  strings.TrimSpace(q.Get("user_id")),
		Weather: strings.TrimSpace(q.Get("weather")),
		Mood:    strings.TrimSpace(q.Get("mood")),
		N:       n,
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr)
		return recommend.Request{}, false
	}

	return recommend.Request{
		UserID:    req.UserID,
		Weather:   req.Weather,
		Mood:      req.Mood,
		N:         req.N,
		RequestID: logging.RequestIDFromContext(r.Context()),
	}, true
}

// Recommendations returns the hybrid ranking. Unknown users, weather or mood
// still produce a list; it is never longer than n.
//
// @Summary Hybrid recommendations
// @Description Blends the collaborative, content-based and context-aware filters with the configured weights.
// @Tags Recommendations
// @Produce json
// @Param user_id query string true "User ID"
// @Param weather query string false "Weather condition (Sunny, Rainy, Cloudy, ...)"
// @Param mood query string false "Mood (Happy, Sad, Stressed, Relaxed, Adventurous)"
// @Param n query int false "Number of items (0-100)"
// @Success 200 {object} models.APIResponse{data=recommend.Response}
// @Failure 400 {object} models.APIResponse "Invalid parameters"
// @Router /recommendations [get]
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, ok := h.parseRecommendRequest(w, r)
	if !ok {
		return
	}

	resp := h.deps.Engine.Recommend(r.Context(), req)
	respondSuccess(w, r, http.StatusOK, resp, start)
}

// FilterRecommendations returns the ranking of one filter.
//
// @Summary Single-filter recommendations
// @Description Runs one filter with its fallback chain. Scores are omitted for filters that do not produce them.
// @Tags Recommendations
// @Produce json
// @Param filter path string true "Filter" Enums(collaborative, content, context)
// @Param user_id query string true "User ID"
// @Param weather query string false "Weather condition"
// @Param mood query string false "Mood"
// @Param n query int false "Number of items (0-100)"
// @Success 200 {object} models.APIResponse{data=FilterResponse}
// @Failure 400 {object} models.APIResponse "Invalid parameters"
// @Failure 404 {object} models.APIResponse "Unknown filter"
// @Router /recommendations/{filter} [get]
func (h *Handler) FilterRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	name := chi.URLParam(r, "filter")

	req, ok := h.parseRecommendRequest(w, r)
	if !ok {
		return
	}

	res, err := h.deps.Engine.RecommendFilter(r.Context(), name, req)
	if errors.Is(err, recommend.ErrUnknownFilter) {
		respondAPIError(w, r, http.StatusNotFound, &models.APIError{
			Code:    ErrCodeNotFound,
			Message: "Unknown filter",
			Details: map[string]interface{}{
				"filter":  sanitizeLogValue(name),
				"allowed": []string{recommend.FilterCollaborative, recommend.FilterContent, recommend.FilterContext},
			},
		})
		return
	}
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeServiceUnavailable, "Recommendation failed", err)
		return
	}

	items := res.Candidates
	if items == nil {
		items = []recommend.Candidate{}
	}
	respondSuccess(w, r, http.StatusOK, FilterResponse{
		Filter:   name,
		Strategy: res.Strategy,
		Items:    items,
	}, start)
}
