// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/foodaware/internal/models"
)

const defaultPopularLimit = 10

// PopularFoods ranks dishes by order count.
//
// @Summary Most ordered foods
// @Tags Analytics
// @Produce json
// @Param limit query int false "Number of foods (1-50, default 10)"
// @Success 200 {object} models.APIResponse{data=[]models.PopularFood}
// @Failure 400 {object} models.APIResponse "Invalid limit"
// @Failure 500 {object} models.APIResponse "Store error"
// @Router /analytics/popular-foods [get]
func (h *Handler) PopularFoods(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	limit, ok := queryInt(r, "limit", defaultPopularLimit)
	if !ok {
		respondAPIError(w, r, http.StatusBadRequest, &models.APIError{
			Code:    ErrCodeValidation,
			Message: "limit must be an integer",
			Details: map[string]interface{}{"field": "limit"},
		})
		return
	}
	req := PopularFoodsRequest{Limit: limit}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr)
		return
	}

	foods, err := h.deps.Store.PopularFoods(r.Context(), req.Limit)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeDatabase, "Failed to load popular foods", err)
		return
	}
	if foods == nil {
		foods = []models.PopularFood{}
	}
	respondSuccess(w, r, http.StatusOK, foods, start)
}

// WeatherCategories counts orders per weather condition and food category.
//
// @Summary Weather by category order counts
// @Tags Analytics
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.CategoryCrosstab}
// @Failure 500 {object} models.APIResponse "Store error"
// @Router /analytics/weather-categories [get]
func (h *Handler) WeatherCategories(w http.ResponseWriter, r *http.Request) {
	h.categoryCrosstab(w, r, models.DimensionWeather)
}

// MoodCategories counts orders per mood and food category.
//
// @Summary Mood by category order counts
// @Tags Analytics
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.CategoryCrosstab}
// @Failure 500 {object} models.APIResponse "Store error"
// @Router /analytics/mood-categories [get]
func (h *Handler) MoodCategories(w http.ResponseWriter, r *http.Request) {
	h.categoryCrosstab(w, r, models.DimensionMood)
}

func (h *Handler) categoryCrosstab(w http.ResponseWriter, r *http.Request, dimension string) {
	start := time.Now()
	cells, err := h.deps.Store.CategoryCrosstab(r.Context(), dimension)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeDatabase, "Failed to load "+dimension+" analytics", err)
		return
	}
	if cells == nil {
		cells = []models.CategoryCount{}
	}
	respondSuccess(w, r, http.StatusOK, models.CategoryCrosstab{Dimension: dimension, Cells: cells}, start)
}
