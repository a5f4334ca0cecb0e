// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/foodaware/internal/places"
)

// DetectMood reads a mood from free text.
//
// @Summary Detect mood
// @Description Classifies text into Happy, Sad, Stressed, Relaxed or Adventurous.
// @Tags Context
// @Accept json
// @Produce json
// @Param request body MoodRequest true "Text to classify"
// @Success 200 {object} models.APIResponse{data=MoodResponse}
// @Failure 400 {object} models.APIResponse "Invalid request"
// @Failure 502 {object} models.APIResponse "Mood detector failed"
// @Router /mood [post]
func (h *Handler) DetectMood(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req MoodRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr)
		return
	}

	m, err := h.deps.Mood.Detect(r.Context(), req.Text)
	if err != nil {
		respondError(w, r, http.StatusBadGateway, ErrCodeUpstream, "Mood detection failed", err)
		return
	}
	respondSuccess(w, r, http.StatusOK, MoodResponse{Mood: m.String()}, start)
}

// Weather returns the current conditions for a city.
//
// @Summary Current weather
// @Description Looks up the city's weather; a random report stands in when the weather service is unavailable.
// @Tags Context
// @Produce json
// @Param city query string true "City name"
// @Success 200 {object} models.APIResponse{data=weather.Report}
// @Failure 400 {object} models.APIResponse "Missing city"
// @Failure 502 {object} models.APIResponse "Weather lookup failed"
// @Router /weather [get]
func (h *Handler) Weather(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := WeatherRequest{City: strings.TrimSpace(r.URL.Query().Get("city"))}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr)
		return
	}

	report, err := h.deps.Weather.Current(r.Context(), req.City)
	if err != nil {
		respondError(w, r, http.StatusBadGateway, ErrCodeUpstream, "Weather lookup failed", err)
		return
	}
	respondSuccess(w, r, http.StatusOK, report, start)
}

// Restaurants returns restaurants near a "lat,lng" location. A failing
// upstream yields an empty list.
//
// @Summary Nearby restaurants
// @Tags Context
// @Produce json
// @Param location query string true "Latitude and longitude, e.g. 40.7128,-74.0060"
// @Param keyword query string false "Search keyword, e.g. a cuisine"
// @Success 200 {object} models.APIResponse{data=[]places.Restaurant}
// @Failure 400 {object} models.APIResponse "Missing location"
// @Router /restaurants [get]
func (h *Handler) Restaurants(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	q := r.URL.Query()
	req := RestaurantsRequest{
		Location: strings.TrimSpace(q.Get("location")),
		Keyword:  strings.TrimSpace(q.Get("keyword")),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr)
		return
	}

	results := h.deps.Places.Nearby(r.Context(), req.Location, req.Keyword)
	if results == nil {
		results = []places.Restaurant{}
	}
	respondSuccess(w, r, http.StatusOK, results, start)
}
