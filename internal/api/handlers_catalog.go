// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/foodaware/internal/models"
)

// Users lists every user profile.
//
// @Summary List users
// @Tags Catalog
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]models.User}
// @Failure 500 {object} models.APIResponse "Store error"
// @Router /users [get]
func (h *Handler) Users(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	users, err := h.deps.Store.ListUsers(r.Context())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeDatabase, "Failed to list users", err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	respondSuccess(w, r, http.StatusOK, users, start)
}

// User returns one user profile.
//
// @Summary Get user
// @Tags Catalog
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.APIResponse{data=models.User}
// @Failure 404 {object} models.APIResponse "Unknown user"
// @Failure 500 {object} models.APIResponse "Store error"
// @Router /users/{id} [get]
func (h *Handler) User(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := chi.URLParam(r, "id")

	user, found, err := h.deps.Store.LookupUser(r.Context(), id)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeDatabase, "Failed to load user", err)
		return
	}
	if !found {
		respondAPIError(w, r, http.StatusNotFound, &models.APIError{
			Code:    ErrCodeNotFound,
			Message: "User not found",
			Details: map[string]interface{}{"user_id": sanitizeLogValue(id)},
		})
		return
	}
	respondSuccess(w, r, http.StatusOK, user, start)
}

// Foods lists the catalog in insertion order.
//
// @Summary List foods
// @Tags Catalog
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]models.FoodItem}
// @Failure 500 {object} models.APIResponse "Store error"
// @Router /foods [get]
func (h *Handler) Foods(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	foods, err := h.deps.Store.ListFoods(r.Context())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeDatabase, "Failed to list foods", err)
		return
	}
	if foods == nil {
		foods = []models.FoodItem{}
	}
	respondSuccess(w, r, http.StatusOK, foods, start)
}
