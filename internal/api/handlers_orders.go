// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/foodaware/internal/logging"
	"github.com/tomtom215/foodaware/internal/metrics"
	"github.com/tomtom215/foodaware/internal/models"
)

// Order paths reported to metrics.
const (
	orderPathEvent  = "event"
	orderPathDirect = "direct"
)

// CreateOrder records an order. With a publisher the order is accepted as
// an event and stored by the consumer (202); otherwise it is written
// directly (201). Users and foods are not checked for existence.
//
// @Summary Record an order
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body OrderRequest true "Order"
// @Success 201 {object} models.APIResponse{data=models.Order} "Order stored"
// @Success 202 {object} models.APIResponse{data=models.Order} "Order accepted for storage"
// @Failure 400 {object} models.APIResponse "Invalid request"
// @Failure 500 {object} models.APIResponse "Store error"
// @Failure 503 {object} models.APIResponse "Event bus unavailable"
// @Router /orders [post]
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req OrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr)
		return
	}

	order := &models.Order{
		OrderID:   uuid.NewString(),
		UserID:    req.UserID,
		FoodID:    req.FoodID,
		Timestamp: time.Now().UTC(),
		Mood:      req.Mood,
		Weather:   req.Weather,
		Location:  req.Location,
		Rating:    req.Rating,
	}

	status := http.StatusCreated
	if h.deps.Publisher != nil {
		if err := h.deps.Publisher.PublishOrder(r.Context(), order); err != nil {
			respondError(w, r, http.StatusServiceUnavailable, ErrCodePublish, "Failed to publish order", err)
			return
		}
		status = http.StatusAccepted
		metrics.RecordOrder(orderPathEvent)
	} else {
		if err := h.deps.Store.InsertOrder(r.Context(), order); err != nil {
			respondError(w, r, http.StatusInternalServerError, ErrCodeDatabase, "Failed to store order", err)
			return
		}
		metrics.RecordOrder(orderPathDirect)
	}

	logging.Ctx(r.Context()).Info().
		Str("order_id", order.OrderID).
		Str("user_id", sanitizeLogValue(order.UserID)).
		Str("food_id", sanitizeLogValue(order.FoodID)).
		Msg("order recorded")

	if h.deps.Hub != nil {
		h.deps.Hub.BroadcastOrder(order)
	}
	respondSuccess(w, r, status, order, start)
}
