// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package eventprocessor

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/tomtom215/foodaware/internal/metrics"
	"github.com/tomtom215/foodaware/internal/models"
)

// OrderWriter stores orders. Inserting an existing order ID is a no-op.
type OrderWriter interface {
	InsertOrder(ctx context.Context, order *models.Order) error
}

// OrderHandler writes consumed order events to the store.
type OrderHandler struct {
	writer OrderWriter
	logger watermill.LoggerAdapter

	received    atomic.Int64
	processed   atomic.Int64
	parseErrors atomic.Int64
}

// HandlerStats is a snapshot of handler counters.
type HandlerStats struct {
	Received    int64 `json:"received"`
	Processed   int64 `json:"processed"`
	ParseErrors int64 `json:"parse_errors"`
}

// NewOrderHandler creates a handler that writes through w.
func NewOrderHandler(w OrderWriter, logger watermill.LoggerAdapter) *OrderHandler {
	return &OrderHandler{writer: w, logger: logger}
}

// Handle processes one message. Malformed payloads return a PermanentError;
// store failures return the error so the router retries.
func (h *OrderHandler) Handle(msg *message.Message) error {
	start := time.Now()
	h.received.Add(1)
	metrics.RecordNATSConsume()

	event, err := DeserializeEvent(msg.Payload)
	if err != nil {
		h.parseErrors.Add(1)
		metrics.RecordNATSParseFailed()
		h.logger.Error("Failed to parse order event", err, watermill.LogFields{"message_uuid": msg.UUID})
		return NewPermanentError("order event parse error", err)
	}

	ctx := msg.Context()
	order := event.Order()
	if err := h.writer.InsertOrder(ctx, &order); err != nil {
		h.logger.Error("Failed to store order", err, watermill.LogFields{"order_id": order.OrderID})
		return err
	}

	h.processed.Add(1)
	metrics.RecordNATSProcessed()
	metrics.RecordNATSProcessingDuration(time.Since(start))
	metrics.RecordOrder("event")
	return nil
}

// Stats returns the current counters.
func (h *OrderHandler) Stats() HandlerStats {
	return HandlerStats{
		Received:    h.received.Load(),
		Processed:   h.processed.Load(),
		ParseErrors: h.parseErrors.Load(),
	}
}
