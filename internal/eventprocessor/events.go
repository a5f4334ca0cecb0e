// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package eventprocessor

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/foodaware/internal/models"
)

// EventTypeOrderRecorded is the only event type on the order stream.
const EventTypeOrderRecorded = "order.recorded"

// OrderEvent announces a new order. EventID and OrderID are equal for events
// created by NewOrderEvent.
type OrderEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`

	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	FoodID    string    `json:"food_id"`
	Timestamp time.Time `json:"timestamp"`
	Mood      string    `json:"mood,omitempty"`
	Weather   string    `json:"weather,omitempty"`
	Location  string    `json:"location,omitempty"`
	Rating    *int      `json:"rating,omitempty"`
}

// NewOrderEvent builds an event for o, filling in an order ID and timestamp
// when they are missing. o is updated in place so the caller sees the
// generated values.
func NewOrderEvent(o *models.Order) *OrderEvent {
	if o.OrderID == "" {
		o.OrderID = uuid.NewString()
	}
	if o.Timestamp.IsZero() {
		o.Timestamp = time.Now().UTC()
	}
	return &OrderEvent{
		EventID:    o.OrderID,
		EventType:  EventTypeOrderRecorded,
		OccurredAt: time.Now().UTC(),
		OrderID:    o.OrderID,
		UserID:     o.UserID,
		FoodID:     o.FoodID,
		Timestamp:  o.Timestamp.UTC(),
		Mood:       o.Mood,
		Weather:    o.Weather,
		Location:   o.Location,
		Rating:     o.Rating,
	}
}

// Validate checks the fields a store needs.
func (e *OrderEvent) Validate() error {
	switch {
	case e.EventID == "":
		return fmt.Errorf("%w: event_id is required", ErrInvalidEvent)
	case e.OrderID == "":
		return fmt.Errorf("%w: order_id is required", ErrInvalidEvent)
	case e.UserID == "":
		return fmt.Errorf("%w: user_id is required", ErrInvalidEvent)
	case e.FoodID == "":
		return fmt.Errorf("%w: food_id is required", ErrInvalidEvent)
	case e.Timestamp.IsZero():
		return fmt.Errorf("%w: timestamp is required", ErrInvalidEvent)
	case e.Rating != nil && (*e.Rating < 1 || *e.Rating > 5):
		return fmt.Errorf("%w: rating %d outside 1-5", ErrInvalidEvent, *e.Rating)
	}
	return nil
}

// Order converts the event back into a stored order.
func (e *OrderEvent) Order() models.Order {
	return models.Order{
		OrderID:   e.OrderID,
		UserID:    e.UserID,
		FoodID:    e.FoodID,
		Timestamp: e.Timestamp.UTC(),
		Mood:      e.Mood,
		Weather:   e.Weather,
		Location:  e.Location,
		Rating:    e.Rating,
	}
}
