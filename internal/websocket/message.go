// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package websocket

import (
	"context"

	"github.com/tomtom215/foodaware/internal/models"
	"github.com/tomtom215/foodaware/internal/weather"
)

// Message types.
const (
	MessageTypeChat          = "chat"
	MessageTypePing          = "ping"
	MessageTypePong          = "pong"
	MessageTypeError         = "error"
	MessageTypeOrderRecorded = "order_recorded"
)

// ChatRequest is an inbound frame. Type is empty or "chat" for chat frames.
type ChatRequest struct {
	Type   string `json:"type,omitempty"`
	Text   string `json:"text"`
	City   string `json:"city"`
	UserID string `json:"user_id"`
}

// ChatReply is the answer to one chat frame.
type ChatReply struct {
	Mood            string                  `json:"mood"`
	Weather         *weather.Report         `json:"weather"`
	Recommendations []models.Recommendation `json:"recommendations"`
	Message         string                  `json:"message"`
}

// Message is an outbound frame.
type Message struct {
	Type string `json:"type"`
	*ChatReply
	Order *models.Order `json:"order,omitempty"`
	Error string        `json:"error,omitempty"`
}

// Responder answers chat frames.
type Responder interface {
	Respond(ctx context.Context, req ChatRequest) (*ChatReply, error)
}

// ResponderFunc adapts a function to Responder.
type ResponderFunc func(ctx context.Context, req ChatRequest) (*ChatReply, error)

// Respond calls f.
func (f ResponderFunc) Respond(ctx context.Context, req ChatRequest) (*ChatReply, error) {
	return f(ctx, req)
}
