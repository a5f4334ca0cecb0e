// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package api

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/tomtom215/foodaware/internal/logging"
	"github.com/tomtom215/foodaware/internal/metrics"
	"github.com/tomtom215/foodaware/internal/models"
	"github.com/tomtom215/foodaware/internal/mood"
	"github.com/tomtom215/foodaware/internal/recommend"
	"github.com/tomtom215/foodaware/internal/weather"
	ws "github.com/tomtom215/foodaware/internal/websocket"
)

// Chat prompts for frames that cannot be answered yet.
const (
	msgSelectUser  = "Please select a user from the sidebar first."
	msgNeedWeather = "Please tell me which city you are in so I can check the weather before we continue."
)

// newUpgrader returns an upgrader that accepts the configured origins.
// Requests without an Origin header (non-browser clients) are accepted.
func newUpgrader(allowed []string) *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			return originAllowed(origin, r.Host, allowed)
		},
	}
}

func originAllowed(origin, host string, allowed []string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if strings.EqualFold(u.Host, host) {
		return true
	}
	for _, a := range allowed {
		if a == "*" || strings.EqualFold(strings.TrimRight(a, "/"), origin) {
			return true
		}
	}
	return false
}

// Chat upgrades the connection and hands it to the chat hub.
//
// @Summary Chat WebSocket
// @Description Upgrades to a WebSocket. Send {"text", "city", "user_id"}; each frame is answered with the detected mood, the weather and recommendations.
// @Tags Chat
// @Success 101 "Switching protocols"
// @Failure 503 {object} models.APIResponse "Chat unavailable"
// @Router /chat/ws [get]
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	if h.deps.Hub == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Chat is not available", nil)
		return
	}

	conn, err := newUpgrader(h.deps.AllowedOrigins).Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		metrics.WSErrors.WithLabelValues("upgrade").Inc()
		logging.Ctx(r.Context()).Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	client := h.deps.Hub.Attach(conn)
	logging.Ctx(r.Context()).Debug().Uint64("client_id", client.ID()).Msg("chat client attached")
}

// ChatResponder answers chat frames: it detects the mood in the text, looks
// up the city's weather and asks the engine for recommendations.
type ChatResponder struct {
	detector mood.Detector
	weather  weather.Provider
	engine   Recommender
	n        int
	logger   zerolog.Logger
}

// NewChatResponder creates a responder that returns n recommendations.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewChatResponder(detector mood.Detector, provider weather.Provider, engine Recommender, n int, logger zerolog.Logger) *ChatResponder {
	if n <= 0 {
		n = 10
	}
	return &ChatResponder{
		detector: detector,
		weather:  provider,
		engine:   engine,
		n:        n,
		logger:   logger.With().Str("component", "chat").Logger(),
	}
}

// Respond implements websocket.Responder. Missing context is answered with a
// prompt rather than an error; a failing mood detector falls back to a
// random mood and a failing weather lookup drops the weather.
func (c *ChatResponder) Respond(ctx context.Context, req ws.ChatRequest) (*ws.ChatReply, error) {
	userID := strings.TrimSpace(req.UserID)
	city := strings.TrimSpace(req.City)

	switch {
	case userID == "":
		return &ws.ChatReply{Recommendations: []models.Recommendation{}, Message: msgSelectUser}, nil
	case city == "":
		return &ws.ChatReply{Recommendations: []models.Recommendation{}, Message: msgNeedWeather}, nil
	}

	detected, err := c.detector.Detect(ctx, req.Text)
	if err != nil {
		detected = mood.All[rand.IntN(len(mood.All))] //nolint:gosec // mood fallback, not security sensitive
		c.logger.Warn().Err(err).Str("fallback_mood", detected.String()).Msg("mood detection failed")
	}

	var report *weather.Report
	condition := ""
	if rep, err := c.weather.Current(ctx, city); err != nil {
		c.logger.Warn().Err(err).Str("city", city).Msg("weather lookup failed")
	} else {
		report = &rep
		condition = rep.Condition
	}

	resp := c.engine.Recommend(ctx, recommend.Request{
		UserID:    userID,
		Weather:   condition,
		Mood:      detected.String(),
		N:         c.n,
		RequestID: logging.RequestIDFromContext(ctx),
	})

	items := resp.Items
	if items == nil {
		items = []models.Recommendation{}
	}

	msg := fmt.Sprintf("Based on your conversation, I detect that you're feeling %s. ", detected)
	if condition != "" {
		msg += fmt.Sprintf("Considering it's %s in your area, I've prepared some food recommendations for you!", condition)
	} else {
		msg += "I've prepared some food recommendations for you!"
	}

	return &ws.ChatReply{
		Mood:            detected.String(),
		Weather:         report,
		Recommendations: items,
		Message:         msg,
	}, nil
}

var _ ws.Responder = (*ChatResponder)(nil)
