// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package websocket

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/tomtom215/foodaware/internal/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 16 * 1024
)

// clientIDCounter gives clients increasing IDs so broadcast order is stable.
var clientIDCounter atomic.Uint64

// Client is one chat connection.
type Client struct {
	id     uint64
	hub    *Hub
	conn   *websocket.Conn
	send   chan Message
	logger zerolog.Logger
}

// Attach registers conn with the hub and starts its pumps. The returned
// client is closed when the peer disconnects or the hub shuts down.
func (h *Hub) Attach(conn *websocket.Conn) *Client {
	c := &Client{
		id:   clientIDCounter.Add(1),
		hub:  h,
		conn: conn,
		send: make(chan Message, 32),
	}
	c.logger = h.logger.With().Uint64("client_id", c.id).Logger()

	h.register(c)
	go c.writePump()
	go c.readPump()
	return c
}

// ID returns the client's connection-ordered identifier.
func (c *Client) ID() uint64 {
	return c.id
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("failed to set read deadline")
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				metrics.WSErrors.WithLabelValues("read").Inc()
				c.logger.Warn().Err(err).Msg("unexpected websocket close")
			}
			return
		}
		metrics.WSMessagesReceived.Inc()

		var req ChatRequest
		if err := json.Unmarshal(data, &req); err != nil {
			metrics.WSErrors.WithLabelValues("decode").Inc()
			c.hub.sendTo(c, Message{Type: MessageTypeError, Error: "invalid JSON frame"})
			continue
		}

		c.hub.sendTo(c, c.handle(req))
	}
}

// handle answers one inbound frame.
func (c *Client) handle(req ChatRequest) Message {
	switch req.Type {
	case MessageTypePing:
		return Message{Type: MessageTypePong}
	case "", MessageTypeChat:
	default:
		return Message{Type: MessageTypeError, Error: "unknown message type " + req.Type}
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.hub.replyTimeout)
	defer cancel()

	reply, err := c.hub.responder.Respond(ctx, req)
	if err != nil {
		metrics.WSErrors.WithLabelValues("respond").Inc()
		c.logger.Warn().Err(err).Str("user_id", req.UserID).Msg("chat reply failed")
		return Message{Type: MessageTypeError, Error: err.Error()}
	}
	return Message{Type: MessageTypeChat, ChatReply: reply}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(msg)
			if err != nil {
				metrics.WSErrors.WithLabelValues("encode").Inc()
				c.logger.Error().Err(err).Str("type", msg.Type).Msg("failed to encode message")
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				metrics.WSErrors.WithLabelValues("write").Inc()
				return
			}
			metrics.WSMessagesSent.Inc()

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
