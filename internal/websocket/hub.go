// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package websocket

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/foodaware/internal/metrics"
	"github.com/tomtom215/foodaware/internal/models"
)

// ShutdownReason identifies why the hub stopped.
type ShutdownReason string

const (
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

// Hub tracks chat clients and fans out broadcasts.
type Hub struct {
	responder    Responder
	replyTimeout time.Duration
	logger       zerolog.Logger

	mu        sync.RWMutex
	clients   map[*Client]struct{}
	broadcast chan Message
}

// NewHub creates a hub whose clients are answered by responder. Each chat
// frame gets at most replyTimeout.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHub(responder Responder, replyTimeout time.Duration, logger zerolog.Logger) *Hub {
	if replyTimeout <= 0 {
		replyTimeout = 30 * time.Second
	}
	return &Hub{
		responder:    responder,
		replyTimeout: replyTimeout,
		logger:       logger.With().Str("component", "chat-hub").Logger(),
		clients:      make(map[*Client]struct{}),
		broadcast:    make(chan Message, 256),
	}
}

// Serve delivers broadcasts until ctx is canceled. It implements
// suture.Service.
func (h *Hub) Serve(ctx context.Context) error {
	h.logger.Info().Msg("chat hub started")
	for {
		// Shutdown wins over pending broadcasts.
		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		default:
		}

		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		case msg := <-h.broadcast:
			h.broadcastToClients(msg)
		}
	}
}

// String names the service in supervisor logs.
func (h *Hub) String() string {
	return "chat-hub"
}

func (h *Hub) shutdown(ctx context.Context) {
	count := h.ClientCount()
	h.closeAllClients()

	reason := ShutdownReasonContextCanceled
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		reason = ShutdownReasonContextDeadline
	}
	h.logger.Info().
		Str("reason", string(reason)).
		Int("clients_closed", count).
		Msg("chat hub stopped")
}

// register adds c to the hub.
func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()

	metrics.WSConnections.Inc()
	h.logger.Info().Uint64("client_id", c.id).Int("total_clients", total).Msg("chat client connected")
}

// unregister removes c and closes its send channel. It is safe to call
// more than once.
func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.send)
	}
	total := len(h.clients)
	h.mu.Unlock()

	if ok {
		metrics.WSConnections.Dec()
		h.logger.Info().Uint64("client_id", c.id).Int("total_clients", total).Msg("chat client disconnected")
	}
}

// sendTo queues msg for c. It returns false when c is gone or its buffer
// is full.
func (h *Hub) sendTo(c *Client, msg Message) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[c]; !ok {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		metrics.WSErrors.WithLabelValues("send_buffer_full").Inc()
		return false
	}
}

// broadcastToClients sends msg to every client in connection order.
// Clients with a full buffer are dropped.
func (h *Hub) broadcastToClients(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := h.sortedClients()
	for _, c := range clients {
		select {
		case c.send <- msg:
		default:
			delete(h.clients, c)
			close(c.send)
			metrics.WSConnections.Dec()
			metrics.WSErrors.WithLabelValues("slow_client").Inc()
		}
	}
}

func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.sortedClients() {
		delete(h.clients, c)
		close(c.send)
		metrics.WSConnections.Dec()
	}
}

// sortedClients must be called with h.mu held.
func (h *Hub) sortedClients() []*Client {
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].id < clients[j].id })
	return clients
}

// BroadcastOrder announces an accepted order to every client.
func (h *Hub) BroadcastOrder(o *models.Order) {
	select {
	case h.broadcast <- Message{Type: MessageTypeOrderRecorded, Order: o}:
	default:
		h.logger.Warn().Str("order_id", o.OrderID).Msg("broadcast channel full, dropping order notice")
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
