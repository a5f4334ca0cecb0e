// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package eventprocessor

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/tomtom215/foodaware/internal/config"
)

// StreamName is the JetStream stream holding order events.
const StreamName = "FOODAWARE_ORDERS"

// ServerConfig configures the embedded NATS server.
type ServerConfig struct {
	Host              string
	Port              int // -1 picks a free port
	StoreDir          string
	JetStreamMaxMem   int64
	JetStreamMaxStore int64
}

// StreamConfig configures the order stream.
type StreamConfig struct {
	Name            string
	Subjects        []string
	MaxAge          time.Duration
	MaxBytes        int64
	MaxMsgs         int64
	DuplicateWindow time.Duration
	Replicas        int
}

// PublisherConfig configures the Watermill publisher.
type PublisherConfig struct {
	URL              string
	MaxReconnects    int
	ReconnectWait    time.Duration
	ReconnectBuffer  int
	EnableTrackMsgID bool
}

// SubscriberConfig configures the durable JetStream subscriber.
type SubscriberConfig struct {
	URL              string
	StreamName       string
	DurableName      string
	QueueGroup       string
	SubscribersCount int
	MaxDeliver       int
	MaxAckPending    int
	AckWaitTimeout   time.Duration
	CloseTimeout     time.Duration
	MaxReconnects    int
	ReconnectWait    time.Duration
}

// ServerConfigFrom derives embedded server settings from cfg. The listen
// address comes from cfg.URL.
func ServerConfigFrom(cfg *config.NATSConfig) (ServerConfig, error) {
	host, port, err := hostPort(cfg.URL)
	if err != nil {
		return ServerConfig{}, err
	}
	return ServerConfig{
		Host:              host,
		Port:              port,
		StoreDir:          cfg.StoreDir,
		JetStreamMaxMem:   cfg.MaxMemory,
		JetStreamMaxStore: cfg.MaxStore,
	}, nil
}

// StreamConfigFrom derives the order stream settings from cfg.
func StreamConfigFrom(cfg *config.NATSConfig) StreamConfig {
	days := cfg.StreamRetentionDays
	if days <= 0 {
		days = 7
	}
	return StreamConfig{
		Name:            StreamName,
		Subjects:        []string{cfg.Topic},
		MaxAge:          time.Duration(days) * 24 * time.Hour,
		MaxBytes:        -1,
		MaxMsgs:         -1,
		DuplicateWindow: 2 * time.Minute,
		Replicas:        1,
	}
}

// PublisherConfigFrom derives publisher settings from cfg.
func PublisherConfigFrom(cfg *config.NATSConfig) PublisherConfig {
	return PublisherConfig{
		URL:              cfg.URL,
		MaxReconnects:    -1,
		ReconnectWait:    2 * time.Second,
		ReconnectBuffer:  8 << 20,
		EnableTrackMsgID: true,
	}
}

// SubscriberConfigFrom derives subscriber settings from cfg.
func SubscriberConfigFrom(cfg *config.NATSConfig) SubscriberConfig {
	count := cfg.SubscribersCount
	if count <= 0 {
		count = 1
	}
	return SubscriberConfig{
		URL:              cfg.URL,
		StreamName:       StreamName,
		DurableName:      cfg.DurableName,
		QueueGroup:       cfg.QueueGroup,
		SubscribersCount: count,
		MaxDeliver:       5,
		MaxAckPending:    1000,
		AckWaitTimeout:   30 * time.Second,
		CloseTimeout:     30 * time.Second,
		MaxReconnects:    -1,
		ReconnectWait:    2 * time.Second,
	}
}

func hostPort(raw string) (string, int, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", 0, fmt.Errorf("invalid NATS URL %q: %w", raw, err)
	}
	host, portStr, err := net.SplitHostPort(u.Host)
	if err != nil {
		return u.Hostname(), 4222, nil //nolint:nilerr // no port in the URL means the NATS default
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid NATS port %q: %w", portStr, err)
	}
	return host, port, nil
}
