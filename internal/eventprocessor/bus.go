// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package eventprocessor

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/tomtom215/foodaware/internal/config"
	"github.com/tomtom215/foodaware/internal/logging"
)

// Bus owns the NATS side of the order pipeline: the optional embedded
// server, the stream and the publisher.
type Bus struct {
	cfg       config.NATSConfig
	url       string
	server    *EmbeddedServer
	publisher *Publisher
	logger    zerolog.Logger
}

// Start brings up the embedded server when configured, ensures the stream
// exists and opens the publisher.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Start(ctx context.Context, cfg *config.NATSConfig, logger zerolog.Logger) (*Bus, error) {
	b := &Bus{
		cfg:    *cfg,
		url:    cfg.URL,
		logger: logger.With().Str("component", "nats").Logger(),
	}

	if cfg.EmbeddedServer {
		serverCfg, err := ServerConfigFrom(cfg)
		if err != nil {
			return nil, err
		}
		srv, err := NewEmbeddedServer(&serverCfg)
		if err != nil {
			return nil, err
		}
		b.server = srv
		b.url = srv.ClientURL()
		b.logger.Info().Str("url", b.url).Msg("embedded NATS server started")
	} else {
		b.logger.Info().Str("url", b.url).Msg("using external NATS server")
	}

	streamCfg := StreamConfigFrom(cfg)
	if err := EnsureStreamAt(ctx, b.url, &streamCfg); err != nil {
		b.Close(ctx)
		return nil, fmt.Errorf("ensure stream: %w", err)
	}
	b.logger.Info().Str("stream", streamCfg.Name).Strs("subjects", streamCfg.Subjects).Msg("JetStream stream ready")

	pubCfg := PublisherConfigFrom(cfg)
	pubCfg.URL = b.url
	pub, err := NewPublisher(&pubCfg, cfg.Topic, b.logger)
	if err != nil {
		b.Close(ctx)
		return nil, err
	}
	b.publisher = pub
	return b, nil
}

// Publisher returns the order publisher.
func (b *Bus) Publisher() *Publisher {
	return b.publisher
}

// URL returns the NATS URL clients connect to.
func (b *Bus) URL() string {
	return b.url
}

// Healthy reports whether the embedded server, when used, is running.
func (b *Bus) Healthy() bool {
	if b.server == nil {
		return true
	}
	return b.server.IsRunning() && b.server.JetStreamEnabled()
}

// NewConsumer creates the order consumer service writing through w.
func (b *Bus) NewConsumer(w OrderWriter) *Consumer {
	wmLogger := logging.NewWatermillLogger(b.logger.With().Str("component", "order_consumer").Logger())
	subCfg := SubscriberConfigFrom(&b.cfg)
	subCfg.URL = b.url
	routerCfg := DefaultRouterConfig()

	return NewConsumer(&routerCfg, func() (message.Subscriber, error) {
		return NewSubscriber(&subCfg, wmLogger)
	}, b.cfg.Topic, NewOrderHandler(w, wmLogger), wmLogger)
}

// Close shuts down the publisher and the embedded server.
func (b *Bus) Close(ctx context.Context) {
	if b.publisher != nil {
		if err := b.publisher.Close(); err != nil {
			b.logger.Warn().Err(err).Msg("failed to close publisher")
		}
	}
	if b.server != nil {
		if err := b.server.Shutdown(ctx); err != nil {
			b.logger.Warn().Err(err).Msg("NATS server shutdown incomplete")
		}
	}
}
