// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package eventprocessor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	natsgo "github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/tomtom215/foodaware/internal/breaker"
	"github.com/tomtom215/foodaware/internal/logging"
	"github.com/tomtom215/foodaware/internal/metrics"
	"github.com/tomtom215/foodaware/internal/models"
)

// Publisher sends order events to JetStream behind a circuit breaker.
type Publisher struct {
	publisher message.Publisher
	topic     string
	cb        *breaker.Breaker[struct{}]
	mu        sync.RWMutex
	closed    bool
	logger    watermill.LoggerAdapter
}

// NewPublisher creates a Watermill NATS publisher for topic. The stream
// must already exist.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewPublisher(cfg *PublisherConfig, topic string, logger zerolog.Logger) (*Publisher, error) {
	l := logger.With().Str("component", "order_publisher").Logger()
	wmLogger := logging.NewWatermillLogger(l)

	natsOpts := []natsgo.Option{
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(cfg.MaxReconnects),
		natsgo.ReconnectWait(cfg.ReconnectWait),
		natsgo.ReconnectBufSize(cfg.ReconnectBuffer),
		natsgo.DisconnectErrHandler(func(_ *natsgo.Conn, err error) {
			if err != nil {
				wmLogger.Error("NATS disconnected", err, nil)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			wmLogger.Info("NATS reconnected", watermill.LogFields{"url": nc.ConnectedUrl()})
		}),
	}

	pub, err := wmNats.NewPublisher(wmNats.PublisherConfig{
		URL:         cfg.URL,
		NatsOptions: natsOpts,
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			AutoProvision: false,
			TrackMsgId:    cfg.EnableTrackMsgID,
			PublishOptions: []natsgo.PubOpt{
				natsgo.RetryAttempts(3),
				natsgo.RetryWait(100 * time.Millisecond),
			},
		},
	}, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("create watermill publisher: %w", err)
	}

	return &Publisher{
		publisher: pub,
		topic:     topic,
		cb:        breaker.New[struct{}](breaker.DefaultConfig("nats-publisher"), l),
		logger:    wmLogger,
	}, nil
}

// Publish sends msg to the publisher's topic. The message UUID becomes the
// Nats-Msg-Id unless one is already set.
func (p *Publisher) Publish(_ context.Context, msg *message.Message) error {
	p.mu.RLock()
	closed := p.closed
	p.mu.RUnlock()
	if closed {
		return ErrPublisherClosed
	}

	if msg.Metadata.Get(natsgo.MsgIdHdr) == "" {
		msg.Metadata.Set(natsgo.MsgIdHdr, msg.UUID)
	}

	_, err := p.cb.Execute(func() (struct{}, error) {
		return struct{}{}, p.publisher.Publish(p.topic, msg)
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", msg.UUID, err)
	}
	metrics.RecordNATSPublish()
	return nil
}

// PublishOrder records o as an event. Missing order ID and timestamp are
// filled in on o before publishing.
func (p *Publisher) PublishOrder(ctx context.Context, o *models.Order) error {
	event := NewOrderEvent(o)
	data, err := SerializeEvent(event)
	if err != nil {
		return err
	}

	msg := message.NewMessage(event.EventID, data)
	msg.Metadata.Set("event_type", event.EventType)
	msg.Metadata.Set("user_id", event.UserID)
	msg.SetContext(ctx)
	return p.Publish(ctx, msg)
}

// Close shuts down the publisher. It is safe to call more than once.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.publisher.Close()
}
