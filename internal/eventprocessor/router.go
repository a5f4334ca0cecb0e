// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package eventprocessor

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// RouterConfig holds Watermill router settings.
type RouterConfig struct {
	CloseTimeout         time.Duration
	RetryMaxRetries      int
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
	RetryMultiplier      float64
}

// DefaultRouterConfig returns production defaults.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		CloseTimeout:         30 * time.Second,
		RetryMaxRetries:      5,
		RetryInitialInterval: time.Second,
		RetryMaxInterval:     time.Minute,
		RetryMultiplier:      2.0,
	}
}

// NewRouter creates a Watermill router with, outermost first: panic
// recovery, exponential retry, and a filter that acks permanent failures.
func NewRouter(cfg *RouterConfig, logger watermill.LoggerAdapter) (*message.Router, error) {
	r, err := message.NewRouter(message.RouterConfig{CloseTimeout: cfg.CloseTimeout}, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	retry := middleware.Retry{
		MaxRetries:      cfg.RetryMaxRetries,
		InitialInterval: cfg.RetryInitialInterval,
		MaxInterval:     cfg.RetryMaxInterval,
		Multiplier:      cfg.RetryMultiplier,
		Logger:          logger,
	}

	r.AddMiddleware(
		middleware.Recoverer,
		retry.Middleware,
		dropPermanent(logger),
	)
	return r, nil
}

// dropPermanent acks messages whose handler returned a PermanentError.
func dropPermanent(logger watermill.LoggerAdapter) message.HandlerMiddleware {
	return func(h message.HandlerFunc) message.HandlerFunc {
		return func(msg *message.Message) ([]*message.Message, error) {
			out, err := h(msg)
			if err != nil && IsPermanentError(err) {
				logger.Error("Dropping message after permanent failure", err, watermill.LogFields{
					"message_uuid": msg.UUID,
				})
				return nil, nil
			}
			return out, err
		}
	}
}

// SubscriberFactory opens a fresh subscriber for each run of a Consumer.
type SubscriberFactory func() (message.Subscriber, error)

// Consumer runs the order handler on a router. It implements
// suture.Service; every Serve call builds a new subscriber and router so a
// restarted service starts clean.
type Consumer struct {
	cfg     RouterConfig
	topic   string
	newSub  SubscriberFactory
	handler *OrderHandler
	logger  watermill.LoggerAdapter
}

// NewConsumer creates a consumer of topic.
func NewConsumer(cfg *RouterConfig, newSub SubscriberFactory, topic string, handler *OrderHandler, logger watermill.LoggerAdapter) *Consumer {
	return &Consumer{
		cfg:     *cfg,
		topic:   topic,
		newSub:  newSub,
		handler: handler,
		logger:  logger,
	}
}

// Serve subscribes and runs the router until ctx is canceled.
func (c *Consumer) Serve(ctx context.Context) error {
	sub, err := c.newSub()
	if err != nil {
		return err
	}
	defer sub.Close()

	r, err := NewRouter(&c.cfg, c.logger)
	if err != nil {
		return err
	}
	r.AddConsumerHandler("order-writer", c.topic, sub, c.handler.Handle)

	err = r.Run(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return fmt.Errorf("order router stopped: %w", err)
	}
	return fmt.Errorf("order router stopped unexpectedly")
}

// Stats returns handler counters.
func (c *Consumer) Stats() HandlerStats {
	return c.handler.Stats()
}

// String names the service in supervisor logs.
func (c *Consumer) String() string {
	return "order-consumer"
}
