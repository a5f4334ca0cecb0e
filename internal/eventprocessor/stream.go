// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package eventprocessor

import (
	"context"
	"errors"
	"fmt"

	natsgo "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// JetStreamContext is the subset of jetstream.JetStream the initializer
// uses.
type JetStreamContext interface {
	Stream(ctx context.Context, name string) (jetstream.Stream, error)
	CreateStream(ctx context.Context, cfg jetstream.StreamConfig) (jetstream.Stream, error)
	UpdateStream(ctx context.Context, cfg jetstream.StreamConfig) (jetstream.Stream, error)
}

// StreamInitializer creates or updates the order stream before publishers
// and subscribers start.
type StreamInitializer struct {
	js     JetStreamContext
	config StreamConfig
}

// NewStreamInitializer creates an initializer.
func NewStreamInitializer(js JetStreamContext, cfg *StreamConfig) (*StreamInitializer, error) {
	if js == nil {
		return nil, fmt.Errorf("JetStream context required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("stream config required")
	}
	return &StreamInitializer{js: js, config: *cfg}, nil
}

// EnsureStream creates the stream, or updates it when it already exists.
// It is safe to call repeatedly.
func (s *StreamInitializer) EnsureStream(ctx context.Context) (jetstream.Stream, error) {
	streamCfg := s.streamConfig()

	_, err := s.js.Stream(ctx, s.config.Name)
	if err == nil {
		stream, err := s.js.UpdateStream(ctx, streamCfg)
		if err != nil {
			return nil, fmt.Errorf("update stream %s: %w", s.config.Name, err)
		}
		return stream, nil
	}

	if errors.Is(err, jetstream.ErrStreamNotFound) {
		stream, err := s.js.CreateStream(ctx, streamCfg)
		if err != nil {
			return nil, fmt.Errorf("create stream %s: %w", s.config.Name, err)
		}
		return stream, nil
	}

	return nil, fmt.Errorf("check stream %s: %w", s.config.Name, err)
}

func (s *StreamInitializer) streamConfig() jetstream.StreamConfig {
	return jetstream.StreamConfig{
		Name:       s.config.Name,
		Subjects:   s.config.Subjects,
		Retention:  jetstream.LimitsPolicy,
		MaxAge:     s.config.MaxAge,
		MaxBytes:   s.config.MaxBytes,
		MaxMsgs:    s.config.MaxMsgs,
		Duplicates: s.config.DuplicateWindow,
		Replicas:   s.config.Replicas,
		Storage:    jetstream.FileStorage,
		Discard:    jetstream.DiscardOld,
	}
}

// IsHealthy reports whether the stream can be queried.
func (s *StreamInitializer) IsHealthy(ctx context.Context) bool {
	_, err := s.js.Stream(ctx, s.config.Name)
	return err == nil
}

// EnsureStreamAt connects to url and ensures the order stream exists.
func EnsureStreamAt(ctx context.Context, url string, cfg *StreamConfig) error {
	nc, err := natsgo.Connect(url)
	if err != nil {
		return fmt.Errorf("connect to NATS: %w", err)
	}
	defer nc.Close()

	js, err := jetstream.New(nc)
	if err != nil {
		return fmt.Errorf("create JetStream context: %w", err)
	}
	si, err := NewStreamInitializer(js, cfg)
	if err != nil {
		return err
	}
	_, err = si.EnsureStream(ctx)
	return err
}
