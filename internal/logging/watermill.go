// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package logging

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"
)

// WatermillLogger adapts zerolog to watermill.LoggerAdapter so the NATS
// publisher and subscriber share the application's log output.
type WatermillLogger struct {
	logger zerolog.Logger
}

var _ watermill.LoggerAdapter = (*WatermillLogger)(nil)

// NewWatermillLogger wraps logger for Watermill components.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewWatermillLogger(logger zerolog.Logger) *WatermillLogger {
	return &WatermillLogger{logger: logger}
}

func (w *WatermillLogger) Error(msg string, err error, fields watermill.LogFields) {
	withFields(w.logger.Error().Err(err), fields).Msg(msg)
}

func (w *WatermillLogger) Info(msg string, fields watermill.LogFields) {
	withFields(w.logger.Info(), fields).Msg(msg)
}

// Debug is mapped to zerolog debug. Watermill logs every message at this
// level, so it stays off at the default info level.
func (w *WatermillLogger) Debug(msg string, fields watermill.LogFields) {
	withFields(w.logger.Debug(), fields).Msg(msg)
}

func (w *WatermillLogger) Trace(msg string, fields watermill.LogFields) {
	withFields(w.logger.Trace(), fields).Msg(msg)
}

// With returns a logger carrying fields on every entry.
func (w *WatermillLogger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	ctx := w.logger.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return &WatermillLogger{logger: ctx.Logger()}
}

func withFields(e *zerolog.Event, fields watermill.LogFields) *zerolog.Event {
	for k, v := range fields {
		e = e.Interface(k, v)
	}
	return e
}
