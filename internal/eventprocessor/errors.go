// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package eventprocessor

import "errors"

var (
	// ErrPublisherClosed is returned by Publish after Close.
	ErrPublisherClosed = errors.New("publisher is closed")

	// ErrInvalidEvent is returned when an event fails validation.
	ErrInvalidEvent = errors.New("invalid order event")
)

// PermanentError marks a message that will never succeed, such as a
// malformed payload. The router acks it instead of retrying.
type PermanentError struct {
	Message string
	Cause   error
}

// NewPermanentError creates a PermanentError.
func NewPermanentError(message string, cause error) *PermanentError {
	return &PermanentError{Message: message, Cause: cause}
}

// Error implements the error interface.
func (e *PermanentError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *PermanentError) Unwrap() error {
	return e.Cause
}

// IsPermanentError reports whether err or anything it wraps is permanent.
func IsPermanentError(err error) bool {
	var p *PermanentError
	return errors.As(err, &p)
}
