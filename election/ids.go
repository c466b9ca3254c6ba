// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"time"

	"github.com/google/uuid"
)

// IDGenerator produces identifiers for new positions and candidates
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator is the default IDGenerator (random v4 UUIDs)
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// Clock returns the current time. Tests inject a fixed or stepping clock.
type Clock func() time.Time

// Option configures a Service at construction
type Option func(*Service)

// WithIDGenerator swaps the identifier source
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Service) {
		s.store.ids = g
	}
}

// WithClock swaps the time source used for lifecycle stamps and vote timestamps
func WithClock(c Clock) Option {
	return func(s *Service) {
		s.now = c
	}
}
