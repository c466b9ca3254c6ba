// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"time"

	"github.com/thisistanvirjoy/university-club-election/models"
)

// lifecycle is the closed -> open -> closed state machine
type lifecycle struct {
	name      string
	open      bool
	startedAt *time.Time
	endedAt   *time.Time
}

func (l *lifecycle) status() string {
	if l.open {
		return models.StatusOpen
	}
	return models.StatusClosed
}

// start opens voting. Starting an open election changes nothing, so the
// original start time survives a double click.
func (l *lifecycle) start(now time.Time) bool {
	if l.open {
		return false
	}
	l.open = true
	l.startedAt = &now
	l.endedAt = nil
	return true
}

// end closes voting from any state and always stamps the end time
func (l *lifecycle) end(now time.Time) {
	l.open = false
	l.endedAt = &now
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
