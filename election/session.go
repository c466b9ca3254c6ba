// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import "time"

// Session is one voter's progress through voting, review, and submission.
// It replaces a global "confirmation step" flag so concurrent voters do not
// see each other's state.
type Session struct {
	VoterEmail  string     `json:"voter_email"`
	Confirming  bool       `json:"confirming"`
	Submitted   bool       `json:"submitted"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

func (s *Service) session(email string) *Session {
	sess, ok := s.sessions[email]
	if !ok {
		sess = &Session{VoterEmail: email}
		s.sessions[email] = sess
	}
	return sess
}
