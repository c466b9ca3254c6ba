// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCandidate   = errors.New("candidate does not belong to position")
	ErrIneligibleVoter    = errors.New("voter is not eligible for this position")
	ErrElectionLocked     = errors.New("election is open; positions and candidates are locked")
	ErrInvalidCredentials = errors.New("invalid admin credentials")
	ErrVotingClosed       = errors.New("voting is closed")
	ErrBallotSubmitted    = errors.New("ballot already submitted")
	ErrIncompleteBallot   = errors.New("ballot is missing positions")
	ErrInvalidInput       = errors.New("invalid input")
)
