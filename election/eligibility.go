// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"fmt"

	"github.com/thisistanvirjoy/university-club-election/models"
)

// CanVote reports whether voterEmail may cast a first vote for positionID.
// It fails closed on an unknown position or voter, on a voter running for
// the position, and on a voter who already has a live vote for it.
// The answer does not depend on whether voting is open.
func (s *Service) CanVote(positionID, voterEmail string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.store.position(positionID)
	if !ok {
		return false
	}
	if err := s.checkVoter(p, voterEmail); err != nil {
		return false
	}
	_, voted := s.votes.find(voterEmail, positionID)
	return !voted
}

// checkVoter applies the registration and self-vote rules. Caller holds s.mu.
func (s *Service) checkVoter(p *models.Position, voterEmail string) error {
	if _, ok := s.store.voters[voterEmail]; !ok {
		return fmt.Errorf("%w: %s is not registered", ErrIneligibleVoter, voterEmail)
	}
	if isCandidate(p, voterEmail) {
		return fmt.Errorf("%w: candidates cannot vote for their own position", ErrIneligibleVoter)
	}
	return nil
}

// CastVote records vote, replacing any earlier vote by the same voter for
// the same position. Eligibility is checked again under the write lock, so
// a position deleted or changed since CanVote cannot slip through.
// Timestamp and the voter snapshot fields are filled in from the registry.
func (s *Service) CastVote(vote models.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cycle.open {
		return ErrVotingClosed
	}

	p, ok := s.store.position(vote.PositionID)
	if !ok {
		return fmt.Errorf("position %s: %w", vote.PositionID, ErrNotFound)
	}
	if _, ok := candidateIndex(p, vote.CandidateID); !ok {
		return fmt.Errorf("candidate %s: %w", vote.CandidateID, ErrInvalidCandidate)
	}
	if err := s.checkVoter(p, vote.VoterEmail); err != nil {
		return err
	}

	sess := s.session(vote.VoterEmail)
	if sess.Submitted {
		return ErrBallotSubmitted
	}

	voter := s.store.voters[vote.VoterEmail]
	vote.Timestamp = s.now()
	vote.VoterName = voter.Name
	vote.VoterSemester = voter.Semester
	vote.VoterStudentID = voter.StudentID

	s.votes.put(vote)
	sess.Confirming = false
	return nil
}
