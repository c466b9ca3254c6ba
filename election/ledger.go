// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import "github.com/thisistanvirjoy/university-club-election/models"

// ledger keeps at most one live vote per (voter email, position id),
// in the order the live votes were cast.
type ledger struct {
	votes []models.Vote
}

func (l *ledger) find(voterEmail, positionID string) (models.Vote, bool) {
	for _, v := range l.votes {
		if v.VoterEmail == voterEmail && v.PositionID == positionID {
			return v, true
		}
	}
	return models.Vote{}, false
}

// put replaces any vote with the same key. The new slice is built before it
// is swapped in, so the ledger is never observed half-updated.
func (l *ledger) put(vote models.Vote) {
	next := make([]models.Vote, 0, len(l.votes)+1)
	for _, v := range l.votes {
		if v.VoterEmail == vote.VoterEmail && v.PositionID == vote.PositionID {
			continue
		}
		next = append(next, v)
	}
	l.votes = append(next, vote)
}

// retain drops every vote for which keep returns false and reports how many went
func (l *ledger) retain(keep func(models.Vote) bool) int {
	next := make([]models.Vote, 0, len(l.votes))
	for _, v := range l.votes {
		if keep(v) {
			next = append(next, v)
		}
	}
	dropped := len(l.votes) - len(next)
	l.votes = next
	return dropped
}

func (l *ledger) clear() {
	l.votes = nil
}

func (l *ledger) snapshot() []models.Vote {
	return append([]models.Vote{}, l.votes...)
}
