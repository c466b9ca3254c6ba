// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"fmt"
	"math"
	"sort"

	"github.com/thisistanvirjoy/university-club-election/models"
)

// Tally counts live votes for every candidate of positionID.
//
// Rows are ordered by count (descending), then candidate ID (ascending).
// Percentages use the votes cast for this position as the base and are
// rounded to one decimal; with no votes every percentage is 0.
func (s *Service) Tally(positionID string) ([]models.ResultRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.store.position(positionID)
	if !ok {
		return nil, fmt.Errorf("position %s: %w", positionID, ErrNotFound)
	}
	rows, _ := s.tallyLocked(p)
	return rows, nil
}

func (s *Service) tallyLocked(p *models.Position) ([]models.ResultRow, int) {
	counts := make(map[string]int, len(p.Candidates))
	for _, c := range p.Candidates {
		counts[c.ID] = 0
	}

	total := 0
	for _, v := range s.votes.votes {
		if v.PositionID != p.ID {
			continue
		}
		if _, known := counts[v.CandidateID]; !known {
			continue
		}
		counts[v.CandidateID]++
		total++
	}

	rows := make([]models.ResultRow, 0, len(p.Candidates))
	for _, c := range p.Candidates {
		rows = append(rows, models.ResultRow{
			CandidateID: c.ID,
			Name:        c.Name,
			Count:       counts[c.ID],
			Percentage:  percentage(counts[c.ID], total),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.CandidateID < b.CandidateID
	})

	return rows, total
}

func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)*1000/float64(total)) / 10
}

// Winner returns the top row of the tally. ok is false when nobody has a vote.
func (s *Service) Winner(positionID string) (winner models.ResultRow, ok bool, err error) {
	rows, err := s.Tally(positionID)
	if err != nil {
		return models.ResultRow{}, false, err
	}
	if len(rows) == 0 || rows[0].Count == 0 {
		return models.ResultRow{}, false, nil
	}
	return rows[0], true, nil
}

// UnvotedPositions lists, in position order, the positions for which
// voterEmail has no live vote.
func (s *Service) UnvotedPositions(voterEmail string) []models.Position {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unvotedLocked(voterEmail)
}

func (s *Service) unvotedLocked(voterEmail string) []models.Position {
	out := []models.Position{}
	for _, p := range s.store.positions {
		if _, ok := s.votes.find(voterEmail, p.ID); !ok {
			out = append(out, clonePosition(p))
		}
	}
	return out
}

// Results tallies every position in one consistent read
func (s *Service) Results() models.ElectionResults {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := models.ElectionResults{
		ElectionName: s.cycle.name,
		Status:       s.cycle.status(),
		VoterCount:   len(s.store.voters),
		Positions:    make([]models.PositionResult, 0, len(s.store.positions)),
		ComputedAt:   s.now(),
	}

	for _, sess := range s.sessions {
		if sess.Submitted {
			res.Turnout++
		}
	}

	for i := range s.store.positions {
		p := &s.store.positions[i]
		rows, total := s.tallyLocked(p)
		pr := models.PositionResult{
			PositionID: p.ID,
			Title:      p.Title,
			TotalVotes: total,
			Rows:       rows,
		}
		if len(rows) > 0 && rows[0].Count > 0 {
			w := rows[0]
			pr.Winner = &w
		}
		res.TotalVotes += total
		res.Positions = append(res.Positions, pr)
	}

	return res
}
