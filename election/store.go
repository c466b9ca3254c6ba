// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"fmt"
	"strings"

	"github.com/thisistanvirjoy/university-club-election/models"
)

// entityStore holds positions (with their candidates) and the voter registry.
// It is not safe for concurrent use; Service serializes access.
type entityStore struct {
	ids       IDGenerator
	positions []models.Position
	voters    map[string]models.Voter
}

func newEntityStore() *entityStore {
	return &entityStore{
		ids:    UUIDGenerator{},
		voters: make(map[string]models.Voter),
	}
}

func (e *entityStore) positionIndex(positionID string) (int, bool) {
	for i := range e.positions {
		if e.positions[i].ID == positionID {
			return i, true
		}
	}
	return -1, false
}

func (e *entityStore) position(positionID string) (*models.Position, bool) {
	i, ok := e.positionIndex(positionID)
	if !ok {
		return nil, false
	}
	return &e.positions[i], true
}

func candidateIndex(p *models.Position, candidateID string) (int, bool) {
	for i := range p.Candidates {
		if p.Candidates[i].ID == candidateID {
			return i, true
		}
	}
	return -1, false
}

// isCandidate reports whether email belongs to one of p's candidates
func isCandidate(p *models.Position, email string) bool {
	for _, c := range p.Candidates {
		if c.Email != "" && c.Email == email {
			return true
		}
	}
	return false
}

func (e *entityStore) addPosition(title, description string) (models.Position, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Position{}, fmt.Errorf("%w: position title is required", ErrInvalidInput)
	}

	p := models.Position{
		ID:          e.ids.NewID(),
		Title:       title,
		Description: strings.TrimSpace(description),
		Candidates:  []models.Candidate{},
	}
	e.positions = append(e.positions, p)
	return clonePosition(p), nil
}

// updatePosition changes title and description; candidates are managed separately
func (e *entityStore) updatePosition(positionID, title, description string) (models.Position, error) {
	p, ok := e.position(positionID)
	if !ok {
		return models.Position{}, fmt.Errorf("position %s: %w", positionID, ErrNotFound)
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return models.Position{}, fmt.Errorf("%w: position title is required", ErrInvalidInput)
	}

	p.Title = title
	p.Description = strings.TrimSpace(description)
	return clonePosition(*p), nil
}

func (e *entityStore) deletePosition(positionID string) error {
	i, ok := e.positionIndex(positionID)
	if !ok {
		return fmt.Errorf("position %s: %w", positionID, ErrNotFound)
	}
	e.positions = append(e.positions[:i:i], e.positions[i+1:]...)
	return nil
}

func (e *entityStore) addCandidate(positionID string, c models.Candidate) (models.Candidate, error) {
	p, ok := e.position(positionID)
	if !ok {
		return models.Candidate{}, fmt.Errorf("position %s: %w", positionID, ErrNotFound)
	}

	c = normalizeCandidate(c)
	if err := validateCandidate(p, c, ""); err != nil {
		return models.Candidate{}, err
	}

	c.ID = e.ids.NewID()
	p.Candidates = append(p.Candidates, c)
	return cloneCandidate(c), nil
}

// updateCandidate replaces every field of the candidate except its ID
func (e *entityStore) updateCandidate(positionID string, c models.Candidate) (models.Candidate, error) {
	p, ok := e.position(positionID)
	if !ok {
		return models.Candidate{}, fmt.Errorf("position %s: %w", positionID, ErrNotFound)
	}
	i, ok := candidateIndex(p, c.ID)
	if !ok {
		return models.Candidate{}, fmt.Errorf("candidate %s: %w", c.ID, ErrNotFound)
	}

	c = normalizeCandidate(c)
	if err := validateCandidate(p, c, c.ID); err != nil {
		return models.Candidate{}, err
	}

	p.Candidates[i] = c
	return cloneCandidate(c), nil
}

func (e *entityStore) deleteCandidate(positionID, candidateID string) error {
	p, ok := e.position(positionID)
	if !ok {
		return fmt.Errorf("position %s: %w", positionID, ErrNotFound)
	}
	i, ok := candidateIndex(p, candidateID)
	if !ok {
		return fmt.Errorf("candidate %s: %w", candidateID, ErrNotFound)
	}
	p.Candidates = append(p.Candidates[:i:i], p.Candidates[i+1:]...)
	return nil
}

// replacePositions swaps the whole position list, filling in missing IDs
func (e *entityStore) replacePositions(positions []models.Position) error {
	next := make([]models.Position, 0, len(positions))
	seen := make(map[string]bool)

	for _, p := range positions {
		p = clonePosition(p)
		p.Title = strings.TrimSpace(p.Title)
		if p.Title == "" {
			return fmt.Errorf("%w: position title is required", ErrInvalidInput)
		}
		if p.ID == "" {
			p.ID = e.ids.NewID()
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate position id %s", ErrInvalidInput, p.ID)
		}
		seen[p.ID] = true

		candidates := p.Candidates
		p.Candidates = make([]models.Candidate, 0, len(candidates))
		for _, c := range candidates {
			c = normalizeCandidate(c)
			if c.ID == "" {
				c.ID = e.ids.NewID()
			}
			if _, dup := candidateIndex(&p, c.ID); dup {
				return fmt.Errorf("%w: duplicate candidate id %s", ErrInvalidInput, c.ID)
			}
			if err := validateCandidate(&p, c, ""); err != nil {
				return err
			}
			p.Candidates = append(p.Candidates, c)
		}
		next = append(next, p)
	}

	e.positions = next
	return nil
}

// registerVoter is create-once: an already known email returns the stored voter
func (e *entityStore) registerVoter(v models.Voter) (models.Voter, bool, error) {
	v.Email = strings.TrimSpace(v.Email)
	v.Name = strings.TrimSpace(v.Name)
	v.Semester = strings.TrimSpace(v.Semester)
	v.StudentID = strings.TrimSpace(v.StudentID)

	if v.Email == "" || v.Name == "" || v.Semester == "" || v.StudentID == "" {
		return models.Voter{}, false, fmt.Errorf("%w: email, name, semester and student_id are required", ErrInvalidInput)
	}

	if existing, ok := e.voters[v.Email]; ok {
		return existing, false, nil
	}
	e.voters[v.Email] = v
	return v, true, nil
}

func normalizeCandidate(c models.Candidate) models.Candidate {
	c = cloneCandidate(c)
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Year = strings.TrimSpace(c.Year)

	experience := c.Experience[:0]
	for _, x := range c.Experience {
		if x = strings.TrimSpace(x); x != "" {
			experience = append(experience, x)
		}
	}
	c.Experience = experience
	return c
}

// validateCandidate checks c against the rest of p. selfID is skipped when
// looking for a duplicate email, so an update can keep its own address.
func validateCandidate(p *models.Position, c models.Candidate, selfID string) error {
	if c.Name == "" {
		return fmt.Errorf("%w: candidate name is required", ErrInvalidInput)
	}

	for key, link := range c.SocialLinks {
		switch key {
		case models.SocialLinkedIn, models.SocialTwitter, models.SocialGitHub:
		default:
			return fmt.Errorf("%w: unknown social link platform %q", ErrInvalidInput, key)
		}
		if strings.TrimSpace(link) == "" {
			return fmt.Errorf("%w: empty %s link", ErrInvalidInput, key)
		}
	}

	if c.Email == "" {
		return nil
	}
	for _, other := range p.Candidates {
		if other.ID != selfID && other.Email == c.Email {
			return fmt.Errorf("%w: %s is already a candidate for %s", ErrInvalidInput, c.Email, p.Title)
		}
	}
	return nil
}

func cloneCandidate(c models.Candidate) models.Candidate {
	if c.Experience != nil {
		c.Experience = append([]string{}, c.Experience...)
	} else {
		c.Experience = []string{}
	}
	if c.SocialLinks != nil {
		links := make(map[string]string, len(c.SocialLinks))
		for k, v := range c.SocialLinks {
			links[k] = v
		}
		c.SocialLinks = links
	}
	return c
}

func clonePosition(p models.Position) models.Position {
	candidates := make([]models.Candidate, len(p.Candidates))
	for i, c := range p.Candidates {
		candidates[i] = cloneCandidate(c)
	}
	p.Candidates = candidates
	return p
}

func clonePositions(positions []models.Position) []models.Position {
	out := make([]models.Position, len(positions))
	for i, p := range positions {
		out[i] = clonePosition(p)
	}
	return out
}
