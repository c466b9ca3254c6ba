// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/thisistanvirjoy/university-club-election/auth"
	"github.com/thisistanvirjoy/university-club-election/models"
)

// Service owns the entity store, vote ledger, lifecycle, and voter sessions
// of a single election. All methods are safe for concurrent use.
type Service struct {
	mu       sync.RWMutex
	now      Clock
	store    *entityStore
	votes    ledger
	cycle    lifecycle
	admin    models.AdminCredentials
	sessions map[string]*Session
}

// New creates a closed election with no positions, voters, or votes
func New(electionName string, opts ...Option) *Service {
	s := &Service{
		now:      time.Now,
		store:    newEntityStore(),
		cycle:    lifecycle{name: electionName},
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// checkUnlocked guards position and candidate mutations. Caller holds s.mu.
func (s *Service) checkUnlocked() error {
	if s.cycle.open {
		return ErrElectionLocked
	}
	return nil
}

// pruneLedger drops votes whose position or candidate no longer exists,
// and votes cast by someone who is now a candidate for that position.
// Caller holds s.mu.
func (s *Service) pruneLedger() int {
	return s.votes.retain(func(v models.Vote) bool {
		p, ok := s.store.position(v.PositionID)
		if !ok {
			return false
		}
		if _, ok = candidateIndex(p, v.CandidateID); !ok {
			return false
		}
		return !isCandidate(p, v.VoterEmail)
	})
}

// Lifecycle

func (s *Service) Status() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cycle.status()
}

// Start opens voting and reports whether the state changed
func (s *Service) Start() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cycle.start(s.now())
}

// End closes voting. Allowed from any state.
func (s *Service) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cycle.end(s.now())
}

// State returns a copy of the election state including the voter registry
func (s *Service) State() models.ElectionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

func (s *Service) stateLocked() models.ElectionState {
	voters := make(map[string]models.Voter, len(s.store.voters))
	for k, v := range s.store.voters {
		voters[k] = v
	}
	return models.ElectionState{
		IsVoting:          s.cycle.open,
		ElectionName:      s.cycle.name,
		ElectionStartTime: copyTime(s.cycle.startedAt),
		ElectionEndTime:   copyTime(s.cycle.endedAt),
		Voters:            voters,
	}
}

// Positions and candidates

func (s *Service) Positions() []models.Position {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clonePositions(s.store.positions)
}

func (s *Service) Position(positionID string) (models.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.store.position(positionID)
	if !ok {
		return models.Position{}, fmt.Errorf("position %s: %w", positionID, ErrNotFound)
	}
	return clonePosition(*p), nil
}

func (s *Service) AddPosition(title, description string) (models.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkUnlocked(); err != nil {
		return models.Position{}, err
	}
	return s.store.addPosition(title, description)
}

// UpdatePosition changes the title and description of p.ID.
// p.Candidates is ignored; use the candidate operations instead.
func (s *Service) UpdatePosition(p models.Position) (models.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkUnlocked(); err != nil {
		return models.Position{}, err
	}
	return s.store.updatePosition(p.ID, p.Title, p.Description)
}

// DeletePosition removes the position with its candidates and their votes
func (s *Service) DeletePosition(positionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkUnlocked(); err != nil {
		return err
	}
	if err := s.store.deletePosition(positionID); err != nil {
		return err
	}
	s.pruneLedger()
	return nil
}

func (s *Service) AddCandidate(positionID string, c models.Candidate) (models.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkUnlocked(); err != nil {
		return models.Candidate{}, err
	}
	added, err := s.store.addCandidate(positionID, c)
	if err != nil {
		return models.Candidate{}, err
	}
	s.pruneLedger()
	return added, nil
}

func (s *Service) UpdateCandidate(positionID string, c models.Candidate) (models.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkUnlocked(); err != nil {
		return models.Candidate{}, err
	}
	updated, err := s.store.updateCandidate(positionID, c)
	if err != nil {
		return models.Candidate{}, err
	}
	s.pruneLedger()
	return updated, nil
}

func (s *Service) DeleteCandidate(positionID, candidateID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkUnlocked(); err != nil {
		return err
	}
	if err := s.store.deleteCandidate(positionID, candidateID); err != nil {
		return err
	}
	s.pruneLedger()
	return nil
}

// Configure replaces the election name and every position in one step.
// Positions or candidates without an ID get a generated one.
func (s *Service) Configure(cfg models.ElectionConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkUnlocked(); err != nil {
		return err
	}
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		return fmt.Errorf("%w: election name is required", ErrInvalidInput)
	}
	if err := s.store.replacePositions(cfg.Positions); err != nil {
		return err
	}
	s.cycle.name = name
	s.pruneLedger()
	return nil
}

// Voters

// RegisterVoter records a voter at login. A voter that already exists is
// returned unchanged; voters are never mutated once registered.
func (s *Service) RegisterVoter(v models.Voter) (models.Voter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	voter, created, err := s.store.registerVoter(v)
	if err != nil {
		return models.Voter{}, err
	}
	if created {
		s.session(voter.Email)
	}
	return voter, nil
}

func (s *Service) Voter(email string) (models.Voter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.store.voters[email]
	if !ok {
		return models.Voter{}, fmt.Errorf("voter %s: %w", email, ErrNotFound)
	}
	return v, nil
}

// Voters returns every registered voter ordered by email
func (s *Service) Voters() []models.Voter {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Voter, 0, len(s.store.voters))
	for _, v := range s.store.voters {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Email < out[j].Email
	})
	return out
}

// Admin credentials

// SeedAdmin sets credentials only when none exist yet
func (s *Service) SeedAdmin(username, password string) error {
	s.mu.RLock()
	seeded := s.admin.Username != ""
	s.mu.RUnlock()
	if seeded {
		return nil
	}
	return s.SetAdminCredentials(username, password)
}

func (s *Service) SetAdminCredentials(username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.admin = models.AdminCredentials{Username: username, PasswordHash: hash}
	return nil
}

// CheckCredentials fails closed: any mismatch returns ErrInvalidCredentials
// and nothing changes.
func (s *Service) CheckCredentials(username, password string) error {
	s.mu.RLock()
	creds := s.admin
	s.mu.RUnlock()

	if creds.Username == "" || !auth.MatchCredentials(creds.Username, creds.PasswordHash, username, password) {
		return ErrInvalidCredentials
	}
	return nil
}

// AdminCredentials returns the stored username and password hash
func (s *Service) AdminCredentials() models.AdminCredentials {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.admin
}

func (s *Service) AdminUsername() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.admin.Username
}

// Ballots and sessions

// Ballot returns the voter's live votes in position order
func (s *Service) Ballot(voterEmail string) ([]models.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.store.voters[voterEmail]; !ok {
		return nil, fmt.Errorf("voter %s: %w", voterEmail, ErrNotFound)
	}

	out := []models.Vote{}
	for _, p := range s.store.positions {
		if v, ok := s.votes.find(voterEmail, p.ID); ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *Service) Session(voterEmail string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.store.voters[voterEmail]; !ok {
		return Session{}, fmt.Errorf("voter %s: %w", voterEmail, ErrNotFound)
	}
	sess, ok := s.sessions[voterEmail]
	if !ok {
		return Session{VoterEmail: voterEmail}, nil
	}
	out := *sess
	out.SubmittedAt = copyTime(sess.SubmittedAt)
	return out, nil
}

// readyToFinish checks the voter can move past the voting step. Caller holds s.mu.
func (s *Service) readyToFinish(voterEmail string) (*Session, error) {
	if _, ok := s.store.voters[voterEmail]; !ok {
		return nil, fmt.Errorf("voter %s: %w", voterEmail, ErrNotFound)
	}
	if !s.cycle.open {
		return nil, ErrVotingClosed
	}
	sess := s.session(voterEmail)
	if sess.Submitted {
		return nil, ErrBallotSubmitted
	}
	if missing := s.unvotedLocked(voterEmail); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %d position(s) without a vote", ErrIncompleteBallot, len(missing))
	}
	return sess, nil
}

// BeginConfirmation moves the voter to the review step.
// Every position must have a vote first.
func (s *Service) BeginConfirmation(voterEmail string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.readyToFinish(voterEmail)
	if err != nil {
		return err
	}
	sess.Confirming = true
	return nil
}

// Submit finalizes the voter's ballot. It is refused, not warned, while any
// position has no vote. After Submit, CastVote fails for this voter.
func (s *Service) Submit(voterEmail string) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.readyToFinish(voterEmail)
	if err != nil {
		return time.Time{}, err
	}
	now := s.now()
	sess.Confirming = false
	sess.Submitted = true
	sess.SubmittedAt = &now
	return now, nil
}

// DiscardBallot drops an unsubmitted voter's votes, e.g. when a session is abandoned
func (s *Service) DiscardBallot(voterEmail string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.store.voters[voterEmail]; !ok {
		return fmt.Errorf("voter %s: %w", voterEmail, ErrNotFound)
	}
	sess := s.session(voterEmail)
	if sess.Submitted {
		return ErrBallotSubmitted
	}
	s.votes.retain(func(v models.Vote) bool {
		return v.VoterEmail != voterEmail
	})
	sess.Confirming = false
	return nil
}

// ClearAll empties the ledger and resets every voter session.
// Positions, candidates, and voters are untouched.
func (s *Service) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.votes.clear()
	s.sessions = make(map[string]*Session)
}

// Persistence boundaries

// Snapshot returns a deep copy of positions, election state, and admin credentials
func (s *Service) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return models.Snapshot{
		Positions:        clonePositions(s.store.positions),
		ElectionState:    s.stateLocked(),
		AdminCredentials: s.admin,
	}
}

// Restore replaces positions, election state, and admin credentials.
// Votes that no longer resolve to a candidate are dropped. Voter sessions
// are reset; RestoreLedger brings back the submission records.
func (s *Service) Restore(snap models.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	store := newEntityStore()
	store.ids = s.store.ids
	if err := store.replacePositions(snap.Positions); err != nil {
		return fmt.Errorf("restore positions: %w", err)
	}
	for email, v := range snap.ElectionState.Voters {
		if email != v.Email {
			return fmt.Errorf("%w: voter key %q does not match email %q", ErrInvalidInput, email, v.Email)
		}
		store.voters[email] = v
	}

	s.store = store
	s.cycle = lifecycle{
		name:      snap.ElectionState.ElectionName,
		open:      snap.ElectionState.IsVoting,
		startedAt: copyTime(snap.ElectionState.ElectionStartTime),
		endedAt:   copyTime(snap.ElectionState.ElectionEndTime),
	}
	s.admin = snap.AdminCredentials
	s.sessions = make(map[string]*Session)
	s.pruneLedger()
	return nil
}

// LedgerSnapshot returns the live votes and submission records
func (s *Service) LedgerSnapshot() models.LedgerSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	submitted := make(map[string]time.Time)
	for email, sess := range s.sessions {
		if sess.Submitted && sess.SubmittedAt != nil {
			submitted[email] = *sess.SubmittedAt
		}
	}
	return models.LedgerSnapshot{
		Votes:     s.votes.snapshot(),
		Submitted: submitted,
	}
}

// RestoreLedger replaces the ledger and submission records. Votes for
// unknown positions or candidates, and duplicate keys, are dropped.
func (s *Service) RestoreLedger(snap models.LedgerSnapshot) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.votes.clear()
	for _, v := range snap.Votes {
		s.votes.put(v)
	}
	dropped := len(snap.Votes) - len(s.votes.votes)
	dropped += s.pruneLedger()

	s.sessions = make(map[string]*Session)
	for email, at := range snap.Submitted {
		at := at
		sess := s.session(email)
		sess.Submitted = true
		sess.SubmittedAt = &at
	}
	return dropped
}
