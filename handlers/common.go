// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/thisistanvirjoy/university-club-election/auth"
	"github.com/thisistanvirjoy/university-club-election/election"
	"github.com/thisistanvirjoy/university-club-election/middleware"
	"github.com/thisistanvirjoy/university-club-election/models"
)

// Persister saves election snapshots. *db.Store implements it.
type Persister interface {
	SaveState(ctx context.Context, snap models.Snapshot) error
	SaveLedger(ctx context.Context, snap models.LedgerSnapshot) error
}

// saveMu orders snapshot-then-write pairs so an older snapshot never
// overwrites a newer one
var saveMu sync.Mutex

// saveState writes positions, election state, and credentials
func saveState(ctx context.Context, svc *election.Service, store Persister) error {
	if store == nil {
		return nil
	}
	saveMu.Lock()
	defer saveMu.Unlock()
	return store.SaveState(ctx, svc.Snapshot())
}

// saveLedger writes votes and submission records
func saveLedger(ctx context.Context, svc *election.Service, store Persister) error {
	if store == nil {
		return nil
	}
	saveMu.Lock()
	defer saveMu.Unlock()
	return store.SaveLedger(ctx, svc.LedgerSnapshot())
}

// saveAll is used after operations that touch both snapshots,
// e.g. deleting a position also drops its votes
func saveAll(ctx context.Context, svc *election.Service, store Persister) error {
	if err := saveState(ctx, svc, store); err != nil {
		return err
	}
	return saveLedger(ctx, svc, store)
}

// writeElectionError maps engine errors onto HTTP status codes
func writeElectionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, election.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, election.ErrInvalidCandidate), errors.Is(err, election.ErrInvalidInput):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, election.ErrIneligibleVoter):
		middleware.ErrorResponse(w, http.StatusForbidden, err.Error())
	case errors.Is(err, election.ErrElectionLocked),
		errors.Is(err, election.ErrVotingClosed),
		errors.Is(err, election.ErrBallotSubmitted),
		errors.Is(err, election.ErrIncompleteBallot):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, election.ErrInvalidCredentials):
		middleware.ErrorResponse(w, http.StatusUnauthorized, err.Error())
	default:
		slog.Error("unexpected election error", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}

// VoterSessions maps voter tokens to voter emails.
// Tokens live in memory only; a voter logs in again after a restart.
type VoterSessions struct {
	mu     sync.RWMutex
	tokens map[string]string
}

func NewVoterSessions() *VoterSessions {
	return &VoterSessions{tokens: make(map[string]string)}
}

// Issue creates a new token for email
func (s *VoterSessions) Issue(email string) (string, error) {
	token, err := auth.GenerateVoterToken()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = email
	return token, nil
}

func (s *VoterSessions) Lookup(token string) (string, bool) {
	if auth.ValidateTokenFormat(token) != nil {
		return "", false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	email, ok := s.tokens[token]
	return email, ok
}

func (s *VoterSessions) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}
