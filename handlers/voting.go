// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/thisistanvirjoy/university-club-election/election"
	"github.com/thisistanvirjoy/university-club-election/middleware"
	"github.com/thisistanvirjoy/university-club-election/models"
)

type VotingHandler struct {
	svc      *election.Service
	store    Persister
	sessions *VoterSessions
}

func NewVotingHandler(svc *election.Service, store Persister, sessions *VoterSessions) *VotingHandler {
	return &VotingHandler{svc: svc, store: store, sessions: sessions}
}

// voter resolves the X-Voter-Token header to a registered voter email
func (h *VotingHandler) voter(w http.ResponseWriter, r *http.Request) (string, bool) {
	voterToken := r.Header.Get("X-Voter-Token")
	if voterToken == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Voter-Token header required")
		return "", false
	}

	email, ok := h.sessions.Lookup(voterToken)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid voter token")
		return "", false
	}
	return email, true
}

// Login handles POST /voters/login
// The first login registers the voter; later logins must not change the record.
func (h *VotingHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.VoterLoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	voter, err := h.svc.RegisterVoter(models.Voter{
		Email:     req.Email,
		Name:      req.Name,
		Semester:  req.Semester,
		StudentID: req.StudentID,
	})
	if err != nil {
		writeElectionError(w, err)
		return
	}
	// The voter stays registered in memory when the save fails. Logging in
	// again, or any later successful save, writes them out.
	if err := saveState(r.Context(), h.svc, h.store); err != nil {
		slog.Error("voter registered but not saved", "error", err, "voter_email", voter.Email)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register voter")
		return
	}

	voterToken, err := h.sessions.Issue(voter.Email)
	if err != nil {
		slog.Error("failed to generate voter token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	slog.Info("voter logged in", "voter_email", voter.Email)

	middleware.JSONResponse(w, http.StatusOK, models.VoterLoginResponse{
		VoterToken: voterToken,
		Voter:      voter,
	})
}

// GetBallot handles GET /ballot
func (h *VotingHandler) GetBallot(w http.ResponseWriter, r *http.Request) {
	email, ok := h.voter(w, r)
	if !ok {
		return
	}

	resp, err := h.ballotView(email)
	if err != nil {
		writeElectionError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetEligibility handles GET /positions/{id}/eligibility
func (h *VotingHandler) GetEligibility(w http.ResponseWriter, r *http.Request) {
	email, ok := h.voter(w, r)
	if !ok {
		return
	}

	positionID := r.PathValue("id")
	if _, err := h.svc.Position(positionID); err != nil {
		writeElectionError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.EligibilityResponse{
		PositionID: positionID,
		CanVote:    h.svc.CanVote(positionID, email),
	})
}

// CastVote handles PUT /ballot/{positionId}
// Casting again for the same position replaces the earlier choice.
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	email, ok := h.voter(w, r)
	if !ok {
		return
	}

	positionID := r.PathValue("positionId")
	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.CandidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_id is required")
		return
	}

	err := h.svc.CastVote(models.Vote{
		PositionID:  positionID,
		CandidateID: req.CandidateID,
		VoterEmail:  email,
	})
	if err != nil {
		if errors.Is(err, election.ErrIneligibleVoter) {
			slog.Warn("vote rejected", "voter_email", email, "position_id", positionID, "error", err)
		}
		writeElectionError(w, err)
		return
	}
	if err := saveLedger(r.Context(), h.svc, h.store); err != nil {
		slog.Error("failed to save vote", "error", err, "voter_email", email)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save vote")
		return
	}

	slog.Info("vote cast", "voter_email", email, "position_id", positionID)

	resp, err := h.ballotView(email)
	if err != nil {
		writeElectionError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetUnvoted handles GET /ballot/unvoted
func (h *VotingHandler) GetUnvoted(w http.ResponseWriter, r *http.Request) {
	email, ok := h.voter(w, r)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, h.svc.UnvotedPositions(email))
}

// Confirm handles POST /ballot/confirm
func (h *VotingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	email, ok := h.voter(w, r)
	if !ok {
		return
	}

	if err := h.svc.BeginConfirmation(email); err != nil {
		writeElectionError(w, err)
		return
	}

	resp, err := h.ballotView(email)
	if err != nil {
		writeElectionError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Submit handles POST /ballot/submit
func (h *VotingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	email, ok := h.voter(w, r)
	if !ok {
		return
	}

	submittedAt, err := h.svc.Submit(email)
	if err != nil {
		writeElectionError(w, err)
		return
	}
	if err := saveLedger(r.Context(), h.svc, h.store); err != nil {
		slog.Error("failed to save submission", "error", err, "voter_email", email)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit ballot")
		return
	}

	slog.Info("ballot submitted", "voter_email", email)

	middleware.JSONResponse(w, http.StatusOK, models.SubmitBallotResponse{
		SubmittedAt: submittedAt,
		Message:     "Ballot submitted successfully",
	})
}

// Discard handles DELETE /ballot
// Drops an unsubmitted ballot and ends the voter's session.
func (h *VotingHandler) Discard(w http.ResponseWriter, r *http.Request) {
	email, ok := h.voter(w, r)
	if !ok {
		return
	}

	if err := h.svc.DiscardBallot(email); err != nil {
		writeElectionError(w, err)
		return
	}
	if err := saveLedger(r.Context(), h.svc, h.store); err != nil {
		slog.Error("failed to save discarded ballot", "error", err, "voter_email", email)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to discard ballot")
		return
	}
	h.sessions.Revoke(r.Header.Get("X-Voter-Token"))

	slog.Info("ballot discarded", "voter_email", email)

	w.WriteHeader(http.StatusNoContent)
}

func (h *VotingHandler) ballotView(email string) (models.BallotResponse, error) {
	votes, err := h.svc.Ballot(email)
	if err != nil {
		return models.BallotResponse{}, err
	}
	sess, err := h.svc.Session(email)
	if err != nil {
		return models.BallotResponse{}, err
	}

	unvoted := []string{}
	for _, p := range h.svc.UnvotedPositions(email) {
		unvoted = append(unvoted, p.ID)
	}

	return models.BallotResponse{
		Votes:      votes,
		Unvoted:    unvoted,
		Confirming: sess.Confirming,
		Submitted:  sess.Submitted,
	}, nil
}
