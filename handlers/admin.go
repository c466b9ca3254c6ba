// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/thisistanvirjoy/university-club-election/auth"
	"github.com/thisistanvirjoy/university-club-election/cliparse"
	"github.com/thisistanvirjoy/university-club-election/election"
	"github.com/thisistanvirjoy/university-club-election/middleware"
	"github.com/thisistanvirjoy/university-club-election/models"
)

type AdminHandler struct {
	svc   *election.Service
	store Persister
	cfg   cliparse.Config
}

func NewAdminHandler(svc *election.Service, store Persister, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{svc: svc, store: store, cfg: cfg}
}

// authorize checks the X-Admin-Key header and writes 401 on failure
func (h *AdminHandler) authorize(w http.ResponseWriter, r *http.Request) bool {
	return requireAdmin(w, r, h.svc, h.cfg)
}

func requireAdmin(w http.ResponseWriter, r *http.Request, svc *election.Service, cfg cliparse.Config) bool {
	adminKey := r.Header.Get("X-Admin-Key")
	creds := svc.AdminCredentials()
	if err := auth.ValidateAdminKey(creds.Username, creds.PasswordHash, adminKey, cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return false
	}
	return true
}

// persist saves after a successful mutation and reports whether it worked
func (h *AdminHandler) persist(w http.ResponseWriter, r *http.Request, what string) bool {
	if err := saveAll(r.Context(), h.svc, h.store); err != nil {
		slog.Error("failed to save election", "error", err, "after", what)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save election")
		return false
	}
	return true
}

// Login handles POST /admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.svc.CheckCredentials(req.Username, req.Password); err != nil {
		slog.Warn("admin login failed", "username", req.Username)
		writeElectionError(w, err)
		return
	}

	slog.Info("admin logged in", "username", req.Username)

	middleware.JSONResponse(w, http.StatusOK, models.AdminLoginResponse{
		AdminKey: issueAdminKey(h.svc, h.cfg),
	})
}

// issueAdminKey derives the admin key for the credentials stored right now
func issueAdminKey(svc *election.Service, cfg cliparse.Config) string {
	creds := svc.AdminCredentials()
	return auth.GenerateAdminKey(creds.Username, creds.PasswordHash, cfg.AdminKeySalt)
}

// SetCredentials handles PUT /admin/credentials
// Every admin key issued before the change stops working, even when only
// the password changed.
func (h *AdminHandler) SetCredentials(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	var req models.AdminLoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.svc.SetAdminCredentials(req.Username, req.Password); err != nil {
		writeElectionError(w, err)
		return
	}
	if !h.persist(w, r, "set credentials") {
		return
	}

	slog.Info("admin credentials changed", "username", req.Username)

	middleware.JSONResponse(w, http.StatusOK, models.AdminLoginResponse{
		AdminKey: issueAdminKey(h.svc, h.cfg),
	})
}

// StartElection handles POST /admin/election/start
func (h *AdminHandler) StartElection(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	if h.svc.Start() {
		slog.Info("election started")
	} else {
		slog.Info("election already open")
	}
	if !h.persist(w, r, "start") {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, h.electionView())
}

// EndElection handles POST /admin/election/end
func (h *AdminHandler) EndElection(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	h.svc.End()
	if !h.persist(w, r, "end") {
		return
	}

	slog.Info("election ended")

	middleware.JSONResponse(w, http.StatusOK, h.electionView())
}

// Configure handles PUT /admin/election/config
// Replaces the election name and all positions at once.
func (h *AdminHandler) Configure(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	var req models.ElectionConfig
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.svc.Configure(req); err != nil {
		h.rejected(w, "configure", err)
		return
	}
	if !h.persist(w, r, "configure") {
		return
	}

	slog.Info("election configured", "name", req.Name, "positions", len(req.Positions))

	middleware.JSONResponse(w, http.StatusOK, h.electionView())
}

// AddPosition handles POST /admin/positions
func (h *AdminHandler) AddPosition(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	var req models.PositionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	position, err := h.svc.AddPosition(req.Title, req.Description)
	if err != nil {
		h.rejected(w, "add position", err)
		return
	}
	if !h.persist(w, r, "add position") {
		return
	}

	slog.Info("position added", "position_id", position.ID)

	middleware.JSONResponse(w, http.StatusCreated, position)
}

// UpdatePosition handles PUT /admin/positions/{id}
func (h *AdminHandler) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	positionID := r.PathValue("id")
	var req models.PositionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	position, err := h.svc.UpdatePosition(models.Position{
		ID:          positionID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.rejected(w, "update position", err)
		return
	}
	if !h.persist(w, r, "update position") {
		return
	}

	slog.Info("position updated", "position_id", positionID)

	middleware.JSONResponse(w, http.StatusOK, position)
}

// DeletePosition handles DELETE /admin/positions/{id}
func (h *AdminHandler) DeletePosition(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	positionID := r.PathValue("id")
	if err := h.svc.DeletePosition(positionID); err != nil {
		h.rejected(w, "delete position", err)
		return
	}
	if !h.persist(w, r, "delete position") {
		return
	}

	slog.Info("position deleted", "position_id", positionID)

	w.WriteHeader(http.StatusNoContent)
}

// AddCandidate handles POST /admin/positions/{id}/candidates
func (h *AdminHandler) AddCandidate(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	positionID := r.PathValue("id")
	var req models.CandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	candidate, err := h.svc.AddCandidate(positionID, candidateFromRequest("", req))
	if err != nil {
		h.rejected(w, "add candidate", err)
		return
	}
	if !h.persist(w, r, "add candidate") {
		return
	}

	slog.Info("candidate added", "position_id", positionID, "candidate_id", candidate.ID)

	middleware.JSONResponse(w, http.StatusCreated, candidate)
}

// UpdateCandidate handles PUT /admin/positions/{id}/candidates/{candidateId}
func (h *AdminHandler) UpdateCandidate(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	positionID := r.PathValue("id")
	candidateID := r.PathValue("candidateId")
	var req models.CandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	candidate, err := h.svc.UpdateCandidate(positionID, candidateFromRequest(candidateID, req))
	if err != nil {
		h.rejected(w, "update candidate", err)
		return
	}
	if !h.persist(w, r, "update candidate") {
		return
	}

	slog.Info("candidate updated", "position_id", positionID, "candidate_id", candidateID)

	middleware.JSONResponse(w, http.StatusOK, candidate)
}

// DeleteCandidate handles DELETE /admin/positions/{id}/candidates/{candidateId}
func (h *AdminHandler) DeleteCandidate(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	positionID := r.PathValue("id")
	candidateID := r.PathValue("candidateId")
	if err := h.svc.DeleteCandidate(positionID, candidateID); err != nil {
		h.rejected(w, "delete candidate", err)
		return
	}
	if !h.persist(w, r, "delete candidate") {
		return
	}

	slog.Info("candidate deleted", "position_id", positionID, "candidate_id", candidateID)

	w.WriteHeader(http.StatusNoContent)
}

// ClearVotes handles DELETE /admin/votes
// Empties the vote ledger; positions, candidates, and voters stay.
func (h *AdminHandler) ClearVotes(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	h.svc.ClearAll()
	if !h.persist(w, r, "clear votes") {
		return
	}

	slog.Warn("vote ledger cleared")

	w.WriteHeader(http.StatusNoContent)
}

// rejected reports an engine error. Locked-election attempts are logged so
// they are never silently dropped.
func (h *AdminHandler) rejected(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, election.ErrElectionLocked) {
		slog.Warn("mutation rejected while election is open", "op", op)
	}
	writeElectionError(w, err)
}

func (h *AdminHandler) electionView() models.ElectionResponse {
	return electionView(h.svc)
}

func electionView(svc *election.Service) models.ElectionResponse {
	state := svc.State()
	return models.ElectionResponse{
		ElectionName:      state.ElectionName,
		Status:            svc.Status(),
		ElectionStartTime: state.ElectionStartTime,
		ElectionEndTime:   state.ElectionEndTime,
		Positions:         svc.Positions(),
	}
}

func candidateFromRequest(id string, req models.CandidateRequest) models.Candidate {
	return models.Candidate{
		ID:          id,
		Name:        req.Name,
		Email:       req.Email,
		Year:        req.Year,
		Platform:    req.Platform,
		Experience:  req.Experience,
		PhotoURL:    req.PhotoURL,
		SocialLinks: req.SocialLinks,
	}
}
