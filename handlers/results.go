// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/thisistanvirjoy/university-club-election/cliparse"
	"github.com/thisistanvirjoy/university-club-election/election"
	"github.com/thisistanvirjoy/university-club-election/export"
	"github.com/thisistanvirjoy/university-club-election/middleware"
	"github.com/thisistanvirjoy/university-club-election/models"
)

type ResultsHandler struct {
	svc *election.Service
	cfg cliparse.Config
}

func NewResultsHandler(svc *election.Service, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{svc: svc, cfg: cfg}
}

// GetElection handles GET /election
// Returns the election name, status, and ballot, but never votes or tallies
func (h *ResultsHandler) GetElection(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, electionView(h.svc))
}

// GetResults handles GET /admin/results
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.svc, h.cfg) {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, h.svc.Results())
}

// GetPositionResults handles GET /admin/results/{positionId}
func (h *ResultsHandler) GetPositionResults(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.svc, h.cfg) {
		return
	}

	positionID := r.PathValue("positionId")
	position, err := h.svc.Position(positionID)
	if err != nil {
		writeElectionError(w, err)
		return
	}

	rows, err := h.svc.Tally(positionID)
	if err != nil {
		writeElectionError(w, err)
		return
	}

	result := models.PositionResult{
		PositionID: position.ID,
		Title:      position.Title,
		Rows:       rows,
	}
	for _, row := range rows {
		result.TotalVotes += row.Count
	}
	if winner, ok, err := h.svc.Winner(positionID); err == nil && ok {
		result.Winner = &winner
	}

	middleware.JSONResponse(w, http.StatusOK, result)
}

// ExportResultsCSV handles GET /admin/export/results.csv
func (h *ResultsHandler) ExportResultsCSV(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.svc, h.cfg) {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteResultsCSV(&buf, h.svc.Results()); err != nil {
		slog.Error("failed to export results", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to export results")
		return
	}

	slog.Info("results exported")
	writeCSV(w, "results.csv", buf.Bytes())
}

// ExportVotersCSV handles GET /admin/export/voters.csv
func (h *ResultsHandler) ExportVotersCSV(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.svc, h.cfg) {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteVotersCSV(&buf, h.svc.Voters()); err != nil {
		slog.Error("failed to export voters", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to export voters")
		return
	}

	slog.Info("voters exported")
	writeCSV(w, "voters.csv", buf.Bytes())
}

// writeCSV sends a buffered CSV body so a failed export never leaves a
// half-written 200 response
func writeCSV(w http.ResponseWriter, filename string, body []byte) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		slog.Error("failed to write CSV response", "error", err, "filename", filename)
	}
}
