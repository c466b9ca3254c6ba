// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/thisistanvirjoy/university-club-election/cliparse"
	"github.com/thisistanvirjoy/university-club-election/election"
	"github.com/thisistanvirjoy/university-club-election/handlers"
	"github.com/thisistanvirjoy/university-club-election/middleware"
)

func NewRouter(svc *election.Service, store handlers.Persister, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	sessions := handlers.NewVoterSessions()
	adminHandler := handlers.NewAdminHandler(svc, store, cfg)
	votingHandler := handlers.NewVotingHandler(svc, store, sessions)
	resultsHandler := handlers.NewResultsHandler(svc, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Public election info
	mux.HandleFunc("GET /election", middleware.WithLogging(resultsHandler.GetElection))

	// Voter session
	mux.HandleFunc("POST /voters/login", middleware.WithLogging(votingHandler.Login))
	mux.HandleFunc("GET /ballot", middleware.WithLogging(votingHandler.GetBallot))
	mux.HandleFunc("GET /ballot/unvoted", middleware.WithLogging(votingHandler.GetUnvoted))
	mux.HandleFunc("PUT /ballot/{positionId}", middleware.WithLogging(votingHandler.CastVote))
	mux.HandleFunc("POST /ballot/confirm", middleware.WithLogging(votingHandler.Confirm))
	mux.HandleFunc("POST /ballot/submit", middleware.WithLogging(votingHandler.Submit))
	mux.HandleFunc("DELETE /ballot", middleware.WithLogging(votingHandler.Discard))
	mux.HandleFunc("GET /positions/{id}/eligibility", middleware.WithLogging(votingHandler.GetEligibility))

	// Election management (admin operations)
	mux.HandleFunc("POST /admin/login", middleware.WithLogging(adminHandler.Login))
	mux.HandleFunc("PUT /admin/credentials", middleware.WithLogging(adminHandler.SetCredentials))
	mux.HandleFunc("POST /admin/election/start", middleware.WithLogging(adminHandler.StartElection))
	mux.HandleFunc("POST /admin/election/end", middleware.WithLogging(adminHandler.EndElection))
	mux.HandleFunc("PUT /admin/election/config", middleware.WithLogging(adminHandler.Configure))
	mux.HandleFunc("POST /admin/positions", middleware.WithLogging(adminHandler.AddPosition))
	mux.HandleFunc("PUT /admin/positions/{id}", middleware.WithLogging(adminHandler.UpdatePosition))
	mux.HandleFunc("DELETE /admin/positions/{id}", middleware.WithLogging(adminHandler.DeletePosition))
	mux.HandleFunc("POST /admin/positions/{id}/candidates", middleware.WithLogging(adminHandler.AddCandidate))
	mux.HandleFunc("PUT /admin/positions/{id}/candidates/{candidateId}", middleware.WithLogging(adminHandler.UpdateCandidate))
	mux.HandleFunc("DELETE /admin/positions/{id}/candidates/{candidateId}", middleware.WithLogging(adminHandler.DeleteCandidate))
	mux.HandleFunc("DELETE /admin/votes", middleware.WithLogging(adminHandler.ClearVotes))

	// Results (admin only, live while voting)
	mux.HandleFunc("GET /admin/results", middleware.WithLogging(resultsHandler.GetResults))
	mux.HandleFunc("GET /admin/results/{positionId}", middleware.WithLogging(resultsHandler.GetPositionResults))
	mux.HandleFunc("GET /admin/export/results.csv", middleware.WithLogging(resultsHandler.ExportResultsCSV))
	mux.HandleFunc("GET /admin/export/voters.csv", middleware.WithLogging(resultsHandler.ExportVotersCSV))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("university-club-election API v1"))
	})

	return mux
}
