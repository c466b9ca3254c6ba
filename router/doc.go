// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the club election API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(svc, store, cfg)

# Endpoints

Health and public info:

	GET /health
	GET /election - Name, status, and ballot (no votes)

Voting (requires X-Voter-Token from /voters/login):

	POST   /voters/login                - Register or log in, returns voter_token
	GET    /ballot                      - Own votes and progress
	GET    /ballot/unvoted              - Positions still without a vote
	PUT    /ballot/{positionId}         - Cast or change a vote
	POST   /ballot/confirm              - Move to the review step
	POST   /ballot/submit               - Finalize the ballot
	DELETE /ballot                      - Discard an unsubmitted ballot
	GET    /positions/{id}/eligibility  - Whether a first vote is allowed

Election management (admin, requires X-Admin-Key from /admin/login):

	POST   /admin/login
	PUT    /admin/credentials
	POST   /admin/election/start
	POST   /admin/election/end
	PUT    /admin/election/config
	POST   /admin/positions
	PUT    /admin/positions/{id}
	DELETE /admin/positions/{id}
	POST   /admin/positions/{id}/candidates
	PUT    /admin/positions/{id}/candidates/{candidateId}
	DELETE /admin/positions/{id}/candidates/{candidateId}
	DELETE /admin/votes

Results (admin):

	GET /admin/results
	GET /admin/results/{positionId}
	GET /admin/export/results.csv
	GET /admin/export/voters.csv

# Handler Initialization

The router creates handler instances with dependency injection:

	adminHandler := handlers.NewAdminHandler(svc, store, cfg)
	votingHandler := handlers.NewVotingHandler(svc, store, sessions)
	resultsHandler := handlers.NewResultsHandler(svc, cfg)

All handlers share one election.Service; voter tokens live in one
handlers.VoterSessions.
*/
package router
