// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the club election API.

# Handler Types

Each handler is a struct holding the election service and its dependencies:

  - AdminHandler: Login, lifecycle, ballot setup, credentials, clearing votes
  - VotingHandler: Voter login, casting, confirmation, submission
  - ResultsHandler: Public election info, tallies, CSV export

Handlers are created via constructor functions:

	adminHandler := handlers.NewAdminHandler(svc, store, cfg)

# Persistence

Every successful mutation saves the affected snapshot through a Persister
(*db.Store in production). A failed save is logged and answered with 500.
LoadElection rebuilds the service from the store at startup, seeding a
fresh election when nothing has been saved yet.

# Errors

Engine errors map onto status codes:

	ErrNotFound                    → 404
	ErrInvalidInput, ErrInvalidCandidate → 400
	ErrIneligibleVoter             → 403
	ErrInvalidCredentials          → 401
	ErrElectionLocked, ErrVotingClosed,
	ErrBallotSubmitted, ErrIncompleteBallot → 409

# Authentication

Admin operations require the X-Admin-Key header issued by /admin/login.
Voter operations require the X-Voter-Token header issued by /voters/login.
Voter tokens are held in memory; voters log in again after a restart.
*/
package handlers
