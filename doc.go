// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the club election API server.

Students log in with their university details, cast one vote per position,
review, and submit. Admins set up positions and candidates, open and close
voting, and read or export the tallies.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=election.db ADMIN_KEY_SALT=secret go run .

Or with flags:

	go run . -p 3318 -d "postgres://..." -t postgres -admin-salt secret

A .env file in the working directory is read first when present.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - ADMIN_KEY_SALT (-admin-salt): Secret for admin key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - ELECTION_NAME (-name): Name of a new election
  - ADMIN_USERNAME, ADMIN_PASSWORD: Initial admin login for a new election

# Architecture

  - election: Positions, voters, vote ledger, lifecycle, tallies
  - handlers: HTTP request handlers (admin, voting, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Domain, request, and response types
  - auth: Admin keys, voter tokens, password hashing
  - db: Snapshot storage on SQLite or PostgreSQL
  - export: CSV rendering of results and voters
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
