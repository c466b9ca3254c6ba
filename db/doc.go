// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db persists election snapshots in SQLite or PostgreSQL.

# Connecting

Open picks the driver, pings, and creates the schema:

	conn, err := db.Open("sqlite", "file:election.db")
	conn, err := db.Open("postgres", "postgres://...")

SQLite uses the pure-Go modernc.org/sqlite driver; PostgreSQL uses lib/pq.
CreateSchema is safe to call multiple times - it uses IF NOT EXISTS.

# Snapshots

The election is stored as two JSON blobs in election_snapshot:

  - state: positions with candidates, election state with the voter map,
    and admin credentials
  - ledger: live votes and the submission time of every finished ballot

Every save overwrites the row (last write wins):

	store := db.NewStore(conn)
	err := store.SaveState(ctx, svc.Snapshot())
	snap, err := store.LoadState(ctx) // ErrNoSnapshot on a fresh database
*/
package db
