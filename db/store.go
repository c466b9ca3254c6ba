// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/thisistanvirjoy/university-club-election/models"
)

// Database types accepted by Open
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// Snapshot row names
const (
	stateKey  = "state"
	ledgerKey = "ledger"
)

// ErrNoSnapshot is returned by the Load methods before anything was saved
var ErrNoSnapshot = errors.New("no snapshot saved")

// Open connects to the database, verifies the connection, and creates the schema
func Open(dbType, url string) (*sql.DB, error) {
	var driver string
	switch strings.ToLower(strings.TrimSpace(dbType)) {
	case TypeSQLite, "":
		driver = "sqlite"
	case TypePostgres:
		driver = "postgres"
	default:
		return nil, fmt.Errorf("unsupported database type %q (use sqlite or postgres)", dbType)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("open %s db: %w", driver, err)
	}
	if driver == "sqlite" {
		// SQLite allows one writer; in-memory databases are per connection
		conn.SetMaxOpenConns(1)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping %s db: %w", driver, err)
	}
	if err := CreateSchema(conn); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}

// Store persists election snapshots as JSON blobs, last write wins
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// SaveState overwrites the positions / election state / credentials snapshot
func (s *Store) SaveState(ctx context.Context, snap models.Snapshot) error {
	return s.save(ctx, stateKey, snap)
}

// LoadState returns ErrNoSnapshot on a fresh database
func (s *Store) LoadState(ctx context.Context) (models.Snapshot, error) {
	var snap models.Snapshot
	if err := s.load(ctx, stateKey, &snap); err != nil {
		return models.Snapshot{}, err
	}
	if snap.ElectionState.Voters == nil {
		snap.ElectionState.Voters = make(map[string]models.Voter)
	}
	return snap, nil
}

// SaveLedger overwrites the vote ledger snapshot
func (s *Store) SaveLedger(ctx context.Context, snap models.LedgerSnapshot) error {
	return s.save(ctx, ledgerKey, snap)
}

func (s *Store) LoadLedger(ctx context.Context) (models.LedgerSnapshot, error) {
	var snap models.LedgerSnapshot
	if err := s.load(ctx, ledgerKey, &snap); err != nil {
		return models.LedgerSnapshot{}, err
	}
	return snap, nil
}

func (s *Store) save(ctx context.Context, name string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s snapshot: %w", name, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO election_snapshot (name, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE
		SET payload = excluded.payload, updated_at = excluded.updated_at
	`, name, string(payload), s.now().UTC())
	if err != nil {
		return fmt.Errorf("save %s snapshot: %w", name, err)
	}
	return nil
}

func (s *Store) load(ctx context.Context, name string, v any) error {
	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT payload FROM election_snapshot WHERE name = $1
	`, name).Scan(&payload)

	if err == sql.ErrNoRows {
		return ErrNoSnapshot
	}
	if err != nil {
		return fmt.Errorf("load %s snapshot: %w", name, err)
	}

	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return fmt.Errorf("decode %s snapshot: %w", name, err)
	}
	return nil
}
