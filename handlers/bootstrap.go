// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/thisistanvirjoy/university-club-election/cliparse"
	"github.com/thisistanvirjoy/university-club-election/db"
	"github.com/thisistanvirjoy/university-club-election/election"
	"github.com/thisistanvirjoy/university-club-election/models"
)

// SnapshotStore loads and saves election snapshots. *db.Store implements it.
type SnapshotStore interface {
	Persister
	LoadState(ctx context.Context) (models.Snapshot, error)
	LoadLedger(ctx context.Context) (models.LedgerSnapshot, error)
}

// LoadElection rebuilds the election from the store. A fresh database gets
// a closed election named from cfg, seeded with the configured admin
// credentials, and saved right away.
func LoadElection(ctx context.Context, store SnapshotStore, cfg cliparse.Config, opts ...election.Option) (*election.Service, error) {
	svc := election.New(cfg.ElectionName, opts...)

	snap, err := store.LoadState(ctx)
	if errors.Is(err, db.ErrNoSnapshot) {
		if err := svc.SeedAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
			return nil, fmt.Errorf("seed admin: %w", err)
		}
		if err := saveAll(ctx, svc, store); err != nil {
			return nil, fmt.Errorf("save fresh election: %w", err)
		}
		slog.Info("created new election", "name", cfg.ElectionName, "admin_username", cfg.AdminUsername)
		return svc, nil
	}
	if err != nil {
		return nil, err
	}

	if err := svc.Restore(snap); err != nil {
		return nil, err
	}

	ledger, err := store.LoadLedger(ctx)
	switch {
	case errors.Is(err, db.ErrNoSnapshot):
		slog.Warn("no vote ledger saved, starting with an empty ledger")
	case err != nil:
		return nil, err
	default:
		if dropped := svc.RestoreLedger(ledger); dropped > 0 {
			slog.Warn("dropped votes that no longer resolve", "count", dropped)
		}
	}

	slog.Info("election restored",
		"name", snap.ElectionState.ElectionName,
		"status", svc.Status(),
		"positions", len(snap.Positions),
		"voters", len(snap.ElectionState.Voters),
	)
	return svc, nil
}

// SaveElection writes both snapshots, e.g. on shutdown
func SaveElection(ctx context.Context, svc *election.Service, store Persister) error {
	return saveAll(ctx, svc, store)
}
