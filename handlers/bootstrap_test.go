package handlers

import (
	"context"
	"testing"

	"github.com/thisistanvirjoy/university-club-election/db"
	"github.com/thisistanvirjoy/university-club-election/models"
	"github.com/thisistanvirjoy/university-club-election/testutil"
)

func TestLoadElection_FreshDatabase(t *testing.T) {
	cfg := testutil.GetTestConfig()
	store := db.NewStore(testutil.SetupTestDB(t))
	ctx := context.Background()

	svc, err := LoadElection(ctx, store, cfg)
	if err != nil {
		t.Fatal(err)
	}

	if svc.Status() != models.StatusClosed || svc.State().ElectionName != cfg.ElectionName {
		t.Errorf("Expected a closed election named %q, got %s %q", cfg.ElectionName, svc.Status(), svc.State().ElectionName)
	}
	if err := svc.CheckCredentials(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		t.Errorf("Expected seeded admin credentials, got %v", err)
	}

	// Seeded state is saved right away
	if _, err := store.LoadState(ctx); err != nil {
		t.Errorf("Expected fresh state to be saved, got %v", err)
	}
	if _, err := store.LoadLedger(ctx); err != nil {
		t.Errorf("Expected fresh ledger to be saved, got %v", err)
	}
}

func TestLoadElection_RestoresSavedElection(t *testing.T) {
	cfg := testutil.GetTestConfig()
	store := db.NewStore(testutil.SetupTestDB(t))
	ctx := context.Background()

	first, err := LoadElection(ctx, store, cfg)
	if err != nil {
		t.Fatal(err)
	}
	p := testutil.AddTestPosition(t, first, "President", "Alice")
	testutil.RegisterTestVoter(t, first, "v1@uni.edu")
	first.Start()
	testutil.CastTestVote(t, first, "v1@uni.edu", p.ID, p.Candidates[0].ID)
	if _, err := first.Submit("v1@uni.edu"); err != nil {
		t.Fatal(err)
	}
	if err := SaveElection(ctx, first, store); err != nil {
		t.Fatal(err)
	}

	// A restart with different seed settings keeps the saved election
	cfg.ElectionName = "Ignored"
	cfg.AdminPassword = "ignored"
	second, err := LoadElection(ctx, store, cfg)
	if err != nil {
		t.Fatal(err)
	}

	if second.State().ElectionName != "Test Election" {
		t.Errorf("Expected saved name, got %q", second.State().ElectionName)
	}
	if second.Status() != models.StatusOpen {
		t.Errorf("Expected saved open status, got %s", second.Status())
	}
	if err := second.CheckCredentials("admin", "admin123"); err != nil {
		t.Errorf("Expected saved credentials, got %v", err)
	}

	res := second.Results()
	if res.TotalVotes != 1 || res.Turnout != 1 {
		t.Errorf("Expected 1 vote and turnout 1, got %d / %d", res.TotalVotes, res.Turnout)
	}
}

func TestLoadElection_MissingLedger(t *testing.T) {
	cfg := testutil.GetTestConfig()
	store := db.NewStore(testutil.SetupTestDB(t))
	ctx := context.Background()

	snap := models.Snapshot{
		ElectionState: models.ElectionState{ElectionName: "State Only"},
	}
	if err := store.SaveState(ctx, snap); err != nil {
		t.Fatal(err)
	}

	svc, err := LoadElection(ctx, store, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if svc.State().ElectionName != "State Only" || svc.Results().TotalVotes != 0 {
		t.Errorf("Expected saved state with an empty ledger, got %+v", svc.State())
	}
}
