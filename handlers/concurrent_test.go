// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/thisistanvirjoy/university-club-election/models"
	"github.com/thisistanvirjoy/university-club-election/testutil"
)

// TestConcurrentVotes verifies that simultaneous votes from different voters
// are all counted and the saved ledger matches the live one
func TestConcurrentVotes(t *testing.T) {
	env := newTestEnv(t)
	p := testutil.AddTestPosition(t, env.svc, "President", "Alice", "Bob", "Cara")

	numVoters := 12
	tokens := make([]string, numVoters)
	for i := 0; i < numVoters; i++ {
		tokens[i] = env.login(t, fmt.Sprintf("voter%02d@uni.edu", i))
	}
	env.svc.Start()

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(voterIdx int) {
			defer wg.Done()

			candidateID := p.Candidates[voterIdx%3].ID
			req := testutil.MakeRequest("PUT", "/ballot/"+p.ID, models.CastVoteRequest{CandidateID: candidateID},
				voterHeaders(tokens[voterIdx]))
			req.SetPathValue("positionId", p.ID)
			w := httptest.NewRecorder()

			env.voting.CastVote(w, req)

			if w.Code == http.StatusOK {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != numVoters {
		t.Errorf("Expected %d successful votes, got %d", numVoters, successCount.Load())
	}

	rows, err := env.svc.Tally(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	for _, row := range rows {
		if row.Count != numVoters/3 {
			t.Errorf("Expected %d votes for %s, got %d", numVoters/3, row.Name, row.Count)
		}
	}

	ledger, err := env.store.LoadLedger(context.Background())
	if err != nil {
		t.Fatalf("Failed to load ledger: %v", err)
	}
	if len(ledger.Votes) != numVoters {
		t.Errorf("Expected %d saved votes, got %d", numVoters, len(ledger.Votes))
	}
}

// TestConcurrentVoteUpdates verifies that one voter changing their vote
// from several goroutines still ends with exactly one live vote
func TestConcurrentVoteUpdates(t *testing.T) {
	env := newTestEnv(t)
	p := testutil.AddTestPosition(t, env.svc, "President", "Alice", "Bob")
	token := env.login(t, "v1@uni.edu")
	env.svc.Start()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			env.castVote(t, token, p.ID, p.Candidates[i%2].ID)
		}(i)
	}
	wg.Wait()

	ballot, err := env.svc.Ballot("v1@uni.edu")
	if err != nil {
		t.Fatal(err)
	}
	if len(ballot) != 1 {
		t.Errorf("Expected exactly one live vote, got %d", len(ballot))
	}

	rows, _ := env.svc.Tally(p.ID)
	if rows[0].Count+rows[1].Count != 1 {
		t.Errorf("Expected tally to sum to 1, got %d", rows[0].Count+rows[1].Count)
	}
}

// TestConcurrentStartAndMutate verifies that a structural change racing
// with Start either lands before voting opens or is rejected
func TestConcurrentStartAndMutate(t *testing.T) {
	env := newTestEnv(t)

	var wg sync.WaitGroup
	var created, locked atomic.Int32

	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := testutil.MakeRequest("POST", "/admin/positions", models.PositionRequest{
				Title: fmt.Sprintf("Position %d", i),
			}, env.adminHeaders())
			w := httptest.NewRecorder()
			env.admin.AddPosition(w, req)
			switch w.Code {
			case http.StatusCreated:
				created.Add(1)
			case http.StatusConflict:
				locked.Add(1)
			}
		}(i)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		req := testutil.MakeRequest("POST", "/admin/election/start", nil, env.adminHeaders())
		env.admin.StartElection(httptest.NewRecorder(), req)
	}()

	wg.Wait()

	if created.Load()+locked.Load() != 5 {
		t.Errorf("Expected every request to be created or locked, got %d + %d", created.Load(), locked.Load())
	}
	if got := len(env.svc.Positions()); got != int(created.Load()) {
		t.Errorf("Expected %d positions, got %d", created.Load(), got)
	}
}
