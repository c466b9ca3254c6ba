// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/thisistanvirjoy/university-club-election/models"
	"github.com/thisistanvirjoy/university-club-election/testutil"
)

// seedPresidentRace registers three voters and casts 2 votes for A, 1 for B
func seedPresidentRace(t *testing.T, env *testEnv) models.Position {
	t.Helper()

	p := testutil.AddTestPosition(t, env.svc, "President", "A", "B")
	for _, email := range []string{"v1@uni.edu", "v2@uni.edu", "v3@uni.edu"} {
		testutil.RegisterTestVoter(t, env.svc, email)
	}
	env.svc.Start()
	testutil.CastTestVote(t, env.svc, "v1@uni.edu", p.ID, p.Candidates[0].ID)
	testutil.CastTestVote(t, env.svc, "v2@uni.edu", p.ID, p.Candidates[0].ID)
	testutil.CastTestVote(t, env.svc, "v3@uni.edu", p.ID, p.Candidates[1].ID)
	return p
}

func TestGetElection(t *testing.T) {
	env := newTestEnv(t)
	seedPresidentRace(t, env)

	req := testutil.MakeRequest("GET", "/election", nil, nil)
	w := httptest.NewRecorder()
	env.results.GetElection(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	body := w.Body.String()
	if strings.Contains(body, "voter_email") || strings.Contains(body, "v1@uni.edu") {
		t.Error("Expected the public election view to hide votes and voters")
	}

	var resp models.ElectionResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.ElectionName != "Test Election" || resp.Status != models.StatusOpen {
		t.Errorf("Unexpected election %+v", resp)
	}
	if len(resp.Positions) != 1 || len(resp.Positions[0].Candidates) != 2 {
		t.Errorf("Expected the ballot in the response, got %+v", resp.Positions)
	}
}

func TestGetResults(t *testing.T) {
	env := newTestEnv(t)
	p := seedPresidentRace(t, env)

	req := testutil.MakeRequest("GET", "/admin/results", nil, env.adminHeaders())
	w := httptest.NewRecorder()
	env.results.GetResults(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var res models.ElectionResults
	testutil.AssertJSON(t, w, &res)
	if res.TotalVotes != 3 || res.VoterCount != 3 {
		t.Errorf("Expected 3 votes from 3 voters, got %+v", res)
	}
	if len(res.Positions) != 1 {
		t.Fatalf("Expected one position, got %d", len(res.Positions))
	}

	pr := res.Positions[0]
	if pr.Winner == nil || pr.Winner.CandidateID != p.Candidates[0].ID {
		t.Errorf("Expected A to win, got %+v", pr.Winner)
	}
	if pr.Rows[0].Percentage != 66.7 || pr.Rows[1].Percentage != 33.3 {
		t.Errorf("Expected 66.7/33.3, got %v/%v", pr.Rows[0].Percentage, pr.Rows[1].Percentage)
	}
}

func TestGetPositionResults(t *testing.T) {
	env := newTestEnv(t)
	p := seedPresidentRace(t, env)

	tests := []struct {
		name           string
		positionID     string
		expectedStatus int
	}{
		{"existing position", p.ID, http.StatusOK},
		{"unknown position", "missing", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", "/admin/results/"+tt.positionID, nil, env.adminHeaders())
			req.SetPathValue("positionId", tt.positionID)
			w := httptest.NewRecorder()
			env.results.GetPositionResults(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusOK {
				var pr models.PositionResult
				testutil.AssertJSON(t, w, &pr)
				if pr.TotalVotes != 3 || pr.Title != "President" || pr.Winner == nil {
					t.Errorf("Unexpected position result %+v", pr)
				}
			}
		})
	}
}

func TestExportResultsCSV(t *testing.T) {
	env := newTestEnv(t)
	seedPresidentRace(t, env)

	req := testutil.MakeRequest("GET", "/admin/export/results.csv", nil, env.adminHeaders())
	w := httptest.NewRecorder()
	env.results.ExportResultsCSV(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Expected CSV content type, got %s", ct)
	}

	records, err := csv.NewReader(w.Body).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d", len(records))
	}
	if records[1][1] != "A" || records[1][3] != "66.7%" || records[1][4] != "yes" {
		t.Errorf("Unexpected winner row %v", records[1])
	}
}

func TestExportVotersCSV(t *testing.T) {
	env := newTestEnv(t)
	seedPresidentRace(t, env)

	req := testutil.MakeRequest("GET", "/admin/export/voters.csv", nil, env.adminHeaders())
	w := httptest.NewRecorder()
	env.results.ExportVotersCSV(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	records, err := csv.NewReader(w.Body).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 4 {
		t.Fatalf("Expected header plus 3 voters, got %d", len(records))
	}
	if records[1][2] != "v1@uni.edu" {
		t.Errorf("Expected voters ordered by email, got %v", records[1])
	}
}
