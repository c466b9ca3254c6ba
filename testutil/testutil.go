// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/thisistanvirjoy/university-club-election/auth"
	"github.com/thisistanvirjoy/university-club-election/cliparse"
	"github.com/thisistanvirjoy/university-club-election/db"
	"github.com/thisistanvirjoy/university-club-election/election"
	"github.com/thisistanvirjoy/university-club-election/models"
)

// TestDBURL opens a private in-memory SQLite database
const TestDBURL = ":memory:"

// SetupTestDB creates a fresh in-memory database with the full schema.
// The connection is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   TestDBURL,
		DatabaseType:  db.TypeSQLite,
		AdminKeySalt:  "test-admin-salt",
		AdminUsername: "admin",
		AdminPassword: "admin123",
		ElectionName:  "Test Election",
	}
}

// SequentialIDs hands out predictable IDs: p1, p2, ...
type SequentialIDs struct {
	mu     sync.Mutex
	Prefix string
	n      int
}

func (s *SequentialIDs) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	prefix := s.Prefix
	if prefix == "" {
		prefix = "id"
	}
	return fmt.Sprintf("%s%d", prefix, s.n)
}

// FixedClock always returns at
func FixedClock(at time.Time) election.Clock {
	return func() time.Time { return at }
}

// NewTestService returns a closed election with sequential IDs and the
// admin credentials from GetTestConfig
func NewTestService(t *testing.T) *election.Service {
	t.Helper()

	cfg := GetTestConfig()
	svc := election.New(cfg.ElectionName, election.WithIDGenerator(&SequentialIDs{}))
	if err := svc.SeedAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		t.Fatalf("Failed to seed admin: %v", err)
	}
	return svc
}

// AddTestPosition adds a position with one candidate per name.
// Candidate emails are derived from the names.
func AddTestPosition(t *testing.T, svc *election.Service, title string, candidateNames ...string) models.Position {
	t.Helper()

	p, err := svc.AddPosition(title, title+" of the club")
	if err != nil {
		t.Fatalf("Failed to create test position: %v", err)
	}
	for _, name := range candidateNames {
		_, err := svc.AddCandidate(p.ID, models.Candidate{
			Name:  name,
			Email: CandidateEmail(name),
			Year:  "3rd",
		})
		if err != nil {
			t.Fatalf("Failed to create test candidate %s: %v", name, err)
		}
	}

	p, err = svc.Position(p.ID)
	if err != nil {
		t.Fatalf("Failed to reload test position: %v", err)
	}
	return p
}

// CandidateEmail is the email AddTestPosition gives a candidate
func CandidateEmail(name string) string {
	return name + "@candidates.uni.edu"
}

// RegisterTestVoter registers a voter with placeholder details
func RegisterTestVoter(t *testing.T, svc *election.Service, email string) models.Voter {
	t.Helper()

	v, err := svc.RegisterVoter(models.Voter{
		Email:     email,
		Name:      "Voter " + email,
		Semester:  "4",
		StudentID: "S-" + email,
	})
	if err != nil {
		t.Fatalf("Failed to register test voter: %v", err)
	}
	return v
}

// CastTestVote casts a vote and fails the test on error
func CastTestVote(t *testing.T, svc *election.Service, voterEmail, positionID, candidateID string) {
	t.Helper()

	err := svc.CastVote(models.Vote{
		PositionID:  positionID,
		CandidateID: candidateID,
		VoterEmail:  voterEmail,
	})
	if err != nil {
		t.Fatalf("Failed to cast test vote: %v", err)
	}
}

// AdminKey returns the admin key the server issues for svc's current admin
func AdminKey(svc *election.Service, cfg cliparse.Config) string {
	creds := svc.AdminCredentials()
	return auth.GenerateAdminKey(creds.Username, creds.PasswordHash, cfg.AdminKeySalt)
}

// LoginTestVoter logs a voter in through handler and returns the voter token
func LoginTestVoter(t *testing.T, handler http.Handler, email string) string {
	t.Helper()

	req := MakeRequest("POST", "/voters/login", models.VoterLoginRequest{
		Email:     email,
		Name:      "Voter " + email,
		Semester:  "4",
		StudentID: "S-" + email,
	}, nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Failed to log in test voter: %d %s", w.Code, w.Body.String())
	}

	var resp models.VoterLoginResponse
	AssertJSON(t, w, &resp)
	return resp.VoterToken
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
