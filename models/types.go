// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Election status constants
const (
	StatusClosed = "closed"
	StatusOpen   = "open"
)

// Known candidate social link platforms
const (
	SocialLinkedIn = "linkedin"
	SocialTwitter  = "twitter"
	SocialGitHub   = "github"
)

// Domain types

type Candidate struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Year        string            `json:"year"`
	Platform    string            `json:"platform"`
	Experience  []string          `json:"experience"`
	PhotoURL    string            `json:"photo_url"`
	SocialLinks map[string]string `json:"social_links,omitempty"`
}

// Position owns its candidates; deleting a position deletes them too.
type Position struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Candidates  []Candidate `json:"candidates"`
}

// Voter is keyed by exact email match.
type Voter struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	Semester  string `json:"semester"`
	StudentID string `json:"student_id"`
}

// Vote is one voter's choice for one position.
// The voter fields are a denormalized copy kept for audit and export.
type Vote struct {
	PositionID     string    `json:"position_id"`
	CandidateID    string    `json:"candidate_id"`
	Timestamp      time.Time `json:"timestamp"`
	VoterEmail     string    `json:"voter_email"`
	VoterName      string    `json:"voter_name"`
	VoterSemester  string    `json:"voter_semester"`
	VoterStudentID string    `json:"voter_student_id"`
}

type ElectionState struct {
	IsVoting          bool             `json:"is_voting"`
	ElectionName      string           `json:"election_name"`
	ElectionStartTime *time.Time       `json:"election_start_time,omitempty"`
	ElectionEndTime   *time.Time       `json:"election_end_time,omitempty"`
	Voters            map[string]Voter `json:"voters"`
}

// AdminCredentials never carries the plaintext password.
type AdminCredentials struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
}

// Snapshot is the persisted shape of everything except the vote ledger.
type Snapshot struct {
	Positions        []Position       `json:"positions"`
	ElectionState    ElectionState    `json:"election_state"`
	AdminCredentials AdminCredentials `json:"admin_credentials"`
}

// LedgerSnapshot is persisted apart from Snapshot.
// Submitted maps voter email to the time the ballot was finalized.
type LedgerSnapshot struct {
	Votes     []Vote               `json:"votes"`
	Submitted map[string]time.Time `json:"submitted"`
}

type ElectionConfig struct {
	Name      string     `json:"name"`
	Positions []Position `json:"positions"`
}

// Tally types

type ResultRow struct {
	CandidateID string  `json:"candidate_id"`
	Name        string  `json:"name"`
	Count       int     `json:"count"`
	Percentage  float64 `json:"percentage"` // one decimal, per-position base
}

type PositionResult struct {
	PositionID string      `json:"position_id"`
	Title      string      `json:"title"`
	TotalVotes int         `json:"total_votes"`
	Rows       []ResultRow `json:"rows"`
	Winner     *ResultRow  `json:"winner,omitempty"`
}

type ElectionResults struct {
	ElectionName string           `json:"election_name"`
	Status       string           `json:"status"`
	VoterCount   int              `json:"voter_count"`
	Turnout      int              `json:"turnout"` // voters who submitted
	TotalVotes   int              `json:"total_votes"`
	Positions    []PositionResult `json:"positions"`
	ComputedAt   time.Time        `json:"computed_at"`
}

// Request types

type VoterLoginRequest struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	Semester  string `json:"semester"`
	StudentID string `json:"student_id"`
}

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type PositionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type CandidateRequest struct {
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Year        string            `json:"year"`
	Platform    string            `json:"platform"`
	Experience  []string          `json:"experience"`
	PhotoURL    string            `json:"photo_url"`
	SocialLinks map[string]string `json:"social_links,omitempty"`
}

type CastVoteRequest struct {
	CandidateID string `json:"candidate_id"`
}

// Response types

type VoterLoginResponse struct {
	VoterToken string `json:"voter_token"`
	Voter      Voter  `json:"voter"`
}

type AdminLoginResponse struct {
	AdminKey string `json:"admin_key"`
}

type ElectionResponse struct {
	ElectionName      string     `json:"election_name"`
	Status            string     `json:"status"`
	ElectionStartTime *time.Time `json:"election_start_time,omitempty"`
	ElectionEndTime   *time.Time `json:"election_end_time,omitempty"`
	Positions         []Position `json:"positions"`
}

type BallotResponse struct {
	Votes      []Vote   `json:"votes"`
	Unvoted    []string `json:"unvoted_position_ids"`
	Confirming bool     `json:"confirming"`
	Submitted  bool     `json:"submitted"`
}

type EligibilityResponse struct {
	PositionID string `json:"position_id"`
	CanVote    bool   `json:"can_vote"`
}

type SubmitBallotResponse struct {
	SubmittedAt time.Time `json:"submitted_at"`
	Message     string    `json:"message"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
