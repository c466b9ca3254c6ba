// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

Entities owned by the election engine:

  - Position: electable role, owns its Candidates
  - Candidate: person running for a position
  - Voter: registered participant, keyed by email
  - Vote: one voter's choice for one position
  - ElectionState: voting window and voter registry
  - Snapshot: persisted shape of positions, state, and admin credentials

All relations are by identifier, never by pointer, so every type
serializes losslessly to JSON.

# Result Types

  - ResultRow: candidate, count, percentage
  - PositionResult: ranked rows and winner for one position
  - ElectionResults: every position plus turnout

# Request Types

  - VoterLoginRequest: email, name, semester, student_id
  - AdminLoginRequest: username, password
  - PositionRequest: title, description
  - CandidateRequest: name, email, year, platform, experience, photo_url, social_links
  - CastVoteRequest: candidate_id

# Response Types

  - VoterLoginResponse: voter_token, voter
  - AdminLoginResponse: admin_key
  - ElectionResponse: public election view
  - BallotResponse: a voter's live votes and session state
  - SubmitBallotResponse: submitted_at, message
  - ErrorResponse: error, message

# Constants

Status values:

	StatusClosed = "closed"
	StatusOpen   = "open"

Social link platforms:

	SocialLinkedIn = "linkedin"
	SocialTwitter  = "twitter"
	SocialGitHub   = "github"
*/
package models
