package election_test

import (
	"errors"
	"testing"

	"github.com/thisistanvirjoy/university-club-election/election"
	"github.com/thisistanvirjoy/university-club-election/models"
	"github.com/thisistanvirjoy/university-club-election/testutil"
)

func TestCanVote_UntilVoteCast(t *testing.T) {
	svc := testutil.NewTestService(t)
	p := testutil.AddTestPosition(t, svc, "President", "Alice", "Bob")
	testutil.RegisterTestVoter(t, svc, "v1@uni.edu")

	if !svc.CanVote(p.ID, "v1@uni.edu") {
		t.Fatal("Expected registered voter to be eligible before voting")
	}

	svc.Start()
	testutil.CastTestVote(t, svc, "v1@uni.edu", p.ID, p.Candidates[0].ID)

	if svc.CanVote(p.ID, "v1@uni.edu") {
		t.Error("Expected CanVote to be false once a vote exists")
	}
}

func TestCanVote_FailsClosed(t *testing.T) {
	svc := testutil.NewTestService(t)
	p := testutil.AddTestPosition(t, svc, "President", "Alice")
	testutil.RegisterTestVoter(t, svc, "v1@uni.edu")

	tests := []struct {
		name       string
		positionID string
		email      string
	}{
		{"unknown position", "missing", "v1@uni.edu"},
		{"unregistered voter", p.ID, "stranger@uni.edu"},
		{"empty email", p.ID, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if svc.CanVote(tt.positionID, tt.email) {
				t.Error("Expected CanVote to be false")
			}
		})
	}
}

func TestSelfVoteProhibited(t *testing.T) {
	svc := testutil.NewTestService(t)
	president := testutil.AddTestPosition(t, svc, "President", "Alice", "Bob")
	treasurer := testutil.AddTestPosition(t, svc, "Treasurer", "Cara")
	alice := testutil.RegisterTestVoter(t, svc, testutil.CandidateEmail("Alice"))

	// Holds while closed and while open
	if svc.CanVote(president.ID, alice.Email) {
		t.Error("Expected candidate to be ineligible for their own position while closed")
	}

	svc.Start()
	if svc.CanVote(president.ID, alice.Email) {
		t.Error("Expected candidate to be ineligible for their own position while open")
	}

	// Even for a rival candidate
	err := svc.CastVote(models.Vote{
		PositionID:  president.ID,
		CandidateID: president.Candidates[1].ID,
		VoterEmail:  alice.Email,
	})
	if !errors.Is(err, election.ErrIneligibleVoter) {
		t.Errorf("Expected ErrIneligibleVoter, got %v", err)
	}

	// Other positions are fine
	if !svc.CanVote(treasurer.ID, alice.Email) {
		t.Error("Expected candidate to be eligible for other positions")
	}
	testutil.CastTestVote(t, svc, alice.Email, treasurer.ID, treasurer.Candidates[0].ID)
}

func TestCastVote_Errors(t *testing.T) {
	svc := testutil.NewTestService(t)
	president := testutil.AddTestPosition(t, svc, "President", "Alice")
	secretary := testutil.AddTestPosition(t, svc, "Secretary", "Dan")
	testutil.RegisterTestVoter(t, svc, "v1@uni.edu")

	closedErr := svc.CastVote(models.Vote{
		PositionID:  president.ID,
		CandidateID: president.Candidates[0].ID,
		VoterEmail:  "v1@uni.edu",
	})
	if !errors.Is(closedErr, election.ErrVotingClosed) {
		t.Fatalf("Expected ErrVotingClosed before start, got %v", closedErr)
	}

	svc.Start()

	tests := []struct {
		name    string
		vote    models.Vote
		wantErr error
	}{
		{
			name:    "unknown position",
			vote:    models.Vote{PositionID: "missing", CandidateID: president.Candidates[0].ID, VoterEmail: "v1@uni.edu"},
			wantErr: election.ErrNotFound,
		},
		{
			name:    "candidate from another position",
			vote:    models.Vote{PositionID: president.ID, CandidateID: secretary.Candidates[0].ID, VoterEmail: "v1@uni.edu"},
			wantErr: election.ErrInvalidCandidate,
		},
		{
			name:    "unknown candidate",
			vote:    models.Vote{PositionID: president.ID, CandidateID: "nobody", VoterEmail: "v1@uni.edu"},
			wantErr: election.ErrInvalidCandidate,
		},
		{
			name:    "unregistered voter",
			vote:    models.Vote{PositionID: president.ID, CandidateID: president.Candidates[0].ID, VoterEmail: "stranger@uni.edu"},
			wantErr: election.ErrIneligibleVoter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.CastVote(tt.vote)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	if n := len(svc.LedgerSnapshot().Votes); n != 0 {
		t.Errorf("Expected rejected votes to leave the ledger empty, got %d votes", n)
	}
}

func TestCastVote_OverwritesEarlierChoice(t *testing.T) {
	svc := testutil.NewTestService(t)
	p := testutil.AddTestPosition(t, svc, "President", "Alice", "Bob")
	testutil.RegisterTestVoter(t, svc, "v1@uni.edu")
	svc.Start()

	alice, bob := p.Candidates[0].ID, p.Candidates[1].ID
	testutil.CastTestVote(t, svc, "v1@uni.edu", p.ID, alice)
	testutil.CastTestVote(t, svc, "v1@uni.edu", p.ID, bob)

	votes := svc.LedgerSnapshot().Votes
	if len(votes) != 1 {
		t.Fatalf("Expected exactly one live vote, got %d", len(votes))
	}
	if votes[0].CandidateID != bob {
		t.Errorf("Expected the later choice to win, got %s", votes[0].CandidateID)
	}

	rows, err := svc.Tally(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	for _, row := range rows {
		want := 0
		if row.CandidateID == bob {
			want = 1
		}
		if row.Count != want {
			t.Errorf("Expected %s to have %d votes, got %d", row.Name, want, row.Count)
		}
	}
}

func TestCastVote_SameChoiceTwice(t *testing.T) {
	svc := testutil.NewTestService(t)
	p := testutil.AddTestPosition(t, svc, "President", "Alice")
	testutil.RegisterTestVoter(t, svc, "v1@uni.edu")
	svc.Start()

	testutil.CastTestVote(t, svc, "v1@uni.edu", p.ID, p.Candidates[0].ID)
	testutil.CastTestVote(t, svc, "v1@uni.edu", p.ID, p.Candidates[0].ID)

	rows, _ := svc.Tally(p.ID)
	if rows[0].Count != 1 {
		t.Errorf("Expected repeated vote to count once, got %d", rows[0].Count)
	}
}

func TestCastVote_FillsVoterSnapshot(t *testing.T) {
	svc := testutil.NewTestService(t)
	p := testutil.AddTestPosition(t, svc, "President", "Alice")
	voter := testutil.RegisterTestVoter(t, svc, "v1@uni.edu")
	svc.Start()

	err := svc.CastVote(models.Vote{
		PositionID:  p.ID,
		CandidateID: p.Candidates[0].ID,
		VoterEmail:  voter.Email,
		VoterName:   "Someone Else",
	})
	if err != nil {
		t.Fatal(err)
	}

	vote := svc.LedgerSnapshot().Votes[0]
	if vote.VoterName != voter.Name || vote.VoterStudentID != voter.StudentID || vote.VoterSemester != voter.Semester {
		t.Errorf("Expected voter details from the registry, got %+v", vote)
	}
	if vote.Timestamp.IsZero() {
		t.Error("Expected vote timestamp to be set")
	}
}
