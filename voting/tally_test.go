// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/testutil"
)

func TestComputeTally(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	now := time.Now()
	electionID := testutil.CreateTestElection(t, db, "General", now.Add(-time.Hour), now.Add(time.Hour))

	alice := testutil.CreateTestCandidate(t, db, "Alice", "Green Party", "")
	bob := testutil.CreateTestCandidate(t, db, "Bob", "Blue Party", "")
	carol := testutil.CreateTestCandidate(t, db, "Carol", "Red Party", electionID)

	votes := []string{bob, alice, bob, carol}
	for i, candidateID := range votes {
		voterID := testutil.CreateTestVoter(t, db, fmt.Sprintf("2000000000%02d", i))
		if _, err := CastVote(ctx, db, voterID, candidateID, ""); err != nil {
			t.Fatalf("vote %d failed: %v", i, err)
		}
	}

	tally, err := ComputeTally(ctx, db, "")
	if err != nil {
		t.Fatalf("ComputeTally failed: %v", err)
	}
	if len(tally) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(tally))
	}
	if tally[0].Name != "Bob" || tally[0].Count != 2 {
		t.Errorf("Expected Bob first with 2, got %+v", tally[0])
	}
	// Alice and Carol tie on 1; Alice was created first
	if tally[1].Name != "Alice" || tally[2].Name != "Carol" {
		t.Errorf("Expected Alice then Carol, got %s then %s", tally[1].Name, tally[2].Name)
	}

	scoped, err := ComputeTally(ctx, db, electionID)
	if err != nil {
		t.Fatalf("ComputeTally failed: %v", err)
	}
	if len(scoped) != 1 || scoped[0].CandidateID != carol || scoped[0].Count != 1 {
		t.Errorf("Expected only Carol with 1 vote, got %+v", scoped)
	}
}

func TestComputeTally_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)

	tally, err := ComputeTally(context.Background(), db, "")
	if err != nil {
		t.Fatalf("ComputeTally failed: %v", err)
	}
	if tally == nil || len(tally) != 0 {
		t.Errorf("Expected empty non-nil tally, got %v", tally)
	}
}

func TestSortTally(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	entries := []models.TallyEntry{
		{CandidateID: "d", Count: 1, CreatedAt: base.Add(2 * time.Minute)},
		{CandidateID: "c", Count: 1, CreatedAt: base},
		{CandidateID: "b", Count: 5, CreatedAt: base.Add(time.Hour)},
		{CandidateID: "a", Count: 1, CreatedAt: base},
	}

	SortTally(entries)

	want := []string{"b", "a", "c", "d"}
	for i, id := range want {
		if entries[i].CandidateID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, entries[i].CandidateID)
		}
	}
}
