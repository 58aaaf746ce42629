// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/testutil"
)

func TestCreateElection(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.FixedZone("EST", -5*3600))
	end := start.Add(12 * time.Hour)

	e, err := CreateElection(ctx, db, models.CreateElectionRequest{Name: "Spring", StartDate: start, EndDate: end})
	if err != nil {
		t.Fatalf("CreateElection failed: %v", err)
	}

	stored, err := GetElection(ctx, db, e.ID)
	if err != nil {
		t.Fatalf("GetElection failed: %v", err)
	}
	if !stored.StartDate.Equal(start) || !stored.EndDate.Equal(end) {
		t.Errorf("Window not preserved: got %v - %v", stored.StartDate, stored.EndDate)
	}

	tests := []struct {
		name    string
		req     models.CreateElectionRequest
		wantErr error
	}{
		{"duplicate name", models.CreateElectionRequest{Name: "Spring", StartDate: start, EndDate: end}, ErrDuplicateElection},
		{"missing name", models.CreateElectionRequest{StartDate: start, EndDate: end}, ErrInvalidInput},
		{"missing dates", models.CreateElectionRequest{Name: "Fall"}, ErrInvalidInput},
		{"end before start", models.CreateElectionRequest{Name: "Fall", StartDate: end, EndDate: start}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateElection(ctx, db, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	if _, err := GetElection(ctx, db, "missing"); !errors.Is(err, ErrElectionNotFound) {
		t.Errorf("Expected ErrElectionNotFound, got %v", err)
	}
}

func TestAvailableElections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	at := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	openID := testutil.CreateTestElection(t, db, "Open", at.Add(-time.Hour), at.Add(time.Hour))
	edgeID := testutil.CreateTestElection(t, db, "Starts now", at, at.Add(time.Hour))
	testutil.CreateTestElection(t, db, "Past", at.Add(-48*time.Hour), at.Add(-24*time.Hour))
	testutil.CreateTestElection(t, db, "Future", at.Add(time.Hour), at.Add(2*time.Hour))

	all, err := ListElections(ctx, db)
	if err != nil {
		t.Fatalf("ListElections failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("Expected 4 elections, got %d", len(all))
	}

	open, err := AvailableElections(ctx, db, at)
	if err != nil {
		t.Fatalf("AvailableElections failed: %v", err)
	}

	got := map[string]bool{}
	for _, e := range open {
		got[e.ID] = true
	}
	if len(open) != 2 || !got[openID] || !got[edgeID] {
		t.Errorf("Expected Open and Starts now, got %+v", open)
	}
}
