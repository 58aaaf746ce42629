// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/testutil"
)

func newTestCandidateHandler(t *testing.T) (*CandidateHandler, cliparse.Config) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	return NewCandidateHandler(db, cfg, &testutil.MemoryPublisher{}), cfg
}

func TestCandidateAdminGate(t *testing.T) {
	h, cfg := newTestCandidateHandler(t)
	voterID := testutil.CreateTestVoter(t, h.db, "111111111111")
	candidateID := testutil.CreateTestCandidate(t, h.db, "Alice", "Green Party", "")
	voter := testutil.AuthHeader(t, cfg, voterID)

	tests := []struct {
		name    string
		handler http.HandlerFunc
		method  string
		body    interface{}
	}{
		{"create", h.Create, "POST", models.CreateCandidateRequest{Name: "Bob", Party: "Blue"}},
		{"get", h.Get, "GET", nil},
		{"update", h.Update, "PUT", models.UpdateCandidateRequest{}},
		{"delete", h.Delete, "DELETE", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest(tt.method, "/api/candidates/"+candidateID, tt.body, voter)
			req.SetPathValue("candidateID", candidateID)

			w := run(cfg, tt.handler, true, req)
			testutil.AssertErrorCode(t, w, http.StatusForbidden, CodeAdminRequired)
		})
	}

	var n int
	if err := h.db.QueryRow("SELECT COUNT(*) FROM candidate").Scan(&n); err != nil {
		t.Fatalf("Failed to count candidates: %v", err)
	}
	if n != 1 {
		t.Errorf("Non-admin requests must not change candidates, found %d", n)
	}
}

func TestCandidateCRUD(t *testing.T) {
	h, cfg := newTestCandidateHandler(t)
	admin := testutil.AuthHeader(t, cfg, testutil.CreateTestAdmin(t, h.db))

	// Create
	age := 45
	w := run(cfg, h.Create, true, testutil.MakeRequest("POST", "/api/candidates",
		models.CreateCandidateRequest{Name: "Alice", Party: "Green Party", Age: &age}, admin))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var created models.Candidate
	testutil.AssertJSON(t, w, &created)
	if created.ID == "" || created.VoteCount != 0 {
		t.Fatalf("Unexpected created candidate: %+v", created)
	}

	w = run(cfg, h.Create, true, testutil.MakeRequest("POST", "/api/candidates",
		models.CreateCandidateRequest{Name: "NoParty"}, admin))
	testutil.AssertErrorCode(t, w, http.StatusBadRequest, CodeValidation)

	// Update
	party := "Forest Party"
	req := testutil.MakeRequest("PUT", "/api/candidates/"+created.ID, models.UpdateCandidateRequest{Party: &party}, admin)
	req.SetPathValue("candidateID", created.ID)
	w = run(cfg, h.Update, true, req)
	testutil.AssertStatus(t, w, http.StatusOK)
	var updated models.Candidate
	testutil.AssertJSON(t, w, &updated)
	if updated.Party != "Forest Party" || updated.Name != "Alice" {
		t.Errorf("Unexpected updated candidate: %+v", updated)
	}

	// Get with votes
	voterID := testutil.CreateTestVoter(t, h.db, "111111111111")
	req = testutil.MakeRequest("POST", "/api/candidates/vote/"+created.ID, nil, testutil.AuthHeader(t, cfg, voterID))
	req.SetPathValue("candidateID", created.ID)
	testutil.AssertStatus(t, run(cfg, h.Vote, true, req), http.StatusOK)

	req = testutil.MakeRequest("GET", "/api/candidates/"+created.ID, nil, admin)
	req.SetPathValue("candidateID", created.ID)
	w = run(cfg, h.Get, true, req)
	testutil.AssertStatus(t, w, http.StatusOK)
	var detail models.Candidate
	testutil.AssertJSON(t, w, &detail)
	if detail.VoteCount != 1 || len(detail.Votes) != 1 || detail.Votes[0].VoterID != voterID {
		t.Errorf("Expected one vote by %s, got %+v", voterID, detail)
	}

	// List and summary are public
	w = run(cfg, h.List, false, httptest.NewRequest("GET", "/api/candidates", nil))
	var list []models.Candidate
	testutil.AssertJSON(t, w, &list)
	if len(list) != 1 || list[0].VoteCount != 1 {
		t.Errorf("Unexpected list: %+v", list)
	}

	w = run(cfg, h.Summary, false, httptest.NewRequest("GET", "/api/candidates/summary", nil))
	var summary []models.CandidateSummary
	testutil.AssertJSON(t, w, &summary)
	if len(summary) != 1 || summary[0].Party != "Forest Party" {
		t.Errorf("Unexpected summary: %+v", summary)
	}

	// Delete, then 404
	req = testutil.MakeRequest("DELETE", "/api/candidates/"+created.ID, nil, admin)
	req.SetPathValue("candidateID", created.ID)
	testutil.AssertStatus(t, run(cfg, h.Delete, true, req), http.StatusOK)

	req = testutil.MakeRequest("DELETE", "/api/candidates/"+created.ID, nil, admin)
	req.SetPathValue("candidateID", created.ID)
	testutil.AssertErrorCode(t, run(cfg, h.Delete, true, req), http.StatusNotFound, "CandidateNotFound")
}

func TestVoteCount(t *testing.T) {
	h, cfg := newTestCandidateHandler(t)

	now := time.Now()
	electionID := testutil.CreateTestElection(t, h.db, "General", now.Add(-time.Hour), now.Add(time.Hour))
	alice := testutil.CreateTestCandidate(t, h.db, "Alice", "Green Party", "")
	bob := testutil.CreateTestCandidate(t, h.db, "Bob", "Blue Party", "")
	carol := testutil.CreateTestCandidate(t, h.db, "Carol", "Red Party", electionID)

	for i, candidateID := range []string{bob, alice, bob, carol} {
		voterID := testutil.CreateTestVoter(t, h.db, "30000000000"+string(rune('0'+i)))
		req := testutil.MakeRequest("POST", "/api/candidates/vote/"+candidateID, nil, testutil.AuthHeader(t, cfg, voterID))
		req.SetPathValue("candidateID", candidateID)
		testutil.AssertStatus(t, run(cfg, h.Vote, true, req), http.StatusOK)
	}

	w := run(cfg, h.VoteCount, false, httptest.NewRequest("GET", "/api/candidates/vote/count", nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	var tally []models.TallyEntry
	testutil.AssertJSON(t, w, &tally)

	want := []struct {
		name  string
		count int
	}{{"Bob", 2}, {"Alice", 1}, {"Carol", 1}}
	if len(tally) != len(want) {
		t.Fatalf("Expected %d entries, got %+v", len(want), tally)
	}
	for i, e := range want {
		if tally[i].Name != e.name || tally[i].Count != e.count {
			t.Errorf("position %d: expected %s=%d, got %s=%d", i, e.name, e.count, tally[i].Name, tally[i].Count)
		}
	}

	req := httptest.NewRequest("GET", "/api/candidates/vote/count/"+electionID, nil)
	req.SetPathValue("electionID", electionID)
	w = run(cfg, h.VoteCount, false, req)
	testutil.AssertJSON(t, w, &tally)
	if len(tally) != 1 || tally[0].Name != "Carol" {
		t.Errorf("Expected only Carol in election tally, got %+v", tally)
	}

	req = httptest.NewRequest("GET", "/api/candidates/vote/count/missing", nil)
	req.SetPathValue("electionID", "missing")
	testutil.AssertErrorCode(t, run(cfg, h.VoteCount, false, req), http.StatusNotFound, "ElectionNotFound")
}
