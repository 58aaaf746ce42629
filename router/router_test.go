// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/testutil"
)

func newTestRouter(t *testing.T) (*http.ServeMux, *testutil.MemoryPublisher) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	pub := &testutil.MemoryPublisher{}
	return NewRouter(db, testutil.GetTestConfig(), pub), pub
}

func serve(mux *http.ServeMux, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t)

	w := serve(mux, httptest.NewRequest("GET", "/health", nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t)

	w := serve(mux, httptest.NewRequest("GET", "/", nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Body.String() != "quickly-vote API v1" {
		t.Errorf("Unexpected root body '%s'", w.Body.String())
	}

	// Root only matches exactly
	w = serve(mux, httptest.NewRequest("GET", "/nope", nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestMetricsEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t)

	// Generate at least one observed request
	serve(mux, httptest.NewRequest("GET", "/api/candidates", nil))

	w := serve(mux, httptest.NewRequest("GET", "/metrics", nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), "quickly_vote_http_request_duration_seconds") {
		t.Error("Expected request histogram in metrics output")
	}
}

func TestRouteExistence(t *testing.T) {
	mux, _ := newTestRouter(t)

	// 400, 401, 404 are valid handler answers; 405 means no route
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/metrics"},
		{"POST", "/api/users/signup"},
		{"POST", "/api/users/login"},
		{"GET", "/api/users/me"},
		{"GET", "/api/users/profile"},
		{"PUT", "/api/users/profile/password"},
		{"POST", "/api/users/vote"},
		{"GET", "/api/users/my-votes"},
		{"GET", "/api/users/available-elections"},
		{"GET", "/api/candidates"},
		{"GET", "/api/candidates/summary"},
		{"POST", "/api/candidates"},
		{"GET", "/api/candidates/c-1"},
		{"PUT", "/api/candidates/c-1"},
		{"DELETE", "/api/candidates/c-1"},
		{"GET", "/api/candidates/vote/c-1"},
		{"POST", "/api/candidates/vote/c-1"},
		{"GET", "/api/candidates/vote/count"},
		{"GET", "/api/candidates/vote/count/e-1"},
		{"POST", "/api/elections"},
		{"GET", "/api/elections"},
		{"GET", "/api/elections/e-1"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := serve(mux, httptest.NewRequest(tc.method, tc.path, nil))
			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux, _ := newTestRouter(t)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"GET", "/api/users/signup"},
		{"DELETE", "/api/users/me"},
		{"PUT", "/api/elections/e-1"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := serve(mux, httptest.NewRequest(tc.method, tc.path, nil))
			testutil.AssertStatus(t, w, http.StatusMethodNotAllowed)
		})
	}
}

func TestSessionRequired(t *testing.T) {
	mux, _ := newTestRouter(t)

	w := serve(mux, httptest.NewRequest("GET", "/api/users/me", nil))
	testutil.AssertErrorCode(t, w, http.StatusUnauthorized, "MissingToken")

	req := testutil.MakeRequest("GET", "/api/users/me", nil, map[string]string{"Authorization": "Bearer forged"})
	w = serve(mux, req)
	testutil.AssertErrorCode(t, w, http.StatusUnauthorized, "InvalidOrExpiredToken")
}

// TestVoterScenario walks a voter from signup to a rejected second vote
func TestVoterScenario(t *testing.T) {
	mux, pub := newTestRouter(t)

	// Admin registers and creates Alice
	w := serve(mux, testutil.MakeRequest("POST", "/api/users/signup", models.SignupRequest{
		IdentityNumber: "999999999999", Name: "Admin", Password: "root-pass", Age: 40, Role: models.RoleAdmin,
	}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var adminSignup models.SignupResponse
	testutil.AssertJSON(t, w, &adminSignup)
	adminAuth := map[string]string{"Authorization": "Bearer " + adminSignup.Token}

	w = serve(mux, testutil.MakeRequest("POST", "/api/candidates", models.CreateCandidateRequest{
		Name: "Alice", Party: "Green Party",
	}, adminAuth))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var alice models.Candidate
	testutil.AssertJSON(t, w, &alice)

	// Voter signs up and logs in
	w = serve(mux, testutil.MakeRequest("POST", "/api/users/signup", models.SignupRequest{
		IdentityNumber: "111111111111", Name: "Voter", Password: "abc123", Age: 30,
	}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	w = serve(mux, testutil.MakeRequest("POST", "/api/users/login", models.LoginRequest{
		IdentityNumber: "111111111111", Password: "abc123",
	}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	var login models.LoginResponse
	testutil.AssertJSON(t, w, &login)
	if login.Token == "" {
		t.Fatal("Expected a token from login")
	}
	voterAuth := map[string]string{"Authorization": "Bearer " + login.Token}

	w = serve(mux, testutil.MakeRequest("GET", "/api/users/me", nil, voterAuth))
	testutil.AssertStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), `"votedCandidateId":null`) {
		t.Errorf("Expected votedCandidateId null before voting, got %s", w.Body.String())
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Error("Password hash must never be serialized")
	}

	// Vote for Alice
	w = serve(mux, testutil.MakeRequest("POST", "/api/users/vote", models.CastVoteRequest{CandidateID: alice.ID}, voterAuth))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = serve(mux, testutil.MakeRequest("GET", "/api/users/me", nil, voterAuth))
	var me models.MeResponse
	testutil.AssertJSON(t, w, &me)
	if me.VotedCandidateID == nil || *me.VotedCandidateID != alice.ID {
		t.Errorf("Expected votedCandidateId %s, got %v", alice.ID, me.VotedCandidateID)
	}
	if !me.IsVoted {
		t.Error("Expected isVoted true")
	}

	// Repeat vote, either route
	w = serve(mux, testutil.MakeRequest("POST", "/api/users/vote", models.CastVoteRequest{CandidateID: alice.ID}, voterAuth))
	testutil.AssertErrorCode(t, w, http.StatusBadRequest, "AlreadyVoted")
	w = serve(mux, testutil.MakeRequest("GET", "/api/candidates/vote/"+alice.ID, nil, voterAuth))
	testutil.AssertErrorCode(t, w, http.StatusBadRequest, "AlreadyVoted")

	// Tally
	w = serve(mux, httptest.NewRequest("GET", "/api/candidates/vote/count", nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	var tally []models.TallyEntry
	testutil.AssertJSON(t, w, &tally)
	if len(tally) != 1 || tally[0].Party != "Green Party" || tally[0].Count != 1 {
		t.Errorf("Expected [{Green Party 1}], got %+v", tally)
	}

	// Exactly one event for the one committed vote
	published := pub.Events()
	if len(published) != 1 || published[0].CandidateID != alice.ID {
		t.Errorf("Expected one vote event for Alice, got %+v", published)
	}
}

func TestAdminCannotVoteScenario(t *testing.T) {
	mux, pub := newTestRouter(t)

	w := serve(mux, testutil.MakeRequest("POST", "/api/users/signup", models.SignupRequest{
		IdentityNumber: "999999999999", Name: "Admin", Password: "root-pass", Age: 40, Role: models.RoleAdmin,
	}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var admin models.SignupResponse
	testutil.AssertJSON(t, w, &admin)
	adminAuth := map[string]string{"Authorization": "Bearer " + admin.Token}

	w = serve(mux, testutil.MakeRequest("POST", "/api/candidates", models.CreateCandidateRequest{
		Name: "Alice", Party: "Green Party",
	}, adminAuth))
	var alice models.Candidate
	testutil.AssertJSON(t, w, &alice)

	w = serve(mux, testutil.MakeRequest("POST", "/api/candidates/vote/"+alice.ID, nil, adminAuth))
	testutil.AssertErrorCode(t, w, http.StatusForbidden, "AdminCannotVote")

	if n := len(pub.Events()); n != 0 {
		t.Errorf("Expected no events for a rejected vote, got %d", n)
	}
}

func TestInvalidIdentityScenario(t *testing.T) {
	mux, _ := newTestRouter(t)

	w := serve(mux, testutil.MakeRequest("POST", "/api/users/signup", models.SignupRequest{
		IdentityNumber: "12345", Name: "Short", Password: "abc123", Age: 30,
	}, nil))
	testutil.AssertErrorCode(t, w, http.StatusBadRequest, "InvalidIdentityFormat")
}
