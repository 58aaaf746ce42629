// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/testutil"
)

func TestElectionHandler(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	h := NewElectionHandler(db, cfg)

	admin := testutil.AuthHeader(t, cfg, testutil.CreateTestAdmin(t, db))
	voter := testutil.AuthHeader(t, cfg, testutil.CreateTestVoter(t, db, "111111111111"))

	start := time.Now().UTC().Truncate(time.Second)
	valid := models.CreateElectionRequest{Name: "General", StartDate: start, EndDate: start.Add(24 * time.Hour)}

	tests := []struct {
		name           string
		auth           map[string]string
		body           models.CreateElectionRequest
		expectedStatus int
		expectedCode   string
	}{
		{"voter forbidden", voter, valid, http.StatusForbidden, CodeAdminRequired},
		{"admin creates", admin, valid, http.StatusCreated, ""},
		{"duplicate name", admin, valid, http.StatusBadRequest, "DuplicateElection"},
		{"end before start", admin, models.CreateElectionRequest{Name: "Bad", StartDate: start, EndDate: start.Add(-time.Hour)}, http.StatusBadRequest, CodeValidation},
	}

	var createdID string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := run(cfg, h.Create, true, testutil.MakeRequest("POST", "/api/elections", tt.body, tt.auth))

			if tt.expectedCode != "" {
				testutil.AssertErrorCode(t, w, tt.expectedStatus, tt.expectedCode)
				return
			}
			testutil.AssertStatus(t, w, tt.expectedStatus)

			var e models.Election
			testutil.AssertJSON(t, w, &e)
			createdID = e.ID
		})
	}

	w := run(cfg, h.List, false, httptest.NewRequest("GET", "/api/elections", nil))
	var list []models.Election
	testutil.AssertJSON(t, w, &list)
	if len(list) != 1 || list[0].Name != "General" {
		t.Errorf("Expected one election, got %+v", list)
	}

	req := httptest.NewRequest("GET", "/api/elections/"+createdID, nil)
	req.SetPathValue("electionID", createdID)
	w = run(cfg, h.Get, false, req)
	testutil.AssertStatus(t, w, http.StatusOK)
	var got models.Election
	testutil.AssertJSON(t, w, &got)
	if !got.StartDate.Equal(start) {
		t.Errorf("Expected start %v, got %v", start, got.StartDate)
	}

	req = httptest.NewRequest("GET", "/api/elections/missing", nil)
	req.SetPathValue("electionID", "missing")
	testutil.AssertErrorCode(t, run(cfg, h.Get, false, req), http.StatusNotFound, "ElectionNotFound")
}
