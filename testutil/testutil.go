// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/db"
	"github.com/danielhkuo/quickly-vote/models"
)

// TestPassword is the raw password of every voter created here
const TestPassword = "abc123"

// TestSecret signs session tokens in tests
const TestSecret = "test-jwt-secret"

func init() {
	// Full-cost bcrypt makes handler tests crawl
	auth.BcryptCost = bcrypt.MinCost
}

// SetupTestDB opens a fresh SQLite database in a temp dir with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	url := "file:" + filepath.Join(t.TempDir(), "test.db")
	conn, err := db.Open(cliparse.DatabaseSQLite, url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         cliparse.DefaultPort,
		DatabaseType: cliparse.DatabaseSQLite,
		JWTSecret:    TestSecret,
		TokenTTL:     time.Hour,
		KafkaTopic:   cliparse.DefaultKafkaTopic,
	}
}

// CreateTestVoter inserts a voter with TestPassword and returns its ID
func CreateTestVoter(t *testing.T, conn *sql.DB, identity string) string {
	t.Helper()
	return insertVoter(t, conn, identity, models.RoleVoter)
}

// CreateTestAdmin inserts the admin and returns its ID
func CreateTestAdmin(t *testing.T, conn *sql.DB) string {
	t.Helper()
	return insertVoter(t, conn, "999999999999", models.RoleAdmin)
}

func insertVoter(t *testing.T, conn *sql.DB, identity, role string) string {
	t.Helper()

	hash, err := auth.HashPassword(TestPassword)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	id := uuid.NewString()
	_, err = conn.Exec(`
		INSERT INTO voter (id, identity_number, name, email, address, age, password_hash, role, created_at)
		VALUES ($1, $2, 'Test Voter', 'voter@example.com', '1 Test St', 30, $3, $4, $5)
	`, id, identity, hash, role, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test voter: %v", err)
	}

	return id
}

// CreateTestElection inserts an election spanning [start, end] and returns its ID
func CreateTestElection(t *testing.T, conn *sql.DB, name string, start, end time.Time) string {
	t.Helper()

	id := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO election (id, name, start_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, id, name, start.UTC(), end.UTC(), time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test election: %v", err)
	}

	return id
}

// CreateTestCandidate inserts a candidate and returns its ID.
// An empty electionID leaves the candidate in the global scope.
func CreateTestCandidate(t *testing.T, conn *sql.DB, name, party, electionID string) string {
	t.Helper()

	var election *string
	if electionID != "" {
		election = &electionID
	}

	id := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO candidate (id, name, party, election_id, vote_count, created_at)
		VALUES ($1, $2, $3, $4, 0, $5)
	`, id, name, party, election, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}

	return id
}

// AuthHeader returns an Authorization header carrying a fresh token for voterID
func AuthHeader(t *testing.T, cfg cliparse.Config, voterID string) map[string]string {
	t.Helper()

	token, _, err := auth.IssueToken(voterID, cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	return map[string]string{"Authorization": "Bearer " + token}
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

// AssertErrorCode checks status and the machine-readable error code
func AssertErrorCode(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	AssertStatus(t, w, status)

	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp.Code != code {
		t.Errorf("Expected error code %q, got %q (message %q)", code, resp.Code, resp.Message)
	}
}
