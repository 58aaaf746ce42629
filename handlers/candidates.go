// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/events"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/voting"
)

type CandidateHandler struct {
	db      *sql.DB
	cfg     cliparse.Config
	ballots *ballotBox
}

func NewCandidateHandler(db *sql.DB, cfg cliparse.Config, pub events.VotePublisher) *CandidateHandler {
	return &CandidateHandler{
		db:      db,
		cfg:     cfg,
		ballots: newBallotBox(db, pub),
	}
}

// List handles GET /api/candidates
func (h *CandidateHandler) List(w http.ResponseWriter, r *http.Request) {
	candidates, err := voting.ListCandidates(r.Context(), h.db)
	if err != nil {
		writeError(w, err, "list candidates")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, candidates)
}

// Summary handles GET /api/candidates/summary
func (h *CandidateHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summaries, err := voting.ListCandidateSummaries(r.Context(), h.db)
	if err != nil {
		writeError(w, err, "list candidates")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, summaries)
}

// Get handles GET /api/candidates/{candidateID} (admin)
func (h *CandidateHandler) Get(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r, h.db); !ok {
		return
	}

	candidate, err := voting.GetCandidateWithVotes(r.Context(), h.db, r.PathValue("candidateID"))
	if err != nil {
		writeError(w, err, "load candidate")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, candidate)
}

// Create handles POST /api/candidates (admin)
func (h *CandidateHandler) Create(w http.ResponseWriter, r *http.Request) {
	adminID, ok := requireAdmin(w, r, h.db)
	if !ok {
		return
	}

	var req models.CreateCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		invalidJSON(w)
		return
	}

	candidate, err := voting.CreateCandidate(r.Context(), h.db, req)
	if err != nil {
		writeError(w, err, "create candidate")
		return
	}

	slog.Info("candidate created", "candidate_id", candidate.ID, "admin_id", adminID)

	middleware.JSONResponse(w, http.StatusCreated, candidate)
}

// Update handles PUT /api/candidates/{candidateID} (admin)
func (h *CandidateHandler) Update(w http.ResponseWriter, r *http.Request) {
	adminID, ok := requireAdmin(w, r, h.db)
	if !ok {
		return
	}

	var req models.UpdateCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		invalidJSON(w)
		return
	}

	candidate, err := voting.UpdateCandidate(r.Context(), h.db, r.PathValue("candidateID"), req)
	if err != nil {
		writeError(w, err, "update candidate")
		return
	}

	slog.Info("candidate updated", "candidate_id", candidate.ID, "admin_id", adminID)

	middleware.JSONResponse(w, http.StatusOK, candidate)
}

// Delete handles DELETE /api/candidates/{candidateID} (admin)
func (h *CandidateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	adminID, ok := requireAdmin(w, r, h.db)
	if !ok {
		return
	}

	candidate, err := voting.DeleteCandidate(r.Context(), h.db, r.PathValue("candidateID"))
	if err != nil {
		writeError(w, err, "delete candidate")
		return
	}

	slog.Info("candidate deleted", "candidate_id", candidate.ID, "admin_id", adminID)

	middleware.JSONResponse(w, http.StatusOK, candidate)
}

// Vote handles GET|POST /api/candidates/vote/{candidateID}.
// An optional electionId query parameter scopes the vote.
func (h *CandidateHandler) Vote(w http.ResponseWriter, r *http.Request) {
	voterID, ok := sessionVoter(w, r)
	if !ok {
		return
	}

	h.ballots.cast(w, r, voterID, r.PathValue("candidateID"), r.URL.Query().Get("electionId"))
}

// VoteCount handles GET /api/candidates/vote/count[/{electionID}]
func (h *CandidateHandler) VoteCount(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("electionID")
	if electionID != "" {
		if _, err := voting.GetElection(r.Context(), h.db, electionID); err != nil {
			writeError(w, err, "load election")
			return
		}
	}

	tally, err := voting.ComputeTally(r.Context(), h.db, electionID)
	if err != nil {
		writeError(w, err, "compute tally")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, tally)
}
