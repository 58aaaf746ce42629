// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/voting"
)

type ElectionHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewElectionHandler(db *sql.DB, cfg cliparse.Config) *ElectionHandler {
	return &ElectionHandler{db: db, cfg: cfg}
}

// Create handles POST /api/elections (admin)
func (h *ElectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	adminID, ok := requireAdmin(w, r, h.db)
	if !ok {
		return
	}

	var req models.CreateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		invalidJSON(w)
		return
	}

	election, err := voting.CreateElection(r.Context(), h.db, req)
	if err != nil {
		writeError(w, err, "create election")
		return
	}

	slog.Info("election created", "election_id", election.ID, "admin_id", adminID)

	middleware.JSONResponse(w, http.StatusCreated, election)
}

// List handles GET /api/elections
func (h *ElectionHandler) List(w http.ResponseWriter, r *http.Request) {
	elections, err := voting.ListElections(r.Context(), h.db)
	if err != nil {
		writeError(w, err, "list elections")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, elections)
}

// Get handles GET /api/elections/{electionID}
func (h *ElectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	election, err := voting.GetElection(r.Context(), h.db, r.PathValue("electionID"))
	if err != nil {
		writeError(w, err, "load election")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, election)
}
