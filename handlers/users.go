// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/events"
	"github.com/danielhkuo/quickly-vote/metrics"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/voting"
)

type UserHandler struct {
	db      *sql.DB
	cfg     cliparse.Config
	metrics *metrics.APIMetrics
	ballots *ballotBox
}

func NewUserHandler(db *sql.DB, cfg cliparse.Config, pub events.VotePublisher) *UserHandler {
	return &UserHandler{
		db:      db,
		cfg:     cfg,
		metrics: metrics.Default,
		ballots: newBallotBox(db, pub),
	}
}

// Signup handles POST /api/users/signup
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		invalidJSON(w)
		return
	}

	voter, err := voting.Register(r.Context(), h.db, req)
	if err != nil {
		writeError(w, err, "register voter")
		return
	}

	token, expiresAt, err := auth.IssueToken(voter.ID, h.cfg.JWTSecret, h.cfg.TokenTTL)
	if err != nil {
		writeError(w, err, "issue token")
		return
	}

	slog.Info("voter registered", "voter_id", voter.ID, "role", voter.Role)

	middleware.JSONResponse(w, http.StatusCreated, models.SignupResponse{
		User:      voter,
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// Login handles POST /api/users/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		invalidJSON(w)
		return
	}

	if req.IdentityNumber == "" || req.Password == "" {
		middleware.ErrorCodeResponse(w, http.StatusBadRequest, CodeValidation, "identityNumber and password are required")
		return
	}

	voter, err := voting.Authenticate(r.Context(), h.db, req.IdentityNumber, req.Password)
	if err != nil {
		h.metrics.Login(false)
		writeError(w, err, "authenticate")
		return
	}
	h.metrics.Login(true)

	token, expiresAt, err := auth.IssueToken(voter.ID, h.cfg.JWTSecret, h.cfg.TokenTTL)
	if err != nil {
		writeError(w, err, "issue token")
		return
	}

	slog.Info("voter logged in", "voter_id", voter.ID)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// Me handles GET /api/users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	voterID, ok := sessionVoter(w, r)
	if !ok {
		return
	}

	voter, err := voting.GetVoter(r.Context(), h.db, voterID)
	if err != nil {
		writeError(w, err, "load voter")
		return
	}

	scopes, err := voting.VotedScopes(r.Context(), h.db, voterID)
	if err != nil {
		writeError(w, err, "load voted elections")
		return
	}

	votedCandidateID, err := voting.VotedCandidateID(r.Context(), h.db, voterID)
	if err != nil {
		writeError(w, err, "load voted candidate")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MeResponse{
		Voter:            voter,
		IsVoted:          len(scopes) > 0,
		VotedElections:   scopes,
		VotedCandidateID: votedCandidateID,
	})
}

// Profile handles GET /api/users/profile
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	voterID, ok := sessionVoter(w, r)
	if !ok {
		return
	}

	voter, err := voting.GetVoter(r.Context(), h.db, voterID)
	if err != nil {
		writeError(w, err, "load voter")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ProfileResponse{User: voter})
}

// ChangePassword handles PUT /api/users/profile/password
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	voterID, ok := sessionVoter(w, r)
	if !ok {
		return
	}

	var req models.ChangePasswordRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		invalidJSON(w)
		return
	}

	if err := voting.ChangePassword(r.Context(), h.db, voterID, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(w, err, "change password")
		return
	}

	slog.Info("password changed", "voter_id", voterID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Password updated successfully"})
}

// Vote handles POST /api/users/vote
func (h *UserHandler) Vote(w http.ResponseWriter, r *http.Request) {
	voterID, ok := sessionVoter(w, r)
	if !ok {
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		invalidJSON(w)
		return
	}

	h.ballots.cast(w, r, voterID, req.CandidateID, req.ElectionID)
}

// MyVotes handles GET /api/users/my-votes
func (h *UserHandler) MyVotes(w http.ResponseWriter, r *http.Request) {
	voterID, ok := sessionVoter(w, r)
	if !ok {
		return
	}

	votes, err := voting.VoterVotes(r.Context(), h.db, voterID)
	if err != nil {
		writeError(w, err, "load votes")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MyVotesResponse{Votes: votes})
}

// AvailableElections handles GET /api/users/available-elections
func (h *UserHandler) AvailableElections(w http.ResponseWriter, r *http.Request) {
	if _, ok := sessionVoter(w, r); !ok {
		return
	}

	elections, err := voting.AvailableElections(r.Context(), h.db, time.Now())
	if err != nil {
		writeError(w, err, "load elections")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AvailableElectionsResponse{Elections: elections})
}
