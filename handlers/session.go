// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/quickly-vote/events"
	"github.com/danielhkuo/quickly-vote/metrics"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/voting"
)

// publishTimeout bounds how long a committed vote waits on the event stream
const publishTimeout = 5 * time.Second

// sessionVoter returns the voter ID set by middleware.WithSession
func sessionVoter(w http.ResponseWriter, r *http.Request) (string, bool) {
	voterID, ok := middleware.SessionVoterID(r)
	if !ok {
		middleware.ErrorCodeResponse(w, http.StatusUnauthorized, middleware.CodeMissingToken, "Authorization bearer token required")
		return "", false
	}
	return voterID, true
}

// requireAdmin resolves the session voter and checks the admin role
func requireAdmin(w http.ResponseWriter, r *http.Request, db *sql.DB) (string, bool) {
	voterID, ok := sessionVoter(w, r)
	if !ok {
		return "", false
	}

	isAdmin, err := voting.IsAdmin(r.Context(), db, voterID)
	if err != nil {
		writeError(w, err, "check role")
		return "", false
	}
	if !isAdmin {
		middleware.ErrorCodeResponse(w, http.StatusForbidden, CodeAdminRequired, "Admin role required")
		return "", false
	}

	return voterID, true
}

// ballotBox casts votes for both vote routes
type ballotBox struct {
	db      *sql.DB
	pub     events.VotePublisher
	metrics *metrics.APIMetrics
}

func newBallotBox(db *sql.DB, pub events.VotePublisher) *ballotBox {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	return &ballotBox{db: db, pub: pub, metrics: metrics.Default}
}

func (b *ballotBox) cast(w http.ResponseWriter, r *http.Request, voterID, candidateID, electionID string) {
	// An empty candidateID falls through to CastVote so the voter and role
	// checks still run first; it ends as CandidateNotFound.
	vote, err := voting.CastVote(r.Context(), b.db, voterID, candidateID, electionID)
	if err != nil {
		_, code := classify(err)
		b.metrics.VoteRejected(code)
		writeError(w, err, "cast vote")
		return
	}

	b.metrics.VoteCast(vote.ElectionID)
	slog.Info("vote recorded",
		"vote_id", vote.ID,
		"voter_id", voterID,
		"candidate_id", candidateID,
		"election_id", vote.ElectionID,
	)

	// The vote is committed; a failed publish is only logged
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), publishTimeout)
	defer cancel()
	if err := b.pub.PublishVote(ctx, events.NewVoteEvent(vote)); err != nil {
		slog.Error("failed to publish vote event", "vote_id", vote.ID, "error", err)
	}

	middleware.JSONResponse(w, http.StatusOK, models.CastVoteResponse{
		Message: "Vote cast successfully",
		Vote:    vote,
	})
}
