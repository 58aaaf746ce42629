// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/events"
	"github.com/danielhkuo/quickly-vote/handlers"
	"github.com/danielhkuo/quickly-vote/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, pub events.VotePublisher) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	userHandler := handlers.NewUserHandler(db, cfg, pub)
	candidateHandler := handlers.NewCandidateHandler(db, cfg, pub)
	electionHandler := handlers.NewElectionHandler(db, cfg)

	public := middleware.WithLogging
	session := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.WithSession(cfg.JWTSecret, next))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus scrape endpoint
	mux.Handle("GET /metrics", promhttp.Handler())

	// Accounts
	mux.HandleFunc("POST /api/users/signup", public(userHandler.Signup))
	mux.HandleFunc("POST /api/users/login", public(userHandler.Login))
	mux.HandleFunc("GET /api/users/me", session(userHandler.Me))
	mux.HandleFunc("GET /api/users/profile", session(userHandler.Profile))
	mux.HandleFunc("PUT /api/users/profile/password", session(userHandler.ChangePassword))

	// Voting
	mux.HandleFunc("POST /api/users/vote", session(userHandler.Vote))
	mux.HandleFunc("GET /api/users/my-votes", session(userHandler.MyVotes))
	mux.HandleFunc("GET /api/users/available-elections", session(userHandler.AvailableElections))
	mux.HandleFunc("GET /api/candidates/vote/{candidateID}", session(candidateHandler.Vote))
	mux.HandleFunc("POST /api/candidates/vote/{candidateID}", session(candidateHandler.Vote))

	// Tallies (public)
	mux.HandleFunc("GET /api/candidates/vote/count", public(candidateHandler.VoteCount))
	mux.HandleFunc("GET /api/candidates/vote/count/{electionID}", public(candidateHandler.VoteCount))

	// Candidates: listing is public, management is admin only
	mux.HandleFunc("GET /api/candidates", public(candidateHandler.List))
	mux.HandleFunc("GET /api/candidates/summary", public(candidateHandler.Summary))
	mux.HandleFunc("POST /api/candidates", session(candidateHandler.Create))
	mux.HandleFunc("GET /api/candidates/{candidateID}", session(candidateHandler.Get))
	mux.HandleFunc("PUT /api/candidates/{candidateID}", session(candidateHandler.Update))
	mux.HandleFunc("DELETE /api/candidates/{candidateID}", session(candidateHandler.Delete))

	// Elections
	mux.HandleFunc("POST /api/elections", session(electionHandler.Create))
	mux.HandleFunc("GET /api/elections", public(electionHandler.List))
	mux.HandleFunc("GET /api/elections/{electionID}", public(electionHandler.Get))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-vote API v1"))
	})

	return mux
}
