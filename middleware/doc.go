// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /api/candidates", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status,
duration_ms), and records latency in metrics.Default labelled by the
matched route pattern.

# Sessions

Routes that need a signed-in voter are wrapped with the session guard:

	mux.HandleFunc("GET /api/users/me",
		middleware.WithLogging(middleware.WithSession(cfg.JWTSecret, h.Me)))

A missing or malformed Authorization header yields 401 MissingToken; a
token that fails verification yields 401 InvalidOrExpiredToken. Handlers
read the voter with:

	voterID, ok := middleware.SessionVoterID(r)

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers Content-Type
and Authorization.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorCodeResponse(w, http.StatusForbidden, "AdminCannotVote", "message")

	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorCodeResponse(w, http.StatusBadRequest, "ValidationError", "Invalid JSON")
		return
	}

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Honors X-Forwarded-For and X-Real-IP before RemoteAddr.
*/
package middleware
