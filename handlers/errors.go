// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/voting"
)

// Error codes not backed by a voting sentinel
const (
	CodeValidation    = "ValidationError"
	CodeAdminRequired = "AdminRequired"
	CodeInternal      = "InternalError"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{voting.ErrInvalidIdentityFormat, http.StatusBadRequest, "InvalidIdentityFormat"},
	{voting.ErrInvalidInput, http.StatusBadRequest, CodeValidation},
	{voting.ErrDuplicateIdentity, http.StatusBadRequest, "DuplicateIdentity"},
	{voting.ErrDuplicateAdmin, http.StatusBadRequest, "DuplicateAdmin"},
	{voting.ErrDuplicateElection, http.StatusBadRequest, "DuplicateElection"},
	{voting.ErrAlreadyVoted, http.StatusBadRequest, "AlreadyVoted"},
	{voting.ErrInvalidCredentials, http.StatusUnauthorized, "InvalidCredentials"},
	{voting.ErrInvalidCurrentPassword, http.StatusUnauthorized, "InvalidCurrentPassword"},
	{voting.ErrAdminCannotVote, http.StatusForbidden, "AdminCannotVote"},
	{voting.ErrVoterNotFound, http.StatusNotFound, "VoterNotFound"},
	{voting.ErrCandidateNotFound, http.StatusNotFound, "CandidateNotFound"},
	{voting.ErrElectionNotFound, http.StatusNotFound, "ElectionNotFound"},
}

// classify returns the status and code for err; unknown errors are internal
func classify(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, CodeInternal
}

// writeError maps a domain error to its response. Internal errors are
// logged with action and answered with a generic message.
func writeError(w http.ResponseWriter, err error, action string) {
	status, code := classify(err)
	if status == http.StatusInternalServerError {
		slog.Error("failed to "+action, "error", err)
		middleware.ErrorCodeResponse(w, status, code, "Failed to "+action)
		return
	}
	middleware.ErrorCodeResponse(w, status, code, err.Error())
}

func invalidJSON(w http.ResponseWriter) {
	middleware.ErrorCodeResponse(w, http.StatusBadRequest, CodeValidation, "Invalid JSON")
}
