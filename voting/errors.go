// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import "errors"

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidIdentityFormat  = errors.New("identity number must be exactly 12 digits")
	ErrDuplicateIdentity      = errors.New("a voter with this identity number already exists")
	ErrDuplicateAdmin         = errors.New("admin user already exists")
	ErrInvalidCredentials     = errors.New("invalid identity number or password")
	ErrInvalidCurrentPassword = errors.New("invalid current password")

	ErrVoterNotFound   = errors.New("voter not found")
	ErrAdminCannotVote = errors.New("admin is not allowed to vote")
	ErrAlreadyVoted    = errors.New("voter has already voted")

	ErrCandidateNotFound = errors.New("candidate not found")

	ErrElectionNotFound  = errors.New("election not found")
	ErrDuplicateElection = errors.New("an election with this name already exists")
)
