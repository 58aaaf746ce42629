// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

JSON field names are camelCase to match the public HTTP contract.

# Request Types

  - SignupRequest: identityNumber, name, email, password, address, age, role
  - LoginRequest: identityNumber, password
  - ChangePasswordRequest: currentPassword, newPassword
  - CastVoteRequest: candidateId, electionId (optional)
  - CreateCandidateRequest / UpdateCandidateRequest (pointer fields = partial)
  - CreateElectionRequest: name, startDate, endDate

# Response Types

  - SignupResponse: user, token, expiresAt
  - LoginResponse: token, expiresAt
  - MeResponse: voter fields plus isVoted, votedElections, votedCandidateId
  - CastVoteResponse, MyVotesResponse, AvailableElectionsResponse
  - ErrorResponse: error, message, code

# Domain Types

  - Voter: registered participant (PasswordHash never serialized)
  - Candidate: profile and vote counter, optional election
  - VoteRecord: one cast vote, scoped by election
  - Election: named voting window
  - TallyEntry: candidate and its count
  - VoteEvent: payload published after a vote commits

# Constants

Roles:

	RoleVoter = "voter"
	RoleAdmin = "admin"

Scope of candidates without an election:

	GlobalScope = ""
*/
package models
