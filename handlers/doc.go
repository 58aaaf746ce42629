// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Vote API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - UserHandler: Signup, login, profile, voting and vote history
  - CandidateHandler: Candidate listing and admin management, vote by path, tallies
  - ElectionHandler: Election creation and lookup

Handlers that cast votes also take the event publisher:

	userHandler := handlers.NewUserHandler(db, cfg, publisher)
	electionHandler := handlers.NewElectionHandler(db, cfg)

A nil publisher disables vote events.

# Sessions and Roles

Routes behind middleware.WithSession read the voter from the request
context. Admin routes then load the voter's role per request and answer
403 AdminRequired for anyone else, so a demoted or unknown voter loses
access immediately.

# Voting Flow

	POST /api/users/vote                      → UserHandler.Vote
	GET|POST /api/candidates/vote/{candidateID} → CandidateHandler.Vote

Both routes go through the same path: voting.CastVote, then metrics, then
a best-effort VoteEvent publish with a 5 second timeout. A publish
failure is logged and the vote still answers 200.

# Errors

Domain errors are mapped in errors.go:

	400 ValidationError, InvalidIdentityFormat, DuplicateIdentity,
	    DuplicateAdmin, DuplicateElection, AlreadyVoted
	401 InvalidCredentials, InvalidCurrentPassword
	403 AdminCannotVote, AdminRequired
	404 VoterNotFound, CandidateNotFound, ElectionNotFound
	500 InternalError (logged, generic message)
*/
package handlers
