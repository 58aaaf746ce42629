// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voting implements accounts, candidates, elections, vote casting,
and tallying on top of database/sql.

Every function takes the *sql.DB it runs against and returns one of the
sentinel errors in errors.go for expected failures. Callers match them
with errors.Is; anything else is an internal error.

# Accounts

	voter, err := voting.Register(ctx, conn, req)       // ErrInvalidIdentityFormat, ErrDuplicateIdentity, ErrDuplicateAdmin
	voter, err := voting.Authenticate(ctx, conn, id, pw) // ErrInvalidCredentials
	err := voting.ChangePassword(ctx, conn, voterID, current, next)

At most one admin exists system-wide. Admins cannot vote.

# Casting Votes

	vote, err := voting.CastVote(ctx, conn, voterID, candidateID, electionID)

A voter votes once per scope. The scope is the election ID when given,
otherwise the candidate's election, otherwise the global scope "".
Checks run in this order and the first failure is returned:

 1. voter exists (ErrVoterNotFound)
 2. voter is not the admin (ErrAdminCannotVote)
 3. voter has not voted in the scope (ErrAlreadyVoted)
 4. candidate exists in the scope (ErrCandidateNotFound)

The vote record and the candidate's counter are written in one
transaction, so a candidate's count always equals its vote records.

# Tallies

	entries, err := voting.ComputeTally(ctx, conn, electionID)

Entries are ordered by count descending. Ties go to the earlier created
candidate, then to the smaller ID.
*/
package voting
