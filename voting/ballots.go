// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-vote/db"
	"github.com/danielhkuo/quickly-vote/models"
)

// CastVote records one vote for candidateID by voterID.
//
// electionID may be empty, in which case the scope is the candidate's
// election (or the global scope for candidates without one). Checks run in
// order and the first failure wins: voter exists, voter is not an admin,
// voter has not voted in the scope, candidate exists (and belongs to
// electionID when given).
//
// The vote row insert and the counter increment commit together. The
// (voter_id, election_id) unique constraint is the final gate against a
// concurrent second vote.
func CastVote(ctx context.Context, conn *sql.DB, voterID, candidateID, electionID string) (models.VoteRecord, error) {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return models.VoteRecord{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// 1-2. Voter exists and may vote
	var role string
	err = tx.QueryRowContext(ctx, `SELECT role FROM voter WHERE id = $1`, voterID).Scan(&role)
	if err == sql.ErrNoRows {
		return models.VoteRecord{}, ErrVoterNotFound
	}
	if err != nil {
		return models.VoteRecord{}, fmt.Errorf("failed to query voter: %w", err)
	}
	if role == models.RoleAdmin {
		return models.VoteRecord{}, ErrAdminCannotVote
	}

	// Candidate is loaded before the scope check because its election
	// decides the scope when none is given
	var candidateElection sql.NullString
	candidateFound := true
	err = tx.QueryRowContext(ctx, `
		SELECT election_id FROM candidate WHERE id = $1
	`, candidateID).Scan(&candidateElection)
	if err == sql.ErrNoRows {
		candidateFound = false
	} else if err != nil {
		return models.VoteRecord{}, fmt.Errorf("failed to query candidate: %w", err)
	}

	scope := electionID
	if scope == "" && candidateElection.Valid {
		scope = candidateElection.String
	}

	// 3. Not already voted in this scope
	var voted bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM vote WHERE voter_id = $1 AND election_id = $2)
	`, voterID, scope).Scan(&voted)
	if err != nil {
		return models.VoteRecord{}, fmt.Errorf("failed to check existing vote: %w", err)
	}
	if voted {
		return models.VoteRecord{}, ErrAlreadyVoted
	}

	// 4. Candidate exists within the scope
	if !candidateFound {
		return models.VoteRecord{}, ErrCandidateNotFound
	}
	if scope != candidateElection.String {
		return models.VoteRecord{}, ErrCandidateNotFound
	}

	vote := models.VoteRecord{
		ID:          uuid.NewString(),
		CandidateID: candidateID,
		VoterID:     voterID,
		ElectionID:  scope,
		VotedAt:     now(),
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO vote (id, candidate_id, voter_id, election_id, voted_at)
		VALUES ($1, $2, $3, $4, $5)
	`, vote.ID, vote.CandidateID, vote.VoterID, vote.ElectionID, vote.VotedAt)
	if err != nil {
		if _, ok := db.UniqueViolation(err); ok {
			return models.VoteRecord{}, ErrAlreadyVoted
		}
		return models.VoteRecord{}, fmt.Errorf("failed to insert vote: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE candidate SET vote_count = vote_count + 1 WHERE id = $1
	`, candidateID)
	if err != nil {
		return models.VoteRecord{}, fmt.Errorf("failed to increment vote count: %w", err)
	}
	if n, _ := res.RowsAffected(); n != 1 {
		return models.VoteRecord{}, ErrCandidateNotFound
	}

	if err := tx.Commit(); err != nil {
		if _, ok := db.UniqueViolation(err); ok {
			return models.VoteRecord{}, ErrAlreadyVoted
		}
		return models.VoteRecord{}, fmt.Errorf("failed to commit vote: %w", err)
	}

	return vote, nil
}

// VotedScopes returns the election scopes the voter has voted in
func VotedScopes(ctx context.Context, conn *sql.DB, voterID string) ([]string, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT election_id FROM vote WHERE voter_id = $1 ORDER BY voted_at, id
	`, voterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query voted scopes: %w", err)
	}
	defer rows.Close()

	scopes := []string{}
	for rows.Next() {
		var scope string
		if err := rows.Scan(&scope); err != nil {
			return nil, fmt.Errorf("failed to scan scope: %w", err)
		}
		scopes = append(scopes, scope)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scopes: %w", err)
	}
	return scopes, nil
}

// VotedCandidateID returns the candidate of the voter's most recent vote,
// or nil if the voter has not voted
func VotedCandidateID(ctx context.Context, conn *sql.DB, voterID string) (*string, error) {
	var candidateID string
	err := conn.QueryRowContext(ctx, `
		SELECT candidate_id FROM vote
		WHERE voter_id = $1
		ORDER BY voted_at DESC, id DESC
		LIMIT 1
	`, voterID).Scan(&candidateID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query voted candidate: %w", err)
	}
	return &candidateID, nil
}

// VoterVotes returns the voter's votes joined with candidate and election
// details. Deleted candidates show empty name and party.
func VoterVotes(ctx context.Context, conn *sql.DB, voterID string) ([]models.VoterVote, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT v.id, v.candidate_id, v.voter_id, v.election_id, v.voted_at,
		       COALESCE(c.name, ''), COALESCE(c.party, ''), e.name
		FROM vote v
		LEFT JOIN candidate c ON c.id = v.candidate_id
		LEFT JOIN election e ON e.id = v.election_id
		WHERE v.voter_id = $1
		ORDER BY v.voted_at, v.id
	`, voterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query voter votes: %w", err)
	}
	defer rows.Close()

	votes := []models.VoterVote{}
	for rows.Next() {
		var vv models.VoterVote
		var electionName sql.NullString
		if err := rows.Scan(&vv.ID, &vv.CandidateID, &vv.VoterID, &vv.ElectionID, &vv.VotedAt,
			&vv.CandidateName, &vv.CandidateParty, &electionName); err != nil {
			return nil, fmt.Errorf("failed to scan voter vote: %w", err)
		}
		if electionName.Valid {
			vv.ElectionName = &electionName.String
		}
		votes = append(votes, vv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate voter votes: %w", err)
	}

	return votes, nil
}
