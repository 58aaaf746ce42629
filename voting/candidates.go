// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-vote/models"
)

const candidateColumns = `id, name, party, image, description, age, election_id, vote_count, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// CreateCandidate validates and stores a candidate with zero votes
func CreateCandidate(ctx context.Context, conn *sql.DB, req models.CreateCandidateRequest) (models.Candidate, error) {
	c := models.Candidate{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Party:       strings.TrimSpace(req.Party),
		Image:       strings.TrimSpace(req.Image),
		Description: strings.TrimSpace(req.Description),
		Age:         req.Age,
		CreatedAt:   now(),
	}
	if err := validateCandidate(c); err != nil {
		return models.Candidate{}, err
	}

	if electionID := strings.TrimSpace(req.ElectionID); electionID != "" {
		if _, err := GetElection(ctx, conn, electionID); err != nil {
			return models.Candidate{}, err
		}
		c.ElectionID = &electionID
	}

	_, err := conn.ExecContext(ctx, `
		INSERT INTO candidate (`+candidateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8)
	`, c.ID, c.Name, c.Party, c.Image, c.Description, c.Age, c.ElectionID, c.CreatedAt)
	if err != nil {
		return models.Candidate{}, fmt.Errorf("failed to insert candidate: %w", err)
	}

	return c, nil
}

// UpdateCandidate applies the non-nil fields of req. Vote state and the
// election are not writable here.
func UpdateCandidate(ctx context.Context, conn *sql.DB, candidateID string, req models.UpdateCandidateRequest) (models.Candidate, error) {
	c, err := GetCandidate(ctx, conn, candidateID)
	if err != nil {
		return models.Candidate{}, err
	}

	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Party != nil {
		c.Party = strings.TrimSpace(*req.Party)
	}
	if req.Image != nil {
		c.Image = strings.TrimSpace(*req.Image)
	}
	if req.Description != nil {
		c.Description = strings.TrimSpace(*req.Description)
	}
	if req.Age != nil {
		c.Age = req.Age
	}
	if err := validateCandidate(c); err != nil {
		return models.Candidate{}, err
	}

	res, err := conn.ExecContext(ctx, `
		UPDATE candidate
		SET name = $1, party = $2, image = $3, description = $4, age = $5
		WHERE id = $6
	`, c.Name, c.Party, c.Image, c.Description, c.Age, candidateID)
	if err != nil {
		return models.Candidate{}, fmt.Errorf("failed to update candidate: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Candidate{}, ErrCandidateNotFound
	}

	return c, nil
}

// DeleteCandidate removes a candidate and returns what was removed.
// Its vote rows stay so no voter's voted state is reversed.
func DeleteCandidate(ctx context.Context, conn *sql.DB, candidateID string) (models.Candidate, error) {
	c, err := GetCandidate(ctx, conn, candidateID)
	if err != nil {
		return models.Candidate{}, err
	}

	res, err := conn.ExecContext(ctx, `DELETE FROM candidate WHERE id = $1`, candidateID)
	if err != nil {
		return models.Candidate{}, fmt.Errorf("failed to delete candidate: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Candidate{}, ErrCandidateNotFound
	}

	return c, nil
}

// GetCandidate loads a candidate without its vote records
func GetCandidate(ctx context.Context, conn *sql.DB, candidateID string) (models.Candidate, error) {
	c, err := scanCandidate(conn.QueryRowContext(ctx, `
		SELECT `+candidateColumns+` FROM candidate WHERE id = $1
	`, candidateID))
	if err == sql.ErrNoRows {
		return models.Candidate{}, ErrCandidateNotFound
	}
	if err != nil {
		return models.Candidate{}, fmt.Errorf("failed to query candidate: %w", err)
	}
	return c, nil
}

// GetCandidateWithVotes loads a candidate and its vote records in cast order
func GetCandidateWithVotes(ctx context.Context, conn *sql.DB, candidateID string) (models.Candidate, error) {
	c, err := GetCandidate(ctx, conn, candidateID)
	if err != nil {
		return models.Candidate{}, err
	}

	rows, err := conn.QueryContext(ctx, `
		SELECT id, candidate_id, voter_id, election_id, voted_at
		FROM vote
		WHERE candidate_id = $1
		ORDER BY voted_at, id
	`, candidateID)
	if err != nil {
		return models.Candidate{}, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	c.Votes = []models.VoteRecord{}
	for rows.Next() {
		var v models.VoteRecord
		if err := rows.Scan(&v.ID, &v.CandidateID, &v.VoterID, &v.ElectionID, &v.VotedAt); err != nil {
			return models.Candidate{}, fmt.Errorf("failed to scan vote: %w", err)
		}
		c.Votes = append(c.Votes, v)
	}
	if err := rows.Err(); err != nil {
		return models.Candidate{}, fmt.Errorf("failed to iterate votes: %w", err)
	}

	return c, nil
}

// ListCandidates returns all candidates in creation order
func ListCandidates(ctx context.Context, conn *sql.DB) ([]models.Candidate, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT `+candidateColumns+` FROM candidate ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate candidates: %w", err)
	}

	return candidates, nil
}

// ListCandidateSummaries returns name and party only
func ListCandidateSummaries(ctx context.Context, conn *sql.DB) ([]models.CandidateSummary, error) {
	candidates, err := ListCandidates(ctx, conn)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.CandidateSummary, 0, len(candidates))
	for _, c := range candidates {
		summaries = append(summaries, models.CandidateSummary{Name: c.Name, Party: c.Party})
	}
	return summaries, nil
}

func validateCandidate(c models.Candidate) error {
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if c.Party == "" {
		return fmt.Errorf("%w: party is required", ErrInvalidInput)
	}
	if c.Age != nil && *c.Age < MinVoterAge {
		return fmt.Errorf("%w: age must be at least %d", ErrInvalidInput, MinVoterAge)
	}
	return nil
}

func scanCandidate(row rowScanner) (models.Candidate, error) {
	var c models.Candidate
	var age sql.NullInt64
	var electionID sql.NullString

	err := row.Scan(&c.ID, &c.Name, &c.Party, &c.Image, &c.Description,
		&age, &electionID, &c.VoteCount, &c.CreatedAt)
	if err != nil {
		return models.Candidate{}, err
	}

	if age.Valid {
		a := int(age.Int64)
		c.Age = &a
	}
	if electionID.Valid {
		c.ElectionID = &electionID.String
	}
	return c, nil
}
