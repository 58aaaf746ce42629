// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-vote/db"
	"github.com/danielhkuo/quickly-vote/models"
)

const electionColumns = `id, name, start_date, end_date, created_at`

// CreateElection stores a new named voting window
func CreateElection(ctx context.Context, conn *sql.DB, req models.CreateElectionRequest) (models.Election, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || req.StartDate.IsZero() || req.EndDate.IsZero() {
		return models.Election{}, fmt.Errorf("%w: name, startDate and endDate are required", ErrInvalidInput)
	}
	if !req.EndDate.After(req.StartDate) {
		return models.Election{}, fmt.Errorf("%w: endDate must be after startDate", ErrInvalidInput)
	}

	e := models.Election{
		ID:        uuid.NewString(),
		Name:      name,
		StartDate: req.StartDate.UTC(),
		EndDate:   req.EndDate.UTC(),
		CreatedAt: now(),
	}

	_, err := conn.ExecContext(ctx, `
		INSERT INTO election (`+electionColumns+`)
		VALUES ($1, $2, $3, $4, $5)
	`, e.ID, e.Name, e.StartDate, e.EndDate, e.CreatedAt)
	if err != nil {
		if _, ok := db.UniqueViolation(err); ok {
			return models.Election{}, ErrDuplicateElection
		}
		return models.Election{}, fmt.Errorf("failed to insert election: %w", err)
	}

	return e, nil
}

// GetElection loads an election by ID
func GetElection(ctx context.Context, conn *sql.DB, electionID string) (models.Election, error) {
	var e models.Election
	err := conn.QueryRowContext(ctx, `
		SELECT `+electionColumns+` FROM election WHERE id = $1
	`, electionID).Scan(&e.ID, &e.Name, &e.StartDate, &e.EndDate, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Election{}, ErrElectionNotFound
	}
	if err != nil {
		return models.Election{}, fmt.Errorf("failed to query election: %w", err)
	}
	return e, nil
}

// ListElections returns all elections, oldest first
func ListElections(ctx context.Context, conn *sql.DB) ([]models.Election, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT `+electionColumns+` FROM election ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query elections: %w", err)
	}
	defer rows.Close()

	elections := []models.Election{}
	for rows.Next() {
		var e models.Election
		if err := rows.Scan(&e.ID, &e.Name, &e.StartDate, &e.EndDate, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan election: %w", err)
		}
		elections = append(elections, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate elections: %w", err)
	}

	return elections, nil
}

// AvailableElections returns elections whose window contains at.
// Filtering happens here so timestamp comparison does not depend on how
// the driver stores times.
func AvailableElections(ctx context.Context, conn *sql.DB, at time.Time) ([]models.Election, error) {
	all, err := ListElections(ctx, conn)
	if err != nil {
		return nil, err
	}

	open := []models.Election{}
	for _, e := range all {
		if e.Open(at) {
			open = append(open, e)
		}
	}
	return open, nil
}
