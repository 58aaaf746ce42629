// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/danielhkuo/quickly-vote/models"
)

// ComputeTally returns vote counts for all candidates, or only those of
// electionID when it is non-empty, sorted by SortTally
func ComputeTally(ctx context.Context, conn *sql.DB, electionID string) ([]models.TallyEntry, error) {
	query := `SELECT id, name, party, vote_count, created_at FROM candidate`
	var args []any
	if electionID != "" {
		query += ` WHERE election_id = $1`
		args = append(args, electionID)
	}

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tally: %w", err)
	}
	defer rows.Close()

	entries := []models.TallyEntry{}
	for rows.Next() {
		var e models.TallyEntry
		if err := rows.Scan(&e.CandidateID, &e.Name, &e.Party, &e.Count, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tally entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tally: %w", err)
	}

	SortTally(entries)
	return entries, nil
}

// SortTally orders entries by count descending. Ties go to the candidate
// created first, then to the smaller ID.
func SortTally(entries []models.TallyEntry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]

		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.CandidateID < b.CandidateID
	})
}
