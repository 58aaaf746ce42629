// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command tally prints the current vote tally as a table.
//
//	tally -d file:votes.db [-t sqlite] [-e electionID]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/db"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/voting"
)

func main() {
	fs := flag.NewFlagSet("tally", flag.ContinueOnError)
	electionID := fs.String("e", "", "Election ID (empty tallies every candidate)")

	cfg, err := cliparse.ParseDBFlags(fs, os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	ctx := context.Background()

	title := "All candidates"
	if *electionID != "" {
		election, err := voting.GetElection(ctx, conn, *electionID)
		if err != nil {
			color.Red("Error: %v", err)
			os.Exit(1)
		}
		title = election.Name
	}

	entries, err := voting.ComputeTally(ctx, conn, *electionID)
	if err != nil {
		slog.Error("tally failed", "error", err)
		os.Exit(1)
	}

	color.Yellow("\nVote Tally: %s", title)
	renderTally(os.Stdout, entries)
}

// renderTally writes one row per candidate with its share of the total
func renderTally(w io.Writer, entries []models.TallyEntry) {
	total := 0
	for _, e := range entries {
		total += e.Count
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Rank", "Candidate", "Party", "Votes", "Share"})

	for i, e := range entries {
		share := 0.0
		if total > 0 {
			share = float64(e.Count) * 100 / float64(total)
		}
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			e.Name,
			e.Party,
			fmt.Sprintf("%d", e.Count),
			fmt.Sprintf("%.1f%%", share),
		})
	}

	table.SetFooter([]string{"", "", "Total", fmt.Sprintf("%d", total), ""})
	table.Render()
}
