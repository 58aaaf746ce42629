// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the store and handles schema creation.

# Connecting

Open selects the driver from the configured database type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

PostgreSQL uses github.com/lib/pq. SQLite uses modernc.org/sqlite (pure Go)
with foreign keys on, a busy timeout, and a single open connection.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same DDL runs on both databases.

# Tables

  - voter: identity number, profile, password hash, role
  - election: named voting window
  - candidate: profile, optional election, vote counter
  - vote: one row per cast vote, scoped by election ('' = global)

# Relationships

	election 1──* candidate
	voter    1──* vote
	candidate 1──* vote (no foreign key; votes outlive deleted candidates)

# Constraints

  - voter.identity_number UNIQUE
  - idx_voter_single_admin: UNIQUE (role) WHERE role = 'admin'
  - election.name UNIQUE
  - vote (voter_id, election_id) UNIQUE

UniqueViolation recognizes violations from either driver:

	if detail, ok := db.UniqueViolation(err); ok {
		// detail names the constraint or columns
	}
*/
package db
