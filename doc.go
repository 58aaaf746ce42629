// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Vote API server.

Quickly Vote is an electronic voting service: voters register with a
12-digit national identity number, sign in for a session token, and cast
one vote per election. A single administrator manages candidates and
elections and reads the tallies.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=file:votes.db JWT_SECRET=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -jwt-secret ...

A .env file in the working directory is loaded first; real environment
variables win over it.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite DSN or PostgreSQL connection string
  - JWT_SECRET (-jwt-secret): Session token signing secret

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - TOKEN_TTL (-token-ttl): Session lifetime (default: 24h)
  - KAFKA_BROKERS (-kafka-brokers): Comma-separated brokers; empty disables vote events
  - KAFKA_TOPIC (-kafka-topic): Vote event topic (default: votes)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (users, candidates, elections)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Sessions, CORS, logging, JSON helpers
  - voting: Accounts, vote casting, candidates, elections, tallies
  - events: Vote event publishing (Kafka)
  - metrics: Prometheus collectors
  - models: Request/response and domain types
  - auth: Password hashing and session tokens
  - db: Driver selection and schema creation
  - cliparse: Configuration parsing

The cmd/tally command prints a tally table from the same database.

See package documentation for each component.
*/
package main
