// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded first when present. Variables
already set in the environment are not overwritten.

# CLI Flags and Environment Variables

	-p              PORT           Server port (default: 3318)
	-d              DATABASE_URL   Database URL (required)
	-t              DATABASE_TYPE  sqlite or postgres (default: sqlite)
	-jwt-secret     JWT_SECRET     Session signing secret (required)
	-token-ttl      TOKEN_TTL      Session lifetime (default: 24h)
	-kafka-brokers  KAFKA_BROKERS  Comma-separated brokers (empty disables events)
	-kafka-topic    KAFKA_TOPIC    Vote event topic (default: votes)

CLI flags take precedence over environment variables.

# Auxiliary Tools

Tools that only need the store register their own flags and call:

	fs := flag.NewFlagSet("tally", flag.ExitOnError)
	election := fs.String("e", "", "election ID")
	dbCfg, err := cliparse.ParseDBFlags(fs, os.Args[1:])
*/
package cliparse
