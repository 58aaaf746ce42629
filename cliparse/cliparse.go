// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"

	DefaultPort       = 3318
	DefaultTokenTTL   = 24 * time.Hour
	DefaultKafkaTopic = "votes"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	JWTSecret    string
	TokenTTL     time.Duration
	KafkaBrokers []string
	KafkaTopic   string
}

// DBConfig is the subset of Config needed to open the store
type DBConfig struct {
	DatabaseURL  string
	DatabaseType string
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var ttl, brokers string

	if err := loadDotEnv(); err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("quickly-vote", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "", "Session signing secret (prefer env)")
	fs.StringVar(&ttl, "token-ttl", "", "Session token lifetime, e.g. 24h")

	// Vote event stream
	fs.StringVar(&brokers, "kafka-brokers", "", "Comma-separated Kafka brokers (empty disables publishing)")
	fs.StringVar(&cfg.KafkaTopic, "kafka-topic", "", "Kafka topic for vote events")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}

	db, err := resolveDB(cfg.DatabaseURL, cfg.DatabaseType)
	if err != nil {
		return Config{}, err
	}
	cfg.DatabaseURL = db.DatabaseURL
	cfg.DatabaseType = db.DatabaseType

	// Secrets - MUST be provided
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}

	if ttl == "" {
		ttl = os.Getenv("TOKEN_TTL")
	}
	cfg.TokenTTL = DefaultTokenTTL
	if ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid token TTL %q", ttl)
		}
		cfg.TokenTTL = d
	}

	if brokers == "" {
		brokers = os.Getenv("KAFKA_BROKERS")
	}
	cfg.KafkaBrokers = splitList(brokers)

	if cfg.KafkaTopic == "" {
		cfg.KafkaTopic = os.Getenv("KAFKA_TOPIC")
	}
	if cfg.KafkaTopic == "" {
		cfg.KafkaTopic = DefaultKafkaTopic
	}

	return cfg, nil
}

// ParseDBFlags registers -d and -t on fs, parses args and resolves the
// database settings. Callers add their own flags to fs beforehand.
func ParseDBFlags(fs *flag.FlagSet, args []string) (DBConfig, error) {
	var cfg DBConfig

	if err := loadDotEnv(); err != nil {
		return DBConfig{}, err
	}

	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	if err := fs.Parse(args); err != nil {
		return DBConfig{}, err
	}

	return resolveDB(cfg.DatabaseURL, cfg.DatabaseType)
}

func resolveDB(url, dbType string) (DBConfig, error) {
	if url == "" {
		url = os.Getenv("DATABASE_URL")
	}
	if url == "" {
		return DBConfig{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if dbType == "" {
		dbType = os.Getenv("DATABASE_TYPE")
		if dbType == "" {
			dbType = DatabaseSQLite
		}
	}
	if dbType != DatabaseSQLite && dbType != DatabasePostgres {
		return DBConfig{}, fmt.Errorf("unsupported database type %q", dbType)
	}

	return DBConfig{DatabaseURL: url, DatabaseType: dbType}, nil
}

// loadDotEnv reads .env from the working directory if present.
// Existing environment variables win.
func loadDotEnv() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
