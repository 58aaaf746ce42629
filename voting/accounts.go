// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/db"
	"github.com/danielhkuo/quickly-vote/models"
)

// MinVoterAge is the youngest age accepted at signup
const MinVoterAge = 18

// now is the clock used for stored timestamps
var now = func() time.Time { return time.Now().UTC() }

const voterColumns = `id, identity_number, name, email, address, age, password_hash, role, created_at`

// Register validates and stores a new voter with a hashed password.
// The duplicate checks and the insert share one transaction; unique indexes
// catch anything that slips between them.
func Register(ctx context.Context, conn *sql.DB, req models.SignupRequest) (models.Voter, error) {
	voter, err := validateSignup(req)
	if err != nil {
		return models.Voter{}, err
	}

	voter.PasswordHash, err = auth.HashPassword(req.Password)
	if err != nil {
		return models.Voter{}, err
	}
	voter.ID = uuid.NewString()
	voter.CreatedAt = now()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return models.Voter{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM voter WHERE identity_number = $1)
	`, voter.IdentityNumber).Scan(&exists)
	if err != nil {
		return models.Voter{}, fmt.Errorf("failed to check identity: %w", err)
	}
	if exists {
		return models.Voter{}, ErrDuplicateIdentity
	}

	if voter.Role == models.RoleAdmin {
		err = tx.QueryRowContext(ctx, `
			SELECT EXISTS(SELECT 1 FROM voter WHERE role = $1)
		`, models.RoleAdmin).Scan(&exists)
		if err != nil {
			return models.Voter{}, fmt.Errorf("failed to check admin: %w", err)
		}
		if exists {
			return models.Voter{}, ErrDuplicateAdmin
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO voter (`+voterColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, voter.ID, voter.IdentityNumber, voter.Name, voter.Email, voter.Address,
		voter.Age, voter.PasswordHash, voter.Role, voter.CreatedAt)
	if err != nil {
		if detail, ok := db.UniqueViolation(err); ok {
			if strings.Contains(detail, "identity_number") {
				return models.Voter{}, ErrDuplicateIdentity
			}
			return models.Voter{}, ErrDuplicateAdmin
		}
		return models.Voter{}, fmt.Errorf("failed to insert voter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Voter{}, fmt.Errorf("failed to commit voter: %w", err)
	}

	return voter, nil
}

func validateSignup(req models.SignupRequest) (models.Voter, error) {
	identity := strings.TrimSpace(req.IdentityNumber)
	if !auth.ValidIdentityNumber(identity) {
		return models.Voter{}, ErrInvalidIdentityFormat
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.Voter{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if err := validatePassword(req.Password); err != nil {
		return models.Voter{}, err
	}
	if req.Age < MinVoterAge {
		return models.Voter{}, fmt.Errorf("%w: age must be at least %d", ErrInvalidInput, MinVoterAge)
	}

	email := strings.TrimSpace(req.Email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return models.Voter{}, fmt.Errorf("%w: email is not a valid address", ErrInvalidInput)
		}
	}

	role := req.Role
	if role == "" {
		role = models.RoleVoter
	}
	if role != models.RoleVoter && role != models.RoleAdmin {
		return models.Voter{}, fmt.Errorf("%w: role must be voter or admin", ErrInvalidInput)
	}

	return models.Voter{
		IdentityNumber: identity,
		Name:           name,
		Email:          email,
		Address:        strings.TrimSpace(req.Address),
		Age:            req.Age,
		Role:           role,
	}, nil
}

func validatePassword(raw string) error {
	if raw == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	if len(raw) > auth.MaxPasswordBytes {
		return fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidInput, auth.MaxPasswordBytes)
	}
	return nil
}

// Authenticate checks an identity number and password. Unknown identities
// and wrong passwords are indistinguishable to the caller.
func Authenticate(ctx context.Context, conn *sql.DB, identity, password string) (models.Voter, error) {
	voter, err := scanVoter(conn.QueryRowContext(ctx, `
		SELECT `+voterColumns+` FROM voter WHERE identity_number = $1
	`, strings.TrimSpace(identity)))

	if errors.Is(err, ErrVoterNotFound) {
		_ = auth.CheckPassword("", password)
		return models.Voter{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Voter{}, err
	}

	if err := auth.CheckPassword(voter.PasswordHash, password); err != nil {
		return models.Voter{}, ErrInvalidCredentials
	}

	return voter, nil
}

// ChangePassword replaces the stored hash after verifying the current password
func ChangePassword(ctx context.Context, conn *sql.DB, voterID, current, next string) error {
	if current == "" || next == "" {
		return fmt.Errorf("%w: currentPassword and newPassword are required", ErrInvalidInput)
	}
	if err := validatePassword(next); err != nil {
		return err
	}

	voter, err := GetVoter(ctx, conn, voterID)
	if errors.Is(err, ErrVoterNotFound) {
		return ErrInvalidCurrentPassword
	}
	if err != nil {
		return err
	}

	if err := auth.CheckPassword(voter.PasswordHash, current); err != nil {
		return ErrInvalidCurrentPassword
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return err
	}

	_, err = conn.ExecContext(ctx, `
		UPDATE voter SET password_hash = $1 WHERE id = $2
	`, hash, voterID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// GetVoter loads a voter by ID
func GetVoter(ctx context.Context, conn *sql.DB, voterID string) (models.Voter, error) {
	return scanVoter(conn.QueryRowContext(ctx, `
		SELECT `+voterColumns+` FROM voter WHERE id = $1
	`, voterID))
}

// IsAdmin reports whether the voter exists and holds the admin role
func IsAdmin(ctx context.Context, conn *sql.DB, voterID string) (bool, error) {
	var role string
	err := conn.QueryRowContext(ctx, `SELECT role FROM voter WHERE id = $1`, voterID).Scan(&role)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query role: %w", err)
	}
	return role == models.RoleAdmin, nil
}

func scanVoter(row *sql.Row) (models.Voter, error) {
	var v models.Voter
	err := row.Scan(&v.ID, &v.IdentityNumber, &v.Name, &v.Email, &v.Address,
		&v.Age, &v.PasswordHash, &v.Role, &v.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Voter{}, ErrVoterNotFound
	}
	if err != nil {
		return models.Voter{}, fmt.Errorf("failed to query voter: %w", err)
	}
	return v, nil
}
