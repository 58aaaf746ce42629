// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrPasswordMismatch = errors.New("password does not match")
	ErrEmptySecret      = errors.New("signing secret is empty")
)

// IdentityNumberLength is the fixed length of a national identity number
const IdentityNumberLength = 12

// MaxPasswordBytes is the longest password bcrypt accepts
const MaxPasswordBytes = 72

// BcryptCost is the work factor used by HashPassword. Tests lower it.
var BcryptCost = bcrypt.DefaultCost

// dummyHash is compared against when no stored hash exists, so unknown
// identities take as long to reject as wrong passwords.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("quickly-vote-dummy"), bcrypt.DefaultCost)

// SessionClaims is the payload of a session token
type SessionClaims struct {
	VoterID string `json:"id"`
	jwt.RegisteredClaims
}

// ValidIdentityNumber reports whether s is exactly 12 ASCII digits
func ValidIdentityNumber(s string) bool {
	if len(s) != IdentityNumberLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// HashPassword returns a salted bcrypt hash of the raw password
func HashPassword(raw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares a raw password against a stored hash.
// An empty hash is still compared (against a dummy) to keep timing uniform.
func CheckPassword(hash, raw string) error {
	if hash == "" {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(raw))
		return ErrPasswordMismatch
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}

// IssueToken creates a signed HS256 session token for a voter
func IssueToken(voterID, secret string, ttl time.Duration) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, ErrEmptySecret
	}

	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := SessionClaims{
		VoterID: voterID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   voterID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// VerifyToken checks signature and expiry and returns the bound voter ID.
// It never touches the store.
func VerifyToken(tokenString, secret string) (string, error) {
	if tokenString == "" || secret == "" {
		return "", ErrInvalidToken
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.VoterID == "" || claims.ExpiresAt == nil {
		return "", ErrInvalidToken
	}

	return claims.VoterID, nil
}
