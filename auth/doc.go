// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides credential and session primitives.

# Passwords

Passwords are stored as salted bcrypt hashes, never in raw form:

	hash, err := auth.HashPassword(raw)
	err = auth.CheckPassword(hash, raw) // ErrPasswordMismatch on failure

Comparison is bcrypt's constant-time check. CheckPassword with an empty hash
still runs a comparison so callers can hide whether an identity exists.

# Session Tokens

Sessions are stateless HS256 JWTs carrying the voter ID and an expiry:

	token, expiresAt, err := auth.IssueToken(voterID, secret, 24*time.Hour)
	voterID, err := auth.VerifyToken(token, secret) // ErrInvalidToken

Verification is a pure function of the token and the process-wide secret.
Tokens cannot be revoked before they expire.

# Identity Numbers

National identity numbers are exactly 12 ASCII digits:

	ok := auth.ValidIdentityNumber("111111111111")
*/
package auth
