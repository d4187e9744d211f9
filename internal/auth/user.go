// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

/*
Package auth implements identity for the Fabula platform: registration,
login, session lifecycle and the reader's own profile.

Architecture:

  - Service: orchestrates the flows (Register, Login, Refresh, Logout).
  - UserRepository: PostgreSQL persistence for accounts.
  - SessionRepository: Redis-backed refresh sessions with TTL expiry.
  - Security: bcrypt password hashes and RSA-signed JWTs from platform/sec.

Access tokens carry the account status, so a ban takes effect at the
middleware boundary without a database lookup per request.
*/
package auth

import (
	"time"

	"github.com/nvtphong/fabula/internal/platform/sec"
)

// # Domain Entities

// User represents a registered reader or administrator.
type User struct {
	ID           string            `json:"id"`
	Username     string            `json:"username"`
	Email        string            `json:"email"`
	PasswordHash string            `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.UserRole      `json:"role"`
	Status       sec.AccountStatus `json:"status"`
	AvatarURL    *string           `json:"avatar_url"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// # Field Identifiers

// Field names for validation and response mapping in the identity domain.
const (
	FieldUsername     = "username"
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldLogin        = "login"
	FieldRefreshToken = "refresh_token"
	FieldAccessToken  = "access_token"
	FieldUser         = "user"
)

// RefreshTokenLength is the byte length of the random refresh token.
const RefreshTokenLength = 32
