// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package auth

import (
	"context"
	"time"
)

// UserRepository persists accounts.
type UserRepository interface {
	/*
		Create inserts a new account.

		Returns:
		  - error: apperr.Conflict if the username or email is taken
	*/
	Create(context context.Context, user *User) error

	/*
		FindByID loads an account by id.

		Returns:
		  - error: apperr.NotFound if absent
	*/
	FindByID(context context.Context, id string) (*User, error)

	// FindByEmail loads an account by email address.
	FindByEmail(context context.Context, email string) (*User, error)

	// FindByUsername loads an account by username.
	FindByUsername(context context.Context, username string) (*User, error)

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(context context.Context, userID, passwordHash string) error

	// UpdateAvatar replaces the stored avatar URL.
	UpdateAvatar(context context.Context, userID, avatarURL string) error
}

// SessionRepository tracks refresh sessions. Implementations store the
// hash of the refresh token, never the token itself, and let the backing
// store expire entries at the TTL.
type SessionRepository interface {
	// Save records a refresh session for a user.
	Save(context context.Context, refreshToken, userID string, ttl time.Duration) error

	/*
		Resolve returns the user id owning a refresh token.

		Returns:
		  - error: apperr.Unauthorized if the token is unknown or expired
	*/
	Resolve(context context.Context, refreshToken string) (string, error)

	// Revoke removes a refresh session. Revoking an absent session is
	// not an error.
	Revoke(context context.Context, refreshToken string) error
}
