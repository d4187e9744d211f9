// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nvtphong/fabula/internal/platform/apperr"
	"github.com/nvtphong/fabula/internal/platform/constants"
	"github.com/nvtphong/fabula/internal/platform/sec"
	"github.com/nvtphong/fabula/internal/platform/validate"
	"github.com/nvtphong/fabula/pkg/uuidv7"
)

// # Contracts & Types

// TokenProvider defines the contract for minting access tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT carrying the user's id,
	// username, role and account status.
	GenerateAccessToken(userID, username, role, status string, timeToLive time.Duration) (string, error)
}

// Service implements the identity use cases.
type Service struct {
	users    UserRepository
	sessions SessionRepository
	tokens   TokenProvider
	logger   *slog.Logger
}

// NewService constructs an auth [Service] with its dependencies.
func NewService(users UserRepository, sessions SessionRepository, tokens TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		logger:   logger,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new reader.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
Register validates, hashes and persists a new account.

Every new account starts as an active reader; admin accounts are promoted
out of band.
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// ── 1. Validation ──
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username)
	validator.MinLen(FieldUsername, input.Username, 3)
	validator.Email(FieldEmail, input.Email)
	validator.MinLen(FieldPassword, input.Password, 8)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// ── 2. Uniqueness ──
	if _, err := service.users.FindByEmail(context, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}
	if _, err := service.users.FindByUsername(context, input.Username); err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	// ── 3. Persistence ──
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		ID:           uuidv7.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         sec.RoleUser,
		Status:       sec.StatusActive,
	}

	if err := service.users.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username))

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt. Login may
// be a username or an email address.
type LoginInput struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// LoginSession represents a successfully established session.
type LoginSession struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	User                  *User     `json:"user"`
}

/*
Login validates credentials and issues an access/refresh token pair. Banned
accounts authenticate but receive a token whose status claim causes every
subsequent request to be rejected at the boundary.
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {

	// Flexible login: look up by email, fall back to username.
	user, err := service.users.FindByEmail(context, input.Login)
	if err != nil {
		user, err = service.users.FindByUsername(context, input.Login)
	}

	// Generic message on lookup failure to prevent account enumeration.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	session, err := service.issueSession(context, user)
	if err != nil {
		return nil, err
	}

	service.logger.Info("user_logged_in", slog.String("user_id", user.ID))
	return session, nil
}

/*
Logout revokes the refresh session. Logging out an already-dead session
succeeds: the end state is the same.
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {
	return service.sessions.Revoke(context, refreshToken)
}

// # Session Management

/*
RefreshSession rotates a refresh token: the presented token is revoked
before the replacement is issued, so a replayed token dies with the first
use.
*/
func (service *Service) RefreshSession(context context.Context, refreshToken string) (*LoginSession, error) {

	userID, err := service.sessions.Resolve(context, refreshToken)
	if err != nil {
		return nil, err
	}

	if err := service.sessions.Revoke(context, refreshToken); err != nil {
		return nil, fmt.Errorf("auth_service_refresh_revoke_failed: %w", err)
	}

	user, err := service.users.FindByID(context, userID)
	if err != nil {
		return nil, apperr.Unauthorized("User not found")
	}

	return service.issueSession(context, user)
}

// Me returns the caller's own account.
func (service *Service) Me(context context.Context, userID string) (*User, error) {
	return service.users.FindByID(context, userID)
}

/*
UpdateAvatar stores the URL returned by the upload collaborator as the
caller's avatar. The URL is an opaque string here; file bytes never pass
through this service.
*/
func (service *Service) UpdateAvatar(context context.Context, userID, avatarURL string) (*User, error) {

	if avatarURL == "" {
		return nil, validate.RequiredError("avatar_url", "Avatar URL is required")
	}

	if err := service.users.UpdateAvatar(context, userID, avatarURL); err != nil {
		return nil, err
	}

	return service.users.FindByID(context, userID)
}

/*
ChangePassword verifies the current password before storing the new hash,
then revokes the presented refresh session to force re-login elsewhere.
*/
func (service *Service) ChangePassword(context context.Context, userID, currentPassword, newPassword, refreshToken string) error {

	validator := &validate.Validator{}
	validator.MinLen(FieldPassword, newPassword, 8)
	if err := validator.Err(); err != nil {
		return err
	}

	user, err := service.users.FindByID(context, userID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_change_password_hash_failed: %w", err)
	}

	if err := service.users.UpdatePassword(context, userID, hashedPassword); err != nil {
		return err
	}

	if refreshToken != "" {
		_ = service.sessions.Revoke(context, refreshToken)
	}

	service.logger.Info("password_changed", slog.String("user_id", userID))
	return nil
}

// issueSession mints the access token and records the refresh session.
func (service *Service) issueSession(context context.Context, user *User) (*LoginSession, error) {

	accessToken, err := service.tokens.GenerateAccessToken(
		user.ID, user.Username, string(user.Role), string(user.Status),
		constants.AccessTokenTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	if err := service.sessions.Save(context, refreshToken, user.ID, constants.RefreshTokenTTL); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: time.Now().Add(constants.RefreshTokenTTL),
		User:                  user,
	}, nil
}
