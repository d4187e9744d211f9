// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package auth

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvtphong/fabula/internal/platform/apperr"
	"github.com/nvtphong/fabula/internal/platform/sec"
)

type fakeUserRepository struct {
	users map[string]*User // keyed by id
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*User)}
}

func (f *fakeUserRepository) Create(_ context.Context, user *User) error {
	for _, existing := range f.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return apperr.Conflict("Username or email is already registered")
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByUsername(_ context.Context, username string) (*User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) UpdatePassword(_ context.Context, userID, passwordHash string) error {
	user, ok := f.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = passwordHash
	return nil
}

func (f *fakeUserRepository) UpdateAvatar(_ context.Context, userID, avatarURL string) error {
	user, ok := f.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.AvatarURL = &avatarURL
	return nil
}

type fakeSessionRepository struct {
	sessions map[string]string // refresh token -> user id
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: make(map[string]string)}
}

func (f *fakeSessionRepository) Save(_ context.Context, refreshToken, userID string, _ time.Duration) error {
	f.sessions[refreshToken] = userID
	return nil
}

func (f *fakeSessionRepository) Resolve(_ context.Context, refreshToken string) (string, error) {
	if userID, ok := f.sessions[refreshToken]; ok {
		return userID, nil
	}
	return "", apperr.Unauthorized("Invalid or expired refresh token")
}

func (f *fakeSessionRepository) Revoke(_ context.Context, refreshToken string) error {
	delete(f.sessions, refreshToken)
	return nil
}

// fakeTokenProvider mints inspectable pseudo tokens.
type fakeTokenProvider struct {
	minted int
}

func (f *fakeTokenProvider) GenerateAccessToken(userID, _, _, status string, _ time.Duration) (string, error) {
	f.minted++
	return fmt.Sprintf("token-%s-%s-%d", userID, status, f.minted), nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService() (*Service, *fakeUserRepository, *fakeSessionRepository) {
	users := newFakeUserRepository()
	sessions := newFakeSessionRepository()
	service := NewService(users, sessions, &fakeTokenProvider{}, testLogger())
	return service, users, sessions
}

func register(t *testing.T, service *Service) *User {
	t.Helper()
	user, err := service.Register(context.Background(), RegisterInput{
		Username: "reader",
		Email:    "reader@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	return user
}

func TestRegister_DefaultsAndHashing(t *testing.T) {
	service, users, _ := newTestService()

	user := register(t, service)

	assert.Equal(t, sec.RoleUser, user.Role)
	assert.Equal(t, sec.StatusActive, user.Status)
	assert.NotEmpty(t, user.ID)

	stored := users.users[user.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "correct-horse", stored.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("correct-horse", stored.PasswordHash))
}

func TestRegister_DuplicateIdentity(t *testing.T) {
	service, _, _ := newTestService()
	register(t, service)

	_, err := service.Register(context.Background(), RegisterInput{
		Username: "other",
		Email:    "reader@example.com",
		Password: "another-pass",
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	_, err = service.Register(context.Background(), RegisterInput{
		Username: "reader",
		Email:    "other@example.com",
		Password: "another-pass",
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

func TestRegister_Validation(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Register(context.Background(), RegisterInput{
		Username: "ab",
		Email:    "not-an-email",
		Password: "short",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestLogin_ByUsernameOrEmail(t *testing.T) {
	service, _, sessions := newTestService()
	register(t, service)

	byEmail, err := service.Login(context.Background(), LoginInput{
		Login: "reader@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, byEmail.AccessToken)
	assert.NotEmpty(t, byEmail.RefreshToken)

	byUsername, err := service.Login(context.Background(), LoginInput{
		Login: "reader", Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEqual(t, byEmail.RefreshToken, byUsername.RefreshToken)

	// Both sessions are live.
	assert.Len(t, sessions.sessions, 2)
}

func TestLogin_WrongPasswordIsGeneric(t *testing.T) {
	service, _, _ := newTestService()
	register(t, service)

	_, err := service.Login(context.Background(), LoginInput{
		Login: "reader", Password: "wrong",
	})
	require.Error(t, err)
	ae := apperr.As(err)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)

	// Unknown account yields the same message as a bad password.
	_, err2 := service.Login(context.Background(), LoginInput{
		Login: "nobody", Password: "wrong",
	})
	require.Error(t, err2)
	assert.Equal(t, ae.Message, apperr.As(err2).Message)
}

/*
TestRefreshSession_RotatesToken verifies refresh rotation: the old token
dies with its first use and cannot be replayed.
*/
func TestRefreshSession_RotatesToken(t *testing.T) {
	service, _, _ := newTestService()
	register(t, service)

	session, err := service.Login(context.Background(), LoginInput{
		Login: "reader", Password: "correct-horse",
	})
	require.NoError(t, err)

	rotated, err := service.RefreshSession(context.Background(), session.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, session.RefreshToken, rotated.RefreshToken)

	// Replaying the consumed token fails.
	_, err = service.RefreshSession(context.Background(), session.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

func TestLogout_Idempotent(t *testing.T) {
	service, _, sessions := newTestService()
	register(t, service)

	session, err := service.Login(context.Background(), LoginInput{
		Login: "reader", Password: "correct-horse",
	})
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), session.RefreshToken))
	require.NoError(t, service.Logout(context.Background(), session.RefreshToken))
	assert.Empty(t, sessions.sessions)
}

func TestChangePassword_RequiresCurrent(t *testing.T) {
	service, users, _ := newTestService()
	user := register(t, service)

	err := service.ChangePassword(context.Background(), user.ID,
		"wrong-current", "new-password-1", "")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	err = service.ChangePassword(context.Background(), user.ID,
		"correct-horse", "new-password-1", "")
	require.NoError(t, err)
	assert.True(t, sec.CheckPasswordHash("new-password-1", users.users[user.ID].PasswordHash))
}
