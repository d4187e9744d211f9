// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvtphong/fabula/internal/platform/middleware"
	"github.com/nvtphong/fabula/internal/platform/sec"
)

// fakeVerifier maps raw token strings to canned claims.
type fakeVerifier struct {
	claims map[string]*sec.AuthClaims
}

func (f *fakeVerifier) VerifyToken(tokenStr string) (*sec.AuthClaims, error) {
	claims, ok := f.claims[tokenStr]
	if !ok {
		return nil, errors.New("signature mismatch")
	}
	return claims, nil
}

// serveAuthenticated runs a request through Authenticate and captures the
// claims the downstream handler observes.
func serveAuthenticated(t *testing.T, verifier middleware.TokenVerifier, authHeader string) (*httptest.ResponseRecorder, *sec.AuthClaims) {
	t.Helper()

	var seen *sec.AuthClaims
	next := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = middleware.GetUser(request.Context())
		writer.WriteHeader(http.StatusOK)
	})

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		request.Header.Set("Authorization", authHeader)
	}

	recorder := httptest.NewRecorder()
	middleware.Authenticate(verifier)(next).ServeHTTP(recorder, request)
	return recorder, seen
}

/*
TestAuthenticate_InjectsClaims verifies that a valid bearer token results in
the downstream handler seeing the verified claims via [middleware.GetUser].
*/
func TestAuthenticate_InjectsClaims(t *testing.T) {
	verifier := &fakeVerifier{claims: map[string]*sec.AuthClaims{
		"good-token": {UserID: "user-1", Username: "rin", Role: "user", Status: "active"},
	}}

	recorder, seen := serveAuthenticated(t, verifier, "Bearer good-token")

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "user-1", seen.UserID)
	assert.Equal(t, "rin", seen.Username)
}

/*
TestAuthenticate_AnonymousPassesThrough verifies that requests without an
Authorization header proceed with no claims in context.
*/
func TestAuthenticate_AnonymousPassesThrough(t *testing.T) {
	verifier := &fakeVerifier{claims: map[string]*sec.AuthClaims{}}

	recorder, seen := serveAuthenticated(t, verifier, "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Nil(t, seen)
}

/*
TestAuthenticate_RejectsBannedAccount verifies that a token carrying a banned
status claim is stopped with 403 before any handler runs.
*/
func TestAuthenticate_RejectsBannedAccount(t *testing.T) {
	verifier := &fakeVerifier{claims: map[string]*sec.AuthClaims{
		"banned-token": {UserID: "user-2", Username: "kai", Role: "user", Status: "banned"},
	}}

	recorder, seen := serveAuthenticated(t, verifier, "Bearer banned-token")

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Nil(t, seen)
}

/*
TestAuthenticate_RejectsInvalidToken verifies that verification failures and
malformed headers both yield 401.
*/
func TestAuthenticate_RejectsInvalidToken(t *testing.T) {
	verifier := &fakeVerifier{claims: map[string]*sec.AuthClaims{}}

	recorder, seen := serveAuthenticated(t, verifier, "Bearer forged-token")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Nil(t, seen)

	recorder, seen = serveAuthenticated(t, verifier, "NotBearer")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Nil(t, seen)
}

/*
TestRequireRole_EnforcesHierarchy verifies that RequireRole admits admins,
rejects plain users, and rejects anonymous requests.
*/
func TestRequireRole_EnforcesHierarchy(t *testing.T) {
	verifier := &fakeVerifier{claims: map[string]*sec.AuthClaims{
		"admin-token": {UserID: "a1", Role: "admin", Status: "active"},
		"user-token":  {UserID: "u1", Role: "user", Status: "active"},
	}}

	guarded := middleware.RequireRole(sec.RoleAdmin)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
	}))
	chain := middleware.Authenticate(verifier)(guarded)

	cases := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{name: "admin allowed", authHeader: "Bearer admin-token", wantStatus: http.StatusOK},
		{name: "user forbidden", authHeader: "Bearer user-token", wantStatus: http.StatusForbidden},
		{name: "anonymous unauthorized", authHeader: "", wantStatus: http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.authHeader != "" {
				request.Header.Set("Authorization", tc.authHeader)
			}
			recorder := httptest.NewRecorder()
			chain.ServeHTTP(recorder, request)
			assert.Equal(t, tc.wantStatus, recorder.Code)
		})
	}
}
