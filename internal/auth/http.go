// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

/*
Package auth provides the HTTP delivery layer for identity management.

The handler is a thin mediation layer between the web and the domain
service: it decodes JSON, owns the refresh-token cookie, and translates
domain errors into status codes. Access tokens travel in the Authorization
header; refresh tokens never leave the HttpOnly cookie.
*/
package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nvtphong/fabula/internal/platform/apperr"
	"github.com/nvtphong/fabula/internal/platform/constants"
	"github.com/nvtphong/fabula/internal/platform/middleware"
	requestutil "github.com/nvtphong/fabula/internal/platform/request"
	"github.com/nvtphong/fabula/internal/platform/respond"
	"github.com/nvtphong/fabula/internal/platform/validate"
)

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new auth [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// RegisterRoutes mounts the identity endpoints under /auth.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Route("/auth", func(router chi.Router) {
		// Public endpoints
		router.Post("/register", handler.register)
		router.Post("/login", handler.login)
		router.Post("/refresh", handler.refresh)

		// Protected endpoints
		router.Group(func(authed chi.Router) {
			authed.Use(middleware.RequireAuth)
			authed.Post("/logout", handler.logout)
			authed.Get("/me", handler.me)
			authed.Put("/me/avatar", handler.updateAvatar)
			authed.Post("/change-password", handler.changePassword)
		})
	})
}

// # Request Payloads

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type updateAvatarRequest struct {
	AvatarURL string `json:"avatar_url"`
}

/*
Register creates a new reader account.

POST /api/v1/auth/register

Response:
  - 201: User: the created profile
  - 400: Validation: weak password or malformed email
  - 409: Conflict: username or email already registered
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input RegisterInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Register(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
Login authenticates a user and establishes a session.

POST /api/v1/auth/login

Response:
  - 200: access token + user profile; refresh token set as HttpOnly cookie
  - 401: Unauthorized: invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input LoginInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldLogin, input.Login)
	validator.Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setRefreshCookie(writer, session)

	respond.OK(writer, map[string]any{
		FieldAccessToken: session.AccessToken,
		FieldUser:        session.User,
	})
}

/*
Refresh rotates the session using the refresh-token cookie.

POST /api/v1/auth/refresh

Response:
  - 200: new access token; rotated refresh cookie
  - 401: Unauthorized: missing, expired or replayed refresh token
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err != nil || cookie.Value == "" {
		respond.Error(writer, request, apperr.Unauthorized("Missing refresh token in cookies"))
		return
	}

	session, err := handler.authService.RefreshSession(request.Context(), cookie.Value)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setRefreshCookie(writer, session)

	respond.OK(writer, map[string]any{
		FieldAccessToken: session.AccessToken,
		"token_type":     "Bearer",
		"expires_in":     constants.AccessTokenTTL / time.Second,
	})
}

/*
Logout terminates the current session and clears the cookie.

POST /api/v1/auth/logout

Response:
  - 204: session terminated
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err == nil && cookie != nil && cookie.Value != "" {
		_ = handler.authService.Logout(request.Context(), cookie.Value)
	}

	clearRefreshCookie(writer)
	respond.NoContent(writer)
}

// me returns the caller's own profile.
//
// GET /api/v1/auth/me
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Me(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// updateAvatar stores the upload collaborator's URL on the profile.
//
// PUT /api/v1/auth/me/avatar
func (handler *Handler) updateAvatar(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateAvatarRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.UpdateAvatar(request.Context(), userID, input.AvatarURL)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
changePassword rotates the caller's credentials.

POST /api/v1/auth/change-password

Response:
  - 204: password updated, current session revoked
  - 401: Unauthorized: current password incorrect
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	refreshToken := ""
	if cookie, err := request.Cookie(constants.RefreshTokenCookieName); err == nil {
		refreshToken = cookie.Value
	}

	err = handler.authService.ChangePassword(request.Context(), userID,
		input.CurrentPassword, input.NewPassword, refreshToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	clearRefreshCookie(writer)
	respond.NoContent(writer)
}

// # Cookie Helpers

func setRefreshCookie(writer http.ResponseWriter, session *LoginSession) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    session.RefreshToken,
		Path:     constants.RefreshTokenCookiePath,
		Expires:  session.RefreshTokenExpiresAt,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearRefreshCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    "",
		Path:     constants.RefreshTokenCookiePath,
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
