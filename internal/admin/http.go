// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nvtphong/fabula/internal/platform/middleware"
	requestutil "github.com/nvtphong/fabula/internal/platform/request"
	"github.com/nvtphong/fabula/internal/platform/respond"
	"github.com/nvtphong/fabula/internal/platform/sec"
	"github.com/nvtphong/fabula/pkg/pagination"
)

// Handler implements the operator console HTTP layer.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts feedback submission for readers and the console
// for admins.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)
		authed.Post("/feedback", handler.SubmitFeedback)
	})

	api.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Get("/admin/stats", handler.GetStats)
		admin.Get("/admin/users", handler.ListAccounts)
		admin.Post("/admin/users/{userID}/ban", handler.BanAccount)
		admin.Post("/admin/users/{userID}/unban", handler.UnbanAccount)
		admin.Get("/admin/feedback", handler.ListFeedback)
	})
}

// GET /api/v1/admin/stats.
func (handler *Handler) GetStats(writer http.ResponseWriter, request *http.Request) {
	stats, err := handler.service.GetStats(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stats)
}

// GET /api/v1/admin/users?page=&limit=.
func (handler *Handler) ListAccounts(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	page, err := handler.service.ListAccounts(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, page)
}

/*
POST /api/v1/admin/users/{userID}/ban.

Response:
  - 204: account locked
  - 400: Validation: attempting to ban yourself
  - 404: NotFound: unknown user
*/
func (handler *Handler) BanAccount(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	userID := requestutil.ID(request, "userID")

	if err := handler.service.BanAccount(request.Context(), actorID, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// POST /api/v1/admin/users/{userID}/unban.
func (handler *Handler) UnbanAccount(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	userID := requestutil.ID(request, "userID")

	if err := handler.service.UnbanAccount(request.Context(), actorID, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
POST /api/v1/feedback with body {"subject", "body"}.

Response:
  - 201: Feedback: the stored submission
  - 400: Validation: missing subject or body
*/
func (handler *Handler) SubmitFeedback(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input FeedbackInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	feedback, err := handler.service.SubmitFeedback(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, feedback)
}

// GET /api/v1/admin/feedback?page=&limit=.
func (handler *Handler) ListFeedback(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	items, meta, err := handler.service.ListFeedback(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, items, meta)
}
