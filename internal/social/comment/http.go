// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nvtphong/fabula/internal/platform/middleware"
	requestutil "github.com/nvtphong/fabula/internal/platform/request"
	"github.com/nvtphong/fabula/internal/platform/respond"
)

// Handler implements the HTTP layer for comment threads.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the thread endpoints. Reading is public,
// posting requires authentication.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Get("/comments", handler.ListComments)

	api.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)
		authed.Post("/comments", handler.PostComment)
	})
}

/*
POST /api/v1/comments with body {"book_id", "chapter_id"?, "content"}.

Response:
  - 201: Comment: the stored entry
  - 400: Validation: empty content or chapter outside the book
  - 404: NotFound: unknown book
*/
func (handler *Handler) PostComment(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input PostInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Post(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

/*
GET /api/v1/comments?book_id=&chapter_id=.

Response:
  - 200: []Comment: newest-first, joined with author and chapter context
*/
func (handler *Handler) ListComments(writer http.ResponseWriter, request *http.Request) {
	bookID := request.URL.Query().Get("book_id")

	var chapterID *string
	if raw := request.URL.Query().Get("chapter_id"); raw != "" {
		chapterID = &raw
	}

	comments, err := handler.service.List(request.Context(), bookID, chapterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comments)
}
