// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package library

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nvtphong/fabula/internal/platform/middleware"
	requestutil "github.com/nvtphong/fabula/internal/platform/request"
	"github.com/nvtphong/fabula/internal/platform/respond"
)

// Handler implements the HTTP layer for reading history.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the history endpoints. All require authentication.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)

		authed.Post("/history", handler.RecordProgress)
		authed.Get("/history", handler.ListHistory)
		authed.Delete("/history/{bookID}", handler.DeleteEntry)
	})
}

/*
POST /api/v1/history with body {"book_id", "chapter_id"}.

Response:
  - 204: empty body
  - 400: Validation: missing field or chapter outside the book
*/
func (handler *Handler) RecordProgress(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload struct {
		BookID    string `json:"book_id"`
		ChapterID string `json:"chapter_id"`
	}
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.service.RecordProgress(request.Context(), userID, payload.BookID, payload.ChapterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// GET /api/v1/history.
func (handler *Handler) ListHistory(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entries, err := handler.service.ListHistory(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entries)
}

// DELETE /api/v1/history/{bookID}.
func (handler *Handler) DeleteEntry(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	bookID := requestutil.ID(request, "bookID")

	if err := handler.service.DeleteEntry(request.Context(), userID, bookID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
