// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package chapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nvtphong/fabula/internal/platform/middleware"
	requestutil "github.com/nvtphong/fabula/internal/platform/request"
	"github.com/nvtphong/fabula/internal/platform/respond"
	"github.com/nvtphong/fabula/internal/platform/sec"
)

// # Handler Implementation

// Handler implements the HTTP layer for chapter reading and management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new chapter [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches chapter endpoints to the root API router.
// Chapter endpoints span both /books/{id}/... and /chapters/... prefixes.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	// Reading endpoints
	api.Get("/books/{bookID}/chapters", handler.ListIndex)
	api.Get("/books/{bookID}/chapters/first", handler.ReadFirst)
	api.Get("/books/{bookID}/chapters/latest", handler.ReadLatest)
	api.Get("/chapters/{chapterID}", handler.ReadChapter)

	// Admin protected endpoints
	api.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Post("/books/{bookID}/chapters", handler.CreateChapter)
		admin.Put("/chapters/{chapterID}", handler.UpdateChapter)
		admin.Delete("/chapters/{chapterID}", handler.DeleteChapter)
	})
}

// # Reading

/*
GET /api/v1/books/{bookID}/chapters.

Description: Returns the full ordered chapter index without content payloads.

Response:
  - 200: []Ref: Ascending by chapter order
*/
func (handler *Handler) ListIndex(writer http.ResponseWriter, request *http.Request) {
	bookID := requestutil.ID(request, "bookID")

	refs, err := handler.service.ListIndex(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, refs)
}

/*
GET /api/v1/books/{bookID}/chapters/first.

Response:
  - 200: Reading: Opening chapter, prevChapterId always null
  - 404: NotFound: Book has no chapters
*/
func (handler *Handler) ReadFirst(writer http.ResponseWriter, request *http.Request) {
	bookID := requestutil.ID(request, "bookID")

	reading, err := handler.service.ResolveFirst(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, reading)
}

/*
GET /api/v1/books/{bookID}/chapters/latest.

Response:
  - 200: Reading: Most recent chapter, nextChapterId always null
  - 404: NotFound: Book has no chapters
*/
func (handler *Handler) ReadLatest(writer http.ResponseWriter, request *http.Request) {
	bookID := requestutil.ID(request, "bookID")

	reading, err := handler.service.ResolveLatest(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, reading)
}

/*
GET /api/v1/chapters/{chapterID}.

Response:
  - 200: Reading: Chapter with prev/next links and the full index
  - 404: NotFound: Unknown chapter id
*/
func (handler *Handler) ReadChapter(writer http.ResponseWriter, request *http.Request) {
	chapterID := requestutil.ID(request, "chapterID")

	reading, err := handler.service.ResolveByID(request.Context(), chapterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, reading)
}

// # Admin Lifecycle

// writeChapterRequest defines the inbound JSON schema for chapter writes.
type writeChapterRequest struct {
	Title        string `json:"title"`
	Content      string `json:"content"`
	ChapterOrder int    `json:"chapter_order"`
}

/*
POST /api/v1/books/{bookID}/chapters.

Response:
  - 201: Chapter: Created record
  - 400: Validation: Missing title or non-positive order
  - 409: Conflict: Chapter order already taken for this book
*/
func (handler *Handler) CreateChapter(writer http.ResponseWriter, request *http.Request) {
	bookID := requestutil.ID(request, "bookID")

	var input writeChapterRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, err := handler.service.CreateChapter(request.Context(), bookID, WriteInput{
		Title:        input.Title,
		Content:      input.Content,
		ChapterOrder: input.ChapterOrder,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, chapter)
}

/*
PUT /api/v1/chapters/{chapterID}.

Response:
  - 200: Chapter: Updated record
  - 404: NotFound: Unknown chapter id
*/
func (handler *Handler) UpdateChapter(writer http.ResponseWriter, request *http.Request) {
	chapterID := requestutil.ID(request, "chapterID")

	var input writeChapterRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, err := handler.service.UpdateChapter(request.Context(), chapterID, WriteInput{
		Title:        input.Title,
		Content:      input.Content,
		ChapterOrder: input.ChapterOrder,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, chapter)
}

/*
DELETE /api/v1/chapters/{chapterID}.

Response:
  - 204: No Content
  - 404: NotFound: Unknown chapter id
*/
func (handler *Handler) DeleteChapter(writer http.ResponseWriter, request *http.Request) {
	chapterID := requestutil.ID(request, "chapterID")

	if err := handler.service.DeleteChapter(request.Context(), chapterID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
