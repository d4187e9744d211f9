// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package engagement

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nvtphong/fabula/internal/platform/middleware"
	requestutil "github.com/nvtphong/fabula/internal/platform/request"
	"github.com/nvtphong/fabula/internal/platform/respond"
)

// Handler implements the HTTP layer for likes, favorites and ratings.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches engagement endpoints to the root API router.
// Every route requires an authenticated caller.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)

		authed.Post("/books/{bookID}/like", handler.ToggleLike)
		authed.Post("/books/{bookID}/rate", handler.RateBook)
		authed.Get("/books/{bookID}/engagement", handler.GetState)

		authed.Post("/favorites", handler.AddFavorite)
		authed.Get("/favorites", handler.ListFavorites)
		authed.Delete("/favorites/{bookID}", handler.RemoveFavorite)
	})
}

/*
POST /api/v1/books/{bookID}/like.

Response:
  - 200: {"liked": bool}: the state after the toggle
  - 404: NotFound: unknown book
*/
func (handler *Handler) ToggleLike(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	bookID := requestutil.ID(request, "bookID")

	liked, err := handler.service.ToggleLike(request.Context(), userID, bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]bool{"liked": liked})
}

/*
POST /api/v1/books/{bookID}/rate with body {"rating": 1..5}.

Response:
  - 200: RatingSummary: recomputed average and count
  - 400: Validation: score outside 1..5
*/
func (handler *Handler) RateBook(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	bookID := requestutil.ID(request, "bookID")

	var payload struct {
		Rating int `json:"rating"`
	}
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	summary, err := handler.service.RateBook(request.Context(), userID, bookID, payload.Rating)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, summary)
}

// GET /api/v1/books/{bookID}/engagement.
func (handler *Handler) GetState(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	bookID := requestutil.ID(request, "bookID")

	state, err := handler.service.GetState(request.Context(), userID, bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, state)
}

/*
POST /api/v1/favorites with body {"book_id": "..."}.

Response:
  - 201: empty body
  - 400: DuplicateState: already favorited
*/
func (handler *Handler) AddFavorite(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload struct {
		BookID string `json:"book_id"`
	}
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.AddFavorite(request.Context(), userID, payload.BookID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]string{"book_id": payload.BookID})
}

// DELETE /api/v1/favorites/{bookID}. Succeeds even when nothing was removed.
func (handler *Handler) RemoveFavorite(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	bookID := requestutil.ID(request, "bookID")

	if err := handler.service.RemoveFavorite(request.Context(), userID, bookID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// GET /api/v1/favorites.
func (handler *Handler) ListFavorites(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	favorites, err := handler.service.ListFavorites(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, favorites)
}
