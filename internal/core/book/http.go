// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

/*
Package book provides the HTTP interface for catalogue discovery and management.

# Routing Strategy

  - Public (v1): Listing, search, and detail endpoints accessible to all visitors.
  - Restricted (v1): Mutative endpoints requiring the Admin role.

The handler translates between the web/JSON layer and the internal domain [Service].
*/
package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nvtphong/fabula/internal/platform/middleware"
	requestutil "github.com/nvtphong/fabula/internal/platform/request"
	"github.com/nvtphong/fabula/internal/platform/respond"
	"github.com/nvtphong/fabula/internal/platform/sec"
	"github.com/nvtphong/fabula/pkg/pagination"
	"github.com/nvtphong/fabula/pkg/query"
)

// # Handler Implementation

// Handler implements the HTTP layer for the book catalogue.
type Handler struct {
	service *Service

	// Page sizes differ by context: the homepage rail is smaller than
	// the full catalog grid.
	homePageSize    int
	catalogPageSize int
}

// NewHandler constructs a new book [Handler].
func NewHandler(service *Service, homePageSize, catalogPageSize int) *Handler {
	return &Handler{
		service:         service,
		homePageSize:    homePageSize,
		catalogPageSize: catalogPageSize,
	}
}

// RegisterRoutes attaches catalogue endpoints to the root API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	// Discovery endpoints
	api.Get("/books", handler.ListCatalog)
	api.Get("/books/home", handler.ListHome)
	api.Get("/books/search", handler.Search)
	api.Get("/books/{bookID}", handler.GetBook)

	// Admin protected endpoints
	api.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Post("/books", handler.CreateBook)
		admin.Put("/books/{bookID}", handler.UpdateBook)
		admin.Delete("/books/{bookID}", handler.DeleteBook)
	})
}

// # Catalog Listing

/*
GET /api/v1/books.

Description: Returns one catalog page. Accepts mode, tags (comma-separated),
status, sort, page, and limit query parameters.

Response:
  - 200: CatalogPage: Books with tags plus totals
  - 400: Validation: Unknown mode/status/sort value
*/
func (handler *Handler) ListCatalog(writer http.ResponseWriter, request *http.Request) {
	handler.list(writer, request, handler.catalogPageSize)
}

/*
GET /api/v1/books/home.

Description: Same contract as the catalog listing with the smaller homepage
page size as default.
*/
func (handler *Handler) ListHome(writer http.ResponseWriter, request *http.Request) {
	handler.list(writer, request, handler.homePageSize)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request, defaultLimit int) {
	paging := pagination.FromRequestWithLimit(request, defaultLimit)
	queryValues := request.URL.Query()

	params := CatalogParams{
		Mode:   Mode(queryValues.Get("mode")),
		Tags:   query.StringSlice(queryValues.Get("tags")),
		Status: Status(queryValues.Get("status")),
		Sort:   Sort(queryValues.Get("sort")),
		Page:   paging.Page,
		Limit:  paging.Limit,
	}

	page, err := handler.service.ListCatalog(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, page.Books,
		pagination.NewMeta(page.Page, paging.Limit, page.TotalBooks))
}

/*
GET /api/v1/books/search?q=.

Response:
  - 200: CatalogPage: Matching books
  - 400: Validation: Missing query
*/
func (handler *Handler) Search(writer http.ResponseWriter, request *http.Request) {
	paging := pagination.FromRequestWithLimit(request, handler.catalogPageSize)

	page, err := handler.service.Search(request.Context(), request.URL.Query().Get("q"), paging)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, page.Books,
		pagination.NewMeta(page.Page, paging.Limit, page.TotalBooks))
}

// # Book Detail

/*
GET /api/v1/books/{bookID}.

Description: Returns the full book record with tags and counts the visit as
a view.

Response:
  - 200: Book
  - 404: NotFound: Unknown book id
*/
func (handler *Handler) GetBook(writer http.ResponseWriter, request *http.Request) {
	bookID := requestutil.ID(request, "bookID")

	book, err := handler.service.GetBook(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, book)
}

// # Admin Lifecycle

// writeBookRequest defines the inbound JSON schema for admin book writes.
type writeBookRequest struct {
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Description string   `json:"description"`
	CoverURL    string   `json:"cover_url"`
	Status      string   `json:"status"`
	Tags        []string `json:"tags"`
}

func (r writeBookRequest) toInput() WriteInput {
	return WriteInput{
		Title:       r.Title,
		Author:      r.Author,
		Description: r.Description,
		CoverURL:    r.CoverURL,
		Status:      Status(r.Status),
		Tags:        r.Tags,
	}
}

/*
POST /api/v1/books.

Response:
  - 201: Book: Created record with resolved tags
  - 400: Validation: Missing title/author or unknown status
  - 403: Forbidden: Caller is not an admin
*/
func (handler *Handler) CreateBook(writer http.ResponseWriter, request *http.Request) {
	var input writeBookRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.CreateBook(request.Context(), input.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, book)
}

/*
PUT /api/v1/books/{bookID}.

Response:
  - 200: Book: Updated record
  - 404: NotFound: Unknown book id
*/
func (handler *Handler) UpdateBook(writer http.ResponseWriter, request *http.Request) {
	bookID := requestutil.ID(request, "bookID")

	var input writeBookRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.UpdateBook(request.Context(), bookID, input.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, book)
}

/*
DELETE /api/v1/books/{bookID}.

Response:
  - 204: No Content
  - 404: NotFound: Unknown book id
*/
func (handler *Handler) DeleteBook(writer http.ResponseWriter, request *http.Request) {
	bookID := requestutil.ID(request, "bookID")

	if err := handler.service.DeleteBook(request.Context(), bookID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
