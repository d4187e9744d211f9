// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package book

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nvtphong/fabula/internal/platform/validate"
	"github.com/nvtphong/fabula/pkg/pagination"
	slugpkg "github.com/nvtphong/fabula/pkg/slug"
	"github.com/nvtphong/fabula/pkg/uuidv7"
)

const (
	FieldTitle  = "title"
	FieldAuthor = "author"
	FieldStatus = "status"
	FieldMode   = "mode"
	FieldSort   = "sort"
	FieldSearch = "q"
)

// CoverRemover abstracts the upload collaborator's cleanup hook.
//
// # Why an interface?
//
// Cover files are written by the upload collaborator before the owning
// database transaction commits. If the transaction fails, the orphaned file
// must be removed so storage never drifts from the catalogue.
type CoverRemover interface {
	Remove(context context.Context, coverURL string) error
}

// # Service Layer

// Service orchestrates catalog listing and book lifecycle logic.
type Service struct {
	repo         Repository
	coverRemover CoverRemover
	logger       *slog.Logger
}

// NewService constructs a new [Service].
// coverRemover may be nil when no upload collaborator is configured.
func NewService(repo Repository, coverRemover CoverRemover, logger *slog.Logger) *Service {
	return &Service{
		repo:         repo,
		coverRemover: coverRemover,
		logger:       logger,
	}
}

// # Catalog Listing

/*
ListCatalog composes mode, tag, status, sort, and pagination inputs into a
single catalog page.

Description: Mode takes precedence over the tag filter. Without a mode, one
or more tags trigger the tag-intersection filter: only books carrying ALL
requested tags qualify, and status/sort apply as a second stage over the
qualified id set. If no book carries every tag, the listing query is skipped
entirely and an empty page is returned with zeroed totals.

Parameters:
  - context: context.Context
  - params: CatalogParams

Returns:
  - *CatalogPage: Books with complete tag lists plus pagination totals
  - error: Validation or storage errors
*/
func (service *Service) ListCatalog(context context.Context, params CatalogParams) (*CatalogPage, error) {

	validator := &validate.Validator{}
	if params.Mode != ModeNone {
		validator.OneOf(FieldMode, string(params.Mode), string(ModeNew), string(ModeCompleted))
	}
	if params.Status != "" {
		validator.OneOf(FieldStatus, string(params.Status),
			string(StatusOngoing), string(StatusCompleted), string(StatusPaused))
	}
	if params.Sort != "" {
		validator.OneOf(FieldSort, string(params.Sort),
			string(SortAZ), string(SortViews), string(SortRating), string(SortNew))
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	filter := ListFilter{
		Mode:   params.Mode,
		Status: params.Status,
		Sort:   params.Sort,
	}

	// ── 1. Tag Qualification ──────────────────────────────────────────────

	if params.Mode == ModeNone && len(params.Tags) > 0 {
		ids, err := service.repo.FindIDsByTags(context, normalizeTagSlugs(params.Tags))
		if err != nil {
			return nil, err
		}

		// Zero-result short-circuit: skip the listing query entirely.
		if len(ids) == 0 {
			meta := pagination.NewMeta(params.Page, params.Limit, 0)
			return &CatalogPage{
				Books:      []*Book{},
				TotalBooks: 0,
				TotalPages: meta.TotalPages,
				Page:       params.Page,
			}, nil
		}

		filter.IDs = ids
	}

	// ── 2. Listing ────────────────────────────────────────────────────────

	paging := pagination.Params{Page: params.Page, Limit: params.Limit}
	books, total, err := service.repo.List(context, filter, paging.Limit, paging.Offset())
	if err != nil {
		return nil, err
	}

	// ── 3. Tag Attachment ─────────────────────────────────────────────────

	if err := service.attachTags(context, books); err != nil {
		return nil, err
	}

	meta := pagination.NewMeta(params.Page, params.Limit, total)
	return &CatalogPage{
		Books:      books,
		TotalBooks: total,
		TotalPages: meta.TotalPages,
		Page:       params.Page,
	}, nil
}

/*
Search returns books matching a free-text title/author query.
*/
func (service *Service) Search(context context.Context, search string, paging pagination.Params) (*CatalogPage, error) {

	if strings.TrimSpace(search) == "" {
		return nil, validate.RequiredError(FieldSearch, "Search query is required")
	}

	books, total, err := service.repo.Search(context, search, paging.Limit, paging.Offset())
	if err != nil {
		return nil, err
	}

	if err := service.attachTags(context, books); err != nil {
		return nil, err
	}

	meta := pagination.NewMeta(paging.Page, paging.Limit, total)
	return &CatalogPage{
		Books:      books,
		TotalBooks: total,
		TotalPages: meta.TotalPages,
		Page:       paging.Page,
	}, nil
}

// # Book Detail

/*
GetBook returns a single book and counts the visit as a view.

Description: The view increment is a side-effect of the detail lookup, not of
chapter fetches. The increment is fire-and-forget relative to the read: a
failed bump is logged, never surfaced.
*/
func (service *Service) GetBook(context context.Context, id string) (*Book, error) {

	book, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := service.repo.IncrementViews(context, id); err != nil {
		service.logger.Warn("book_view_increment_failed",
			slog.String("book_id", id),
			slog.Any("error", err),
		)
	} else {
		book.Views++
	}

	return book, nil
}

// # Admin Lifecycle

// WriteInput carries the admin-supplied fields for creating or updating a book.
type WriteInput struct {
	Title       string
	Author      string
	Description string
	CoverURL    string
	Status      Status
	Tags        []string
}

/*
CreateBook validates and persists a new book with its tags.

Description: If persistence fails after a cover file was uploaded, the cover
is removed through the upload collaborator so no orphaned artifact survives
the rolled-back transaction.
*/
func (service *Service) CreateBook(context context.Context, input WriteInput) (*Book, error) {

	if err := service.validateWrite(input); err != nil {
		return nil, err
	}

	book := &Book{
		ID:          uuidv7.New(),
		Title:       strings.TrimSpace(input.Title),
		Author:      strings.TrimSpace(input.Author),
		Description: input.Description,
		CoverURL:    input.CoverURL,
		Status:      input.Status,
	}

	if err := service.repo.Create(context, book, input.Tags); err != nil {
		service.discardCover(context, input.CoverURL)
		return nil, err
	}

	service.logger.Info("book_created",
		slog.String("book_id", book.ID),
		slog.String("title", book.Title),
		slog.Int("tags", len(book.Tags)),
	)

	return book, nil
}

/*
UpdateBook validates and persists metadata changes for an existing book.
*/
func (service *Service) UpdateBook(context context.Context, id string, input WriteInput) (*Book, error) {

	if err := service.validateWrite(input); err != nil {
		return nil, err
	}

	book := &Book{
		ID:          id,
		Title:       strings.TrimSpace(input.Title),
		Author:      strings.TrimSpace(input.Author),
		Description: input.Description,
		CoverURL:    input.CoverURL,
		Status:      input.Status,
	}

	if err := service.repo.Update(context, book, input.Tags); err != nil {
		service.discardCover(context, input.CoverURL)
		return nil, err
	}

	service.logger.Info("book_updated", slog.String("book_id", id))
	return book, nil
}

/*
DeleteBook removes a book and everything hanging off it.
*/
func (service *Service) DeleteBook(context context.Context, id string) error {

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("book_deleted", slog.String("book_id", id))
	return nil
}

// # Internal Helpers

// validateWrite applies the shared admin write rules.
func (service *Service) validateWrite(input WriteInput) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title)
	validator.MaxLen(FieldTitle, input.Title, 255)
	validator.Required(FieldAuthor, input.Author)
	validator.OneOf(FieldStatus, string(input.Status),
		string(StatusOngoing), string(StatusCompleted), string(StatusPaused))
	return validator.Err()
}

// attachTags hydrates the complete tag-name list onto each listed book.
func (service *Service) attachTags(context context.Context, books []*Book) error {
	if len(books) == 0 {
		return nil
	}

	ids := make([]string, len(books))
	for i, book := range books {
		ids[i] = book.ID
	}

	tagsByBook, err := service.repo.TagsForBooks(context, ids)
	if err != nil {
		return err
	}

	for _, book := range books {
		if names, ok := tagsByBook[book.ID]; ok {
			book.Tags = names
		} else {
			book.Tags = []string{}
		}
	}

	return nil
}

// discardCover asks the upload collaborator to remove an orphaned cover file.
func (service *Service) discardCover(context context.Context, coverURL string) {
	if service.coverRemover == nil || coverURL == "" {
		return
	}
	if err := service.coverRemover.Remove(context, coverURL); err != nil {
		service.logger.Error("book_cover_cleanup_failed",
			slog.String("cover_url", coverURL),
			slog.Any("error", err),
		)
	}
}

// normalizeTagSlugs maps requested tag names onto their normalized slugs.
func normalizeTagSlugs(tags []string) []string {
	slugs := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		s := slugpkg.From(tag)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		slugs = append(slugs, s)
	}
	return slugs
}
