// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package chapter

import (
	"context"
	"log/slog"

	"github.com/nvtphong/fabula/internal/platform/validate"
	"github.com/nvtphong/fabula/pkg/uuidv7"
)

const (
	FieldBookID       = "book_id"
	FieldChapterTitle = "title"
	FieldChapterOrder = "chapter_order"
)

// # Service Layer

// Service orchestrates chapter navigation and lifecycle logic.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// # Chapter Navigation

/*
ResolveFirst resolves the opening chapter of a book.

Description: The previous link of the first chapter is always nil. A book
with zero chapters resolves to NotFound.
*/
func (service *Service) ResolveFirst(context context.Context, bookID string) (*Reading, error) {
	current, err := service.repo.FindFirst(context, bookID)
	if err != nil {
		return nil, err
	}
	return service.assemble(context, current)
}

/*
ResolveLatest resolves the most recent chapter of a book.

Description: The next link of the latest chapter is always nil.
*/
func (service *Service) ResolveLatest(context context.Context, bookID string) (*Reading, error) {
	current, err := service.repo.FindLatest(context, bookID)
	if err != nil {
		return nil, err
	}
	return service.assemble(context, current)
}

/*
ResolveByID resolves an explicit chapter by id.

Description: The previous neighbour is the chapter with the greatest order
strictly below the current one, the next neighbour the least order strictly
above it. Both are independently nullable because orders carry gaps.
*/
func (service *Service) ResolveByID(context context.Context, chapterID string) (*Reading, error) {
	current, err := service.repo.FindByID(context, chapterID)
	if err != nil {
		return nil, err
	}
	return service.assemble(context, current)
}

// assemble builds the full navigation view around a resolved chapter.
func (service *Service) assemble(context context.Context, current *Chapter) (*Reading, error) {

	prevID, err := service.repo.FindPrevID(context, current.BookID, current.ChapterOrder)
	if err != nil {
		return nil, err
	}

	nextID, err := service.repo.FindNextID(context, current.BookID, current.ChapterOrder)
	if err != nil {
		return nil, err
	}

	refs, err := service.repo.ListRefs(context, current.BookID)
	if err != nil {
		return nil, err
	}

	return &Reading{
		ID:            current.ID,
		BookID:        current.BookID,
		Title:         current.Title,
		Content:       current.Content,
		ChapterOrder:  current.ChapterOrder,
		PrevChapterID: prevID,
		NextChapterID: nextID,
		AllChapters:   refs,
	}, nil
}

/*
ListIndex returns the ordered chapter index without content payloads.
*/
func (service *Service) ListIndex(context context.Context, bookID string) ([]Ref, error) {
	return service.repo.ListRefs(context, bookID)
}

// # Admin Lifecycle

// WriteInput carries the admin-supplied fields for chapter writes.
type WriteInput struct {
	Title        string
	Content      string
	ChapterOrder int
}

/*
CreateChapter validates and persists a new chapter for a book.
*/
func (service *Service) CreateChapter(context context.Context, bookID string, input WriteInput) (*Chapter, error) {

	validator := &validate.Validator{}
	validator.Required(FieldBookID, bookID)
	validator.Required(FieldChapterTitle, input.Title)
	validator.Custom(FieldChapterOrder, input.ChapterOrder < 1, "Chapter order must be positive")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	chapter := &Chapter{
		ID:           uuidv7.New(),
		BookID:       bookID,
		Title:        input.Title,
		Content:      input.Content,
		ChapterOrder: input.ChapterOrder,
	}

	if err := service.repo.Create(context, chapter); err != nil {
		return nil, err
	}

	service.logger.Info("chapter_created",
		slog.String("chapter_id", chapter.ID),
		slog.String("book_id", bookID),
		slog.Int("chapter_order", chapter.ChapterOrder),
	)

	return chapter, nil
}

/*
UpdateChapter validates and persists changes to an existing chapter.
*/
func (service *Service) UpdateChapter(context context.Context, chapterID string, input WriteInput) (*Chapter, error) {

	validator := &validate.Validator{}
	validator.Required(FieldChapterTitle, input.Title)
	validator.Custom(FieldChapterOrder, input.ChapterOrder < 1, "Chapter order must be positive")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	existing, err := service.repo.FindByID(context, chapterID)
	if err != nil {
		return nil, err
	}

	existing.Title = input.Title
	existing.Content = input.Content
	existing.ChapterOrder = input.ChapterOrder

	if err := service.repo.Update(context, existing); err != nil {
		return nil, err
	}

	service.logger.Info("chapter_updated", slog.String("chapter_id", chapterID))
	return existing, nil
}

/*
DeleteChapter removes a chapter.
*/
func (service *Service) DeleteChapter(context context.Context, chapterID string) error {
	if err := service.repo.Delete(context, chapterID); err != nil {
		return err
	}

	service.logger.Info("chapter_deleted", slog.String("chapter_id", chapterID))
	return nil
}
