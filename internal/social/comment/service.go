// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package comment

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nvtphong/fabula/internal/platform/apperr"
	"github.com/nvtphong/fabula/internal/platform/validate"
	"github.com/nvtphong/fabula/pkg/uuidv7"
)

const (
	// FieldBookID is the payload field naming the thread's book.
	FieldBookID = "book_id"
	// FieldContent is the payload field carrying the comment text.
	FieldContent = "content"

	maxBodyLength = 2000
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// PostInput carries a new comment submission.
type PostInput struct {
	BookID    string  `json:"book_id"`
	ChapterID *string `json:"chapter_id"`
	Content   string  `json:"content"`
}

/*
Post validates and records a comment.

Scope rules: the book must exist (404 otherwise); a chapter id, when given,
must belong to that same book (400 otherwise).
*/
func (service *Service) Post(context context.Context, userID string, input PostInput) (*Comment, error) {

	// ── 1. Validation ──
	body := strings.TrimSpace(input.Content)

	validator := &validate.Validator{}
	validator.Required(FieldBookID, input.BookID)
	validator.Required(FieldContent, body)
	validator.MaxLen(FieldContent, body, maxBodyLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// ── 2. Scope checks ──
	if err := service.checkScope(context, input.BookID, input.ChapterID); err != nil {
		return nil, err
	}

	// ── 3. Persistence ──
	comment := &Comment{
		ID:        uuidv7.New(),
		BookID:    input.BookID,
		ChapterID: input.ChapterID,
		UserID:    userID,
		Body:      body,
	}
	if err := service.repo.Insert(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_posted",
		slog.String("comment_id", comment.ID),
		slog.String("book_id", comment.BookID),
		slog.String("user_id", userID))

	return comment, nil
}

/*
List returns a book's thread newest-first, optionally narrowed to one
chapter. Scope is validated the same way as Post.
*/
func (service *Service) List(context context.Context, bookID string, chapterID *string) ([]*Comment, error) {

	if strings.TrimSpace(bookID) == "" {
		return nil, validate.RequiredError(FieldBookID, "Book id is required")
	}

	if err := service.checkScope(context, bookID, chapterID); err != nil {
		return nil, err
	}

	return service.repo.ListByBook(context, bookID, chapterID)
}

// checkScope enforces book existence and chapter ownership.
func (service *Service) checkScope(context context.Context, bookID string, chapterID *string) error {
	exists, err := service.repo.BookExists(context, bookID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Book")
	}

	if chapterID != nil {
		belongs, err := service.repo.ChapterBelongsToBook(context, *chapterID, bookID)
		if err != nil {
			return err
		}
		if !belongs {
			return apperr.ValidationError("Chapter does not belong to this book")
		}
	}

	return nil
}
