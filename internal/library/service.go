// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package library

import (
	"context"
	"log/slog"

	"github.com/nvtphong/fabula/internal/platform/validate"
)

const (
	// FieldBookID is the payload field naming the book being read.
	FieldBookID = "book_id"
	// FieldChapterID is the payload field naming the chapter reached.
	FieldChapterID = "chapter_id"

	defaultHistoryLimit = 50
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

/*
RecordProgress moves the caller's bookmark for a book to the given chapter.
Repeat calls for the same book update the single existing row.
*/
func (service *Service) RecordProgress(context context.Context, userID, bookID, chapterID string) error {

	validator := &validate.Validator{}
	validator.Required(FieldBookID, bookID)
	validator.Required(FieldChapterID, chapterID)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.RecordProgress(context, userID, bookID, chapterID); err != nil {
		return err
	}

	service.logger.Debug("reading_progress_recorded",
		slog.String("user_id", userID),
		slog.String("book_id", bookID),
		slog.String("chapter_id", chapterID))

	return nil
}

func (service *Service) ListHistory(context context.Context, userID string) ([]*Entry, error) {
	return service.repo.ListHistory(context, userID, defaultHistoryLimit)
}

func (service *Service) DeleteEntry(context context.Context, userID, bookID string) error {
	return service.repo.DeleteEntry(context, userID, bookID)
}
