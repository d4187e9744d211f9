// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package comment

import "context"

type Repository interface {
	/*
		Insert persists a comment with a server-assigned timestamp.
	*/
	Insert(context context.Context, comment *Comment) error

	/*
		ListByBook returns a book's comments newest-first, joined with
		author profile and chapter context. A non-nil chapterID narrows
		the thread to that chapter.
	*/
	ListByBook(context context.Context, bookID string, chapterID *string) ([]*Comment, error)

	/*
		BookExists reports whether a book row exists.
	*/
	BookExists(context context.Context, bookID string) (bool, error)

	/*
		ChapterBelongsToBook reports whether a chapter exists and is
		owned by the given book.
	*/
	ChapterBelongsToBook(context context.Context, chapterID, bookID string) (bool, error)
}
