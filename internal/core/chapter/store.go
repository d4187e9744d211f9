// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package chapter

import "context"

// # Chapter Data Access

// Repository defines the data access contract for chapters.
type Repository interface {

	/*
		FindByID returns the chapter with the given id.

		Returns:
		  - *Chapter: Hydrated entity including content
		  - error: apperr.NotFound if missing
	*/
	FindByID(context context.Context, id string) (*Chapter, error)

	/*
		FindFirst returns the chapter with the minimum chapter order for
		a book.

		Returns:
		  - *Chapter: The opening chapter
		  - error: apperr.NotFound if the book has no chapters
	*/
	FindFirst(context context.Context, bookID string) (*Chapter, error)

	/*
		FindLatest returns the chapter with the maximum chapter order for
		a book.

		Returns:
		  - *Chapter: The most recent chapter
		  - error: apperr.NotFound if the book has no chapters
	*/
	FindLatest(context context.Context, bookID string) (*Chapter, error)

	/*
		FindPrevID returns the id of the chapter with the greatest order
		strictly below the given order within the same book, or nil at
		the start of the sequence.
	*/
	FindPrevID(context context.Context, bookID string, order int) (*string, error)

	/*
		FindNextID returns the id of the chapter with the least order
		strictly above the given order within the same book, or nil at
		the end of the sequence.
	*/
	FindNextID(context context.Context, bookID string, order int) (*string, error)

	/*
		ListRefs returns the complete ordered chapter index for a book,
		ascending by chapter order.
	*/
	ListRefs(context context.Context, bookID string) ([]Ref, error)

	/*
		Create persists a new chapter.

		Returns:
		  - error: apperr.Conflict if the (book, order) pair is taken
	*/
	Create(context context.Context, chapter *Chapter) error

	/*
		Update persists changes to an existing chapter.

		Returns:
		  - error: apperr.NotFound if the chapter does not exist
	*/
	Update(context context.Context, chapter *Chapter) error

	/*
		Delete removes a chapter.

		Returns:
		  - error: apperr.NotFound if the chapter does not exist
	*/
	Delete(context context.Context, id string) error
}
