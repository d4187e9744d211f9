// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package library

import "context"

type Repository interface {
	/*
		RecordProgress upserts the (user, book) bookmark to the given
		chapter with the current time.

		Returns:
		  - error: apperr.ValidationError if the chapter does not
		    belong to the book or either does not exist
	*/
	RecordProgress(context context.Context, userID, bookID, chapterID string) error

	/*
		ListHistory returns the user's bookmarks, most recently read
		first, joined with book and chapter context.
	*/
	ListHistory(context context.Context, userID string, limit int) ([]*Entry, error)

	/*
		DeleteEntry removes one bookmark. Removing an absent entry is
		not an error.
	*/
	DeleteEntry(context context.Context, userID, bookID string) error
}
