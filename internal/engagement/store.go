// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package engagement

import "context"

type Repository interface {
	/*
		ToggleLike flips the like ledger row for (userID, bookID) and
		recomputes the book's like counter from the ledger in the same
		transaction.

		Returns:
		  - bool: true when the toggle resulted in a liked state
		  - error: apperr.ValidationError if the book does not exist
	*/
	ToggleLike(context context.Context, userID, bookID string) (bool, error)

	/*
		AddFavorite inserts a favorite ledger row.

		Returns:
		  - error: apperr.DuplicateState if the pair already exists
	*/
	AddFavorite(context context.Context, userID, bookID string) error

	/*
		RemoveFavorite deletes a favorite ledger row. Removing a pair
		that does not exist is not an error.
	*/
	RemoveFavorite(context context.Context, userID, bookID string) error

	/*
		ListFavorites returns the caller's favorited books, most
		recently favorited first.
	*/
	ListFavorites(context context.Context, userID string) ([]*FavoriteBook, error)

	/*
		UpsertRating writes the caller's score for a book (insert or
		update) and recomputes average_rating and rating_count from the
		ledger onto the book row, all in one transaction.
	*/
	UpsertRating(context context.Context, userID, bookID string, score int) (*RatingSummary, error)

	/*
		GetState returns the caller's like/favorite/rating snapshot for
		a book. Absent rows yield the zero state, not an error.
	*/
	GetState(context context.Context, userID, bookID string) (*State, error)
}
