// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package book

import "context"

// ListFilter narrows a catalog listing after any tag qualification.
type ListFilter struct {
	// Mode selects the coarse listing branch (see [Mode]).
	Mode Mode

	// IDs restricts the listing to a pre-qualified book id set.
	// Used by the tag-intersection filter. nil means unrestricted.
	IDs []string

	// Status filters by publication status when non-empty.
	Status Status

	// Sort selects the result ordering (see [Sort]).
	Sort Sort
}

// Repository defines the data access contract for the book catalogue.
type Repository interface {

	/*
		List returns one page of books matching the filter plus the total
		matching count.

		Parameters:
		  - context: context.Context
		  - filter: ListFilter (mode, id set, status, sort)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Book: One page of books, tags not yet attached
		  - int: Total matching books
		  - error: Storage failures
	*/
	List(context context.Context, filter ListFilter, limit, offset int) ([]*Book, int, error)

	/*
		FindIDsByTags returns the ids of books carrying ALL of the given
		tags. Tag identity is the normalized slug of the requested name.

		Returns:
		  - []string: Qualifying book ids (possibly empty)
		  - error: Storage failures
	*/
	FindIDsByTags(context context.Context, tagSlugs []string) ([]string, error)

	/*
		TagsForBooks returns the complete tag-name list for each of the
		given book ids in a single query.

		Returns:
		  - map[string][]string: book id -> tag names
		  - error: Storage failures
	*/
	TagsForBooks(context context.Context, bookIDs []string) (map[string][]string, error)

	/*
		FindByID returns the book with the given id, tags attached.

		Returns:
		  - *Book: Hydrated entity
		  - error: apperr.NotFound if absent
	*/
	FindByID(context context.Context, id string) (*Book, error)

	/*
		Search returns books whose title or author matches the query
		string, newest-first.
	*/
	Search(context context.Context, query string, limit, offset int) ([]*Book, int, error)

	/*
		IncrementViews atomically bumps the view counter for a book.
	*/
	IncrementViews(context context.Context, id string) error

	/*
		Create persists a new book and its tag associations in one
		transaction. Tags are upserted by normalized slug; the whole
		operation rolls back if any step fails.
	*/
	Create(context context.Context, book *Book, tagNames []string) error

	/*
		Update persists book metadata changes and replaces the tag
		associations in one transaction.

		Returns:
		  - error: apperr.NotFound if the book does not exist
	*/
	Update(context context.Context, book *Book, tagNames []string) error

	/*
		Delete removes a book. Chapters, ledgers, associations, and
		comments cascade at the schema level.

		Returns:
		  - error: apperr.NotFound if the book does not exist
	*/
	Delete(context context.Context, id string) error
}
