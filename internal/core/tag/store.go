// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package tag

import "context"

type Repository interface {
	/*
		ListTags returns every tag ordered by name, each annotated with
		the number of books currently linked to it.
	*/
	ListTags(context context.Context) ([]*Tag, error)

	/*
		GetTagBySlug resolves a single tag by its canonical slug.

		Returns:
		  - error: apperr.NotFound if no tag carries the slug
	*/
	GetTagBySlug(context context.Context, slug string) (*Tag, error)
}
