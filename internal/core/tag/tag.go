// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

// Package tag exposes the read side of the catalogue tag vocabulary.
// Tag rows are created and linked by the book package during book writes;
// this package only lists and resolves them.
package tag

import "time"

// Tag represents a categorization label applied to books. Slug is the
// canonical identity used by catalogue filters.
type Tag struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	BookCount int       `json:"book_count"`
	CreatedAt time.Time `json:"-"`
}
