// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

/*
Package comment resolves discussion threads scoped to a book and optionally
one of its chapters. Comments are append-only through the API: there is no
edit or delete surface.
*/
package comment

import "time"

// Comment is one thread entry, denormalized with the author's public
// profile and, when chapter-scoped, the chapter's display context so the
// client never needs a second lookup.
type Comment struct {
	ID        string    `json:"id"`
	BookID    string    `json:"book_id"`
	ChapterID *string   `json:"chapter_id"`
	UserID    string    `json:"user_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`

	UserName   string  `json:"user_name"`
	UserAvatar *string `json:"user_avatar"`

	// Populated only for chapter-scoped comments.
	ChapterTitle *string `json:"chapter_title,omitempty"`
	ChapterOrder *int    `json:"chapter_order,omitempty"`
}
