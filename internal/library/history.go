// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

/*
Package library tracks each reader's progress. One row per (user, book)
remembers the last chapter visited; recording progress again for the same
book moves the bookmark instead of growing the history.
*/
package library

import "time"

// Entry is one reading-history row joined with book and chapter context
// for direct display in a "continue reading" rail.
type Entry struct {
	BookID       string    `json:"book_id"`
	BookTitle    string    `json:"book_title"`
	BookCover    string    `json:"book_cover"`
	ChapterID    string    `json:"chapter_id"`
	ChapterTitle string    `json:"chapter_title"`
	ChapterOrder int       `json:"chapter_order"`
	ReadAt       time.Time `json:"read_at"`
}
