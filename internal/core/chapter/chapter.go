// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

/*
Package chapter manages the linear reading sequence of a book.

Chapters are ordered by a per-book integer (chapter_order) that is unique but
not assumed contiguous: deleted or renumbered chapters may leave gaps. The
navigator resolves a chapter together with its previous/next neighbours and
the full ordered index, so the reader UI renders the whole navigation state
from a single request.
*/
package chapter

import "time"

// Chapter represents a single installment of a book.
type Chapter struct {
	ID           string    `json:"id"`
	BookID       string    `json:"book_id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	ChapterOrder int       `json:"chapter_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Ref is the lightweight chapter descriptor used in the ordered index.
type Ref struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ChapterOrder int    `json:"chapter_order"`
}

// Reading is the fully resolved navigation view of a chapter.
//
// PrevChapterID and NextChapterID are nil at the respective ends of the
// sequence. AllChapters is always the complete index for the owning book,
// ascending by chapter order.
type Reading struct {
	ID            string  `json:"chapterId"`
	BookID        string  `json:"book_id"`
	Title         string  `json:"title"`
	Content       string  `json:"content"`
	ChapterOrder  int     `json:"chapterOrder"`
	PrevChapterID *string `json:"prevChapterId"`
	NextChapterID *string `json:"nextChapterId"`
	AllChapters   []Ref   `json:"allChapters"`
}
