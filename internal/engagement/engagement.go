// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

/*
Package engagement records per-user like, favorite and rating state against
books. Every row is keyed by (user_id, book_id); the aggregate counters on
the books table (likes, average_rating, rating_count) are derived from these
ledgers and recomputed inside the same transaction as every mutation, so the
counters can never drift from the rows that back them.
*/
package engagement

import "time"

// State is the caller's own engagement snapshot for a single book.
type State struct {
	Liked     bool `json:"liked"`
	Favorited bool `json:"favorited"`
	Rating    *int `json:"rating"`
}

// FavoriteBook is a book summary joined with the moment it was favorited.
type FavoriteBook struct {
	BookID      string    `json:"book_id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	CoverURL    string    `json:"cover_url"`
	Status      string    `json:"status"`
	FavoritedAt time.Time `json:"favorited_at"`
}

// RatingSummary is the recomputed aggregate returned after a rating upsert.
type RatingSummary struct {
	AverageRating float64 `json:"average_rating"`
	RatingCount   int     `json:"rating_count"`
}
