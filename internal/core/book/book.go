// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

/*
Package book defines the core catalogue entities of the Fabula platform.

It manages the lifecycle of serialized stories, including metadata,
publication status, and the derived engagement counters shown in listings.

Core Responsibility:

  - Catalogue: Defines publication statuses (Ongoing, Completed, Paused).
  - Discovery: Composes tag, status, sort, and pagination filters into listings.
  - Analytics: Carries view/like/rating counters derived from the engagement ledgers.

This package acts as the source of truth for all story-level data models.
*/
package book

import "time"

// # Domain Enums

// Status represents the publication status of a book.
type Status string

const (
	// StatusOngoing indicates the story is actively updating.
	StatusOngoing Status = "ongoing"

	// StatusCompleted indicates no further chapters are expected.
	StatusCompleted Status = "completed"

	// StatusPaused indicates the story is on hold indefinitely.
	StatusPaused Status = "paused"
)

// IsValid reports whether s is a recognised [Status] value.
func (s Status) IsValid() bool {
	switch s {
	case StatusOngoing, StatusCompleted, StatusPaused:
		return true
	}
	return false
}

// # Catalog Filters

// Mode is a coarse catalog filter, distinct from tag/status/sort filters.
type Mode string

const (
	// ModeNone applies no coarse filter; the default listing is newest-first.
	ModeNone Mode = ""

	// ModeNew selects books with at least one chapter, ordered by the
	// creation time of their most recent chapter.
	ModeNew Mode = "new"

	// ModeCompleted selects completed books, newest-first.
	ModeCompleted Mode = "completed"
)

// Sort identifies a second-stage ordering for catalog listings.
type Sort string

const (
	SortAZ     Sort = "az"     // Title ascending.
	SortViews  Sort = "views"  // View counter descending.
	SortRating Sort = "rating" // Average rating descending.
	SortNew    Sort = "new"    // Creation time descending (default).
)

// CatalogParams carries the full set of listing inputs accepted by the
// catalog endpoint. Zero values mean "not filtered".
type CatalogParams struct {
	Mode   Mode
	Tags   []string
	Status Status
	Sort   Sort
	Page   int
	Limit  int
}

// # Entities

// Book represents a serialized story in the catalogue.
//
// # Counters
//
// Views, Likes, AverageRating, and RatingCount are derived values. They are
// recomputed from the engagement ledgers on every mutating ledger operation
// and must never be edited directly.
type Book struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Description string  `json:"description"`
	CoverURL    string  `json:"cover_url,omitempty"`
	Status      Status  `json:"status"`

	Views         int64   `json:"views"`
	Likes         int64   `json:"likes"`
	AverageRating float64 `json:"average_rating"`
	RatingCount   int64   `json:"rating_count"`

	// Tags carries the complete resolved tag-name list, independent of
	// which tags were used to filter the listing.
	Tags []string `json:"tags"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CatalogPage is the result of a catalog listing query.
type CatalogPage struct {
	Books      []*Book `json:"books"`
	TotalBooks int     `json:"totalBooks"`
	TotalPages int     `json:"totalPages"`
	Page       int     `json:"currentPage"`
}
