// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

/*
Package admin implements the operator console: platform statistics, account
moderation (ban/unban) and reader feedback triage.

Content management (books, chapters, ads) lives with its owning domain
package; this package only carries the cross-domain operator concerns.
*/
package admin

import (
	"time"

	"github.com/nvtphong/fabula/internal/platform/sec"
)

// Stats is the dashboard headline card.
type Stats struct {
	TotalBooks    int `json:"total_books"`
	TotalChapters int `json:"total_chapters"`
	TotalUsers    int `json:"total_users"`
	TotalComments int `json:"total_comments"`
	TotalViews    int `json:"total_views"`
}

// Account is the moderation view of a user: profile without credentials.
type Account struct {
	ID        string            `json:"id"`
	Username  string            `json:"username"`
	Email     string            `json:"email"`
	Role      sec.UserRole      `json:"role"`
	Status    sec.AccountStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

// AccountPage is one page of the moderation list.
type AccountPage struct {
	Accounts    []*Account `json:"accounts"`
	TotalUsers  int        `json:"total_users"`
	TotalPages  int        `json:"total_pages"`
	CurrentPage int        `json:"current_page"`
}

// Feedback is one reader-submitted report or suggestion.
type Feedback struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
