// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package admin

import (
	"context"

	"github.com/nvtphong/fabula/internal/platform/sec"
)

type Repository interface {
	// CollectStats gathers the dashboard counters in one round trip.
	CollectStats(context context.Context) (*Stats, error)

	/*
		ListAccounts returns one page of accounts, newest first, with
		the total count.
	*/
	ListAccounts(context context.Context, limit, offset int) ([]*Account, int, error)

	/*
		SetAccountStatus updates a user's moderation status.

		Returns:
		  - error: apperr.NotFound if the user does not exist
	*/
	SetAccountStatus(context context.Context, userID string, status sec.AccountStatus) error

	// InsertFeedback stores a reader submission.
	InsertFeedback(context context.Context, feedback *Feedback) error

	// ListFeedback returns submissions newest first.
	ListFeedback(context context.Context, limit, offset int) ([]*Feedback, int, error)
}
