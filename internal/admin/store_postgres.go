// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package admin

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nvtphong/fabula/internal/platform/apperr"
	"github.com/nvtphong/fabula/internal/platform/database/schema"
	"github.com/nvtphong/fabula/internal/platform/dberr"
	"github.com/nvtphong/fabula/internal/platform/sec"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed admin store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

/*
CollectStats gathers all dashboard counters with scalar subqueries in one
statement.
*/
func (repository *postgresRepository) CollectStats(context context.Context) (*Stats, error) {

	query := fmt.Sprintf(`
		SELECT
			(SELECT COUNT(*) FROM %s),
			(SELECT COUNT(*) FROM %s),
			(SELECT COUNT(*) FROM %s),
			(SELECT COUNT(*) FROM %s),
			(SELECT COALESCE(SUM(%s), 0) FROM %s)
	`,
		schema.CoreBook.Table,
		schema.CoreChapter.Table,
		schema.UserAccount.Table,
		schema.SocialComment.Table,
		schema.CoreBook.Views, schema.CoreBook.Table,
	)

	stats := &Stats{}
	err := repository.pool.QueryRow(context, query).Scan(
		&stats.TotalBooks, &stats.TotalChapters, &stats.TotalUsers,
		&stats.TotalComments, &stats.TotalViews,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "collect stats")
	}

	return stats, nil
}

func (repository *postgresRepository) ListAccounts(context context.Context, limit, offset int) ([]*Account, int, error) {

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, COUNT(*) OVER() AS total_count
		FROM %s
		ORDER BY %s DESC
		LIMIT $1 OFFSET $2
	`,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
		schema.UserAccount.Role, schema.UserAccount.Status, schema.UserAccount.CreatedAt,
		schema.UserAccount.Table,
		schema.UserAccount.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list accounts")
	}
	defer rows.Close()

	accounts := make([]*Account, 0)
	var totalCount int

	for rows.Next() {
		account := &Account{}
		err := rows.Scan(
			&account.ID, &account.Username, &account.Email,
			&account.Role, &account.Status, &account.CreatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan account")
		}
		accounts = append(accounts, account)
	}

	return accounts, totalCount, rows.Err()
}

func (repository *postgresRepository) SetAccountStatus(context context.Context, userID string, status sec.AccountStatus) error {

	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.Status,
		schema.UserAccount.UpdatedAt, schema.UserAccount.ID)

	tag, err := repository.pool.Exec(context, query, userID, status)
	if err != nil {
		return dberr.Wrap(err, "set account status")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

func (repository *postgresRepository) InsertFeedback(context context.Context, feedback *Feedback) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING %s
	`,
		schema.SystemFeedback.Table,
		schema.SystemFeedback.ID, schema.SystemFeedback.UserID,
		schema.SystemFeedback.Subject, schema.SystemFeedback.Body,
		schema.SystemFeedback.CreatedAt,
		schema.SystemFeedback.CreatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		feedback.ID, feedback.UserID, feedback.Subject, feedback.Body,
	).Scan(&feedback.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "insert feedback")
	}

	return nil
}

func (repository *postgresRepository) ListFeedback(context context.Context, limit, offset int) ([]*Feedback, int, error) {

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, COUNT(*) OVER() AS total_count
		FROM %s
		ORDER BY %s DESC
		LIMIT $1 OFFSET $2
	`,
		schema.SystemFeedback.ID, schema.SystemFeedback.UserID,
		schema.SystemFeedback.Subject, schema.SystemFeedback.Body,
		schema.SystemFeedback.CreatedAt,
		schema.SystemFeedback.Table,
		schema.SystemFeedback.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list feedback")
	}
	defer rows.Close()

	items := make([]*Feedback, 0)
	var totalCount int

	for rows.Next() {
		item := &Feedback{}
		err := rows.Scan(&item.ID, &item.UserID, &item.Subject, &item.Body,
			&item.CreatedAt, &totalCount)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan feedback")
		}
		items = append(items, item)
	}

	return items, totalCount, rows.Err()
}
