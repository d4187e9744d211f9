// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package comment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nvtphong/fabula/internal/platform/database/schema"
	"github.com/nvtphong/fabula/internal/platform/dberr"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed comment store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (repository *postgresRepository) Insert(context context.Context, comment *Comment) error {

	now := time.Now()
	comment.CreatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		schema.SocialComment.Table,
		schema.SocialComment.ID, schema.SocialComment.UserID,
		schema.SocialComment.BookID, schema.SocialComment.ChapterID,
		schema.SocialComment.Body,
		schema.SocialComment.CreatedAt, schema.SocialComment.UpdatedAt,
	)

	_, err := repository.pool.Exec(context, query,
		comment.ID, comment.UserID, comment.BookID, comment.ChapterID,
		comment.Body, now, now,
	)
	if err != nil {
		return dberr.Wrap(err, "insert comment")
	}

	return nil
}

/*
ListByBook joins each comment with its author's public profile and the
owning chapter's display context in a single query.
*/
func (repository *postgresRepository) ListByBook(context context.Context, bookID string, chapterID *string) ([]*Comment, error) {

	var builder strings.Builder
	args := []any{bookID}

	builder.WriteString(fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, c.%s, c.%s, c.%s,
		       u.%s, u.%s,
		       ch.%s, ch.%s
		FROM %s c
		JOIN %s u ON u.%s = c.%s
		LEFT JOIN %s ch ON ch.%s = c.%s
		WHERE c.%s = $1
	`,
		schema.SocialComment.ID, schema.SocialComment.BookID,
		schema.SocialComment.ChapterID, schema.SocialComment.UserID,
		schema.SocialComment.Body, schema.SocialComment.CreatedAt,
		schema.UserAccount.Username, schema.UserAccount.AvatarURL,
		schema.CoreChapter.Title, schema.CoreChapter.ChapterOrder,
		schema.SocialComment.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.SocialComment.UserID,
		schema.CoreChapter.Table, schema.CoreChapter.ID, schema.SocialComment.ChapterID,
		schema.SocialComment.BookID,
	))

	if chapterID != nil {
		args = append(args, *chapterID)
		builder.WriteString(fmt.Sprintf(" AND c.%s = $%d", schema.SocialComment.ChapterID, len(args)))
	}

	builder.WriteString(fmt.Sprintf(" ORDER BY c.%s DESC", schema.SocialComment.CreatedAt))

	rows, err := repository.pool.Query(context, builder.String(), args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list comments")
	}
	defer rows.Close()

	comments := make([]*Comment, 0)
	for rows.Next() {
		c := &Comment{}
		err := rows.Scan(
			&c.ID, &c.BookID, &c.ChapterID, &c.UserID, &c.Body, &c.CreatedAt,
			&c.UserName, &c.UserAvatar,
			&c.ChapterTitle, &c.ChapterOrder,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan comment")
		}
		comments = append(comments, c)
	}

	return comments, rows.Err()
}

func (repository *postgresRepository) BookExists(context context.Context, bookID string) (bool, error) {

	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1)`,
		schema.CoreBook.Table, schema.CoreBook.ID)

	var exists bool
	if err := repository.pool.QueryRow(context, query, bookID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "check book exists")
	}

	return exists, nil
}

func (repository *postgresRepository) ChapterBelongsToBook(context context.Context, chapterID, bookID string) (bool, error) {

	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.CoreChapter.Table, schema.CoreChapter.ID, schema.CoreChapter.BookID)

	var belongs bool
	if err := repository.pool.QueryRow(context, query, chapterID, bookID).Scan(&belongs); err != nil {
		return false, dberr.Wrap(err, "check chapter ownership")
	}

	return belongs, nil
}
