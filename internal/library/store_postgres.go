// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package library

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nvtphong/fabula/internal/platform/apperr"
	"github.com/nvtphong/fabula/internal/platform/database/schema"
	"github.com/nvtphong/fabula/internal/platform/dberr"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed history store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

/*
RecordProgress upserts the bookmark. Chapter ownership is enforced by the
INSERT ... SELECT guard: when the chapter does not belong to the book,
nothing matches and no row is written.
*/
func (repository *postgresRepository) RecordProgress(context context.Context, userID, bookID, chapterID string) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		SELECT $1, c.%s, c.%s, NOW()
		FROM %s c
		WHERE c.%s = $3 AND c.%s = $2
		ON CONFLICT (%s, %s)
		DO UPDATE SET %s = EXCLUDED.%s, %s = NOW()
	`,
		schema.LibraryReadingHistory.Table,
		schema.LibraryReadingHistory.UserID, schema.LibraryReadingHistory.BookID,
		schema.LibraryReadingHistory.ChapterID, schema.LibraryReadingHistory.ReadAt,
		schema.CoreChapter.BookID, schema.CoreChapter.ID,
		schema.CoreChapter.Table,
		schema.CoreChapter.ID, schema.CoreChapter.BookID,
		schema.LibraryReadingHistory.UserID, schema.LibraryReadingHistory.BookID,
		schema.LibraryReadingHistory.ChapterID, schema.LibraryReadingHistory.ChapterID,
		schema.LibraryReadingHistory.ReadAt,
	)

	tag, err := repository.pool.Exec(context, query, userID, bookID, chapterID)
	if err != nil {
		return dberr.Wrap(err, "record reading progress")
	}
	if tag.RowsAffected() == 0 {
		return apperr.ValidationError("Chapter does not belong to this book")
	}

	return nil
}

func (repository *postgresRepository) ListHistory(context context.Context, userID string, limit int) ([]*Entry, error) {

	query := fmt.Sprintf(`
		SELECT h.%s, b.%s, b.%s, h.%s, c.%s, c.%s, h.%s
		FROM %s h
		JOIN %s b ON b.%s = h.%s
		JOIN %s c ON c.%s = h.%s
		WHERE h.%s = $1
		ORDER BY h.%s DESC
		LIMIT $2
	`,
		schema.LibraryReadingHistory.BookID,
		schema.CoreBook.Title, schema.CoreBook.CoverURL,
		schema.LibraryReadingHistory.ChapterID,
		schema.CoreChapter.Title, schema.CoreChapter.ChapterOrder,
		schema.LibraryReadingHistory.ReadAt,
		schema.LibraryReadingHistory.Table,
		schema.CoreBook.Table, schema.CoreBook.ID, schema.LibraryReadingHistory.BookID,
		schema.CoreChapter.Table, schema.CoreChapter.ID, schema.LibraryReadingHistory.ChapterID,
		schema.LibraryReadingHistory.UserID,
		schema.LibraryReadingHistory.ReadAt,
	)

	rows, err := repository.pool.Query(context, query, userID, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "list reading history")
	}
	defer rows.Close()

	entries := make([]*Entry, 0)
	for rows.Next() {
		entry := &Entry{}
		err := rows.Scan(
			&entry.BookID, &entry.BookTitle, &entry.BookCover,
			&entry.ChapterID, &entry.ChapterTitle, &entry.ChapterOrder,
			&entry.ReadAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan history entry")
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (repository *postgresRepository) DeleteEntry(context context.Context, userID, bookID string) error {

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.LibraryReadingHistory.Table,
		schema.LibraryReadingHistory.UserID, schema.LibraryReadingHistory.BookID)

	if _, err := repository.pool.Exec(context, query, userID, bookID); err != nil {
		return dberr.Wrap(err, "delete history entry")
	}

	return nil
}
