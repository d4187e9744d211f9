// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package chapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nvtphong/fabula/internal/platform/apperr"
	"github.com/nvtphong/fabula/internal/platform/database/schema"
	"github.com/nvtphong/fabula/internal/platform/dberr"
)

// # PostgreSQL Repository

// postgresRepository implements the [Repository] interface using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed chapter store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// chapterSelect is the shared select list for full chapter rows.
func chapterSelect() string {
	return fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s, %s FROM %s`,
		schema.CoreChapter.ID, schema.CoreChapter.BookID, schema.CoreChapter.Title,
		schema.CoreChapter.Content, schema.CoreChapter.ChapterOrder,
		schema.CoreChapter.CreatedAt, schema.CoreChapter.UpdatedAt,
		schema.CoreChapter.Table,
	)
}

func scanChapter(row pgx.Row) (*Chapter, error) {
	var chapter Chapter
	err := row.Scan(
		&chapter.ID, &chapter.BookID, &chapter.Title, &chapter.Content,
		&chapter.ChapterOrder, &chapter.CreatedAt, &chapter.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Chapter")
		}
		return nil, fmt.Errorf("postgres: failed to scan chapter: %w", err)
	}
	return &chapter, nil
}

// # Navigation Queries

/*
FindByID returns a chapter with full content.
*/
func (repository *postgresRepository) FindByID(context context.Context, id string) (*Chapter, error) {
	query := fmt.Sprintf(`%s WHERE %s = $1`, chapterSelect(), schema.CoreChapter.ID)
	return scanChapter(repository.pool.QueryRow(context, query, id))
}

/*
FindFirst returns the chapter with the minimum order for a book.

Description: Resolved with ORDER BY + LIMIT 1 rather than MIN() so the full
row comes back in one query. A book with zero chapters yields NotFound; no
synthetic chapter is ever fabricated.
*/
func (repository *postgresRepository) FindFirst(context context.Context, bookID string) (*Chapter, error) {
	query := fmt.Sprintf(`%s WHERE %s = $1 ORDER BY %s ASC LIMIT 1`,
		chapterSelect(), schema.CoreChapter.BookID, schema.CoreChapter.ChapterOrder)
	return scanChapter(repository.pool.QueryRow(context, query, bookID))
}

/*
FindLatest returns the chapter with the maximum order for a book.
*/
func (repository *postgresRepository) FindLatest(context context.Context, bookID string) (*Chapter, error) {
	query := fmt.Sprintf(`%s WHERE %s = $1 ORDER BY %s DESC LIMIT 1`,
		chapterSelect(), schema.CoreChapter.BookID, schema.CoreChapter.ChapterOrder)
	return scanChapter(repository.pool.QueryRow(context, query, bookID))
}

/*
FindPrevID returns the neighbour below the given order, or nil.

Description: Orders may be non-contiguous, so the neighbour is "greatest
order strictly less than current", never "order minus one".
*/
func (repository *postgresRepository) FindPrevID(context context.Context, bookID string, order int) (*string, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1 AND %s < $2
		ORDER BY %s DESC
		LIMIT 1
	`,
		schema.CoreChapter.ID, schema.CoreChapter.Table,
		schema.CoreChapter.BookID, schema.CoreChapter.ChapterOrder,
		schema.CoreChapter.ChapterOrder,
	)
	return repository.neighbourID(context, query, bookID, order)
}

/*
FindNextID returns the neighbour above the given order, or nil.
*/
func (repository *postgresRepository) FindNextID(context context.Context, bookID string, order int) (*string, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1 AND %s > $2
		ORDER BY %s ASC
		LIMIT 1
	`,
		schema.CoreChapter.ID, schema.CoreChapter.Table,
		schema.CoreChapter.BookID, schema.CoreChapter.ChapterOrder,
		schema.CoreChapter.ChapterOrder,
	)
	return repository.neighbourID(context, query, bookID, order)
}

// neighbourID maps an absent neighbour to nil rather than an error.
func (repository *postgresRepository) neighbourID(context context.Context, query, bookID string, order int) (*string, error) {
	var id string
	err := repository.pool.QueryRow(context, query, bookID, order).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("postgres: failed to resolve neighbour chapter: %w", err)
	}
	return &id, nil
}

/*
ListRefs returns the ordered chapter index for a book.
*/
func (repository *postgresRepository) ListRefs(context context.Context, bookID string) ([]Ref, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
	`,
		schema.CoreChapter.ID, schema.CoreChapter.Title, schema.CoreChapter.ChapterOrder,
		schema.CoreChapter.Table,
		schema.CoreChapter.BookID,
		schema.CoreChapter.ChapterOrder,
	)

	rows, err := repository.pool.Query(context, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list chapter refs: %w", err)
	}
	defer rows.Close()

	refs := make([]Ref, 0)
	for rows.Next() {
		var ref Ref
		if err := rows.Scan(&ref.ID, &ref.Title, &ref.ChapterOrder); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan chapter ref: %w", err)
		}
		refs = append(refs, ref)
	}

	return refs, nil
}

// # Admin Mutations

/*
Create persists a new chapter. The (book, order) unique constraint turns
duplicate orders into a conflict error.
*/
func (repository *postgresRepository) Create(context context.Context, chapter *Chapter) error {

	now := time.Now()
	if chapter.CreatedAt.IsZero() {
		chapter.CreatedAt = now
	}
	chapter.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		schema.CoreChapter.Table,
		schema.CoreChapter.ID, schema.CoreChapter.BookID, schema.CoreChapter.Title,
		schema.CoreChapter.Content, schema.CoreChapter.ChapterOrder,
		schema.CoreChapter.CreatedAt, schema.CoreChapter.UpdatedAt,
	)

	_, err := repository.pool.Exec(context, query,
		chapter.ID, chapter.BookID, chapter.Title, chapter.Content,
		chapter.ChapterOrder, chapter.CreatedAt, chapter.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "create chapter")
	}

	return nil
}

/*
Update overwrites chapter metadata and content.
*/
func (repository *postgresRepository) Update(context context.Context, chapter *Chapter) error {

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = NOW()
		WHERE %s = $4
	`,
		schema.CoreChapter.Table,
		schema.CoreChapter.Title, schema.CoreChapter.Content,
		schema.CoreChapter.ChapterOrder, schema.CoreChapter.UpdatedAt,
		schema.CoreChapter.ID,
	)

	result, err := repository.pool.Exec(context, query,
		chapter.Title, chapter.Content, chapter.ChapterOrder, chapter.ID)
	if err != nil {
		return dberr.Wrap(err, "update chapter")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Chapter")
	}

	return nil
}

/*
Delete removes a chapter row.
*/
func (repository *postgresRepository) Delete(context context.Context, id string) error {

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CoreChapter.Table, schema.CoreChapter.ID)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete chapter: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Chapter")
	}

	return nil
}
