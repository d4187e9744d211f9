// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

/*
Package book provides the PostgreSQL implementation for the catalogue's data access.

It leans on a few Postgres features to keep discovery fast:
  - Window Functions: COUNT(*) OVER() returns totals without a second query.
  - GROUP BY / HAVING: computes the all-tags intersection filter in one pass.
  - ON CONFLICT upserts: tag find-or-create is a single idempotent statement.
  - ACID Transactions: book writes and their tag associations commit together.
*/
package book

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nvtphong/fabula/internal/platform/apperr"
	"github.com/nvtphong/fabula/internal/platform/database/schema"
	"github.com/nvtphong/fabula/internal/platform/dberr"
	slugpkg "github.com/nvtphong/fabula/pkg/slug"
)

// # PostgreSQL Repository

// postgresRepository implements the [Repository] interface using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed book store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// bookColumns returns the prefixed select list shared by every book query.
func bookColumns(alias string) string {
	cols := schema.CoreBook.Columns()
	prefixed := make([]string, len(cols))
	for i, col := range cols {
		prefixed[i] = alias + "." + col
	}
	return strings.Join(prefixed, ", ")
}

// scanBook hydrates one Book from a row whose select list is [bookColumns].
func scanBook(row pgx.Row, extra ...any) (*Book, error) {
	var book Book
	targets := []any{
		&book.ID, &book.Title, &book.Author, &book.Description, &book.CoverURL,
		&book.Status, &book.Views, &book.Likes, &book.AverageRating,
		&book.RatingCount, &book.CreatedAt, &book.UpdatedAt,
	}
	targets = append(targets, extra...)

	if err := row.Scan(targets...); err != nil {
		return nil, err
	}

	book.Tags = []string{}
	return &book, nil
}

// # Catalog Listing

/*
List retrieves one page of books for the catalog.

Description: The mode branch decides the base query shape. ModeNew joins the
latest-chapter activity per book; everything else filters and sorts the plain
books table, optionally restricted to a pre-qualified id set.

Parameters:
  - context: context.Context
  - filter: ListFilter
  - limit: int
  - offset: int

Returns:
  - []*Book: One page of books
  - int: Total matching count
*/
func (repository *postgresRepository) List(context context.Context, filter ListFilter, limit, offset int) ([]*Book, int, error) {

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	switch filter.Mode {
	case ModeNew:
		// "New" means "has at least one chapter", ordered by the most
		// recent chapter's creation time. Tie-break on book id for
		// deterministic pagination.
		queryBuilder.WriteString(fmt.Sprintf(`
			SELECT %s, COUNT(*) OVER() AS total_count
			FROM %s b
			JOIN (
				SELECT %s, MAX(%s) AS latest_chapter_at
				FROM %s
				GROUP BY %s
			) c ON c.%s = b.%s
			ORDER BY c.latest_chapter_at DESC, b.%s ASC
		`,
			bookColumns("b"), schema.CoreBook.Table,
			schema.CoreChapter.BookID, schema.CoreChapter.CreatedAt,
			schema.CoreChapter.Table, schema.CoreChapter.BookID,
			schema.CoreChapter.BookID, schema.CoreBook.ID,
			schema.CoreBook.ID,
		))

	case ModeCompleted:
		queryBuilder.WriteString(fmt.Sprintf(`
			SELECT %s, COUNT(*) OVER() AS total_count
			FROM %s b
			WHERE b.%s = '%s'
			ORDER BY b.%s DESC
		`,
			bookColumns("b"), schema.CoreBook.Table,
			schema.CoreBook.Status, StatusCompleted,
			schema.CoreBook.CreatedAt,
		))

	default:
		queryBuilder.WriteString(fmt.Sprintf(`
			SELECT %s, COUNT(*) OVER() AS total_count
			FROM %s b
			WHERE 1=1
		`, bookColumns("b"), schema.CoreBook.Table))

		// Restrict to the tag-qualified id set if present.
		if filter.IDs != nil {
			queryBuilder.WriteString(fmt.Sprintf(" AND b.%s = ANY($%d)", schema.CoreBook.ID, argID))
			args = append(args, filter.IDs)
			argID++
		}

		if filter.Status != "" {
			queryBuilder.WriteString(fmt.Sprintf(" AND b.%s = $%d", schema.CoreBook.Status, argID))
			args = append(args, filter.Status)
			argID++
		}

		queryBuilder.WriteString(orderClause(filter.Sort))
	}

	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list books: %w", err)
	}
	defer rows.Close()

	books := make([]*Book, 0)
	var totalCount int

	for rows.Next() {
		book, err := scanBook(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan book: %w", err)
		}
		books = append(books, book)
	}

	// The window total rides on returned rows, so a page past the end yields
	// zero rows and a zero count. Re-count separately so totals stay correct.
	if len(books) == 0 && offset > 0 {
		countQuery, countArgs := countListQuery(filter)
		if err := repository.pool.QueryRow(context, countQuery, countArgs...).Scan(&totalCount); err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to count books: %w", err)
		}
	}

	return books, totalCount, nil
}

// countListQuery builds the total-count statement whose filter branches
// mirror [postgresRepository.List] exactly.
func countListQuery(filter ListFilter) (string, []any) {

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	switch filter.Mode {
	case ModeNew:
		queryBuilder.WriteString(fmt.Sprintf(`SELECT COUNT(DISTINCT %s) FROM %s`,
			schema.CoreChapter.BookID, schema.CoreChapter.Table))

	case ModeCompleted:
		queryBuilder.WriteString(fmt.Sprintf(`SELECT COUNT(*) FROM %s b WHERE b.%s = '%s'`,
			schema.CoreBook.Table, schema.CoreBook.Status, StatusCompleted))

	default:
		queryBuilder.WriteString(fmt.Sprintf(`SELECT COUNT(*) FROM %s b WHERE 1=1`,
			schema.CoreBook.Table))

		if filter.IDs != nil {
			queryBuilder.WriteString(fmt.Sprintf(" AND b.%s = ANY($%d)", schema.CoreBook.ID, argID))
			args = append(args, filter.IDs)
			argID++
		}

		if filter.Status != "" {
			queryBuilder.WriteString(fmt.Sprintf(" AND b.%s = $%d", schema.CoreBook.Status, argID))
			args = append(args, filter.Status)
			argID++
		}
	}

	return queryBuilder.String(), args
}

// orderClause maps a [Sort] value onto the second-stage ORDER BY.
func orderClause(sort Sort) string {
	switch sort {
	case SortAZ:
		return fmt.Sprintf(" ORDER BY b.%s ASC", schema.CoreBook.Title)
	case SortViews:
		return fmt.Sprintf(" ORDER BY b.%s DESC", schema.CoreBook.Views)
	case SortRating:
		return fmt.Sprintf(" ORDER BY b.%s DESC", schema.CoreBook.AverageRating)
	default:
		return fmt.Sprintf(" ORDER BY b.%s DESC", schema.CoreBook.CreatedAt)
	}
}

// # Tag Qualification

/*
FindIDsByTags computes the tag-intersection filter.

Description: A book qualifies only if it carries every requested tag. The
association rows are grouped per book and the distinct matched-tag count must
equal the number of requested tags (AND semantics, not OR).
*/
func (repository *postgresRepository) FindIDsByTags(context context.Context, tagSlugs []string) ([]string, error) {

	query := fmt.Sprintf(`
		SELECT bt.%s
		FROM %s bt
		JOIN %s t ON t.%s = bt.%s
		WHERE t.%s = ANY($1)
		GROUP BY bt.%s
		HAVING COUNT(DISTINCT t.%s) = $2
	`,
		schema.CoreBookTag.BookID,
		schema.CoreBookTag.Table,
		schema.CoreTag.Table, schema.CoreTag.ID, schema.CoreBookTag.TagID,
		schema.CoreTag.Slug,
		schema.CoreBookTag.BookID,
		schema.CoreTag.Slug,
	)

	rows, err := repository.pool.Query(context, query, tagSlugs, len(tagSlugs))
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to qualify books by tags: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan qualified book id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

/*
TagsForBooks fetches all (book_id, tag_name) pairs for the given ids in one
query so the catalog page can attach complete tag lists without N+1 lookups.
*/
func (repository *postgresRepository) TagsForBooks(context context.Context, bookIDs []string) (map[string][]string, error) {

	result := make(map[string][]string, len(bookIDs))
	if len(bookIDs) == 0 {
		return result, nil
	}

	query := fmt.Sprintf(`
		SELECT bt.%s, t.%s
		FROM %s bt
		JOIN %s t ON t.%s = bt.%s
		WHERE bt.%s = ANY($1)
		ORDER BY t.%s ASC
	`,
		schema.CoreBookTag.BookID, schema.CoreTag.Name,
		schema.CoreBookTag.Table,
		schema.CoreTag.Table, schema.CoreTag.ID, schema.CoreBookTag.TagID,
		schema.CoreBookTag.BookID,
		schema.CoreTag.Name,
	)

	rows, err := repository.pool.Query(context, query, bookIDs)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to fetch book tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookID, tagName string
		if err := rows.Scan(&bookID, &tagName); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan book tag: %w", err)
		}
		result[bookID] = append(result[bookID], tagName)
	}

	return result, nil
}

// # Single Book Access

/*
FindByID returns a single book with its tag list attached.
*/
func (repository *postgresRepository) FindByID(context context.Context, id string) (*Book, error) {

	query := fmt.Sprintf(`SELECT %s FROM %s b WHERE b.%s = $1`,
		bookColumns("b"), schema.CoreBook.Table, schema.CoreBook.ID)

	book, err := scanBook(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Book")
		}
		return nil, fmt.Errorf("postgres: failed to find book by id: %w", err)
	}

	tags, err := repository.TagsForBooks(context, []string{book.ID})
	if err != nil {
		return nil, err
	}
	if names, ok := tags[book.ID]; ok {
		book.Tags = names
	}

	return book, nil
}

/*
Search matches books by title or author substring, newest-first.
*/
func (repository *postgresRepository) Search(context context.Context, search string, limit, offset int) ([]*Book, int, error) {

	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s b
		WHERE b.%s ILIKE $1 OR b.%s ILIKE $1
		ORDER BY b.%s DESC
		LIMIT $2 OFFSET $3
	`,
		bookColumns("b"), schema.CoreBook.Table,
		schema.CoreBook.Title, schema.CoreBook.Author,
		schema.CoreBook.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, "%"+search+"%", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to search books: %w", err)
	}
	defer rows.Close()

	books := make([]*Book, 0)
	var totalCount int

	for rows.Next() {
		book, err := scanBook(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan search result: %w", err)
		}
		books = append(books, book)
	}

	// Same window-total caveat as List: re-count when the page is empty.
	if len(books) == 0 && offset > 0 {
		if err := repository.pool.QueryRow(context, countSearchQuery(), "%"+search+"%").Scan(&totalCount); err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to count search results: %w", err)
		}
	}

	return books, totalCount, nil
}

// countSearchQuery builds the total-count statement matching Search's filter.
func countSearchQuery() string {
	return fmt.Sprintf(`SELECT COUNT(*) FROM %s b WHERE b.%s ILIKE $1 OR b.%s ILIKE $1`,
		schema.CoreBook.Table, schema.CoreBook.Title, schema.CoreBook.Author)
}

/*
IncrementViews atomically bumps the view counter.

Description: A direct relative UPDATE avoids read-modify-write races under
concurrent detail views.
*/
func (repository *postgresRepository) IncrementViews(context context.Context, id string) error {

	query := fmt.Sprintf(`UPDATE %s SET %s = %s + 1 WHERE %s = $1`,
		schema.CoreBook.Table, schema.CoreBook.Views, schema.CoreBook.Views, schema.CoreBook.ID)

	_, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to increment book views: %w", err)
	}

	return nil
}

// # Admin Mutations

/*
Create persists a book and its tag associations in one transaction.

Description: Tags are upserted by normalized slug (unique constraint +
ON CONFLICT) so concurrent creates with the same new tag cannot race, then
associated through the junction table. Any failure rolls the whole write back.
*/
func (repository *postgresRepository) Create(context context.Context, book *Book, tagNames []string) error {

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin book create: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	now := time.Now()
	if book.CreatedAt.IsZero() {
		book.CreatedAt = now
	}
	book.UpdatedAt = now

	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		schema.CoreBook.Table,
		schema.CoreBook.ID, schema.CoreBook.Title, schema.CoreBook.Author,
		schema.CoreBook.Description, schema.CoreBook.CoverURL, schema.CoreBook.Status,
		schema.CoreBook.CreatedAt, schema.CoreBook.UpdatedAt,
	)

	_, err = transaction.Exec(context, insertQuery,
		book.ID, book.Title, book.Author, book.Description,
		book.CoverURL, book.Status, book.CreatedAt, book.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "create book")
	}

	if err := repository.associateTags(context, transaction, book.ID, tagNames); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit book create: %w", err)
	}

	book.Tags = normalizeTagNames(tagNames)
	return nil
}

/*
Update persists metadata changes and replaces the tag associations.
*/
func (repository *postgresRepository) Update(context context.Context, book *Book, tagNames []string) error {

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin book update: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	updateQuery := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $6
	`,
		schema.CoreBook.Table,
		schema.CoreBook.Title, schema.CoreBook.Author, schema.CoreBook.Description,
		schema.CoreBook.CoverURL, schema.CoreBook.Status, schema.CoreBook.UpdatedAt,
		schema.CoreBook.ID,
	)

	result, err := transaction.Exec(context, updateQuery,
		book.Title, book.Author, book.Description, book.CoverURL, book.Status, book.ID,
	)
	if err != nil {
		return dberr.Wrap(err, "update book")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Book")
	}

	// Replace associations wholesale; the incoming list is authoritative.
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CoreBookTag.Table, schema.CoreBookTag.BookID)
	if _, err := transaction.Exec(context, deleteQuery, book.ID); err != nil {
		return fmt.Errorf("postgres: failed to clear book tags: %w", err)
	}

	if err := repository.associateTags(context, transaction, book.ID, tagNames); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit book update: %w", err)
	}

	book.Tags = normalizeTagNames(tagNames)
	return nil
}

/*
Delete removes a book row. Chapters, ledger rows, tag associations, and
comments are removed by ON DELETE CASCADE constraints.
*/
func (repository *postgresRepository) Delete(context context.Context, id string) error {

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CoreBook.Table, schema.CoreBook.ID)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete book: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Book")
	}

	return nil
}

// associateTags upserts each tag by slug and links it to the book.
// Runs inside the caller's transaction.
func (repository *postgresRepository) associateTags(context context.Context, transaction pgx.Tx, bookID string, tagNames []string) error {

	upsertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s
		RETURNING %s
	`,
		schema.CoreTag.Table, schema.CoreTag.Name, schema.CoreTag.Slug,
		schema.CoreTag.Slug, schema.CoreTag.Name, schema.CoreTag.Name,
		schema.CoreTag.ID,
	)

	linkQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, schema.CoreBookTag.Table, schema.CoreBookTag.BookID, schema.CoreBookTag.TagID)

	seen := make(map[string]bool, len(tagNames))
	for _, name := range tagNames {
		clean := strings.TrimSpace(name)
		tagSlug := slugpkg.From(clean)
		if tagSlug == "" || seen[tagSlug] {
			continue
		}
		seen[tagSlug] = true

		var tagID int
		if err := transaction.QueryRow(context, upsertQuery, clean, tagSlug).Scan(&tagID); err != nil {
			return fmt.Errorf("postgres: failed to upsert tag %q: %w", clean, err)
		}

		if _, err := transaction.Exec(context, linkQuery, bookID, tagID); err != nil {
			return fmt.Errorf("postgres: failed to associate tag %q: %w", clean, err)
		}
	}

	return nil
}

// normalizeTagNames trims and de-duplicates a tag name list by slug,
// preserving the first spelling of each tag.
func normalizeTagNames(tagNames []string) []string {
	seen := make(map[string]bool, len(tagNames))
	result := make([]string, 0, len(tagNames))
	for _, name := range tagNames {
		clean := strings.TrimSpace(name)
		tagSlug := slugpkg.From(clean)
		if tagSlug == "" || seen[tagSlug] {
			continue
		}
		seen[tagSlug] = true
		result = append(result, clean)
	}
	return result
}
