// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

/*
PostgreSQL implementation of the engagement ledgers.

Counter maintenance strategy: every mutating statement runs in a transaction
that ends by recomputing the affected aggregate (COUNT / AVG over the ledger)
onto the books row. Recomputing instead of incrementing means a crashed or
retried request can never leave the counter out of step with the rows.
*/
package engagement

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nvtphong/fabula/internal/platform/apperr"
	"github.com/nvtphong/fabula/internal/platform/database/schema"
	"github.com/nvtphong/fabula/internal/platform/dberr"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed engagement store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// rowQuerier is satisfied by both *pgxpool.Pool and pgx.Tx.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ensureBookExists resolves the book before any ledger write so a missing
// book surfaces as 404 instead of a foreign-key violation (which maps to 400).
func ensureBookExists(ctx context.Context, querier rowQuerier, bookID string) error {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1)`,
		schema.CoreBook.Table, schema.CoreBook.ID)

	var exists bool
	if err := querier.QueryRow(ctx, query, bookID).Scan(&exists); err != nil {
		return dberr.Wrap(err, "check book exists")
	}
	if !exists {
		return apperr.NotFound("Book")
	}
	return nil
}

/*
ToggleLike deletes the ledger row if present, inserts it otherwise, then
recomputes the book's like counter from the ledger. All three statements
share one transaction.
*/
func (repository *postgresRepository) ToggleLike(context context.Context, userID, bookID string) (bool, error) {

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return false, fmt.Errorf("postgres: failed to begin like toggle: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	if err := ensureBookExists(context, transaction, bookID); err != nil {
		return false, err
	}

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.EngagementBookLike.Table,
		schema.EngagementBookLike.UserID, schema.EngagementBookLike.BookID)

	tag, err := transaction.Exec(context, deleteQuery, userID, bookID)
	if err != nil {
		return false, dberr.Wrap(err, "toggle like")
	}

	liked := tag.RowsAffected() == 0
	if liked {
		insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
			schema.EngagementBookLike.Table,
			schema.EngagementBookLike.UserID, schema.EngagementBookLike.BookID)

		if _, err := transaction.Exec(context, insertQuery, userID, bookID); err != nil {
			return false, dberr.Wrap(err, "toggle like")
		}
	}

	recomputeQuery := fmt.Sprintf(`
		UPDATE %s SET %s = (SELECT COUNT(*) FROM %s WHERE %s = $1)
		WHERE %s = $1
	`,
		schema.CoreBook.Table, schema.CoreBook.Likes,
		schema.EngagementBookLike.Table, schema.EngagementBookLike.BookID,
		schema.CoreBook.ID,
	)

	updated, err := transaction.Exec(context, recomputeQuery, bookID)
	if err != nil {
		return false, dberr.Wrap(err, "recompute likes")
	}
	if updated.RowsAffected() == 0 {
		return false, apperr.NotFound("Book")
	}

	if err := transaction.Commit(context); err != nil {
		return false, fmt.Errorf("postgres: failed to commit like toggle: %w", err)
	}

	return liked, nil
}

func (repository *postgresRepository) AddFavorite(context context.Context, userID, bookID string) error {

	if err := ensureBookExists(context, repository.pool, bookID); err != nil {
		return err
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
		schema.EngagementFavorite.Table,
		schema.EngagementFavorite.UserID, schema.EngagementFavorite.BookID)

	_, err := repository.pool.Exec(context, query, userID, bookID)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.DuplicateState("Book already exists in favorites")
		}
		return dberr.Wrap(err, "add favorite")
	}

	return nil
}

// RemoveFavorite is idempotent: deleting an absent row is a no-op.
func (repository *postgresRepository) RemoveFavorite(context context.Context, userID, bookID string) error {

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.EngagementFavorite.Table,
		schema.EngagementFavorite.UserID, schema.EngagementFavorite.BookID)

	if _, err := repository.pool.Exec(context, query, userID, bookID); err != nil {
		return dberr.Wrap(err, "remove favorite")
	}

	return nil
}

func (repository *postgresRepository) ListFavorites(context context.Context, userID string) ([]*FavoriteBook, error) {

	query := fmt.Sprintf(`
		SELECT b.%s, b.%s, b.%s, b.%s, b.%s, f.%s
		FROM %s f
		JOIN %s b ON b.%s = f.%s
		WHERE f.%s = $1
		ORDER BY f.%s DESC
	`,
		schema.CoreBook.ID, schema.CoreBook.Title, schema.CoreBook.Author,
		schema.CoreBook.CoverURL, schema.CoreBook.Status,
		schema.EngagementFavorite.CreatedAt,
		schema.EngagementFavorite.Table,
		schema.CoreBook.Table, schema.CoreBook.ID, schema.EngagementFavorite.BookID,
		schema.EngagementFavorite.UserID,
		schema.EngagementFavorite.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list favorites")
	}
	defer rows.Close()

	favorites := make([]*FavoriteBook, 0)
	for rows.Next() {
		fav := &FavoriteBook{}
		err := rows.Scan(&fav.BookID, &fav.Title, &fav.Author,
			&fav.CoverURL, &fav.Status, &fav.FavoritedAt)
		if err != nil {
			return nil, dberr.Wrap(err, "scan favorite")
		}
		favorites = append(favorites, fav)
	}

	return favorites, rows.Err()
}

/*
UpsertRating writes the caller's score (one row per user/book pair) and
recomputes average_rating and rating_count from the ledger onto the book,
all inside one transaction.
*/
func (repository *postgresRepository) UpsertRating(context context.Context, userID, bookID string, score int) (*RatingSummary, error) {

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to begin rating upsert: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	if err := ensureBookExists(context, transaction, bookID); err != nil {
		return nil, err
	}

	upsertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		ON CONFLICT (%s, %s)
		DO UPDATE SET %s = EXCLUDED.%s, %s = NOW()
	`,
		schema.EngagementBookRating.Table,
		schema.EngagementBookRating.UserID, schema.EngagementBookRating.BookID,
		schema.EngagementBookRating.Score,
		schema.EngagementBookRating.UserID, schema.EngagementBookRating.BookID,
		schema.EngagementBookRating.Score, schema.EngagementBookRating.Score,
		schema.EngagementBookRating.UpdatedAt,
	)

	if _, err := transaction.Exec(context, upsertQuery, userID, bookID, score); err != nil {
		return nil, dberr.Wrap(err, "upsert rating")
	}

	recomputeQuery := fmt.Sprintf(`
		UPDATE %s SET
			%s = COALESCE((SELECT AVG(%s) FROM %s WHERE %s = $1), 0),
			%s = (SELECT COUNT(*) FROM %s WHERE %s = $1)
		WHERE %s = $1
		RETURNING %s, %s
	`,
		schema.CoreBook.Table,
		schema.CoreBook.AverageRating,
		schema.EngagementBookRating.Score, schema.EngagementBookRating.Table,
		schema.EngagementBookRating.BookID,
		schema.CoreBook.RatingCount,
		schema.EngagementBookRating.Table, schema.EngagementBookRating.BookID,
		schema.CoreBook.ID,
		schema.CoreBook.AverageRating, schema.CoreBook.RatingCount,
	)

	summary := &RatingSummary{}
	err = transaction.QueryRow(context, recomputeQuery, bookID).
		Scan(&summary.AverageRating, &summary.RatingCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Book")
		}
		return nil, dberr.Wrap(err, "recompute rating")
	}

	if err := transaction.Commit(context); err != nil {
		return nil, fmt.Errorf("postgres: failed to commit rating upsert: %w", err)
	}

	return summary, nil
}

func (repository *postgresRepository) GetState(context context.Context, userID, bookID string) (*State, error) {

	query := fmt.Sprintf(`
		SELECT
			EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND %s = $2),
			EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND %s = $2),
			(SELECT %s FROM %s WHERE %s = $1 AND %s = $2)
	`,
		schema.EngagementBookLike.Table,
		schema.EngagementBookLike.UserID, schema.EngagementBookLike.BookID,
		schema.EngagementFavorite.Table,
		schema.EngagementFavorite.UserID, schema.EngagementFavorite.BookID,
		schema.EngagementBookRating.Score, schema.EngagementBookRating.Table,
		schema.EngagementBookRating.UserID, schema.EngagementBookRating.BookID,
	)

	state := &State{}
	err := repository.pool.QueryRow(context, query, userID, bookID).
		Scan(&state.Liked, &state.Favorited, &state.Rating)
	if err != nil {
		return nil, dberr.Wrap(err, "get engagement state")
	}

	return state, nil
}
