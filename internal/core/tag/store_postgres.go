// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package tag

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nvtphong/fabula/internal/platform/database/schema"
	"github.com/nvtphong/fabula/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListTags(context context.Context) ([]*Tag, error) {
	query := fmt.Sprintf(`
		SELECT t.%s, t.%s, t.%s, t.%s, COUNT(bt.%s) AS book_count
		FROM %s t
		LEFT JOIN %s bt ON bt.%s = t.%s
		GROUP BY t.%s
		ORDER BY t.%s ASC
	`,
		schema.CoreTag.ID, schema.CoreTag.Name, schema.CoreTag.Slug, schema.CoreTag.CreatedAt,
		schema.CoreBookTag.BookID,
		schema.CoreTag.Table,
		schema.CoreBookTag.Table, schema.CoreBookTag.TagID, schema.CoreTag.ID,
		schema.CoreTag.ID,
		schema.CoreTag.Name,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_tags")
	}
	defer rows.Close()

	tags := make([]*Tag, 0)
	for rows.Next() {
		t := &Tag{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt, &t.BookCount); err != nil {
			return nil, dberr.Wrap(err, "scan_tag")
		}
		tags = append(tags, t)
	}

	return tags, rows.Err()
}

func (repository *PostgresRepository) GetTagBySlug(context context.Context, slug string) (*Tag, error) {
	query := fmt.Sprintf(`
		SELECT t.%s, t.%s, t.%s, t.%s, COUNT(bt.%s) AS book_count
		FROM %s t
		LEFT JOIN %s bt ON bt.%s = t.%s
		WHERE t.%s = $1
		GROUP BY t.%s
	`,
		schema.CoreTag.ID, schema.CoreTag.Name, schema.CoreTag.Slug, schema.CoreTag.CreatedAt,
		schema.CoreBookTag.BookID,
		schema.CoreTag.Table,
		schema.CoreBookTag.Table, schema.CoreBookTag.TagID, schema.CoreTag.ID,
		schema.CoreTag.Slug,
		schema.CoreTag.ID,
	)

	t := &Tag{}
	err := repository.db.QueryRow(context, query, slug).Scan(
		&t.ID, &t.Name, &t.Slug, &t.CreatedAt, &t.BookCount,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_tag_by_slug")
	}

	return t, nil
}
