// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package ads

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
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed ad store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func adColumns() string {
	return strings.Join(schema.SystemAd.Columns(), ", ")
}

func scanAd(row pgx.Row) (*Ad, error) {
	ad := &Ad{}
	err := row.Scan(
		&ad.ID, &ad.Title, &ad.ImageURL, &ad.TargetURL,
		&ad.Placement, &ad.IsActive, &ad.CreatedAt, &ad.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Ad")
		}
		return nil, fmt.Errorf("postgres: failed to scan ad: %w", err)
	}
	return ad, nil
}

func (repository *postgresRepository) ListActive(context context.Context, placement *Placement) ([]*Ad, error) {

	var builder strings.Builder
	args := []any{}

	builder.WriteString(fmt.Sprintf(`SELECT %s FROM %s WHERE %s = TRUE`,
		adColumns(), schema.SystemAd.Table, schema.SystemAd.IsActive))

	if placement != nil {
		args = append(args, *placement)
		builder.WriteString(fmt.Sprintf(" AND %s = $%d", schema.SystemAd.Placement, len(args)))
	}

	builder.WriteString(fmt.Sprintf(" ORDER BY %s DESC", schema.SystemAd.CreatedAt))

	return repository.queryAds(context, builder.String(), args...)
}

func (repository *postgresRepository) ListAll(context context.Context) ([]*Ad, error) {

	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s DESC`,
		adColumns(), schema.SystemAd.Table, schema.SystemAd.CreatedAt)

	return repository.queryAds(context, query)
}

func (repository *postgresRepository) queryAds(context context.Context, query string, args ...any) ([]*Ad, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list ads")
	}
	defer rows.Close()

	result := make([]*Ad, 0)
	for rows.Next() {
		ad, err := scanAd(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, ad)
	}

	return result, rows.Err()
}

func (repository *postgresRepository) FindByID(context context.Context, id string) (*Ad, error) {

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		adColumns(), schema.SystemAd.Table, schema.SystemAd.ID)

	return scanAd(repository.pool.QueryRow(context, query, id))
}

func (repository *postgresRepository) Create(context context.Context, ad *Ad) error {

	now := time.Now()
	ad.CreatedAt = now
	ad.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		schema.SystemAd.Table,
		schema.SystemAd.ID, schema.SystemAd.Title, schema.SystemAd.ImageURL,
		schema.SystemAd.TargetURL, schema.SystemAd.Placement, schema.SystemAd.IsActive,
		schema.SystemAd.CreatedAt, schema.SystemAd.UpdatedAt,
	)

	_, err := repository.pool.Exec(context, query,
		ad.ID, ad.Title, ad.ImageURL, ad.TargetURL,
		ad.Placement, ad.IsActive, ad.CreatedAt, ad.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "create ad")
	}

	return nil
}

func (repository *postgresRepository) Update(context context.Context, ad *Ad) error {

	ad.UpdatedAt = time.Now()

	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7
		WHERE %s = $1
	`,
		schema.SystemAd.Table,
		schema.SystemAd.Title, schema.SystemAd.ImageURL, schema.SystemAd.TargetURL,
		schema.SystemAd.Placement, schema.SystemAd.IsActive, schema.SystemAd.UpdatedAt,
		schema.SystemAd.ID,
	)

	tag, err := repository.pool.Exec(context, query,
		ad.ID, ad.Title, ad.ImageURL, ad.TargetURL,
		ad.Placement, ad.IsActive, ad.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "update ad")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Ad")
	}

	return nil
}

func (repository *postgresRepository) Delete(context context.Context, id string) error {

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.SystemAd.Table, schema.SystemAd.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete ad")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Ad")
	}

	return nil
}
