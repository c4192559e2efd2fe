// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package links

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ascender/internal/platform/database/schema"
	"github.com/taibuivan/ascender/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed link store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Get(context context.Context, key string) (*Link, error) {
	table := schema.SystemPublicLink
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = $1`,
		table.Key, table.Value, table.UpdatedAt, table.Table, table.Key,
	)

	link := &Link{}
	err := repository.db.QueryRow(context, query, key).Scan(&link.Key, &link.Value, &link.UpdatedAt)
	if dberr.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, "Link")
	}
	return link, nil
}

func (repository *PostgresRepository) Set(context context.Context, link *Link) error {
	table := schema.SystemPublicLink
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, NOW())
		ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s, %s = NOW()
		RETURNING %s
	`,
		table.Table, table.Key, table.Value, table.UpdatedAt,
		table.Key, table.Value, table.Value, table.UpdatedAt,
		table.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, link.Key, link.Value).Scan(&link.UpdatedAt)
	return dberr.Wrap(err, "Link")
}
