// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorite

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ascender/internal/platform/database/schema"
	"github.com/taibuivan/ascender/internal/platform/dberr"
	"github.com/taibuivan/ascender/internal/platform/moderation"
	"github.com/taibuivan/ascender/internal/platform/postgres"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context, userID string, limit int) ([]*Favorite, error) {
	favorite, work := schema.LibraryFavorite, schema.CoreWork
	query := fmt.Sprintf(`
		SELECT w.%s, w.%s, w.%s, w.%s, f.%s
		FROM %s f
		JOIN %s w ON w.%s = f.%s
		WHERE f.%s = $1 AND w.%s = $2
		ORDER BY f.%s DESC
		LIMIT $3
	`,
		work.ID, work.Title, work.Slug, work.CoverURL, favorite.CreatedAt,
		favorite.Table,
		work.Table, work.ID, favorite.WorkID,
		favorite.UserID, work.Status,
		favorite.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, userID, string(moderation.StatusApproved), limit)
	if err != nil {
		return nil, dberr.Wrap(err, "Favorite")
	}
	defer rows.Close()

	favorites := []*Favorite{}
	for rows.Next() {
		item := &Favorite{}
		if err := rows.Scan(&item.WorkID, &item.Title, &item.Slug, &item.CoverURL, &item.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "Favorite")
		}
		favorites = append(favorites, item)
	}

	return favorites, dberr.Wrap(rows.Err(), "Favorite")
}

func (repository *PostgresRepository) Exists(context context.Context, userID, workID string) (bool, error) {
	table := schema.LibraryFavorite
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`, table.Table, table.UserID, table.WorkID)

	var exists bool
	if err := repository.db.QueryRow(context, query, userID, workID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_favorite_repo_exists_failed: %w", err)
	}
	return exists, nil
}

func (repository *PostgresRepository) Toggle(context context.Context, userID, workID string) (bool, error) {
	table := schema.LibraryFavorite
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, table.Table, table.UserID, table.WorkID)
	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, NOW()) ON CONFLICT DO NOTHING`,
		table.Table, table.UserID, table.WorkID, table.CreatedAt,
	)

	var saved bool
	err := postgres.WithTx(context, repository.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(context, deleteQuery, userID, workID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() > 0 {
			return nil
		}

		if _, err := tx.Exec(context, insertQuery, userID, workID); err != nil {
			return err
		}
		saved = true
		return nil
	})
	return saved, dberr.Wrap(err, "Work")
}
