// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package like

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ascender/internal/platform/database/schema"
	"github.com/taibuivan/ascender/internal/platform/dberr"
	"github.com/taibuivan/ascender/internal/platform/postgres"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Count(context context.Context, workID string) (int, error) {
	table := schema.SocialLike
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, table.Table, table.WorkID)

	var count int
	if err := repository.db.QueryRow(context, query, workID).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres_like_repo_count_failed: %w", err)
	}
	return count, nil
}

func (repository *PostgresRepository) Exists(context context.Context, workID, userID string) (bool, error) {
	table := schema.SocialLike
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`, table.Table, table.WorkID, table.UserID)

	var exists bool
	if err := repository.db.QueryRow(context, query, workID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_like_repo_exists_failed: %w", err)
	}
	return exists, nil
}

// Toggle deletes the like if present, otherwise inserts it, inside one transaction.
func (repository *PostgresRepository) Toggle(context context.Context, workID, userID string) (bool, error) {
	table := schema.SocialLike
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, table.Table, table.WorkID, table.UserID)
	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, NOW()) ON CONFLICT DO NOTHING`,
		table.Table, table.WorkID, table.UserID, table.CreatedAt,
	)

	var liked bool
	err := postgres.WithTx(context, repository.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(context, deleteQuery, workID, userID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() > 0 {
			liked = false
			return nil
		}

		if _, err := tx.Exec(context, insertQuery, workID, userID); err != nil {
			return err
		}
		liked = true
		return nil
	})
	return liked, dberr.Wrap(err, "Work")
}
