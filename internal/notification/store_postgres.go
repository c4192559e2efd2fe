// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notification

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ascender/internal/platform/apperr"
	"github.com/taibuivan/ascender/internal/platform/database/schema"
	"github.com/taibuivan/ascender/internal/platform/dberr"
	"github.com/taibuivan/ascender/internal/platform/postgres"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed notification store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert writes a notification through any querier. The role request review
// calls it inside its transaction.
func Insert(context context.Context, querier postgres.Querier, notification *Notification) error {
	table := schema.UserNotification
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, FALSE, $6)
	`,
		table.Table, table.ID, table.UserID, table.Kind, table.Title, table.Message, table.Read, table.CreatedAt,
	)

	_, err := querier.Exec(context, query,
		notification.ID, notification.UserID, string(notification.Kind), notification.Title,
		notification.Message, notification.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_notification_repo_insert_failed: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) ListLatest(context context.Context, userID string, limit int) ([]*Notification, error) {
	table := schema.UserNotification
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC
		LIMIT $2
	`,
		table.ID, table.UserID, table.Kind, table.Title, table.Message, table.Read, table.CreatedAt,
		table.Table, table.UserID, table.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, userID, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "Notification")
	}
	defer rows.Close()

	notifications := []*Notification{}
	for rows.Next() {
		notification := &Notification{}
		var kind string
		if err := rows.Scan(
			&notification.ID, &notification.UserID, &kind, &notification.Title,
			&notification.Message, &notification.Read, &notification.CreatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "Notification")
		}
		notification.Kind = Kind(kind)
		notifications = append(notifications, notification)
	}

	return notifications, dberr.Wrap(rows.Err(), "Notification")
}

func (repository *PostgresRepository) CountUnread(context context.Context, userID string) (int, error) {
	table := schema.UserNotification
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1 AND NOT %s`, table.Table, table.UserID, table.Read)

	var count int
	if err := repository.db.QueryRow(context, query, userID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "Notification")
	}
	return count, nil
}

func (repository *PostgresRepository) MarkRead(context context.Context, id, userID string) error {
	table := schema.UserNotification
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE WHERE %s = $1 AND %s = $2`,
		table.Table, table.Read, table.ID, table.UserID,
	)

	tag, err := repository.db.Exec(context, query, id, userID)
	if err != nil {
		return dberr.Wrap(err, "Notification")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Notification")
	}
	return nil
}

func (repository *PostgresRepository) MarkAllRead(context context.Context, userID string) (int64, error) {
	table := schema.UserNotification
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE WHERE %s = $1 AND NOT %s`,
		table.Table, table.Read, table.UserID, table.Read,
	)

	tag, err := repository.db.Exec(context, query, userID)
	if err != nil {
		return 0, dberr.Wrap(err, "Notification")
	}
	return tag.RowsAffected(), nil
}
