// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ascender/internal/platform/database/schema"
	"github.com/taibuivan/ascender/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListByWork(context context.Context, workID string, limit, offset int) ([]*Comment, int, error) {
	comment, user := schema.SocialComment, schema.UserAccount
	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, COALESCE(u.%s, u.%s), u.%s, c.%s, c.%s, COUNT(*) OVER() AS total
		FROM %s c
		JOIN %s u ON u.%s = c.%s
		WHERE c.%s = $1 AND c.%s IS NULL
		ORDER BY c.%s DESC
		LIMIT $2 OFFSET $3
	`,
		comment.ID, comment.WorkID, comment.AuthorID, user.DisplayName, user.Name, user.Role, comment.Content, comment.CreatedAt,
		comment.Table,
		user.Table, user.ID, comment.AuthorID,
		comment.WorkID, comment.DeletedAt,
		comment.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, workID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Comment")
	}
	defer rows.Close()

	comments := []*Comment{}
	var total int
	for rows.Next() {
		item := &Comment{}
		if err := rows.Scan(&item.ID, &item.WorkID, &item.AuthorID, &item.AuthorName, &item.AuthorRole, &item.Content, &item.CreatedAt, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "Comment")
		}
		comments = append(comments, item)
	}

	return comments, total, dberr.Wrap(rows.Err(), "Comment")
}

func (repository *PostgresRepository) Create(context context.Context, item *Comment) error {
	table := schema.SocialComment
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING %s
	`, table.Table, table.ID, table.WorkID, table.AuthorID, table.Content, table.CreatedAt, table.CreatedAt)

	err := repository.db.QueryRow(context, query, item.ID, item.WorkID, item.AuthorID, item.Content).Scan(&item.CreatedAt)
	if dberr.IsForeignKeyViolation(err) {
		return dberr.Wrap(err, "Work")
	}
	return dberr.Wrap(err, "Comment")
}

func (repository *PostgresRepository) SoftDelete(context context.Context, id string) (*Comment, error) {
	table := schema.SocialComment
	query := fmt.Sprintf(`
		UPDATE %s SET %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s, %s, %s, %s, %s, %s
	`,
		table.Table, table.DeletedAt,
		table.ID, table.DeletedAt,
		table.ID, table.WorkID, table.AuthorID, table.Content, table.CreatedAt, table.DeletedAt,
	)

	item := &Comment{}
	err := repository.db.QueryRow(context, query, id).Scan(&item.ID, &item.WorkID, &item.AuthorID, &item.Content, &item.CreatedAt, &item.DeletedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "Comment")
	}
	return item, nil
}
