// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audit

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ascender/internal/platform/database/schema"
	"github.com/taibuivan/ascender/internal/platform/dberr"
	"github.com/taibuivan/ascender/internal/platform/postgres"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed audit store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Append writes the entry outside of any caller transaction.
func (repository *PostgresRepository) Append(context context.Context, entry *Entry) error {
	return Insert(context, repository.db, entry)
}

// Insert writes an entry through any querier, so a caller holding a
// transaction can make the audit row part of it.
func Insert(context context.Context, querier postgres.Querier, entry *Entry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
	`,
		schema.SystemAuditLog.Table,
		schema.SystemAuditLog.ID, schema.SystemAuditLog.ActorID, schema.SystemAuditLog.Action,
		schema.SystemAuditLog.TargetType, schema.SystemAuditLog.TargetID, schema.SystemAuditLog.Detail,
		schema.SystemAuditLog.CreatedAt,
	)

	_, err := querier.Exec(context, query,
		entry.ID, entry.ActorID, string(entry.Action), entry.TargetType, entry.TargetID, entry.Detail, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_audit_repo_insert_failed: %w", err)
	}
	return nil
}

/*
List returns a page of entries, newest first.

Description: Joins the actor's display name and uses COUNT(*) OVER() for the total.
*/
func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*Entry, int, error) {
	log, account := schema.SystemAuditLog, schema.UserAccount
	query := fmt.Sprintf(`
		SELECT
			l.%s, l.%s, COALESCE(a.%s, a.%s), l.%s, l.%s, l.%s, COALESCE(l.%s, ''), l.%s,
			COUNT(*) OVER() AS total
		FROM %s l
		LEFT JOIN %s a ON a.%s = l.%s
		ORDER BY l.%s DESC
		LIMIT $1 OFFSET $2
	`,
		log.ID, log.ActorID, account.DisplayName, account.Name, log.Action, log.TargetType, log.TargetID,
		log.Detail, log.CreatedAt,
		log.Table, account.Table, account.ID, log.ActorID, log.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Audit log")
	}
	defer rows.Close()

	entries := []*Entry{}
	var total int
	for rows.Next() {
		entry := &Entry{}
		var action string
		if err := rows.Scan(
			&entry.ID, &entry.ActorID, &entry.ActorName, &action, &entry.TargetType, &entry.TargetID,
			&entry.Detail, &entry.CreatedAt, &total,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "Audit log")
		}
		entry.Action = Action(action)
		entries = append(entries, entry)
	}

	return entries, total, dberr.Wrap(rows.Err(), "Audit log")
}
