// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package rolerequest

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ascender/internal/notification"
	"github.com/taibuivan/ascender/internal/platform/database/schema"
	"github.com/taibuivan/ascender/internal/platform/dberr"
	"github.com/taibuivan/ascender/internal/platform/moderation"
	"github.com/taibuivan/ascender/internal/platform/postgres"
	"github.com/taibuivan/ascender/internal/platform/sec"
	"github.com/taibuivan/ascender/internal/system/audit"
	"github.com/taibuivan/ascender/pkg/slice"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func requestColumns(alias string) string {
	table := schema.ModerationRoleRequest
	columns := []string{
		table.ID, table.UserID, table.Type, table.Message, table.Status,
		table.ReviewerID, table.ReviewerMessage, table.ReviewedAt, table.CreatedAt,
	}
	if alias != "" {
		for i, column := range columns {
			columns[i] = alias + "." + column
		}
	}
	return strings.Join(columns, ", ")
}

func scanRequest(row pgx.Row, request *RoleRequest, extra ...any) error {
	var requestType, status string
	destinations := []any{
		&request.ID, &request.UserID, &requestType, &request.Message, &status,
		&request.ReviewerID, &request.ReviewerMessage, &request.ReviewedAt, &request.CreatedAt,
	}
	err := row.Scan(append(destinations, extra...)...)
	request.Type = Type(requestType)
	request.Status = moderation.Status(status)
	return err
}

func (repository *PostgresRepository) Submit(context context.Context, request *RoleRequest) error {
	table, account := schema.ModerationRoleRequest, schema.UserAccount
	stampQuery := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		account.Table, account.LastRoleRequestAt, account.UpdatedAt, account.ID,
	)
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, table.Table, table.ID, table.UserID, table.Type, table.Message, table.Status, table.CreatedAt)

	err := postgres.WithTx(context, repository.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(context, stampQuery, request.UserID, request.CreatedAt); err != nil {
			return err
		}
		_, err := tx.Exec(context, insertQuery,
			request.ID, request.UserID, string(request.Type), request.Message, string(request.Status), request.CreatedAt,
		)
		return err
	})
	return dberr.Wrap(err, "RoleRequest")
}

func (repository *PostgresRepository) LatestPending(context context.Context, userID string) (*RoleRequest, error) {
	table := schema.ModerationRoleRequest
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2 ORDER BY %s DESC LIMIT 1`,
		requestColumns(""), table.Table, table.UserID, table.Status, table.CreatedAt,
	)

	request := &RoleRequest{}
	err := scanRequest(repository.db.QueryRow(context, query, userID, string(moderation.StatusPending)), request)
	if dberr.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, "RoleRequest")
	}
	return request, nil
}

func (repository *PostgresRepository) List(context context.Context, status moderation.Status, limit, offset int) ([]*RoleRequest, int, error) {
	table, account := schema.ModerationRoleRequest, schema.UserAccount

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COALESCE(a.%s, a.%s), COUNT(*) OVER() AS total
		FROM %s r
		JOIN %s a ON a.%s = r.%s`,
		requestColumns("r"), account.DisplayName, account.Name,
		table.Table,
		account.Table, account.ID, table.UserID,
	))

	args := []any{}
	argID := 1
	if status != "" {
		queryBuilder.WriteString(fmt.Sprintf(" WHERE r.%s = $%d", table.Status, argID))
		args = append(args, string(status))
		argID++
	}
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY r.%s DESC LIMIT $%d OFFSET $%d", table.CreatedAt, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "RoleRequest")
	}
	defer rows.Close()

	requests := []*RoleRequest{}
	var total int
	for rows.Next() {
		request := &RoleRequest{}
		if err := scanRequest(rows, request, &request.UserName, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "RoleRequest")
		}
		requests = append(requests, request)
	}

	return requests, total, dberr.Wrap(rows.Err(), "RoleRequest")
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*RoleRequest, error) {
	table := schema.ModerationRoleRequest
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, requestColumns(""), table.Table, table.ID)

	request := &RoleRequest{}
	if err := scanRequest(repository.db.QueryRow(context, query, id), request); err != nil {
		return nil, dberr.Wrap(err, "RoleRequest")
	}
	return request, nil
}

/*
ApplyReview writes the decision, the promotion, the notification and the audit
entry in one transaction. Nothing is written if any step fails.
*/
func (repository *PostgresRepository) ApplyReview(context context.Context, plan *ReviewPlan) (*RoleRequest, error) {
	table, account := schema.ModerationRoleRequest, schema.UserAccount
	reviewQuery := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5
		WHERE %s = $1
		RETURNING %s
	`,
		table.Table, table.Status, table.ReviewerID, table.ReviewerMessage, table.ReviewedAt,
		table.ID,
		requestColumns(""),
	)
	promoteQuery := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1 AND %s = ANY($3)`,
		account.Table, account.Role, account.UpdatedAt, account.ID, account.Role,
	)

	reviewed := &RoleRequest{}
	err := postgres.WithTx(context, repository.db, func(tx pgx.Tx) error {
		row := tx.QueryRow(context, reviewQuery,
			plan.RequestID, string(plan.Status), plan.ReviewerID, plan.ReviewerMessage, plan.ReviewedAt,
		)
		if err := scanRequest(row, reviewed); err != nil {
			return dberr.Wrap(err, "RoleRequest")
		}

		if plan.Promote != nil {
			from := slice.Map(plan.PromoteFrom, func(role sec.Role) string { return string(role) })
			if _, err := tx.Exec(context, promoteQuery, plan.UserID, string(*plan.Promote), from); err != nil {
				return fmt.Errorf("postgres_rolerequest_repo_promote_failed: %w", err)
			}
		}

		if err := notification.Insert(context, tx, plan.Notification); err != nil {
			return err
		}
		return audit.Insert(context, tx, plan.Audit)
	})
	if err != nil {
		return nil, dberr.Wrap(err, "RoleRequest")
	}
	return reviewed, nil
}
