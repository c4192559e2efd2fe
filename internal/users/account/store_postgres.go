// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ascender/internal/platform/database/schema"
	"github.com/taibuivan/ascender/internal/platform/dberr"
	"github.com/taibuivan/ascender/internal/platform/sec"
	"github.com/taibuivan/ascender/pkg/uuid"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed account store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// userColumns is the select list matched by [scanUser].
var userColumns = strings.Join(schema.UserAccount.Columns(), ", ")

func scanUser(row pgx.Row, user *User) error {
	var role string
	err := row.Scan(
		&user.ID, &user.ExternalID, &user.Name, &user.Email, &user.DisplayName, &user.AvatarURL, &role,
		&user.Banned, &user.BannedTotal, &user.LastRoleRequestAt, &user.LastSignedIn, &user.CreatedAt, &user.UpdatedAt,
	)
	user.Role = sec.Role(role)
	return err
}

// # Retrieval

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		userColumns, schema.UserAccount.Table, schema.UserAccount.ID,
	)

	user := &User{}
	if err := scanUser(repository.db.QueryRow(context, query, id), user); err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return user, nil
}

/*
List returns a filtered page of accounts.

Description: A UUID search term matches the id exactly; anything else is an
ILIKE on name and display name. COUNT(*) OVER() carries the total.
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*User, int, error) {
	table := schema.UserAccount

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total FROM %s WHERE TRUE`, userColumns, table.Table))

	args := []any{}
	argID := 1

	if search := strings.TrimSpace(filter.Search); search != "" {
		if uuid.Valid(search) {
			queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", table.ID, argID))
			args = append(args, search)
		} else {
			queryBuilder.WriteString(fmt.Sprintf(" AND (%s ILIKE $%d OR %s ILIKE $%d)", table.Name, argID, table.DisplayName, argID))
			args = append(args, "%"+search+"%")
		}
		argID++
	}

	if filter.Role != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", table.Role, argID))
		args = append(args, string(filter.Role))
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s DESC LIMIT $%d OFFSET $%d", table.CreatedAt, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "User")
	}
	defer rows.Close()

	users := []*User{}
	var total int
	for rows.Next() {
		user := &User{}
		var role string
		if err := rows.Scan(
			&user.ID, &user.ExternalID, &user.Name, &user.Email, &user.DisplayName, &user.AvatarURL, &role,
			&user.Banned, &user.BannedTotal, &user.LastRoleRequestAt, &user.LastSignedIn, &user.CreatedAt, &user.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "User")
		}
		user.Role = sec.Role(role)
		users = append(users, user)
	}

	return users, total, dberr.Wrap(rows.Err(), "User")
}

// # Mutations

func (repository *PostgresRepository) UpsertByExternalID(context context.Context, user *User) error {
	table := schema.UserAccount
	query := fmt.Sprintf(`
		INSERT INTO %[1]s AS existing (%[2]s, %[3]s, %[4]s, %[5]s, %[6]s, %[7]s, %[8]s, %[9]s, %[10]s)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW(), NOW())
		ON CONFLICT (%[3]s) DO UPDATE SET
			%[4]s = EXCLUDED.%[4]s,
			%[5]s = EXCLUDED.%[5]s,
			%[7]s = CASE WHEN EXCLUDED.%[7]s = 'super_admin' THEN EXCLUDED.%[7]s ELSE existing.%[7]s END,
			%[8]s = NOW(),
			%[10]s = NOW()
		RETURNING %[11]s
	`,
		table.Table, table.ID, table.ExternalID, table.Name, table.Email, table.AvatarURL, table.Role,
		table.LastSignedIn, table.CreatedAt, table.UpdatedAt, userColumns,
	)

	return dberr.Wrap(scanUser(repository.db.QueryRow(context, query,
		user.ID, user.ExternalID, user.Name, user.Email, user.AvatarURL, string(user.Role),
	), user), "User")
}

func (repository *PostgresRepository) UpdateProfile(context context.Context, id, displayName, avatarURL string) (*User, error) {
	table := schema.UserAccount
	query := fmt.Sprintf(`
		UPDATE %s SET %s = NULLIF($2, ''), %s = NULLIF($3, ''), %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		table.Table, table.DisplayName, table.AvatarURL, table.UpdatedAt, table.ID, userColumns,
	)

	user := &User{}
	if err := scanUser(repository.db.QueryRow(context, query, id, displayName, avatarURL), user); err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return user, nil
}

func (repository *PostgresRepository) UpdateRole(context context.Context, id string, role sec.Role) (*User, error) {
	table := schema.UserAccount
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1 RETURNING %s`,
		table.Table, table.Role, table.UpdatedAt, table.ID, userColumns,
	)

	user := &User{}
	if err := scanUser(repository.db.QueryRow(context, query, id, string(role)), user); err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return user, nil
}

func (repository *PostgresRepository) UpdateBan(context context.Context, id string, banned, bannedTotal bool) (*User, error) {
	table := schema.UserAccount
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = NOW() WHERE %s = $1 RETURNING %s`,
		table.Table, table.Banned, table.BannedTotal, table.UpdatedAt, table.ID, userColumns,
	)

	user := &User{}
	if err := scanUser(repository.db.QueryRow(context, query, id, banned, bannedTotal), user); err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return user, nil
}
