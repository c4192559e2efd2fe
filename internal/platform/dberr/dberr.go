// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/ascender/internal/platform/apperr"
)

// SQLSTATE codes the repositories react to.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// IsNotFound reports whether err is pgx's no-rows sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgError *pgconn.PgError
	return errors.As(err, &pgError) && pgError.Code == codeUniqueViolation
}

// IsForeignKeyViolation reports whether err references a missing parent row.
func IsForeignKeyViolation(err error) bool {
	var pgError *pgconn.PgError
	return errors.As(err, &pgError) && pgError.Code == codeForeignKeyViolation
}

// Wrap classifies a database error into an [apperr.AppError].
//
// resource names the entity in NOT_FOUND and CONFLICT messages.
func Wrap(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case apperr.IsAppError(err):
		return err
	case IsNotFound(err):
		return apperr.NotFound(resource)
	case IsUniqueViolation(err):
		return apperr.Conflict(resource + " already exists")
	case IsForeignKeyViolation(err):
		return apperr.NotFound(resource)
	default:
		return apperr.Internal(err)
	}
}
