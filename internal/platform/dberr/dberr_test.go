// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/ascender/internal/platform/apperr"
)

/*
TestWrap_Classification maps driver errors onto API error codes.
*/
func TestWrap_Classification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), "NOT_FOUND"},
		{"unique", &pgconn.PgError{Code: "23505"}, "CONFLICT"},
		{"foreign key", &pgconn.PgError{Code: "23503"}, "NOT_FOUND"},
		{"other", errors.New("broken pipe"), "INTERNAL_ERROR"},
		{"already classified", apperr.Forbidden("nope"), "FORBIDDEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, apperr.HasCode(Wrap(tt.err, "Report"), tt.code))
		})
	}

	assert.NoError(t, Wrap(nil, "Report"))
}
