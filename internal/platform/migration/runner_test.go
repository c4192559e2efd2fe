// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestPgx5URL verifies the scheme rewrite for every accepted form.
*/
func TestPgx5URL(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@db:5432/ascender":   "pgx5://u:p@db:5432/ascender",
		"postgresql://u:p@db:5432/ascender": "pgx5://u:p@db:5432/ascender",
		"pgx5://u:p@db:5432/ascender":       "pgx5://u:p@db:5432/ascender",
		"host=db dbname=ascender":           "host=db dbname=ascender",
	}

	for input, want := range tests {
		assert.Equal(t, want, pgx5URL(input), input)
	}
}

/*
TestResult_Applied verifies a no-op run is reported as unchanged.
*/
func TestResult_Applied(t *testing.T) {
	assert.False(t, Result{From: 1, To: 1}.Applied())
	assert.True(t, Result{From: 0, To: 1}.Applied())
}
