// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestConfig_Defaults verifies sizing fallbacks and the session parameters.
*/
func TestConfig_Defaults(t *testing.T) {
	poolConfig, err := Config("postgres://ascender:secret@db:5432/ascender", Options{MinConns: 50})
	require.NoError(t, err)

	assert.Equal(t, int32(20), poolConfig.MaxConns)
	assert.Equal(t, int32(0), poolConfig.MinConns)
	assert.Equal(t, "ascender", poolConfig.ConnConfig.RuntimeParams["application_name"])
	assert.Equal(t, "30000", poolConfig.ConnConfig.RuntimeParams["statement_timeout"])
	assert.Equal(t, "ascender", poolConfig.ConnConfig.Database)
}

/*
TestConfig_Overrides verifies explicit options win.
*/
func TestConfig_Overrides(t *testing.T) {
	poolConfig, err := Config("postgres://db/ascender", Options{MaxConns: 5, MinConns: 1, StatementTimeout: 1500 * time.Millisecond})
	require.NoError(t, err)

	assert.Equal(t, int32(5), poolConfig.MaxConns)
	assert.Equal(t, int32(1), poolConfig.MinConns)
	assert.Equal(t, "1500", poolConfig.ConnConfig.RuntimeParams["statement_timeout"])

	_, err = Config("postgres://%zz", Options{})
	assert.Error(t, err)
}
