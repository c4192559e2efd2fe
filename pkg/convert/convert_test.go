// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestToIntD verifies malformed numbers fall back to the default.
*/
func TestToIntD(t *testing.T) {
	assert.Equal(t, 3, ToIntD("3", 1))
	assert.Equal(t, 1, ToIntD("", 1))
	assert.Equal(t, 1, ToIntD("three", 1))
	assert.Equal(t, -2, ToIntD("-2", 1))
}

/*
TestToOptionalBool verifies absent and unparsable flags stay nil.
*/
func TestToOptionalBool(t *testing.T) {
	assert.Nil(t, ToOptionalBool(""))
	assert.Nil(t, ToOptionalBool("maybe"))

	value := ToOptionalBool("0")
	require.NotNil(t, value)
	assert.False(t, *value)

	assert.True(t, ToBool("1"))
	assert.False(t, ToBool("yes"))
}
