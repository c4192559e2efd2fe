// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestNonZero verifies zero values become nil.
*/
func TestNonZero(t *testing.T) {
	assert.Nil(t, NonZero(""))
	assert.Nil(t, NonZero(0))

	name := NonZero("Rin")
	require.NotNil(t, name)
	assert.Equal(t, "Rin", *name)
}

/*
TestFallback verifies nil pointers yield the fallback.
*/
func TestFallback(t *testing.T) {
	assert.Equal(t, "default", Fallback(nil, "default"))
	assert.Equal(t, "set", Fallback(To("set"), "default"))
}
