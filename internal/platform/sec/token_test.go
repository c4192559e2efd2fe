// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestGenerateSecureToken verifies session ids are 64 hex chars and unique.
*/
func TestGenerateSecureToken(t *testing.T) {
	first, err := GenerateSecureToken(SessionTokenBytes)
	require.NoError(t, err)
	second, err := GenerateSecureToken(SessionTokenBytes)
	require.NoError(t, err)

	assert.Len(t, first, 64)
	assert.NotEqual(t, first, second)
	assert.True(t, IsSessionToken(first))
	assert.False(t, IsSessionToken("short"))
	assert.False(t, IsSessionToken(first[:63]+"z"))
}

/*
TestIPHasher verifies digests are stable, short and keyed.
*/
func TestIPHasher(t *testing.T) {
	hasher := NewIPHasher("secret-one")
	other := NewIPHasher("secret-two")

	digest := hasher.Hash("203.0.113.7")
	assert.Len(t, digest, 16)
	assert.Equal(t, digest, hasher.Hash("203.0.113.7"))
	assert.NotEqual(t, digest, hasher.Hash("203.0.113.8"))
	assert.NotEqual(t, digest, other.Hash("203.0.113.7"))
	assert.Len(t, hasher.Hash(""), 16)
}
