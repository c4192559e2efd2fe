// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer   = "https://accounts.google.com"
	testAudience = "ascender-web"
)

func signIdentity(t *testing.T, key *rsa.PrivateKey, claims IdentityClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func validClaims() IdentityClaims {
	now := time.Now()
	return IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "10987",
			Issuer:    testIssuer,
			Audience:  jwt.ClaimStrings{testAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		Name:  "Rin",
		Email: "rin@example.com",
	}
}

/*
TestIdentityVerifier_Verify covers the accepted token and each rejection path.
*/
func TestIdentityVerifier_Verify(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	verifier, err := NewIdentityVerifier([]*rsa.PublicKey{&key.PublicKey}, testIssuer+", accounts.google.com", testAudience)
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		identity, err := verifier.Verify(signIdentity(t, key, validClaims()))
		require.NoError(t, err)
		assert.Equal(t, "10987", identity.Subject)
		assert.Equal(t, "google_10987", identity.ExternalID("google"))
		assert.Equal(t, "Rin", identity.Name)
	})

	t.Run("wrong key", func(t *testing.T) {
		_, err := verifier.Verify(signIdentity(t, otherKey, validClaims()))
		assert.Error(t, err)
	})

	t.Run("wrong audience", func(t *testing.T) {
		claims := validClaims()
		claims.Audience = jwt.ClaimStrings{"someone-else"}
		_, err := verifier.Verify(signIdentity(t, key, claims))
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		claims := validClaims()
		claims.Issuer = "https://evil.example"
		_, err := verifier.Verify(signIdentity(t, key, claims))
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		claims := validClaims()
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
		_, err := verifier.Verify(signIdentity(t, key, claims))
		assert.Error(t, err)
	})

	t.Run("missing subject", func(t *testing.T) {
		claims := validClaims()
		claims.Subject = ""
		_, err := verifier.Verify(signIdentity(t, key, claims))
		assert.Error(t, err)
	})
}

/*
TestNewIdentityVerifier_RequiresKeys verifies constructor validation.
*/
func TestNewIdentityVerifier_RequiresKeys(t *testing.T) {
	_, err := NewIdentityVerifier(nil, testIssuer, testAudience)
	assert.Error(t, err)
}
