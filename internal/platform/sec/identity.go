// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec holds the security primitives shared across the service: the
// role hierarchy, the per-request [Viewer] capability with its guards, the
// identity token verifier, and the hashing used for sessions and client IPs.
package sec

import (
	"crypto/rsa"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is what an external identity provider vouches for.
type Identity struct {
	// Subject is the provider-scoped user id; combined with the provider name it
	// becomes the stable external id.
	Subject   string
	Name      string
	Email     string
	AvatarURL string
}

// ExternalID returns the stable id stored on the user row.
func (i Identity) ExternalID(provider string) string {
	return provider + "_" + i.Subject
}

// IdentityClaims is the subset of an OpenID Connect ID token we read.
type IdentityClaims struct {
	jwt.RegisteredClaims

	Name          string `json:"name"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Picture       string `json:"picture"`
}

// IdentityVerifier validates RS256 ID tokens issued by an OpenID provider
// against a fixed set of public keys.
type IdentityVerifier struct {
	keys     jwt.VerificationKeySet
	issuers  []string
	audience string
	leeway   time.Duration
}

// NewIdentityVerifier builds a verifier from parsed public keys.
//
// issuer may contain several comma separated values since some providers sign
// with more than one issuer string.
func NewIdentityVerifier(keys []*rsa.PublicKey, issuer, audience string) (*IdentityVerifier, error) {
	if len(keys) == 0 {
		return nil, errors.New("identity: no verification keys")
	}
	if audience == "" {
		return nil, errors.New("identity: audience is required")
	}

	set := jwt.VerificationKeySet{}
	for _, key := range keys {
		set.Keys = append(set.Keys, key)
	}

	var issuers []string
	for _, value := range strings.Split(issuer, ",") {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			issuers = append(issuers, trimmed)
		}
	}

	return &IdentityVerifier{keys: set, issuers: issuers, audience: audience, leeway: 30 * time.Second}, nil
}

// LoadIdentityVerifier reads every PUBLIC KEY block from a PEM file.
func LoadIdentityVerifier(path, issuer, audience string) (*IdentityVerifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("identity: failed to read keys from %s: %w", path, err)
	}

	var keys []*rsa.PublicKey
	for {
		var block *pem.Block
		block, data = pem.Decode(data)
		if block == nil {
			break
		}
		key, err := jwt.ParseRSAPublicKeyFromPEM(pem.EncodeToMemory(block))
		if err != nil {
			return nil, fmt.Errorf("identity: failed to parse public key: %w", err)
		}
		keys = append(keys, key)
	}

	return NewIdentityVerifier(keys, issuer, audience)
}

// Verify checks signature, expiry, audience and issuer, and returns the identity.
func (verifier *IdentityVerifier) Verify(credential string) (*Identity, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(verifier.audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(verifier.leeway),
	}

	token, err := jwt.ParseWithClaims(credential, &IdentityClaims{}, func(*jwt.Token) (any, error) {
		return verifier.keys, nil
	}, options...)
	if err != nil {
		return nil, fmt.Errorf("identity: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*IdentityClaims)
	if !ok || !token.Valid {
		return nil, errors.New("identity: invalid token claims")
	}

	if len(verifier.issuers) > 0 && !verifier.trustedIssuer(claims.Issuer) {
		return nil, fmt.Errorf("identity: untrusted issuer %q", claims.Issuer)
	}
	if claims.Subject == "" {
		return nil, errors.New("identity: missing subject")
	}

	return &Identity{
		Subject:   claims.Subject,
		Name:      claims.Name,
		Email:     claims.Email,
		AvatarURL: claims.Picture,
	}, nil
}

func (verifier *IdentityVerifier) trustedIssuer(issuer string) bool {
	for _, trusted := range verifier.issuers {
		if issuer == trusted {
			return true
		}
	}
	return false
}
