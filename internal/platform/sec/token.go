// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// SessionTokenBytes is the entropy of a session id (256 bits).
const SessionTokenBytes = 32

// GenerateSecureToken returns n random bytes encoded as lowercase hex.
func GenerateSecureToken(n int) (string, error) {
	buffer := make([]byte, n)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("sec: failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buffer), nil
}

// IsSessionToken reports whether value has the shape of a session id, so
// malformed cookies never reach the database.
func IsSessionToken(value string) bool {
	if len(value) != SessionTokenBytes*2 {
		return false
	}
	_, err := hex.DecodeString(value)
	return err == nil
}

// IPHasher turns client addresses into short keyed digests. Raw IPs are never
// stored; rate-limit keys, view dedupe keys and sessions all use the digest.
type IPHasher struct {
	key []byte
}

// NewIPHasher keys the digest with secret (truncated to the BLAKE2b key limit).
func NewIPHasher(secret string) *IPHasher {
	key := []byte(secret)
	if len(key) > blake2b.Size {
		key = key[:blake2b.Size]
	}
	return &IPHasher{key: key}
}

// Hash returns the first 16 hex characters of BLAKE2b-256(key, ip).
func (hasher *IPHasher) Hash(ip string) string {
	if ip == "" {
		ip = "unknown"
	}
	digest, err := blake2b.New256(hasher.key)
	if err != nil {
		// Only reachable with an oversized key, which the constructor prevents.
		panic(err)
	}
	digest.Write([]byte(ip))
	return hex.EncodeToString(digest.Sum(nil))[:16]
}
