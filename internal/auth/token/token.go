// Package token mints the opaque refresh tokens handed to hospital accounts.
// Only the digest reaches the database; the plain value lives in the cookie.
package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// RefreshSize is the number of random bytes behind a refresh token.
const RefreshSize = 48

// Refresh is a freshly minted refresh token.
type Refresh struct {
	Plain  string
	Digest string
}

// NewRefresh returns a URL-safe refresh token and its stored digest.
func NewRefresh() (Refresh, error) {
	b := make([]byte, RefreshSize)
	if _, err := rand.Read(b); err != nil {
		return Refresh{}, fmt.Errorf("read random bytes: %w", err)
	}
	plain := base64.RawURLEncoding.EncodeToString(b)
	return Refresh{Plain: plain, Digest: Digest(plain)}, nil
}

// Digest is the hex SHA-256 of plain, used as the refresh_tokens lookup key.
func Digest(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
