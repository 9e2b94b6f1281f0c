// Package scan models single-use fulfillment scan tokens. Only the SHA-256
// hash of a token is ever stored; the plaintext exists once, in the URL
// handed to the warehouse.
package scan

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"orderflow/internal/pkg/errs"
)

const tokenBytes = 32

// Token is the stored side of a scan token. One row per (shop, order);
// reissuing replaces the hash, so at most one live token exists per order.
type Token struct {
	ShopDomain string
	OrderID    string
	TokenHash  string
	CreatedAt  time.Time
	UsedAt     *time.Time
}

func (t *Token) IsUsed() bool {
	return t.UsedAt != nil
}

// NewSecret generates a fresh URL-safe token secret.
func NewSecret() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errs.Wrap(err, "generate scan token")
	}
	return hex.EncodeToString(buf), nil
}

// Hash derives the stored lookup key from a token secret.
func Hash(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
