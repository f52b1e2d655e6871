package util

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// NewID returns a URL-safe hex string ID.
func NewID() string {
	b := make([]byte, 12)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// NewAuditID returns an opaque audit identifier. Uniqueness is the only
// contract; the timestamp prefix just keeps keys roughly sortable.
func NewAuditID(now time.Time) string {
	return fmt.Sprintf("audit_%d_%s", now.UnixMilli(), RandomToken(9))
}

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// RandomToken returns n random base36 characters.
func RandomToken(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	var sb strings.Builder
	sb.Grow(n)
	for _, c := range b {
		sb.WriteByte(tokenAlphabet[int(c)%len(tokenAlphabet)])
	}
	return sb.String()
}
