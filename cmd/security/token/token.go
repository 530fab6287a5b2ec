package token

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// MinBytes is the smallest entropy any gatehouse token may carry.
// 16 bytes (128 bits) already makes collisions and guessing negligible;
// DefaultBytes is larger for headroom.
const (
	MinBytes     = 16
	DefaultBytes = 32
)

// NewOpaque returns a fresh unguessable token of n random bytes, encoded as
// unpadded base64url. n below MinBytes is refused.
func NewOpaque(n int) (string, error) {
	if n < MinBytes {
		return "", ErrTooShort
	}

	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// DigestHex returns the SHA-256 hex digest of tok. Persistent stores index
// tokens by this digest, never by the plain value.
func DigestHex(tok string) string {
	sum := sha256.Sum256([]byte(tok))
	return hex.EncodeToString(sum[:])
}

// Equal compares two token strings in constant time.
func Equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
