package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

const (
	resetTokenSize = 32

	ResetTokenTTL = time.Hour
)

// NewResetToken generates a password reset token. The raw token goes into
// the reset email, only its hash is ever stored.
func NewResetToken() (raw, hash string, err error) {
	b := make([]byte, resetTokenSize)

	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}

	raw = hex.EncodeToString(b)
	return raw, HashResetToken(raw), nil
}

// HashResetToken returns the hex-encoded SHA-256 of a raw reset token,
// used to look up the stored hash when the token comes back.
func HashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
