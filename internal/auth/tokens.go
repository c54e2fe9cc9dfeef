package auth

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

const (
	VerificationTTL = 24 * time.Hour
	ResetTTL        = time.Hour
)

// Token is a single-use secret with its expiry in unix seconds
type Token struct {
	Value     string
	ExpiresAt int64
}

// NewToken returns 32 random bytes, hex encoded, valid for ttl from now
func NewToken(now time.Time, ttl time.Duration) (Token, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return Token{}, err
	}
	return Token{
		Value:     hex.EncodeToString(b),
		ExpiresAt: now.Add(ttl).Unix(),
	}, nil
}
