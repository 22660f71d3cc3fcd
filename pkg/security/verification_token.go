package security

import (
	"bitwise74/medflow-api/pkg/util"
	"crypto/subtle"
	"errors"
	"time"
)

// 32 bytes -> 256 bits of randomness, 64 hex chars
const tokenSize = 32

type VerificationToken struct {
	Value     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

func MakeVerificationToken(now time.Time, ttl time.Duration) (*VerificationToken, error) {
	if ttl <= 0 {
		return nil, errors.New("token ttl must be bigger than 0")
	}

	value, err := util.GenerateToken(tokenSize)
	if err != nil {
		return nil, err
	}

	now = now.UTC()

	return &VerificationToken{
		Value:     value,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}, nil
}

// TokensEqual compares two tokens in constant time
func TokensEqual(stored *string, supplied string) bool {
	if stored == nil || supplied == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(*stored), []byte(supplied)) == 1
}
