package util

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateToken returns n random bytes from crypto/rand hex encoded
func GenerateToken(n int) (string, error) {
	b := make([]byte, n)

	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}
