package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeVerificationToken(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	a, err := MakeVerificationToken(now, 24*time.Hour)
	require.NoError(t, err)
	b, err := MakeVerificationToken(now, 24*time.Hour)
	require.NoError(t, err)

	assert.Len(t, a.Value, 64)
	assert.NotEqual(t, a.Value, b.Value)
	assert.Equal(t, now.Add(24*time.Hour), a.ExpiresAt)

	_, err = MakeVerificationToken(now, 0)
	assert.Error(t, err)
}

func TestTokensEqual(t *testing.T) {
	stored := "abc123"

	assert.True(t, TokensEqual(&stored, "abc123"))
	assert.False(t, TokensEqual(&stored, "abc124"))
	assert.False(t, TokensEqual(&stored, ""))
	assert.False(t, TokensEqual(nil, "abc123"))
}

func TestSessionRoundTrip(t *testing.T) {
	raw, err := SignSession("secret", "uid-1", "admin", time.Now(), time.Hour)
	require.NoError(t, err)

	claims, err := ParseSession("secret", raw)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", claims.UID)
	assert.Equal(t, "admin", claims.Role)

	_, err = ParseSession("other-secret", raw)
	assert.ErrorIs(t, err, ErrSessionInvalid)

	expired, err := SignSession("secret", "uid-1", "admin", time.Now().Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)
	_, err = ParseSession("secret", expired)
	assert.ErrorIs(t, err, ErrSessionInvalid)
}
