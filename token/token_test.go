package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	signed, err := m.Issue("64f0c8e2a1b2c3d4e5f60718", "test@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := m.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "64f0c8e2a1b2c3d4e5f60718", claims.UserID)
	assert.Equal(t, "test@example.com", claims.Email)

	expiry := claims.ExpiresAt.Time
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, time.Minute)
}

func TestVerifyExpired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)

	signed, err := m.Issue("64f0c8e2a1b2c3d4e5f60718", "test@example.com")
	require.NoError(t, err)

	_, err = m.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewManager("secret-one", time.Hour)
	verifier := NewManager("secret-two", time.Hour)

	signed, err := issuer.Issue("64f0c8e2a1b2c3d4e5f60718", "test@example.com")
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyMalformed(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		_, err := m.Verify(raw)
		assert.Error(t, err, "raw=%q", raw)
	}
}
