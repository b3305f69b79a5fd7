package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRefreshToken_UniquePerIssue(t *testing.T) {
	service := NewJWTService("test-secret", "1h", "168h")

	// Issued back to back, the two tokens share employee and a
	// second-granularity exp; the jti must still make them distinct.
	first, _, err := service.GenerateRefreshToken("emp-1")
	require.NoError(t, err)
	second, _, err := service.GenerateRefreshToken("emp-1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestRevokeToken(t *testing.T) {
	t.Run("revoked token is reported revoked", func(t *testing.T) {
		service := NewJWTService("test-secret", "1h", "168h")

		token, _, err := service.GenerateRefreshToken("emp-1")
		require.NoError(t, err)

		assert.False(t, service.IsTokenRevoked(token))
		service.RevokeToken(token)
		assert.True(t, service.IsTokenRevoked(token))
	})

	t.Run("entries past expiry are swept", func(t *testing.T) {
		// Negative expiration beyond the acceptable skew produces tokens
		// that are already dead on arrival.
		service := NewJWTService("test-secret", "1h", "-31s")

		stale, _, err := service.GenerateRefreshToken("emp-1")
		require.NoError(t, err)
		service.RevokeToken(stale)
		require.True(t, service.IsTokenRevoked(stale))

		fresh, _, err := service.GenerateRefreshToken("emp-2")
		require.NoError(t, err)
		service.RevokeToken(fresh)

		assert.False(t, service.IsTokenRevoked(stale))
		assert.True(t, service.IsTokenRevoked(fresh))
	})
}
