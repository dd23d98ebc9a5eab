package serverutils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestResolveToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "resolve-test-secret")
	userID := uuid.New()

	t.Run("resolves a valid token", func(t *testing.T) {
		token := sign(t, "resolve-test-secret", jwt.MapClaims{
			"user_id": userID.String(),
			"exp":     time.Now().Add(time.Hour).Unix(),
		})

		got, err := ResolveToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, got)
	})

	t.Run("rejects a wrong signature", func(t *testing.T) {
		token := sign(t, "some-other-secret", jwt.MapClaims{"user_id": userID.String()})

		_, err := ResolveToken(token)
		assert.Error(t, err)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		token := sign(t, "resolve-test-secret", jwt.MapClaims{
			"user_id": userID.String(),
			"exp":     time.Now().Add(-time.Hour).Unix(),
		})

		_, err := ResolveToken(token)
		assert.Error(t, err)
	})

	t.Run("rejects a token without user_id", func(t *testing.T) {
		token := sign(t, "resolve-test-secret", jwt.MapClaims{"sub": "someone"})

		_, err := ResolveToken(token)
		assert.Error(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := ResolveToken("not.a.token")
		assert.Error(t, err)
	})
}
