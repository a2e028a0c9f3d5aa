package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", 30*time.Minute)

	token, err := svc.GenerateAccessToken("user-1", "buyer@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", claims.Email)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestValidateTokenRejects(t *testing.T) {
	svc := NewTokenService("test-secret", 30*time.Minute)

	t.Run("expired", func(t *testing.T) {
		svc.now = func() time.Time { return time.Now().Add(-time.Hour) }
		defer func() { svc.now = time.Now }()

		token, err := svc.GenerateAccessToken("user-1", "buyer@example.com")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token, TokenTypeAccess)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenService("another-secret", time.Minute)
		token, err := other.GenerateAccessToken("user-1", "buyer@example.com")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token, TokenTypeAccess)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong type", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "buyer@example.com",
			"typ": "refresh",
			"exp": time.Now().Add(time.Minute).Unix(),
		})
		signed, err := token.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = svc.ValidateToken(signed, TokenTypeAccess)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"sub": "buyer@example.com",
			"typ": TokenTypeAccess,
			"exp": time.Now().Add(time.Minute).Unix(),
		})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.ValidateToken(signed, TokenTypeAccess)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token", "")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret!", hash)
	assert.True(t, CheckPassword(hash, "s3cret!"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
