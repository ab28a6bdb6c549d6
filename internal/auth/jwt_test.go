package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTVerifier_Resolve(t *testing.T) {
	verifier := NewJWTVerifier("test-secret", "rollfit-auth")
	ctx := context.Background()

	token, err := NewTestToken("test-secret", "rollfit-auth", "user-42", time.Hour)
	require.NoError(t, err)

	userID, err := verifier.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)

	t.Run("wrong secret", func(t *testing.T) {
		badToken, err := NewTestToken("other-secret", "rollfit-auth", "user-42", time.Hour)
		require.NoError(t, err)
		_, err = verifier.Resolve(ctx, badToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		badToken, err := NewTestToken("test-secret", "someone-else", "user-42", time.Hour)
		require.NoError(t, err)
		_, err = verifier.Resolve(ctx, badToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		badToken, err := NewTestToken("test-secret", "rollfit-auth", "user-42", -time.Hour)
		require.NoError(t, err)
		_, err = verifier.Resolve(ctx, badToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("empty subject", func(t *testing.T) {
		badToken, err := NewTestToken("test-secret", "rollfit-auth", "", time.Hour)
		require.NoError(t, err)
		_, err = verifier.Resolve(ctx, badToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unexpected signing method", func(t *testing.T) {
		noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
			Subject:   "user-42",
			Issuer:    "rollfit-auth",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = verifier.Resolve(ctx, noneToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing token", func(t *testing.T) {
		_, err := verifier.Resolve(ctx, "")
		assert.ErrorIs(t, err, ErrMissingToken)
	})
}

func TestUserIDFromContext(t *testing.T) {
	_, ok := UserIDFromContext(context.Background())
	assert.False(t, ok)

	_, ok = UserIDFromContext(WithUserID(context.Background(), ""))
	assert.False(t, ok)

	userID, ok := UserIDFromContext(WithUserID(context.Background(), "u1"))
	assert.True(t, ok)
	assert.Equal(t, "u1", userID)
}
