package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTVerifierRoundTrip(t *testing.T) {
	v := NewJWTVerifier("test-secret", "authenticated")
	token, err := v.Sign("user-1", time.Hour)
	require.NoError(t, err)

	identity, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.ID)
	assert.Equal(t, "authenticated", identity.Role)
}

func TestJWTVerifierRejects(t *testing.T) {
	v := NewJWTVerifier("test-secret", "authenticated")
	ctx := context.Background()

	expired, err := v.Sign("user-1", -time.Minute)
	require.NoError(t, err)
	_, err = v.Verify(ctx, expired)
	assert.ErrorIs(t, err, ErrInvalidCredential)

	other, err := NewJWTVerifier("other-secret", "authenticated").Sign("user-1", time.Hour)
	require.NoError(t, err)
	_, err = v.Verify(ctx, other)
	assert.ErrorIs(t, err, ErrInvalidCredential)

	wrongAud, err := NewJWTVerifier("test-secret", "anon").Sign("user-1", time.Hour)
	require.NoError(t, err)
	_, err = v.Verify(ctx, wrongAud)
	assert.ErrorIs(t, err, ErrInvalidCredential)

	_, err = v.Verify(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestJWTVerifierRequiresSubject(t *testing.T) {
	v := NewJWTVerifier("test-secret", "")
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestJWTVerifierRejectsNoneAlgorithm(t *testing.T) {
	v := NewJWTVerifier("test-secret", "")
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "user-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}
