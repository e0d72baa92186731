package api

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	got, ok := TokenExpiry(token)
	require.True(t, ok)
	require.True(t, got.Equal(exp))
}

func TestTokenExpiry_NoExpClaim(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "1",
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, ok := TokenExpiry(token)
	require.False(t, ok)
}

func TestTokenExpiry_NotAJWT(t *testing.T) {
	_, ok := TokenExpiry("opaque-session-token")
	require.False(t, ok)
}
