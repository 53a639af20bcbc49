package rbacsdk

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signedTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestParseTokenClaims(t *testing.T) {
	t.Parallel()

	issued := time.Now().Add(-time.Minute).Truncate(time.Second)
	expires := time.Now().Add(time.Hour).Truncate(time.Second)

	raw := signedTestToken(t, jwt.MapClaims{
		"sub": "42",
		"iat": issued.Unix(),
		"exp": expires.Unix(),
	})

	claims, err := ParseTokenClaims(raw)
	require.NoError(t, err)
	require.Equal(t, "42", claims.Subject)
	require.Equal(t, issued.Unix(), claims.IssuedAt.Unix())
	require.Equal(t, expires.Unix(), claims.ExpiresAt.Unix())
	require.False(t, claims.IsExpired())
}

func TestParseTokenClaimsExpired(t *testing.T) {
	t.Parallel()

	raw := signedTestToken(t, jwt.MapClaims{
		"sub": "42",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	claims, err := ParseTokenClaims(raw)
	require.NoError(t, err)
	require.True(t, claims.IsExpired())
}

func TestParseTokenClaimsMissingExp(t *testing.T) {
	t.Parallel()

	raw := signedTestToken(t, jwt.MapClaims{"sub": "svc"})

	claims, err := ParseTokenClaims(raw)
	require.NoError(t, err)
	require.True(t, claims.ExpiresAt.IsZero())
	require.False(t, claims.IsExpired())
}

func TestParseTokenClaimsGarbage(t *testing.T) {
	t.Parallel()

	_, err := ParseTokenClaims("not-a-jwt")
	require.Error(t, err)
}
