package rbacsdk

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the client-readable subset of the bearer token's claims.
// The token is opaque as far as the protocol is concerned, but when the
// server issues JWTs the expiry and subject are useful for display (e.g.
// an auth status command) without a round trip.
type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// ParseTokenClaims decodes the claims of a bearer token WITHOUT verifying
// its signature. Verification is the server's job; nothing security-relevant
// may be decided from these values client-side.
func ParseTokenClaims(token string) (*TokenClaims, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims := &TokenClaims{}

	if sub, err := parsed.Claims.GetSubject(); err == nil {
		claims.Subject = sub
	}
	if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	if iat, err := parsed.Claims.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}

	return claims, nil
}

// IsExpired reports whether the token's exp claim is in the past. Tokens
// without an exp claim never report expired.
func (c *TokenClaims) IsExpired() bool {
	if c.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(c.ExpiresAt)
}
