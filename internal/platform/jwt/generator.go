// Package jwtmw issues and verifies access tokens and guards authenticated routes.
package jwtmw

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultExpiration is the lifetime of an access token when none is configured.
const DefaultExpiration = time.Hour

// Claims is the payload carried by an access token.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// generator signs access tokens with HS256.
type generator struct {
	secret     []byte
	expiration time.Duration
}

// NewGenerator creates a token generator with the provided secret and expiration duration.
func NewGenerator(secret string, expiration time.Duration) *generator {
	if expiration <= 0 {
		expiration = DefaultExpiration
	}
	return &generator{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// GenerateToken creates a signed token carrying the username claim.
func (g *generator) GenerateToken(username string) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
