// Package token signs and verifies the access/refresh JWT pair. The two
// kinds form independent signing domains: each has its own secret and
// lifetime, and a token can only ever verify against its own domain.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// ErrInvalidToken covers bad signatures, malformed payloads, expiry, and
// wrong-domain verification.
var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	jwt.RegisteredClaims
}

type Codec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewCodec builds a codec from explicit secrets; no ambient configuration.
func NewCodec(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) (*Codec, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, errors.New("token: both signing secrets are required")
	}
	if accessSecret == refreshSecret {
		return nil, errors.New("token: access and refresh secrets must be distinct")
	}
	return &Codec{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

func (c *Codec) AccessTTL() time.Duration  { return c.accessTTL }
func (c *Codec) RefreshTTL() time.Duration { return c.refreshTTL }

// IssueAccess mints a short-lived token with the user id as subject.
func (c *Codec) IssueAccess(userID string) (string, error) {
	return c.issue(userID, c.accessSecret, c.accessTTL, "")
}

// IssueRefresh mints a long-lived token. The jti makes every refresh token
// textually unique, so rotation always produces a different stored value.
func (c *Codec) IssueRefresh(userID string) (string, error) {
	return c.issue(userID, c.refreshSecret, c.refreshTTL, uuid.NewString())
}

func (c *Codec) issue(userID string, secret []byte, ttl time.Duration, jti string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("token: signing %s token: %w", kindOf(jti), err)
	}
	return signed, nil
}

func kindOf(jti string) Kind {
	if jti == "" {
		return KindAccess
	}
	return KindRefresh
}

// Verify parses and validates tokenString against the secret of the given
// kind. A refresh token presented as an access token (or vice versa) fails
// with ErrInvalidToken because the signatures do not match across domains.
func (c *Codec) Verify(tokenString string, kind Kind) (*Claims, error) {
	secret := c.accessSecret
	if kind == KindRefresh {
		secret = c.refreshSecret
	}

	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !tok.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
