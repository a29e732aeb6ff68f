// Package token issues and validates device access tokens as signed
// JWTs. Tokens carry the device identity only; there is no user account
// model on the ingest path.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken indicates that the token failed signature or claims
// validation.
var ErrInvalidToken = errors.New("invalid token")

// Claims represents the JWT claims attached to a device token
type Claims struct {
	DeviceID string `json:"device_id"`
	jwt.RegisteredClaims
}

// Config contains the signing configuration
type Config struct {
	Secret         []byte
	AccessTokenTTL time.Duration
	Issuer         string
}

// DefaultAccessTokenTTL is used when the config leaves the TTL unset.
const DefaultAccessTokenTTL = 12 * time.Hour

// Issue creates a signed access token for the device. Returns the token
// string and its lifetime in seconds.
func Issue(cfg Config, deviceID string) (string, int64, error) {
	ttl := cfg.AccessTokenTTL
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}

	now := time.Now()
	claims := Claims{
		DeviceID: deviceID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    cfg.Issuer,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(cfg.Secret)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, int64(ttl.Seconds()), nil
}

// Validate parses and verifies an access token, returning its claims.
func Validate(cfg Config, tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return cfg.Secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.DeviceID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
