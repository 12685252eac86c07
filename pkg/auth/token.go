// Package auth issues and parses portal access tokens. Login and session
// management live in an upstream identity service; this backend only needs
// to verify the bearer token and read its claims.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/marisolvega/vendorhub-backend/pkg/config"
	"github.com/marisolvega/vendorhub-backend/pkg/enums"
)

// AccessClaims carries the identity the middleware seeds into request
// context.
type AccessClaims struct {
	UserID        uuid.UUID        `json:"uid"`
	VendorID      *uuid.UUID       `json:"vendor_id,omitempty"`
	DistributorID *uuid.UUID       `json:"distributor_id,omitempty"`
	Role          enums.MemberRole `json:"role"`
	jwt.RegisteredClaims
}

// IssueAccessToken signs an access token for the provided claims.
func IssueAccessToken(cfg config.JWTConfig, claims AccessClaims) (string, error) {
	if cfg.Secret == "" {
		return "", fmt.Errorf("jwt secret is required")
	}
	now := time.Now().UTC()
	claims.RegisteredClaims.Issuer = cfg.Issuer
	claims.RegisteredClaims.IssuedAt = jwt.NewNumericDate(now)
	claims.RegisteredClaims.ExpiresAt = jwt.NewNumericDate(now.Add(cfg.Expiration()))
	if claims.RegisteredClaims.ID == "" {
		claims.RegisteredClaims.ID = uuid.NewString()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// ParseAccessToken validates signature, issuer and expiry, returning the
// embedded claims.
func ParseAccessToken(cfg config.JWTConfig, raw string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	}, jwt.WithIssuer(cfg.Issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("parsing access token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid access token")
	}
	if !claims.Role.IsValid() {
		return nil, fmt.Errorf("unknown role in token")
	}
	return claims, nil
}
