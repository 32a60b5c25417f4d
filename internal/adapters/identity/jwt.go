// Package identity implements the identity provider port with signed JWTs.
package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/example/techmarket/internal/core/fault"
	"github.com/example/techmarket/internal/core/principal"
	"github.com/example/techmarket/internal/ports/secondary"
)

// Manager signs and validates the bearer tokens used by the API.
type Manager struct {
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

// Claims is the token payload: the profile the bearer acts as.
type Claims struct {
	ProfileID string `json:"profile_id"`
	jwt.RegisteredClaims
}

// NewManager returns a configured Manager.
func NewManager(secret string, tokenTTL time.Duration) *Manager {
	return &Manager{
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
}

// Issue creates a signed bearer token for the given profile.
func (m *Manager) Issue(ctx context.Context, profileID string) (string, error) {
	if profileID == "" {
		return "", fault.Validation("profile id is required to issue a token")
	}

	issuedAt := m.now()
	claims := &Claims{
		ProfileID: profileID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(m.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Resolve validates a bearer token and returns the account principal it
// carries. Invalid, expired, or foreign-algorithm tokens all fail with a
// forbidden fault so callers never need to distinguish them.
func (m *Manager) Resolve(ctx context.Context, bearer string) (principal.Principal, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(bearer, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return principal.Principal{}, fault.Wrap(fault.KindForbidden, err, "invalid bearer token")
	}
	if !token.Valid || claims.ProfileID == "" {
		return principal.Principal{}, fault.Forbidden("invalid bearer token")
	}
	return principal.Account(claims.ProfileID), nil
}

// Ensure Manager implements the port.
var _ secondary.IdentityProvider = (*Manager)(nil)
