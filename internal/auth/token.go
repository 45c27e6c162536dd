// Fittrackd - Multi-Tenant Fitness Tracking API
// Copyright 2026 Fittrackd Contributors
// SPDX-License-Identifier: MIT
// https://github.com/fittrackd/fittrackd

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fittrackd/fittrackd/internal/config"
	"github.com/fittrackd/fittrackd/internal/metrics"
	"github.com/fittrackd/fittrackd/internal/store"
)

// TokenKind selects which signing secret and lifetime a token uses.
type TokenKind string

const (
	// TokenAccess is the short-lived credential presented on every request.
	TokenAccess TokenKind = "access"

	// TokenRefresh is the long-lived credential used solely to mint new
	// access tokens.
	TokenRefresh TokenKind = "refresh"
)

// ErrInvalidToken indicates a token failed verification: signature mismatch,
// malformed structure, wrong kind, or expiry.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the signed claim set carried by both token kinds.
type Claims struct {
	UserID string     `json:"userId"`
	Role   store.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager creates and verifies signed, time-bounded tokens.
//
// Access and refresh tokens use separate HS256 secrets and lifetimes, so
// compromise of one key does not compromise the other, and a refresh token
// can never pass verification as an access token.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration

	// now is replaceable in tests for expiry-boundary checks.
	now func() time.Time
}

// NewTokenManager creates a token manager from explicit security
// configuration. Secrets are never read from the environment here; they
// arrive as configuration.
func NewTokenManager(cfg *config.SecurityConfig) (*TokenManager, error) {
	if cfg.AccessTokenSecret == "" {
		return nil, fmt.Errorf("access token secret is required but was empty")
	}
	if cfg.RefreshTokenSecret == "" {
		return nil, fmt.Errorf("refresh token secret is required but was empty")
	}
	if cfg.AccessTokenSecret == cfg.RefreshTokenSecret {
		return nil, fmt.Errorf("access and refresh token secrets must differ")
	}

	accessTTL := cfg.AccessTokenTTL
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	refreshTTL := cfg.RefreshTokenTTL
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}

	return &TokenManager{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}, nil
}

// AccessTTL returns the access token lifetime (mirrored by the access cookie).
func (m *TokenManager) AccessTTL() time.Duration { return m.accessTTL }

// RefreshTTL returns the refresh token lifetime (mirrored by the refresh cookie).
func (m *TokenManager) RefreshTTL() time.Duration { return m.refreshTTL }

// secretAndTTL selects the key material for a token kind.
func (m *TokenManager) secretAndTTL(kind TokenKind) ([]byte, time.Duration, error) {
	switch kind {
	case TokenAccess:
		return m.accessSecret, m.accessTTL, nil
	case TokenRefresh:
		return m.refreshSecret, m.refreshTTL, nil
	default:
		return nil, 0, fmt.Errorf("unknown token kind %q", kind)
	}
}

// Issue creates a signed token carrying the identity and role claims, with
// the lifetime and secret of the given kind.
func (m *TokenManager) Issue(userID string, role store.Role, kind TokenKind) (string, error) {
	secret, ttl, err := m.secretAndTTL(kind)
	if err != nil {
		return "", err
	}

	now := m.now()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", kind, err)
	}
	return signed, nil
}

// Verify validates a token against the given kind's secret and returns its
// claims. It fails with ErrInvalidToken on signature mismatch, malformed
// structure, unexpected signing algorithm, or expiry. Expiry is inclusive:
// a token is invalid at its exact expiration instant.
func (m *TokenManager) Verify(tokenString string, kind TokenKind) (*Claims, error) {
	secret, _, err := m.secretAndTTL(kind)
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		metrics.RecordTokenVerification(string(kind), false)
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		metrics.RecordTokenVerification(string(kind), false)
		return nil, ErrInvalidToken
	}

	// jwt/v5 treats a token as live at the exact expiry instant; the session
	// contract requires it to be dead at and after that instant.
	if claims.ExpiresAt == nil || !m.now().Before(claims.ExpiresAt.Time) {
		metrics.RecordTokenVerification(string(kind), false)
		return nil, fmt.Errorf("%w: token is expired", ErrInvalidToken)
	}

	metrics.RecordTokenVerification(string(kind), true)
	return claims, nil
}
