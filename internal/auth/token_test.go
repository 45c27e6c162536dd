// Fittrackd - Multi-Tenant Fitness Tracking API
// Copyright 2026 Fittrackd Contributors
// SPDX-License-Identifier: MIT
// https://github.com/fittrackd/fittrackd

package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/fittrackd/fittrackd/internal/config"
	"github.com/fittrackd/fittrackd/internal/store"
)

func testSecurityConfig() *config.SecurityConfig {
	return &config.SecurityConfig{
		AccessTokenSecret:  "test-access-secret-0123456789abcdef",
		RefreshTokenSecret: "test-refresh-secret-0123456789abcdef",
		AccessTokenTTL:     15 * time.Minute,
		RefreshTokenTTL:    7 * 24 * time.Hour,
	}
}

func newTestTokenManager(t *testing.T) *TokenManager {
	t.Helper()
	tm, err := NewTokenManager(testSecurityConfig())
	if err != nil {
		t.Fatalf("NewTokenManager() error = %v", err)
	}
	return tm
}

func TestNewTokenManager_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.SecurityConfig)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(*config.SecurityConfig) {},
			wantErr: false,
		},
		{
			name:    "empty access secret",
			mutate:  func(c *config.SecurityConfig) { c.AccessTokenSecret = "" },
			wantErr: true,
		},
		{
			name:    "empty refresh secret",
			mutate:  func(c *config.SecurityConfig) { c.RefreshTokenSecret = "" },
			wantErr: true,
		},
		{
			name: "identical secrets",
			mutate: func(c *config.SecurityConfig) {
				c.RefreshTokenSecret = c.AccessTokenSecret
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testSecurityConfig()
			tt.mutate(cfg)

			_, err := NewTokenManager(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewTokenManager() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewTokenManager_DefaultTTLs(t *testing.T) {
	cfg := testSecurityConfig()
	cfg.AccessTokenTTL = 0
	cfg.RefreshTokenTTL = 0

	tm, err := NewTokenManager(cfg)
	if err != nil {
		t.Fatalf("NewTokenManager() error = %v", err)
	}

	if got := tm.AccessTTL(); got != 15*time.Minute {
		t.Errorf("AccessTTL() = %v, want 15m", got)
	}
	if got := tm.RefreshTTL(); got != 7*24*time.Hour {
		t.Errorf("RefreshTTL() = %v, want 168h", got)
	}
}

func TestTokenManager_IssueAndVerify(t *testing.T) {
	tm := newTestTokenManager(t)

	for _, kind := range []TokenKind{TokenAccess, TokenRefresh} {
		t.Run(string(kind), func(t *testing.T) {
			token, err := tm.Issue("user-123", store.RoleUser, kind)
			if err != nil {
				t.Fatalf("Issue() error = %v", err)
			}

			claims, err := tm.Verify(token, kind)
			if err != nil {
				t.Fatalf("Verify() error = %v", err)
			}
			if claims.UserID != "user-123" {
				t.Errorf("UserID = %q, want %q", claims.UserID, "user-123")
			}
			if claims.Role != store.RoleUser {
				t.Errorf("Role = %q, want %q", claims.Role, store.RoleUser)
			}
		})
	}
}

func TestTokenManager_RolePreserved(t *testing.T) {
	tm := newTestTokenManager(t)

	token, err := tm.Issue("admin-1", store.RoleSuperadmin, TokenRefresh)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	claims, err := tm.Verify(token, TokenRefresh)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.Role != store.RoleSuperadmin {
		t.Errorf("Role = %q, want %q", claims.Role, store.RoleSuperadmin)
	}
}

// A token signed with one kind's secret must never verify as the other kind.
func TestTokenManager_KindIsolation(t *testing.T) {
	tm := newTestTokenManager(t)

	refresh, err := tm.Issue("user-123", store.RoleUser, TokenRefresh)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if _, err := tm.Verify(refresh, TokenAccess); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify(refresh as access) error = %v, want ErrInvalidToken", err)
	}

	access, err := tm.Issue("user-123", store.RoleUser, TokenAccess)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if _, err := tm.Verify(access, TokenRefresh); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify(access as refresh) error = %v, want ErrInvalidToken", err)
	}
}

func TestTokenManager_MalformedToken(t *testing.T) {
	tm := newTestTokenManager(t)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9.eyJ1c2VySWQiOiJ4In0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tm.Verify(tt.token, TokenAccess); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestTokenManager_TamperedToken(t *testing.T) {
	tm := newTestTokenManager(t)

	token, err := tm.Issue("user-123", store.RoleUser, TokenAccess)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := tm.Verify(tampered, TokenAccess); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify(tampered) error = %v, want ErrInvalidToken", err)
	}
}

// Expiry is inclusive: the token dies at the exact expiration instant, not
// one tick after it.
func TestTokenManager_ExpiryBoundary(t *testing.T) {
	tm := newTestTokenManager(t)

	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tm.now = func() time.Time { return issuedAt }

	token, err := tm.Issue("user-123", store.RoleUser, TokenAccess)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name    string
		at      time.Time
		wantErr bool
	}{
		{"immediately after issue", issuedAt, false},
		{"one second before expiry", issuedAt.Add(tm.AccessTTL() - time.Second), false},
		{"exactly at expiry", issuedAt.Add(tm.AccessTTL()), true},
		{"after expiry", issuedAt.Add(tm.AccessTTL() + time.Second), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm.now = func() time.Time { return tt.at }

			_, err := tm.Verify(token, TokenAccess)
			if (err != nil) != tt.wantErr {
				t.Errorf("Verify() at %v error = %v, wantErr %v", tt.at, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}
