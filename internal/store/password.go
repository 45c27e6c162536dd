// Fittrackd - Multi-Tenant Fitness Tracking API
// Copyright 2026 Fittrackd Contributors
// SPDX-License-Identifier: MIT
// https://github.com/fittrackd/fittrackd

package store

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the work factor used when no cost is configured.
const DefaultBcryptCost = 10

// HashPassword bcrypt-hashes a plaintext secret. bcrypt embeds a random salt
// per call, so hashing the same plaintext twice yields different outputs.
func HashPassword(plain string, cost int) (string, error) {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// NormalizeEmail lowercases and trims an email so lookups and uniqueness are
// case-insensitive within a store.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
