// Fittrackd - Multi-Tenant Fitness Tracking API
// Copyright 2026 Fittrackd Contributors
// SPDX-License-Identifier: MIT
// https://github.com/fittrackd/fittrackd

package validation

import (
	"strings"
	"testing"
)

func TestValidatePasswordStrength(t *testing.T) {
	type subject struct {
		Password string `validate:"password_strength"`
	}

	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"valid", "Password1@", true},
		{"valid with several specials", "Aa1!@#$%^&*", true},
		{"minimum length", "Aa1@bcde", true},
		{"maximum length", "Aa1@bcdefghijklm", true},
		{"too short", "Aa1@bcd", false},
		{"too long", "Aa1@bcdefghijklmn", false},
		{"no uppercase", "password1@", false},
		{"no lowercase", "PASSWORD1@", false},
		{"no digit", "Password@@", false},
		{"no special", "Password12", false},
		{"special outside accepted set", "Password1_", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&subject{Password: tt.password})
			if (err == nil) != tt.valid {
				t.Errorf("password %q: valid = %v, want %v (err: %v)",
					tt.password, err == nil, tt.valid, err)
			}
		})
	}
}

func TestValidatePersonName(t *testing.T) {
	type subject struct {
		Name string `validate:"person_name"`
	}

	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"simple", "Alice", true},
		{"with space", "Alice Example", true},
		{"hyphenated", "Mary-Jane Watson", true},
		{"apostrophe", "O'Brien", true},
		{"accented", "José García", true},
		{"single character", "A", false},
		{"digits", "Alice2", false},
		{"symbols", "Alice<script>", false},
		{"leading space", " Alice", false},
		{"empty", "", false},
		{"too long", strings.Repeat("a", 101), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&subject{Name: tt.value})
			if (err == nil) != tt.valid {
				t.Errorf("name %q: valid = %v, want %v (err: %v)",
					tt.value, err == nil, tt.valid, err)
			}
		})
	}
}

func TestValidateStruct_MessageTranslation(t *testing.T) {
	type subject struct {
		Email  string `validate:"required,email"`
		Gender string `validate:"required,oneof=male female other"`
	}

	err := ValidateStruct(&subject{Email: "not-an-email", Gender: "unknown"})
	if err == nil {
		t.Fatal("expected validation errors")
	}

	msg := err.Error()
	if !strings.Contains(msg, "Email must be a valid email address") {
		t.Errorf("message %q missing email translation", msg)
	}
	if !strings.Contains(msg, "Gender must be one of: male female other") {
		t.Errorf("message %q missing oneof translation", msg)
	}

	if got := len(err.Errors()); got != 2 {
		t.Errorf("Errors() len = %d, want 2", got)
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	type subject struct {
		Email string `validate:"required,email"`
	}

	if err := ValidateStruct(&subject{Email: "alice@example.com"}); err != nil {
		t.Errorf("ValidateStruct() = %v, want nil", err)
	}
}

// GetValidator returns the same instance on every call.
func TestGetValidator_Singleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator() returned distinct instances")
	}
}
