// Fittrackd - Multi-Tenant Fitness Tracking API
// Copyright 2026 Fittrackd Contributors
// SPDX-License-Identifier: MIT
// https://github.com/fittrackd/fittrackd

package auth

import (
	"net/http"
	"time"
)

// Cookie names for the two token kinds.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// setTokenCookie binds a token to the response channel. Cookies are HTTP-only
// so scripts cannot read them; MaxAge mirrors the token's lifetime.
func setTokenCookie(w http.ResponseWriter, name, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// setSessionCookies sets both token cookies together. Callers must only reach
// this point once both tokens have been issued, so a failed request never
// leaves a partial session behind.
func setSessionCookies(w http.ResponseWriter, tm *TokenManager, accessToken, refreshToken string) {
	setTokenCookie(w, AccessTokenCookie, accessToken, tm.AccessTTL())
	setTokenCookie(w, RefreshTokenCookie, refreshToken, tm.RefreshTTL())
}

// clearSessionCookies expires both token cookies. This is the entirety of
// signout: the tokens themselves stay cryptographically valid until expiry.
func clearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{AccessTokenCookie, RefreshTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
