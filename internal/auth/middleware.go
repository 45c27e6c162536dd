// Fittrackd - Multi-Tenant Fitness Tracking API
// Copyright 2026 Fittrackd Contributors
// SPDX-License-Identifier: MIT
// https://github.com/fittrackd/fittrackd

package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/fittrackd/fittrackd/internal/logging"
)

type contextKey string

const principalKey contextKey = "fittrackd.principal"

// PrincipalFromContext returns the authenticated principal attached by one of
// the authorization middlewares, or nil when the request never passed through
// one.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey).(*Principal)
	return p
}

// Middleware builds the three authorization middlewares over a shared
// verify-then-resolve pipeline. Every request is authenticated independently
// from its access-token cookie; nothing is cached between requests.
type Middleware struct {
	tokens   *TokenManager
	resolver *Resolver
}

// NewMiddleware wires the token manager and principal resolver together.
func NewMiddleware(tokens *TokenManager, resolver *Resolver) *Middleware {
	return &Middleware{tokens: tokens, resolver: resolver}
}

// authenticate runs the shared pipeline: extract the access-token cookie,
// verify it, resolve the subject. It writes the failure response itself and
// returns nil when the request must not proceed. deniedMsg is the 403 body
// used when the subject no longer resolves.
func (m *Middleware) authenticate(w http.ResponseWriter, r *http.Request, deniedMsg string) *Principal {
	cookie, err := r.Cookie(AccessTokenCookie)
	if err != nil || cookie.Value == "" {
		writeMessage(w, http.StatusUnauthorized, "No access token provided.")
		return nil
	}

	claims, err := m.tokens.Verify(cookie.Value, TokenAccess)
	if err != nil {
		writeMessage(w, http.StatusForbidden, "Invalid access token.")
		return nil
	}

	principal, err := m.resolver.Resolve(r.Context(), claims)
	if err != nil {
		if errors.Is(err, ErrPrincipalNotFound) {
			logging.Debug().Str("user_id", claims.UserID).Msg("Token subject did not resolve")
			writeMessage(w, http.StatusForbidden, deniedMsg)
			return nil
		}
		logging.Error().Str("user_id", claims.UserID).Err(err).Msg("Principal resolution failed")
		writeMessage(w, http.StatusInternalServerError, "Internal server error.")
		return nil
	}
	return principal
}

// RequireUser admits only principals resolved from the user store.
func (m *Middleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal := m.authenticate(w, r, "Access denied. User not found.")
		if principal == nil {
			return
		}
		if principal.IsAdmin() {
			writeMessage(w, http.StatusForbidden, "Access denied. User not found.")
			return
		}
		next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), principal)))
	})
}

// RequireAdmin admits only principals resolved from the admin store. A valid
// user token is rejected here regardless of its cryptographic validity.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal := m.authenticate(w, r, "Access denied. Admins only.")
		if principal == nil {
			return
		}
		if !principal.IsAdmin() {
			writeMessage(w, http.StatusForbidden, "Access denied. Admins only.")
			return
		}
		next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), principal)))
	})
}

// RequireAuth admits either tier; handlers discriminate on the principal's
// role when they need to.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal := m.authenticate(w, r, "Access denied. User/Admin not found.")
		if principal == nil {
			return
		}
		next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), principal)))
	})
}

func withPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}
