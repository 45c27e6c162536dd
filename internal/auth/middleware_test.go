// Fittrackd - Multi-Tenant Fitness Tracking API
// Copyright 2026 Fittrackd Contributors
// SPDX-License-Identifier: MIT
// https://github.com/fittrackd/fittrackd

package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fittrackd/fittrackd/internal/store"
)

type middlewareFixture struct {
	store *store.Memory
	mw    *Middleware
	tm    *TokenManager
	user  *store.User
	admin *store.Admin
}

func newMiddlewareFixture(t *testing.T) *middlewareFixture {
	t.Helper()

	mem := store.NewMemory()
	tm := newTestTokenManager(t)

	user, err := mem.CreateUser(context.Background(), store.CreateUserParams{
		Name:          "Alice Example",
		Email:         "alice@example.com",
		Password:      "Password1@",
		Age:           30,
		Gender:        "female",
		Height:        170,
		Weight:        65,
		ActivityLevel: "moderate",
		Goals:         "stay fit",
	})
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	admin, err := mem.CreateAdmin(context.Background(), store.CreateAdminParams{
		Name:     "Bob Admin",
		Email:    "bob@example.com",
		Password: "Password1@",
		Role:     store.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("CreateAdmin() error = %v", err)
	}

	return &middlewareFixture{
		store: mem,
		mw:    NewMiddleware(tm, NewResolver(mem, mem)),
		tm:    tm,
		user:  user,
		admin: admin,
	}
}

// okHandler records whether the request reached the downstream handler and
// what principal it carried.
func okHandler(reached *bool, principal **Principal) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*reached = true
		*principal = PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func requestWithToken(t *testing.T, tm *TokenManager, id string, role store.Role) *http.Request {
	t.Helper()

	token, err := tm.Issue(id, role, TokenAccess)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: token})
	return req
}

func TestMiddleware_MissingCookie(t *testing.T) {
	fx := newMiddlewareFixture(t)

	variants := map[string]func(http.Handler) http.Handler{
		"RequireUser":  fx.mw.RequireUser,
		"RequireAdmin": fx.mw.RequireAdmin,
		"RequireAuth":  fx.mw.RequireAuth,
	}

	for name, variant := range variants {
		t.Run(name, func(t *testing.T) {
			var reached bool
			var principal *Principal
			rec := httptest.NewRecorder()

			variant(okHandler(&reached, &principal)).ServeHTTP(rec,
				httptest.NewRequest(http.MethodGet, "/protected", nil))

			if reached {
				t.Error("handler was reached without a token")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
			}
			if !strings.Contains(rec.Body.String(), "No access token provided.") {
				t.Errorf("body = %q, want missing-token message", rec.Body.String())
			}
		})
	}
}

func TestMiddleware_InvalidToken(t *testing.T) {
	fx := newMiddlewareFixture(t)

	var reached bool
	var principal *Principal
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "garbage"})

	fx.mw.RequireUser(okHandler(&reached, &principal)).ServeHTTP(rec, req)

	if reached {
		t.Error("handler was reached with an invalid token")
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	if !strings.Contains(rec.Body.String(), "Invalid access token.") {
		t.Errorf("body = %q, want invalid-token message", rec.Body.String())
	}
}

// A refresh token presented as an access token fails verification because the
// two kinds use different signing secrets.
func TestMiddleware_RefreshTokenRejected(t *testing.T) {
	fx := newMiddlewareFixture(t)

	token, err := fx.tm.Issue(fx.user.ID, fx.user.Role, TokenRefresh)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	var reached bool
	var principal *Principal
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: token})

	fx.mw.RequireUser(okHandler(&reached, &principal)).ServeHTTP(rec, req)

	if reached {
		t.Error("handler was reached with a refresh token")
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestMiddleware_RequireUser(t *testing.T) {
	fx := newMiddlewareFixture(t)

	t.Run("valid user token admitted", func(t *testing.T) {
		var reached bool
		var principal *Principal
		rec := httptest.NewRecorder()

		fx.mw.RequireUser(okHandler(&reached, &principal)).ServeHTTP(rec,
			requestWithToken(t, fx.tm, fx.user.ID, fx.user.Role))

		if !reached {
			t.Fatalf("handler not reached, status = %d body = %q", rec.Code, rec.Body.String())
		}
		if principal == nil || principal.ID != fx.user.ID {
			t.Errorf("principal = %+v, want user %s", principal, fx.user.ID)
		}
		if principal.User == nil || principal.Admin != nil {
			t.Error("principal should carry the user record only")
		}
	})

	t.Run("deleted user denied", func(t *testing.T) {
		req := requestWithToken(t, fx.tm, fx.user.ID, fx.user.Role)
		if err := fx.store.DeleteUser(context.Background(), fx.user.ID); err != nil {
			t.Fatalf("DeleteUser() error = %v", err)
		}

		var reached bool
		var principal *Principal
		rec := httptest.NewRecorder()

		fx.mw.RequireUser(okHandler(&reached, &principal)).ServeHTTP(rec, req)

		if reached {
			t.Error("handler was reached for a deleted user")
		}
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
		}
		if !strings.Contains(rec.Body.String(), "Access denied. User not found.") {
			t.Errorf("body = %q, want user-not-found message", rec.Body.String())
		}
	})
}

// An admin token is cryptographically valid but must still be rejected by the
// user-only middleware.
func TestMiddleware_RequireUser_RejectsAdmin(t *testing.T) {
	fx := newMiddlewareFixture(t)

	var reached bool
	var principal *Principal
	rec := httptest.NewRecorder()

	fx.mw.RequireUser(okHandler(&reached, &principal)).ServeHTTP(rec,
		requestWithToken(t, fx.tm, fx.admin.ID, fx.admin.Role))

	if reached {
		t.Error("handler was reached with an admin token")
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestMiddleware_RequireAdmin(t *testing.T) {
	fx := newMiddlewareFixture(t)

	t.Run("valid admin token admitted", func(t *testing.T) {
		var reached bool
		var principal *Principal
		rec := httptest.NewRecorder()

		fx.mw.RequireAdmin(okHandler(&reached, &principal)).ServeHTTP(rec,
			requestWithToken(t, fx.tm, fx.admin.ID, fx.admin.Role))

		if !reached {
			t.Fatalf("handler not reached, status = %d body = %q", rec.Code, rec.Body.String())
		}
		if principal == nil || principal.Admin == nil {
			t.Errorf("principal = %+v, want admin %s", principal, fx.admin.ID)
		}
	})

	t.Run("valid user token denied", func(t *testing.T) {
		var reached bool
		var principal *Principal
		rec := httptest.NewRecorder()

		fx.mw.RequireAdmin(okHandler(&reached, &principal)).ServeHTTP(rec,
			requestWithToken(t, fx.tm, fx.user.ID, fx.user.Role))

		if reached {
			t.Error("handler was reached with a user token")
		}
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
		}
		if !strings.Contains(rec.Body.String(), "Access denied. Admins only.") {
			t.Errorf("body = %q, want admins-only message", rec.Body.String())
		}
	})
}

func TestMiddleware_RequireAuth(t *testing.T) {
	fx := newMiddlewareFixture(t)

	t.Run("user admitted", func(t *testing.T) {
		var reached bool
		var principal *Principal
		rec := httptest.NewRecorder()

		fx.mw.RequireAuth(okHandler(&reached, &principal)).ServeHTTP(rec,
			requestWithToken(t, fx.tm, fx.user.ID, fx.user.Role))

		if !reached || principal == nil || principal.IsAdmin() {
			t.Errorf("want user principal, got %+v (status %d)", principal, rec.Code)
		}
	})

	t.Run("admin admitted", func(t *testing.T) {
		var reached bool
		var principal *Principal
		rec := httptest.NewRecorder()

		fx.mw.RequireAuth(okHandler(&reached, &principal)).ServeHTTP(rec,
			requestWithToken(t, fx.tm, fx.admin.ID, fx.admin.Role))

		if !reached || principal == nil || !principal.IsAdmin() {
			t.Errorf("want admin principal, got %+v (status %d)", principal, rec.Code)
		}
	})

	t.Run("unknown subject denied", func(t *testing.T) {
		var reached bool
		var principal *Principal
		rec := httptest.NewRecorder()

		fx.mw.RequireAuth(okHandler(&reached, &principal)).ServeHTTP(rec,
			requestWithToken(t, fx.tm, "missing-id", store.RoleUser))

		if reached {
			t.Error("handler was reached for an unknown subject")
		}
		if !strings.Contains(rec.Body.String(), "Access denied. User/Admin not found.") {
			t.Errorf("body = %q, want unified not-found message", rec.Body.String())
		}
	})
}

// faultyStore wraps Memory and fails every lookup by ID, standing in for a
// backing store that is down during principal resolution.
type faultyStore struct {
	*store.Memory
}

var errStoreDown = errors.New("connection refused")

func (f *faultyStore) FindUserByID(ctx context.Context, id string) (*store.User, error) {
	return nil, errStoreDown
}

func (f *faultyStore) FindAdminByID(ctx context.Context, id string) (*store.Admin, error) {
	return nil, errStoreDown
}

func TestMiddleware_StoreFailureIsInternalError(t *testing.T) {
	fx := newMiddlewareFixture(t)
	faulty := &faultyStore{Memory: fx.store}
	mw := NewMiddleware(fx.tm, NewResolver(faulty, faulty))

	cases := []struct {
		name string
		wrap func(http.Handler) http.Handler
		id   string
		role store.Role
	}{
		{"user middleware", mw.RequireUser, fx.user.ID, store.RoleUser},
		{"admin middleware", mw.RequireAdmin, fx.admin.ID, store.RoleAdmin},
		{"unified middleware", mw.RequireAuth, fx.user.ID, store.RoleUser},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			var reached bool
			var principal *Principal
			rec := httptest.NewRecorder()

			tt.wrap(okHandler(&reached, &principal)).ServeHTTP(rec,
				requestWithToken(t, fx.tm, tt.id, tt.role))

			if rec.Code != http.StatusInternalServerError {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
			}
			if !strings.Contains(rec.Body.String(), "Internal server error.") {
				t.Errorf("body = %q, want internal server error message", rec.Body.String())
			}
			if reached {
				t.Error("handler was reached despite the store failure")
			}
		})
	}
}
