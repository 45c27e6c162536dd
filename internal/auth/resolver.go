// Fittrackd - Multi-Tenant Fitness Tracking API
// Copyright 2026 Fittrackd Contributors
// SPDX-License-Identifier: MIT
// https://github.com/fittrackd/fittrackd

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/fittrackd/fittrackd/internal/store"
)

// ErrPrincipalNotFound is returned when a token's subject no longer exists in
// the store it was issued against.
var ErrPrincipalNotFound = errors.New("principal not found")

// Principal is the authenticated identity attached to a request after the
// token subject has been resolved against the backing store. Exactly one of
// User or Admin is non-nil, matching the role claim.
type Principal struct {
	ID    string
	Name  string
	Email string
	Role  store.Role

	User  *store.User
	Admin *store.Admin
}

// IsAdmin reports whether the principal was resolved from the admin store.
func (p *Principal) IsAdmin() bool {
	return p.Admin != nil
}

// Resolver turns verified token claims into a live Principal. The role claim
// picks the store: admin roles go to the admin store, everything else to the
// user store. The two stores are disjoint, so a user token can never resolve
// to an admin record or vice versa.
type Resolver struct {
	users  store.UserStore
	admins store.AdminStore
}

// NewResolver builds a Resolver over the two credential stores.
func NewResolver(users store.UserStore, admins store.AdminStore) *Resolver {
	return &Resolver{users: users, admins: admins}
}

// Resolve looks up the claims' subject in the store selected by the role
// claim. A missing record maps to ErrPrincipalNotFound; any other store
// failure is passed through untouched.
func (r *Resolver) Resolve(ctx context.Context, claims *Claims) (*Principal, error) {
	if claims.Role.IsAdmin() {
		admin, err := r.admins.FindAdminByID(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrPrincipalNotFound
			}
			return nil, fmt.Errorf("resolving admin principal: %w", err)
		}
		return &Principal{
			ID:    admin.ID,
			Name:  admin.Name,
			Email: admin.Email,
			Role:  admin.Role,
			Admin: admin,
		}, nil
	}

	user, err := r.users.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrPrincipalNotFound
		}
		return nil, fmt.Errorf("resolving user principal: %w", err)
	}
	return &Principal{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		User:  user,
	}, nil
}
