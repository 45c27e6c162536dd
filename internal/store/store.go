// Fittrackd - Multi-Tenant Fitness Tracking API
// Copyright 2026 Fittrackd Contributors
// SPDX-License-Identifier: MIT
// https://github.com/fittrackd/fittrackd

package store

import "context"

// CreateUserParams carries the fields for a new user account.
// Password is plaintext here; the store hashes it before persisting.
type CreateUserParams struct {
	Name          string
	Email         string
	Password      string
	Age           int
	Gender        string
	Height        float64
	Weight        float64
	ActivityLevel string
	Goals         string
}

// UpdateUserParams carries the mutable profile fields of a user.
// The stored password hash is never touched by a profile update.
type UpdateUserParams struct {
	Name          string
	Age           int
	Gender        string
	Height        float64
	Weight        float64
	ActivityLevel string
	Goals         string
}

// CreateAdminParams carries the fields for a new admin account.
type CreateAdminParams struct {
	Name     string
	Email    string
	Password string
	Role     Role
}

// UpdateAdminParams carries the mutable fields of an admin.
type UpdateAdminParams struct {
	Name  string
	Email string
	Role  Role
}

// UserStore is the credential store for regular users.
// Lookups by email are case-insensitive.
type UserStore interface {
	CreateUser(ctx context.Context, params CreateUserParams) (*User, error)
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	FindUserByID(ctx context.Context, id string) (*User, error)
	UpdateUser(ctx context.Context, id string, params UpdateUserParams) (*User, error)

	// UpdateUserPassword re-hashes the plaintext and replaces the stored
	// hash. This is the only operation that modifies a user's secret.
	UpdateUserPassword(ctx context.Context, id, password string) error

	DeleteUser(ctx context.Context, id string) error
	ListUsers(ctx context.Context) ([]*User, error)
}

// AdminStore is the credential store for administrators.
// It is disjoint from UserStore: the same email may exist in both.
type AdminStore interface {
	CreateAdmin(ctx context.Context, params CreateAdminParams) (*Admin, error)
	FindAdminByEmail(ctx context.Context, email string) (*Admin, error)
	FindAdminByID(ctx context.Context, id string) (*Admin, error)
	UpdateAdmin(ctx context.Context, id string, params UpdateAdminParams) (*Admin, error)
	DeleteAdmin(ctx context.Context, id string) error
	ListAdmins(ctx context.Context) ([]*Admin, error)
}

// WorkoutStore persists user-owned workout plans. All lookups are scoped to
// the owning user; a plan owned by someone else behaves as not found.
type WorkoutStore interface {
	CreateWorkoutPlan(ctx context.Context, plan *WorkoutPlan) error
	ListWorkoutPlans(ctx context.Context, userID string) ([]*WorkoutPlan, error)
	FindWorkoutPlan(ctx context.Context, userID, id string) (*WorkoutPlan, error)
	UpdateWorkoutPlan(ctx context.Context, plan *WorkoutPlan) error
	DeleteWorkoutPlan(ctx context.Context, userID, id string) error
}

// NutritionStore persists user-owned nutrition plans.
type NutritionStore interface {
	CreateNutritionPlan(ctx context.Context, plan *NutritionPlan) error
	ListNutritionPlans(ctx context.Context, userID string) ([]*NutritionPlan, error)
	FindNutritionPlan(ctx context.Context, userID, id string) (*NutritionPlan, error)
	UpdateNutritionPlan(ctx context.Context, plan *NutritionPlan) error
	DeleteNutritionPlan(ctx context.Context, userID, id string) error
}

// HealthMetricStore persists user-owned health metric snapshots.
type HealthMetricStore interface {
	CreateHealthMetric(ctx context.Context, metric *HealthMetric) error
	ListHealthMetrics(ctx context.Context, userID string) ([]*HealthMetric, error)
	FindHealthMetric(ctx context.Context, userID, id string) (*HealthMetric, error)
	UpdateHealthMetric(ctx context.Context, metric *HealthMetric) error
	DeleteHealthMetric(ctx context.Context, userID, id string) error
}

// Store aggregates every persistence concern behind one interface, so
// handlers can be wired against Postgres in production and Memory in tests.
type Store interface {
	UserStore
	AdminStore
	WorkoutStore
	NutritionStore
	HealthMetricStore

	// Ping verifies the store is reachable (used by the health endpoint).
	Ping(ctx context.Context) error
}
