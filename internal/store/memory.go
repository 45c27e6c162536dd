// Fittrackd - Multi-Tenant Fitness Tracking API
// Copyright 2026 Fittrackd Contributors
// SPDX-License-Identifier: MIT
// https://github.com/fittrackd/fittrackd

package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory implements Store with mutex-guarded maps. It reproduces the Postgres
// semantics (case-insensitive email uniqueness per store, owner-scoped
// resources) and is intended for tests and local development.
type Memory struct {
	mu         sync.RWMutex
	bcryptCost int

	users  map[string]*User
	admins map[string]*Admin

	userEmails  map[string]string // normalized email -> user id
	adminEmails map[string]string // normalized email -> admin id

	workouts  map[string]*WorkoutPlan
	nutrition map[string]*NutritionPlan
	metrics   map[string]*HealthMetric
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		// MinCost keeps tests fast; production hashing cost comes from config.
		bcryptCost:  4,
		users:       make(map[string]*User),
		admins:      make(map[string]*Admin),
		userEmails:  make(map[string]string),
		adminEmails: make(map[string]string),
		workouts:    make(map[string]*WorkoutPlan),
		nutrition:   make(map[string]*NutritionPlan),
		metrics:     make(map[string]*HealthMetric),
	}
}

// Ping always succeeds for the in-memory store.
func (m *Memory) Ping(context.Context) error { return nil }

func copyUser(u *User) *User {
	c := *u
	return &c
}

func copyAdmin(a *Admin) *Admin {
	c := *a
	return &c
}

// CreateUser hashes the password and stores the user. The email existence
// check and the insert happen under one lock, mirroring the atomicity the
// Postgres unique index provides.
func (m *Memory) CreateUser(ctx context.Context, params CreateUserParams) (*User, error) {
	hash, err := HashPassword(params.Password, m.bcryptCost)
	if err != nil {
		return nil, err
	}

	email := NormalizeEmail(params.Email)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.userEmails[email]; exists {
		return nil, ErrDuplicateEmail
	}

	u := &User{
		ID:            uuid.NewString(),
		Name:          params.Name,
		Email:         email,
		PasswordHash:  hash,
		Age:           params.Age,
		Gender:        params.Gender,
		Height:        params.Height,
		Weight:        params.Weight,
		ActivityLevel: params.ActivityLevel,
		Goals:         params.Goals,
		Role:          RoleUser,
		CreatedAt:     time.Now().UTC(),
	}
	m.users[u.ID] = u
	m.userEmails[email] = u.ID

	return copyUser(u), nil
}

// FindUserByEmail looks up a user by normalized email.
func (m *Memory) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.userEmails[NormalizeEmail(email)]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(m.users[id]), nil
}

// FindUserByID looks up a user by id.
func (m *Memory) FindUserByID(ctx context.Context, id string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(u), nil
}

// UpdateUser updates profile fields only.
func (m *Memory) UpdateUser(ctx context.Context, id string, params UpdateUserParams) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	u.Name = params.Name
	u.Age = params.Age
	u.Gender = params.Gender
	u.Height = params.Height
	u.Weight = params.Weight
	u.ActivityLevel = params.ActivityLevel
	u.Goals = params.Goals

	return copyUser(u), nil
}

// UpdateUserPassword re-hashes the plaintext and replaces the stored hash.
func (m *Memory) UpdateUserPassword(ctx context.Context, id, password string) error {
	hash, err := HashPassword(password, m.bcryptCost)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

// DeleteUser removes a user and their fitness records.
func (m *Memory) DeleteUser(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	delete(m.userEmails, u.Email)
	delete(m.users, id)

	for pid, plan := range m.workouts {
		if plan.UserID == id {
			delete(m.workouts, pid)
		}
	}
	for pid, plan := range m.nutrition {
		if plan.UserID == id {
			delete(m.nutrition, pid)
		}
	}
	for mid, metric := range m.metrics {
		if metric.UserID == id {
			delete(m.metrics, mid)
		}
	}
	return nil
}

// ListUsers returns all users ordered by creation time.
func (m *Memory) ListUsers(ctx context.Context) ([]*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]*User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, copyUser(u))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

// CreateAdmin hashes the password and stores the admin.
func (m *Memory) CreateAdmin(ctx context.Context, params CreateAdminParams) (*Admin, error) {
	hash, err := HashPassword(params.Password, m.bcryptCost)
	if err != nil {
		return nil, err
	}

	email := NormalizeEmail(params.Email)
	role := params.Role
	if role == "" {
		role = RoleAdmin
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.adminEmails[email]; exists {
		return nil, ErrDuplicateEmail
	}

	a := &Admin{
		ID:           uuid.NewString(),
		Name:         params.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	m.admins[a.ID] = a
	m.adminEmails[email] = a.ID

	return copyAdmin(a), nil
}

// FindAdminByEmail looks up an admin by normalized email.
func (m *Memory) FindAdminByEmail(ctx context.Context, email string) (*Admin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.adminEmails[NormalizeEmail(email)]
	if !ok {
		return nil, ErrNotFound
	}
	return copyAdmin(m.admins[id]), nil
}

// FindAdminByID looks up an admin by id.
func (m *Memory) FindAdminByID(ctx context.Context, id string) (*Admin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.admins[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyAdmin(a), nil
}

// UpdateAdmin updates name, email and role.
func (m *Memory) UpdateAdmin(ctx context.Context, id string, params UpdateAdminParams) (*Admin, error) {
	email := NormalizeEmail(params.Email)

	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.admins[id]
	if !ok {
		return nil, ErrNotFound
	}
	if other, exists := m.adminEmails[email]; exists && other != id {
		return nil, ErrDuplicateEmail
	}

	delete(m.adminEmails, a.Email)
	a.Name = params.Name
	a.Email = email
	a.Role = params.Role
	m.adminEmails[email] = id

	return copyAdmin(a), nil
}

// DeleteAdmin removes an admin account.
func (m *Memory) DeleteAdmin(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.admins[id]
	if !ok {
		return ErrNotFound
	}
	delete(m.adminEmails, a.Email)
	delete(m.admins, id)
	return nil
}

// ListAdmins returns all admins ordered by creation time.
func (m *Memory) ListAdmins(ctx context.Context) ([]*Admin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	admins := make([]*Admin, 0, len(m.admins))
	for _, a := range m.admins {
		admins = append(admins, copyAdmin(a))
	}
	sort.Slice(admins, func(i, j int) bool { return admins[i].CreatedAt.Before(admins[j].CreatedAt) })
	return admins, nil
}

// CreateWorkoutPlan stores a plan, assigning its id and creation time.
func (m *Memory) CreateWorkoutPlan(ctx context.Context, plan *WorkoutPlan) error {
	plan.ID = uuid.NewString()
	plan.CreatedAt = time.Now().UTC()

	m.mu.Lock()
	defer m.mu.Unlock()

	c := *plan
	m.workouts[plan.ID] = &c
	return nil
}

// ListWorkoutPlans returns the user's plans ordered by creation time.
func (m *Memory) ListWorkoutPlans(ctx context.Context, userID string) ([]*WorkoutPlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var plans []*WorkoutPlan
	for _, plan := range m.workouts {
		if plan.UserID == userID {
			c := *plan
			plans = append(plans, &c)
		}
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].CreatedAt.Before(plans[j].CreatedAt) })
	return plans, nil
}

// FindWorkoutPlan returns the plan only if it belongs to userID.
func (m *Memory) FindWorkoutPlan(ctx context.Context, userID, id string) (*WorkoutPlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	plan, ok := m.workouts[id]
	if !ok || plan.UserID != userID {
		return nil, ErrNotFound
	}
	c := *plan
	return &c, nil
}

// UpdateWorkoutPlan replaces the plan, scoped to its owner.
func (m *Memory) UpdateWorkoutPlan(ctx context.Context, plan *WorkoutPlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.workouts[plan.ID]
	if !ok || existing.UserID != plan.UserID {
		return ErrNotFound
	}
	plan.CreatedAt = existing.CreatedAt
	c := *plan
	m.workouts[plan.ID] = &c
	return nil
}

// DeleteWorkoutPlan removes the plan, scoped to its owner.
func (m *Memory) DeleteWorkoutPlan(ctx context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	plan, ok := m.workouts[id]
	if !ok || plan.UserID != userID {
		return ErrNotFound
	}
	delete(m.workouts, id)
	return nil
}

// CreateNutritionPlan stores a plan, assigning its id and creation time.
func (m *Memory) CreateNutritionPlan(ctx context.Context, plan *NutritionPlan) error {
	plan.ID = uuid.NewString()
	plan.CreatedAt = time.Now().UTC()

	m.mu.Lock()
	defer m.mu.Unlock()

	c := *plan
	m.nutrition[plan.ID] = &c
	return nil
}

// ListNutritionPlans returns the user's plans ordered by creation time.
func (m *Memory) ListNutritionPlans(ctx context.Context, userID string) ([]*NutritionPlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var plans []*NutritionPlan
	for _, plan := range m.nutrition {
		if plan.UserID == userID {
			c := *plan
			plans = append(plans, &c)
		}
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].CreatedAt.Before(plans[j].CreatedAt) })
	return plans, nil
}

// FindNutritionPlan returns the plan only if it belongs to userID.
func (m *Memory) FindNutritionPlan(ctx context.Context, userID, id string) (*NutritionPlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	plan, ok := m.nutrition[id]
	if !ok || plan.UserID != userID {
		return nil, ErrNotFound
	}
	c := *plan
	return &c, nil
}

// UpdateNutritionPlan replaces the plan, scoped to its owner.
func (m *Memory) UpdateNutritionPlan(ctx context.Context, plan *NutritionPlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.nutrition[plan.ID]
	if !ok || existing.UserID != plan.UserID {
		return ErrNotFound
	}
	plan.CreatedAt = existing.CreatedAt
	c := *plan
	m.nutrition[plan.ID] = &c
	return nil
}

// DeleteNutritionPlan removes the plan, scoped to its owner.
func (m *Memory) DeleteNutritionPlan(ctx context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	plan, ok := m.nutrition[id]
	if !ok || plan.UserID != userID {
		return ErrNotFound
	}
	delete(m.nutrition, id)
	return nil
}

// CreateHealthMetric stores a snapshot, assigning its id. A zero date
// defaults to the current time.
func (m *Memory) CreateHealthMetric(ctx context.Context, metric *HealthMetric) error {
	metric.ID = uuid.NewString()
	if metric.Date.IsZero() {
		metric.Date = time.Now().UTC()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c := *metric
	m.metrics[metric.ID] = &c
	return nil
}

// ListHealthMetrics returns the user's snapshots ordered by date.
func (m *Memory) ListHealthMetrics(ctx context.Context, userID string) ([]*HealthMetric, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var metrics []*HealthMetric
	for _, metric := range m.metrics {
		if metric.UserID == userID {
			c := *metric
			metrics = append(metrics, &c)
		}
	}
	sort.Slice(metrics, func(i, j int) bool { return metrics[i].Date.Before(metrics[j].Date) })
	return metrics, nil
}

// FindHealthMetric returns the snapshot only if it belongs to userID.
func (m *Memory) FindHealthMetric(ctx context.Context, userID, id string) (*HealthMetric, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	metric, ok := m.metrics[id]
	if !ok || metric.UserID != userID {
		return nil, ErrNotFound
	}
	c := *metric
	return &c, nil
}

// UpdateHealthMetric replaces the snapshot, scoped to its owner.
func (m *Memory) UpdateHealthMetric(ctx context.Context, metric *HealthMetric) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.metrics[metric.ID]
	if !ok || existing.UserID != metric.UserID {
		return ErrNotFound
	}
	c := *metric
	m.metrics[metric.ID] = &c
	return nil
}

// DeleteHealthMetric removes the snapshot, scoped to its owner.
func (m *Memory) DeleteHealthMetric(ctx context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	metric, ok := m.metrics[id]
	if !ok || metric.UserID != userID {
		return ErrNotFound
	}
	delete(m.metrics, id)
	return nil
}
