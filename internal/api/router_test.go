// Fittrackd - Multi-Tenant Fitness Tracking API
// Copyright 2026 Fittrackd Contributors
// SPDX-License-Identifier: MIT
// https://github.com/fittrackd/fittrackd

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/fittrackd/fittrackd/internal/auth"
	"github.com/fittrackd/fittrackd/internal/config"
	"github.com/fittrackd/fittrackd/internal/store"
)

type testEnv struct {
	handler http.Handler
	store   *store.Memory
	tokens  *auth.TokenManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		Security: config.SecurityConfig{
			AccessTokenSecret:  "test-access-secret-0123456789abcdef",
			RefreshTokenSecret: "test-refresh-secret-0123456789abcdef",
			AccessTokenTTL:     15 * time.Minute,
			RefreshTokenTTL:    7 * 24 * time.Hour,
			RateLimitDisabled:  true,
			CORSOrigins:        []string{"*"},
		},
	}

	tokens, err := auth.NewTokenManager(&cfg.Security)
	if err != nil {
		t.Fatalf("NewTokenManager() error = %v", err)
	}

	mem := store.NewMemory()
	return &testEnv{
		handler: NewServer(cfg, mem, tokens).Routes(),
		store:   mem,
		tokens:  tokens,
	}
}

func (e *testEnv) do(t *testing.T, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// userSession signs up a user and returns their access cookie.
func (e *testEnv) userSession(t *testing.T, email string) *http.Cookie {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/signup", `{
		"name": "Alice Example",
		"email": "`+email+`",
		"password": "Password1@",
		"age": 30,
		"gender": "female",
		"height": 170,
		"weight": 65,
		"activityLevel": "moderate",
		"goals": "stay fit"
	}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup status = %d (body %q)", rec.Code, rec.Body.String())
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.AccessTokenCookie {
			return c
		}
	}
	t.Fatal("signup response missing access cookie")
	return nil
}

// adminSession creates an admin directly in the store and mints their cookie.
func (e *testEnv) adminSession(t *testing.T, email string) *http.Cookie {
	t.Helper()

	admin, err := e.store.CreateAdmin(context.Background(), store.CreateAdminParams{
		Name:     "Bob Admin",
		Email:    email,
		Password: "Password1@",
		Role:     store.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("CreateAdmin() error = %v", err)
	}

	token, err := e.tokens.Issue(admin.ID, admin.Role, auth.TokenAccess)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	return &http.Cookie{Name: auth.AccessTokenCookie, Value: token}
}

func TestRouter_Health(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Status != "ok" || resp.Database != "ok" {
		t.Errorf("health = %+v, want ok/ok", resp)
	}
}

func TestRouter_ProtectedRoutesRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/user/profile"},
		{http.MethodGet, "/api/admin/users"},
		{http.MethodGet, "/api/workouts"},
		{http.MethodGet, "/api/nutrition-plans"},
		{http.MethodGet, "/api/health-metrics"},
	}

	for _, tt := range paths {
		t.Run(tt.path, func(t *testing.T) {
			rec := env.do(t, tt.method, tt.path, "")
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
			}
		})
	}
}

func TestRouter_UserProfileFlow(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.userSession(t, "alice@example.com")

	rec := env.do(t, http.MethodGet, "/api/user/profile", "", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("get profile status = %d (body %q)", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "passwordHash") {
		t.Errorf("profile leaks hash: %q", rec.Body.String())
	}

	rec = env.do(t, http.MethodPut, "/api/user/profile", `{
		"name": "Alice Renamed",
		"age": 31,
		"gender": "female",
		"height": 171,
		"weight": 64,
		"activityLevel": "active",
		"goals": "run a marathon"
	}`, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("update profile status = %d (body %q)", rec.Code, rec.Body.String())
	}

	var user store.User
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if user.Name != "Alice Renamed" || user.Age != 31 {
		t.Errorf("updated profile = %+v", user)
	}
}

func TestRouter_ChangePassword(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.userSession(t, "alice@example.com")

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "same as current",
			body:       `{"currentPassword": "Password1@", "newPassword": "Password1@"}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "New password cannot be the same as current password",
		},
		{
			name:       "wrong current password",
			body:       `{"currentPassword": "Wrong1@pass", "newPassword": "NewSecret1@"}`,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Incorrect current password",
		},
		{
			name:       "success",
			body:       `{"currentPassword": "Password1@", "newPassword": "NewSecret1@"}`,
			wantStatus: http.StatusOK,
			wantMsg:    "Password changed successfully",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPut, "/api/user/change-password", tt.body, cookie)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %q)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tt.wantMsg) {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantMsg)
			}
		})
	}

	// The old password no longer signs in; the new one does.
	rec := env.do(t, http.MethodPost, "/api/signin",
		`{"email": "alice@example.com", "password": "Password1@"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("old password signin status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	rec = env.do(t, http.MethodPost, "/api/signin",
		`{"email": "alice@example.com", "password": "NewSecret1@"}`)
	if rec.Code != http.StatusOK {
		t.Errorf("new password signin status = %d, want %d (body %q)", rec.Code, http.StatusOK, rec.Body.String())
	}
}

func TestRouter_AdminRoutes(t *testing.T) {
	env := newTestEnv(t)
	userCookie := env.userSession(t, "alice@example.com")
	adminCookie := env.adminSession(t, "bob@example.com")

	t.Run("user denied on admin routes", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/admin/users", "", userCookie)
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
		}
		if !strings.Contains(rec.Body.String(), "Access denied. Admins only.") {
			t.Errorf("body = %q", rec.Body.String())
		}
	})

	t.Run("admin lists users", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/admin/users", "", adminCookie)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d (body %q)", rec.Code, rec.Body.String())
		}

		var users []store.User
		if err := json.Unmarshal(rec.Body.Bytes(), &users); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(users) != 1 || users[0].Email != "alice@example.com" {
			t.Errorf("users = %+v", users)
		}
	})

	t.Run("admin creates admin", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/admin/admins", `{
			"name": "Carol Admin",
			"email": "carol@example.com",
			"password": "Password1@",
			"role": "admin"
		}`, adminCookie)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d (body %q)", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), "Admin created successfully.") {
			t.Errorf("body = %q", rec.Body.String())
		}

		rec = env.do(t, http.MethodPost, "/api/admin/admins", `{
			"name": "Carol Admin",
			"email": "carol@example.com",
			"password": "Password1@",
			"role": "admin"
		}`, adminCookie)
		if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "Admin already exists.") {
			t.Errorf("duplicate admin: status = %d body = %q", rec.Code, rec.Body.String())
		}
	})

	t.Run("missing user id", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/admin/users/not-a-real-id", "", adminCookie)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
		if !strings.Contains(rec.Body.String(), "User not found.") {
			t.Errorf("body = %q", rec.Body.String())
		}
	})
}

func TestRouter_WorkoutCRUD(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.userSession(t, "alice@example.com")

	planBody := `{
		"planName": "Strength Block",
		"goal": "build muscle",
		"level": "beginner",
		"workouts": [
			{
				"day": "monday",
				"exercises": [
					{"name": "Squat", "sets": 5, "reps": 5, "rest": 120}
				]
			}
		]
	}`

	rec := env.do(t, http.MethodPost, "/api/workouts", planBody, cookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d (body %q)", rec.Code, rec.Body.String())
	}

	var created struct {
		Message     string            `json:"message"`
		WorkoutPlan store.WorkoutPlan `json:"workoutPlan"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if created.Message != "Workout plan created successfully." {
		t.Errorf("message = %q", created.Message)
	}
	if created.WorkoutPlan.ID == "" {
		t.Fatal("created plan has no id")
	}

	rec = env.do(t, http.MethodGet, "/api/workouts/"+created.WorkoutPlan.ID, "", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d (body %q)", rec.Code, rec.Body.String())
	}

	// Another user cannot see the plan.
	otherCookie := env.userSession(t, "mallory@example.com")
	rec = env.do(t, http.MethodGet, "/api/workouts/"+created.WorkoutPlan.ID, "", otherCookie)
	if rec.Code != http.StatusNotFound {
		t.Errorf("foreign get status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	rec = env.do(t, http.MethodPut, "/api/workouts/"+created.WorkoutPlan.ID,
		strings.Replace(planBody, "beginner", "intermediate", 1), cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d (body %q)", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"level":"intermediate"`) {
		t.Errorf("update body = %q, want intermediate level", rec.Body.String())
	}

	rec = env.do(t, http.MethodDelete, "/api/workouts/"+created.WorkoutPlan.ID, "", cookie)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Workout plan deleted successfully.") {
		t.Errorf("delete: status = %d body = %q", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, "/api/workouts/"+created.WorkoutPlan.ID, "", cookie)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestRouter_NutritionValidation(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.userSession(t, "alice@example.com")

	rec := env.do(t, http.MethodPost, "/api/nutrition-plans", `{
		"planName": "Bulk",
		"calories": 3000,
		"macros": {"protein": 180, "carbs": 350, "fat": 80},
		"meals": [
			{
				"mealType": "elevenses",
				"foods": [{"foodItem": "Oats", "calories": 300, "protein": 10, "carbs": 50, "fat": 5}]
			}
		]
	}`, cookie)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d (body %q)", rec.Code, http.StatusBadRequest, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "MealType") {
		t.Errorf("body = %q, want meal type validation message", rec.Body.String())
	}
}

func TestRouter_HealthMetricsFlow(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.userSession(t, "alice@example.com")

	rec := env.do(t, http.MethodPost, "/api/health-metrics", `{
		"weight": 65,
		"dailySteps": 9000,
		"sleepHours": 7.5,
		"workoutLog": [{"workoutType": "running", "duration": 30, "intensity": "medium"}]
	}`, cookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d (body %q)", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Health metrics logged successfully.") {
		t.Errorf("body = %q", rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, "/api/health-metrics", "", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}

	var metrics []store.HealthMetric
	if err := json.Unmarshal(rec.Body.Bytes(), &metrics); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(metrics) != 1 || metrics[0].DailySteps != 9000 {
		t.Errorf("metrics = %+v", metrics)
	}
	if metrics[0].Date.IsZero() {
		t.Error("date should default to the logging time")
	}
}

func TestRouter_SignoutRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/signout", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous signout status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if !strings.Contains(rec.Body.String(), "No access token provided.") {
		t.Errorf("body = %q, want missing-token message", rec.Body.String())
	}

	cookie := env.userSession(t, "carol@example.com")
	rec = env.do(t, http.MethodPost, "/api/signout", "", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("authenticated signout status = %d (body %q)", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Logged out successfully") {
		t.Errorf("body = %q, want signout confirmation", rec.Body.String())
	}
}
