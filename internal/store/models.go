// Fittrackd - Multi-Tenant Fitness Tracking API
// Copyright 2026 Fittrackd Contributors
// SPDX-License-Identifier: MIT
// https://github.com/fittrackd/fittrackd

package store

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role tags an authenticated principal. Users always carry RoleUser; admins
// carry RoleAdmin or RoleSuperadmin.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// IsAdmin reports whether the role belongs to the administrative tier.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperadmin
}

// User is a regular fitness-tracking account.
//
// PasswordHash is excluded from JSON marshaling so API responses are redacted
// by construction.
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Age           int       `json:"age"`
	Gender        string    `json:"gender"`
	Height        float64   `json:"height"`
	Weight        float64   `json:"weight"`
	ActivityLevel string    `json:"activityLevel"`
	Goals         string    `json:"goals"`
	Role          Role      `json:"role"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CheckPassword reports whether plain matches the stored bcrypt hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}

// Admin is an administrative account. Admins live in a store disjoint from
// users and never carry fitness profile attributes.
type Admin struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CheckPassword reports whether plain matches the stored bcrypt hash.
func (a *Admin) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(plain)) == nil
}

// Exercise is a single exercise within a workout day.
type Exercise struct {
	Name     string `json:"name"`
	Sets     int    `json:"sets"`
	Reps     int    `json:"reps"`
	Duration int    `json:"duration"`
	Rest     int    `json:"rest"`
}

// WorkoutDay groups the exercises planned for one day.
type WorkoutDay struct {
	Day       string     `json:"day"`
	Exercises []Exercise `json:"exercises"`
}

// WorkoutPlan is a user-owned training plan.
type WorkoutPlan struct {
	ID        string       `json:"id"`
	UserID    string       `json:"userId"`
	PlanName  string       `json:"planName"`
	Goal      string       `json:"goal,omitempty"`
	Level     string       `json:"level"`
	Workouts  []WorkoutDay `json:"workouts"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Food is a single food entry within a meal.
type Food struct {
	FoodItem string  `json:"foodItem"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Meal groups foods by meal type (breakfast, lunch, ...).
type Meal struct {
	MealType string `json:"mealType"`
	Foods    []Food `json:"foods"`
}

// Macros is a macronutrient breakdown in grams.
type Macros struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

// NutritionPlan is a user-owned nutrition plan.
type NutritionPlan struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	PlanName  string    `json:"planName"`
	Goal      string    `json:"goal,omitempty"`
	Calories  float64   `json:"calories"`
	Macros    Macros    `json:"macros"`
	Meals     []Meal    `json:"meals"`
	CreatedAt time.Time `json:"createdAt"`
}

// FoodLogEntry is one logged food intake.
type FoodLogEntry struct {
	MealType string  `json:"mealType"`
	FoodItem string  `json:"foodItem"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// WorkoutLogEntry is one logged workout session.
type WorkoutLogEntry struct {
	WorkoutType string `json:"workoutType"`
	Duration    int    `json:"duration"`
	Intensity   string `json:"intensity"`
}

// HealthMetric is a user-owned daily health snapshot.
type HealthMetric struct {
	ID            string            `json:"id"`
	UserID        string            `json:"userId"`
	Date          time.Time         `json:"date"`
	Weight        float64           `json:"weight"`
	Height        float64           `json:"height"`
	ActivityLevel string            `json:"activityLevel"`
	DailySteps    int               `json:"dailySteps"`
	SleepHours    float64           `json:"sleepHours"`
	WaterIntake   float64           `json:"waterIntake"`
	FoodLog       []FoodLogEntry    `json:"foodLog"`
	WorkoutLog    []WorkoutLogEntry `json:"workoutLog"`
}
