// Fittrackd - Multi-Tenant Fitness Tracking API
// Copyright 2026 Fittrackd Contributors
// SPDX-License-Identifier: MIT
// https://github.com/fittrackd/fittrackd

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fittrackd/fittrackd/internal/auth"
	"github.com/fittrackd/fittrackd/internal/store"
	"github.com/fittrackd/fittrackd/internal/validation"
)

// FoodLogRequest is one logged food intake.
type FoodLogRequest struct {
	MealType string  `json:"mealType" validate:"required,oneof=breakfast lunch dinner snack"`
	FoodItem string  `json:"foodItem" validate:"required,min=2,max=100"`
	Calories float64 `json:"calories" validate:"gte=0"`
	Protein  float64 `json:"protein" validate:"gte=0"`
	Carbs    float64 `json:"carbs" validate:"gte=0"`
	Fat      float64 `json:"fat" validate:"gte=0"`
}

// WorkoutLogRequest is one logged workout session.
type WorkoutLogRequest struct {
	WorkoutType string `json:"workoutType" validate:"required,min=2,max=100"`
	Duration    int    `json:"duration" validate:"gte=0"`
	Intensity   string `json:"intensity" validate:"required,oneof=low medium high"`
}

// HealthMetricRequest is the payload for logging or updating a daily health
// snapshot. Everything except the logs is optional; zero values mean
// "not recorded".
type HealthMetricRequest struct {
	Date          time.Time           `json:"date"`
	Weight        float64             `json:"weight" validate:"gte=0"`
	Height        float64             `json:"height" validate:"gte=0"`
	ActivityLevel string              `json:"activityLevel" validate:"omitempty,oneof=sedentary light moderate active 'very active'"`
	DailySteps    int                 `json:"dailySteps" validate:"gte=0"`
	SleepHours    float64             `json:"sleepHours" validate:"gte=0,lte=24"`
	WaterIntake   float64             `json:"waterIntake" validate:"gte=0"`
	FoodLog       []FoodLogRequest    `json:"foodLog" validate:"omitempty,dive"`
	WorkoutLog    []WorkoutLogRequest `json:"workoutLog" validate:"omitempty,dive"`
}

func (req *HealthMetricRequest) apply(metric *store.HealthMetric) {
	if !req.Date.IsZero() {
		metric.Date = req.Date
	}
	if req.Weight > 0 {
		metric.Weight = req.Weight
	}
	if req.Height > 0 {
		metric.Height = req.Height
	}
	if req.ActivityLevel != "" {
		metric.ActivityLevel = req.ActivityLevel
	}
	if req.DailySteps > 0 {
		metric.DailySteps = req.DailySteps
	}
	if req.SleepHours > 0 {
		metric.SleepHours = req.SleepHours
	}
	if req.WaterIntake > 0 {
		metric.WaterIntake = req.WaterIntake
	}
	if req.FoodLog != nil {
		metric.FoodLog = req.foodLog()
	}
	if req.WorkoutLog != nil {
		metric.WorkoutLog = req.workoutLog()
	}
}

func (req *HealthMetricRequest) foodLog() []store.FoodLogEntry {
	entries := make([]store.FoodLogEntry, len(req.FoodLog))
	for i, entry := range req.FoodLog {
		entries[i] = store.FoodLogEntry{
			MealType: entry.MealType,
			FoodItem: entry.FoodItem,
			Calories: entry.Calories,
			Protein:  entry.Protein,
			Carbs:    entry.Carbs,
			Fat:      entry.Fat,
		}
	}
	return entries
}

func (req *HealthMetricRequest) workoutLog() []store.WorkoutLogEntry {
	entries := make([]store.WorkoutLogEntry, len(req.WorkoutLog))
	for i, entry := range req.WorkoutLog {
		entries[i] = store.WorkoutLogEntry{
			WorkoutType: entry.WorkoutType,
			Duration:    entry.Duration,
			Intensity:   entry.Intensity,
		}
	}
	return entries
}

// LogHealthMetric handles POST /api/health-metrics. The date defaults to now
// when the client does not supply one.
func (s *Server) LogHealthMetric(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	var req HealthMetricRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	metric := &store.HealthMetric{
		UserID: principal.ID,
		Date:   time.Now().UTC(),
	}
	req.apply(metric)

	if err := s.store.CreateHealthMetric(r.Context(), metric); err != nil {
		respondInternalError(w, err, "log health metrics")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message":       "Health metrics logged successfully.",
		"healthMetrics": metric,
	})
}

// ListHealthMetrics handles GET /api/health-metrics.
func (s *Server) ListHealthMetrics(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	metrics, err := s.store.ListHealthMetrics(r.Context(), principal.ID)
	if err != nil {
		respondInternalError(w, err, "list health metrics")
		return
	}
	respondJSON(w, http.StatusOK, metrics)
}

// GetHealthMetric handles GET /api/health-metrics/{id}.
func (s *Server) GetHealthMetric(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	metric, err := s.store.FindHealthMetric(r.Context(), principal.ID, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Health metrics not found.")
			return
		}
		respondInternalError(w, err, "get health metrics")
		return
	}
	respondJSON(w, http.StatusOK, metric)
}

// UpdateHealthMetric handles PUT /api/health-metrics/{id}. Supplied fields
// replace stored ones; omitted fields keep their previous values.
func (s *Server) UpdateHealthMetric(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	var req HealthMetricRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	metric, err := s.store.FindHealthMetric(r.Context(), principal.ID, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Health metrics not found.")
			return
		}
		respondInternalError(w, err, "update health metrics")
		return
	}

	req.apply(metric)

	if err := s.store.UpdateHealthMetric(r.Context(), metric); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Health metrics not found.")
			return
		}
		respondInternalError(w, err, "update health metrics")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":       "Health metrics updated successfully.",
		"healthMetrics": metric,
	})
}

// DeleteHealthMetric handles DELETE /api/health-metrics/{id}.
func (s *Server) DeleteHealthMetric(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	err := s.store.DeleteHealthMetric(r.Context(), principal.ID, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Health metrics not found.")
			return
		}
		respondInternalError(w, err, "delete health metrics")
		return
	}
	respondMessage(w, http.StatusOK, "Health metrics deleted successfully.")
}
