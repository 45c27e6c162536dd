// Fittrackd - Multi-Tenant Fitness Tracking API
// Copyright 2026 Fittrackd Contributors
// SPDX-License-Identifier: MIT
// https://github.com/fittrackd/fittrackd

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fittrackd/fittrackd/internal/auth"
	"github.com/fittrackd/fittrackd/internal/store"
	"github.com/fittrackd/fittrackd/internal/validation"
)

// ExerciseRequest is one exercise inside a workout day.
type ExerciseRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Sets     int    `json:"sets" validate:"required,gte=1"`
	Reps     int    `json:"reps" validate:"required,gte=1"`
	Duration int    `json:"duration" validate:"gte=0"`
	Rest     int    `json:"rest" validate:"gte=0"`
}

// WorkoutDayRequest groups the exercises planned for one day.
type WorkoutDayRequest struct {
	Day       string            `json:"day" validate:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	Exercises []ExerciseRequest `json:"exercises" validate:"required,dive"`
}

// WorkoutPlanRequest is the payload for creating or updating a workout plan.
type WorkoutPlanRequest struct {
	PlanName string              `json:"planName" validate:"required,min=2,max=100"`
	Goal     string              `json:"goal" validate:"omitempty,max=200"`
	Level    string              `json:"level" validate:"required,oneof=beginner intermediate advanced"`
	Workouts []WorkoutDayRequest `json:"workouts" validate:"required,dive"`
}

func (req *WorkoutPlanRequest) toDays() []store.WorkoutDay {
	days := make([]store.WorkoutDay, len(req.Workouts))
	for i, day := range req.Workouts {
		exercises := make([]store.Exercise, len(day.Exercises))
		for j, ex := range day.Exercises {
			exercises[j] = store.Exercise{
				Name:     ex.Name,
				Sets:     ex.Sets,
				Reps:     ex.Reps,
				Duration: ex.Duration,
				Rest:     ex.Rest,
			}
		}
		days[i] = store.WorkoutDay{Day: day.Day, Exercises: exercises}
	}
	return days
}

// CreateWorkoutPlan handles POST /api/workouts.
func (s *Server) CreateWorkoutPlan(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	var req WorkoutPlanRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	plan := &store.WorkoutPlan{
		UserID:   principal.ID,
		PlanName: req.PlanName,
		Goal:     req.Goal,
		Level:    req.Level,
		Workouts: req.toDays(),
	}
	if err := s.store.CreateWorkoutPlan(r.Context(), plan); err != nil {
		respondInternalError(w, err, "create workout plan")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message":     "Workout plan created successfully.",
		"workoutPlan": plan,
	})
}

// ListWorkoutPlans handles GET /api/workouts.
func (s *Server) ListWorkoutPlans(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	plans, err := s.store.ListWorkoutPlans(r.Context(), principal.ID)
	if err != nil {
		respondInternalError(w, err, "list workout plans")
		return
	}
	respondJSON(w, http.StatusOK, plans)
}

// GetWorkoutPlan handles GET /api/workouts/{id}. A plan owned by another user
// is reported as not found.
func (s *Server) GetWorkoutPlan(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	plan, err := s.store.FindWorkoutPlan(r.Context(), principal.ID, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Workout plan not found.")
			return
		}
		respondInternalError(w, err, "get workout plan")
		return
	}
	respondJSON(w, http.StatusOK, plan)
}

// UpdateWorkoutPlan handles PUT /api/workouts/{id}.
func (s *Server) UpdateWorkoutPlan(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	var req WorkoutPlanRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	plan, err := s.store.FindWorkoutPlan(r.Context(), principal.ID, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Workout plan not found.")
			return
		}
		respondInternalError(w, err, "update workout plan")
		return
	}

	plan.PlanName = req.PlanName
	plan.Level = req.Level
	plan.Workouts = req.toDays()
	if req.Goal != "" {
		plan.Goal = req.Goal
	}

	if err := s.store.UpdateWorkoutPlan(r.Context(), plan); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Workout plan not found.")
			return
		}
		respondInternalError(w, err, "update workout plan")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":     "Workout plan updated successfully.",
		"workoutPlan": plan,
	})
}

// DeleteWorkoutPlan handles DELETE /api/workouts/{id}.
func (s *Server) DeleteWorkoutPlan(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	err := s.store.DeleteWorkoutPlan(r.Context(), principal.ID, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Workout plan not found.")
			return
		}
		respondInternalError(w, err, "delete workout plan")
		return
	}
	respondMessage(w, http.StatusOK, "Workout plan deleted successfully.")
}
