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

// FoodRequest is one food entry inside a meal.
type FoodRequest struct {
	FoodItem string  `json:"foodItem" validate:"required,min=2,max=100"`
	Calories float64 `json:"calories" validate:"gte=0"`
	Protein  float64 `json:"protein" validate:"gte=0"`
	Carbs    float64 `json:"carbs" validate:"gte=0"`
	Fat      float64 `json:"fat" validate:"gte=0"`
}

// MealRequest groups foods by meal type.
type MealRequest struct {
	MealType string        `json:"mealType" validate:"required,oneof=breakfast lunch dinner snack"`
	Foods    []FoodRequest `json:"foods" validate:"required,dive"`
}

// MacrosRequest is the macronutrient target in grams.
type MacrosRequest struct {
	Protein float64 `json:"protein" validate:"gte=0"`
	Carbs   float64 `json:"carbs" validate:"gte=0"`
	Fat     float64 `json:"fat" validate:"gte=0"`
}

// NutritionPlanRequest is the payload for creating or updating a nutrition plan.
type NutritionPlanRequest struct {
	PlanName string        `json:"planName" validate:"required,min=2,max=100"`
	Goal     string        `json:"goal" validate:"omitempty,max=200"`
	Calories float64       `json:"calories" validate:"required,gte=0"`
	Macros   MacrosRequest `json:"macros" validate:"required"`
	Meals    []MealRequest `json:"meals" validate:"required,dive"`
}

func (req *NutritionPlanRequest) toMeals() []store.Meal {
	meals := make([]store.Meal, len(req.Meals))
	for i, meal := range req.Meals {
		foods := make([]store.Food, len(meal.Foods))
		for j, food := range meal.Foods {
			foods[j] = store.Food{
				FoodItem: food.FoodItem,
				Calories: food.Calories,
				Protein:  food.Protein,
				Carbs:    food.Carbs,
				Fat:      food.Fat,
			}
		}
		meals[i] = store.Meal{MealType: meal.MealType, Foods: foods}
	}
	return meals
}

// CreateNutritionPlan handles POST /api/nutrition-plans.
func (s *Server) CreateNutritionPlan(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	var req NutritionPlanRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	plan := &store.NutritionPlan{
		UserID:   principal.ID,
		PlanName: req.PlanName,
		Goal:     req.Goal,
		Calories: req.Calories,
		Macros: store.Macros{
			Protein: req.Macros.Protein,
			Carbs:   req.Macros.Carbs,
			Fat:     req.Macros.Fat,
		},
		Meals: req.toMeals(),
	}
	if err := s.store.CreateNutritionPlan(r.Context(), plan); err != nil {
		respondInternalError(w, err, "create nutrition plan")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message":       "Nutrition plan created successfully.",
		"nutritionPlan": plan,
	})
}

// ListNutritionPlans handles GET /api/nutrition-plans.
func (s *Server) ListNutritionPlans(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	plans, err := s.store.ListNutritionPlans(r.Context(), principal.ID)
	if err != nil {
		respondInternalError(w, err, "list nutrition plans")
		return
	}
	respondJSON(w, http.StatusOK, plans)
}

// GetNutritionPlan handles GET /api/nutrition-plans/{id}.
func (s *Server) GetNutritionPlan(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	plan, err := s.store.FindNutritionPlan(r.Context(), principal.ID, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Nutrition plan not found.")
			return
		}
		respondInternalError(w, err, "get nutrition plan")
		return
	}
	respondJSON(w, http.StatusOK, plan)
}

// UpdateNutritionPlan handles PUT /api/nutrition-plans/{id}.
func (s *Server) UpdateNutritionPlan(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	var req NutritionPlanRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	plan, err := s.store.FindNutritionPlan(r.Context(), principal.ID, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Nutrition plan not found.")
			return
		}
		respondInternalError(w, err, "update nutrition plan")
		return
	}

	plan.PlanName = req.PlanName
	plan.Calories = req.Calories
	plan.Macros = store.Macros{
		Protein: req.Macros.Protein,
		Carbs:   req.Macros.Carbs,
		Fat:     req.Macros.Fat,
	}
	plan.Meals = req.toMeals()
	if req.Goal != "" {
		plan.Goal = req.Goal
	}

	if err := s.store.UpdateNutritionPlan(r.Context(), plan); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Nutrition plan not found.")
			return
		}
		respondInternalError(w, err, "update nutrition plan")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":       "Nutrition plan updated successfully.",
		"nutritionPlan": plan,
	})
}

// DeleteNutritionPlan handles DELETE /api/nutrition-plans/{id}.
func (s *Server) DeleteNutritionPlan(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	err := s.store.DeleteNutritionPlan(r.Context(), principal.ID, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Nutrition plan not found.")
			return
		}
		respondInternalError(w, err, "delete nutrition plan")
		return
	}
	respondMessage(w, http.StatusOK, "Nutrition plan deleted successfully.")
}
