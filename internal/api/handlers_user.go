// Fittrackd - Multi-Tenant Fitness Tracking API
// Copyright 2026 Fittrackd Contributors
// SPDX-License-Identifier: MIT
// https://github.com/fittrackd/fittrackd

package api

import (
	"errors"
	"net/http"

	"github.com/fittrackd/fittrackd/internal/auth"
	"github.com/fittrackd/fittrackd/internal/store"
	"github.com/fittrackd/fittrackd/internal/validation"
)

// UpdateProfileRequest is the payload for PUT /api/user/profile. All fields
// are required; partial updates go through the same shape.
type UpdateProfileRequest struct {
	Name          string  `json:"name" validate:"required,person_name"`
	Age           int     `json:"age" validate:"required,gte=13,lte=120"`
	Gender        string  `json:"gender" validate:"required,oneof=male female other"`
	Height        float64 `json:"height" validate:"required,gt=0,lte=300"`
	Weight        float64 `json:"weight" validate:"required,gt=0,lte=500"`
	ActivityLevel string  `json:"activityLevel" validate:"required,oneof=sedentary light moderate active 'very active'"`
	Goals         string  `json:"goals" validate:"required,min=2,max=200"`
}

// ChangePasswordRequest is the payload for PUT /api/user/change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,password_strength"`
}

// GetProfile handles GET /api/user/profile. The principal was already
// resolved by the middleware, so the profile comes straight off it.
func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())
	respondJSON(w, http.StatusOK, principal.User)
}

// UpdateProfile handles PUT /api/user/profile.
func (s *Server) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	var req UpdateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.store.UpdateUser(r.Context(), principal.ID, store.UpdateUserParams{
		Name:          req.Name,
		Age:           req.Age,
		Gender:        req.Gender,
		Height:        req.Height,
		Weight:        req.Weight,
		ActivityLevel: req.ActivityLevel,
		Goals:         req.Goals,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "User not found.")
			return
		}
		respondInternalError(w, err, "update profile")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// ChangePassword handles PUT /api/user/change-password. The current password
// is re-verified even though the request already carries a valid token, so a
// stolen session alone cannot rotate the credential.
func (s *Server) ChangePassword(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	var req ChangePasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.CurrentPassword == req.NewPassword {
		respondMessage(w, http.StatusBadRequest, "New password cannot be the same as current password")
		return
	}

	if !principal.User.CheckPassword(req.CurrentPassword) {
		respondMessage(w, http.StatusUnauthorized, "Incorrect current password")
		return
	}

	if err := s.store.UpdateUserPassword(r.Context(), principal.ID, req.NewPassword); err != nil {
		respondInternalError(w, err, "change password")
		return
	}

	respondMessage(w, http.StatusOK, "Password changed successfully")
}
