// Fittrackd - Multi-Tenant Fitness Tracking API
// Copyright 2026 Fittrackd Contributors
// SPDX-License-Identifier: MIT
// https://github.com/fittrackd/fittrackd

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fittrackd/fittrackd/internal/store"
	"github.com/fittrackd/fittrackd/internal/validation"
)

// CreateAdminRequest is the payload for POST /api/admin/admins.
type CreateAdminRequest struct {
	Name     string `json:"name" validate:"required,person_name"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password_strength"`
	Role     string `json:"role" validate:"required,oneof=admin superadmin"`
}

// UpdateAdminRequest is the payload for PUT /api/admin/admins/{id}.
type UpdateAdminRequest struct {
	Name  string `json:"name" validate:"required,person_name"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=admin superadmin"`
}

// ListUsers handles GET /api/admin/users.
func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		respondInternalError(w, err, "list users")
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// GetUser handles GET /api/admin/users/{id}.
func (s *Server) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.store.FindUserByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "User not found.")
			return
		}
		respondInternalError(w, err, "get user")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// UpdateUser handles PUT /api/admin/users/{id}, reusing the profile shape.
func (s *Server) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.store.UpdateUser(r.Context(), chi.URLParam(r, "id"), store.UpdateUserParams{
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
		respondInternalError(w, err, "update user")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// DeleteUser handles DELETE /api/admin/users/{id}. The user's workout plans,
// nutrition plans and health metrics are removed with the account.
func (s *Server) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "User not found.")
			return
		}
		respondInternalError(w, err, "delete user")
		return
	}
	respondMessage(w, http.StatusOK, "User deleted successfully.")
}

// CreateAdmin handles POST /api/admin/admins.
func (s *Server) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req CreateAdminRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	_, err := s.store.CreateAdmin(r.Context(), store.CreateAdminParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     store.Role(req.Role),
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			respondMessage(w, http.StatusBadRequest, "Admin already exists.")
			return
		}
		respondInternalError(w, err, "create admin")
		return
	}

	respondMessage(w, http.StatusCreated, "Admin created successfully.")
}

// ListAdmins handles GET /api/admin/admins.
func (s *Server) ListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := s.store.ListAdmins(r.Context())
	if err != nil {
		respondInternalError(w, err, "list admins")
		return
	}
	respondJSON(w, http.StatusOK, admins)
}

// GetAdmin handles GET /api/admin/admins/{id}.
func (s *Server) GetAdmin(w http.ResponseWriter, r *http.Request) {
	admin, err := s.store.FindAdminByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Admin not found.")
			return
		}
		respondInternalError(w, err, "get admin")
		return
	}
	respondJSON(w, http.StatusOK, admin)
}

// UpdateAdmin handles PUT /api/admin/admins/{id}.
func (s *Server) UpdateAdmin(w http.ResponseWriter, r *http.Request) {
	var req UpdateAdminRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	admin, err := s.store.UpdateAdmin(r.Context(), chi.URLParam(r, "id"), store.UpdateAdminParams{
		Name:  req.Name,
		Email: req.Email,
		Role:  store.Role(req.Role),
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Admin not found.")
			return
		}
		if errors.Is(err, store.ErrDuplicateEmail) {
			respondMessage(w, http.StatusBadRequest, "Admin already exists.")
			return
		}
		respondInternalError(w, err, "update admin")
		return
	}
	respondJSON(w, http.StatusOK, admin)
}

// DeleteAdmin handles DELETE /api/admin/admins/{id}.
func (s *Server) DeleteAdmin(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteAdmin(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Admin not found.")
			return
		}
		respondInternalError(w, err, "delete admin")
		return
	}
	respondMessage(w, http.StatusOK, "Admin deleted successfully.")
}
