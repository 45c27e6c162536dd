// Fittrackd - Multi-Tenant Fitness Tracking API
// Copyright 2026 Fittrackd Contributors
// SPDX-License-Identifier: MIT
// https://github.com/fittrackd/fittrackd

package auth

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/fittrackd/fittrackd/internal/logging"
	"github.com/fittrackd/fittrackd/internal/metrics"
	"github.com/fittrackd/fittrackd/internal/store"
	"github.com/fittrackd/fittrackd/internal/validation"
)

// Handlers implements the authentication flows: signup, signin, signout and
// access-token refresh. Both credential stores are consulted: signin tries the
// user store first and falls back to the admin store.
type Handlers struct {
	users  store.UserStore
	admins store.AdminStore
	tokens *TokenManager
}

// NewHandlers wires the auth flows to their stores and token manager.
func NewHandlers(users store.UserStore, admins store.AdminStore, tokens *TokenManager) *Handlers {
	return &Handlers{users: users, admins: admins, tokens: tokens}
}

// SignupRequest is the signup payload. Age, height and weight bounds keep
// obviously bogus profiles out without trying to be medically exact.
type SignupRequest struct {
	Name          string  `json:"name" validate:"required,person_name"`
	Email         string  `json:"email" validate:"required,email"`
	Password      string  `json:"password" validate:"required,password_strength"`
	Age           int     `json:"age" validate:"required,gte=13,lte=120"`
	Gender        string  `json:"gender" validate:"required,oneof=male female other"`
	Height        float64 `json:"height" validate:"required,gt=0,lte=300"`
	Weight        float64 `json:"weight" validate:"required,gt=0,lte=500"`
	ActivityLevel string  `json:"activityLevel" validate:"required,oneof=sedentary light moderate active 'very active'"`
	Goals         string  `json:"goals" validate:"required,min=2,max=200"`
}

// SigninRequest is the signin payload.
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Signup handles POST /api/signup. On success it creates the user, issues
// both tokens and sets both cookies in one response.
func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.CreateUser(r.Context(), store.CreateUserParams{
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		Age:           req.Age,
		Gender:        req.Gender,
		Height:        req.Height,
		Weight:        req.Weight,
		ActivityLevel: req.ActivityLevel,
		Goals:         req.Goals,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			writeMessage(w, http.StatusBadRequest, "User already exists with this email")
			return
		}
		logging.Err(err).Msg("Signup failed")
		writeMessage(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	accessToken, refreshToken, err := h.issueTokenPair(user.ID, user.Role)
	if err != nil {
		logging.Err(err).Str("user_id", user.ID).Msg("Token issue failed after signup")
		writeMessage(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	setSessionCookies(w, h.tokens, accessToken, refreshToken)

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "User created successfully",
		"user":    user,
	})
}

// Signin handles POST /api/signin. The user store is consulted first, then
// the admin store. Unknown email and wrong password share one generic
// response so callers cannot probe which emails are registered.
func (h *Handlers) Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	var (
		principalID   string
		principalRole store.Role
		body          any
	)

	user, err := h.users.FindUserByEmail(r.Context(), req.Email)
	switch {
	case err == nil:
		if !user.CheckPassword(req.Password) {
			h.rejectSignin(w)
			return
		}
		principalID, principalRole, body = user.ID, user.Role, user
	case errors.Is(err, store.ErrNotFound):
		admin, adminErr := h.admins.FindAdminByEmail(r.Context(), req.Email)
		if adminErr != nil {
			if errors.Is(adminErr, store.ErrNotFound) {
				h.rejectSignin(w)
				return
			}
			logging.Err(adminErr).Msg("Signin lookup failed")
			writeMessage(w, http.StatusInternalServerError, "Internal server error.")
			return
		}
		if !admin.CheckPassword(req.Password) {
			h.rejectSignin(w)
			return
		}
		principalID, principalRole, body = admin.ID, admin.Role, admin
	default:
		logging.Err(err).Msg("Signin lookup failed")
		writeMessage(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	accessToken, refreshToken, err := h.issueTokenPair(principalID, principalRole)
	if err != nil {
		logging.Err(err).Str("user_id", principalID).Msg("Token issue failed after signin")
		writeMessage(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	setSessionCookies(w, h.tokens, accessToken, refreshToken)
	metrics.RecordSignin(true)

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Logged in successfully",
		"user":    body,
	})
}

// rejectSignin sends the single generic credential-failure response.
func (h *Handlers) rejectSignin(w http.ResponseWriter) {
	metrics.RecordSignin(false)
	writeMessage(w, http.StatusBadRequest, "Invalid email or password")
}

// Signout handles POST /api/signout. It only clears the cookies; the tokens
// themselves remain valid until natural expiry.
func (h *Handlers) Signout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookies(w)
	writeMessage(w, http.StatusOK, "Logged out successfully")
}

// Refresh handles POST /api/refresh-token. It verifies the refresh-token
// cookie and, on success, sets a fresh access cookie carrying the same
// subject and role. The refresh cookie is left untouched; a failure never
// sets any cookie.
func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(RefreshTokenCookie)
	if err != nil || cookie.Value == "" {
		writeMessage(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	claims, err := h.tokens.Verify(cookie.Value, TokenRefresh)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	accessToken, err := h.tokens.Issue(claims.UserID, claims.Role, TokenAccess)
	if err != nil {
		logging.Err(err).Str("user_id", claims.UserID).Msg("Access token re-issue failed")
		writeMessage(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	setTokenCookie(w, AccessTokenCookie, accessToken, h.tokens.AccessTTL())

	writeMessage(w, http.StatusOK, "Access token refreshed successfully")
}

func (h *Handlers) issueTokenPair(id string, role store.Role) (access, refresh string, err error) {
	access, err = h.tokens.Issue(id, role, TokenAccess)
	if err != nil {
		return "", "", err
	}
	refresh, err = h.tokens.Issue(id, role, TokenRefresh)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
