// Fittrackd - Multi-Tenant Fitness Tracking API
// Copyright 2026 Fittrackd Contributors
// SPDX-License-Identifier: MIT
// https://github.com/fittrackd/fittrackd

package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/fittrackd/fittrackd/internal/logging"
)

// respondJSON writes payload as the response body with the given status.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Err(err).Msg("Failed to encode response body")
	}
}

// respondMessage writes a flat {"message": ...} body.
func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondInternalError logs the cause and sends the opaque 500 body.
func respondInternalError(w http.ResponseWriter, err error, action string) {
	logging.Err(err).Str("action", action).Msg("Request failed")
	respondMessage(w, http.StatusInternalServerError, "Internal server error.")
}

// decodeBody decodes the request body into dst, answering 400 itself on
// malformed JSON. Returns false when the caller must stop.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
