// Fittrackd - Multi-Tenant Fitness Tracking API
// Copyright 2026 Fittrackd Contributors
// SPDX-License-Identifier: MIT
// https://github.com/fittrackd/fittrackd

package api

import (
	"net/http"
	"time"
)

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

// Health reports liveness plus database reachability. It is intentionally
// unauthenticated so load balancers can probe it.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    "ok",
		Database:  "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	status := http.StatusOK

	if err := s.store.Ping(r.Context()); err != nil {
		resp.Status = "degraded"
		resp.Database = "unreachable"
		status = http.StatusServiceUnavailable
	}

	respondJSON(w, status, resp)
}
