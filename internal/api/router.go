// Fittrackd - Multi-Tenant Fitness Tracking API
// Copyright 2026 Fittrackd Contributors
// SPDX-License-Identifier: MIT
// https://github.com/fittrackd/fittrackd

// Package api wires the HTTP surface: router construction, request/response
// plumbing and the resource handlers. Authentication decisions live in the
// auth package; handlers here only consume the resolved principal.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fittrackd/fittrackd/internal/auth"
	"github.com/fittrackd/fittrackd/internal/config"
	"github.com/fittrackd/fittrackd/internal/middleware"
	"github.com/fittrackd/fittrackd/internal/store"
)

// Server holds the dependencies shared by all handlers.
type Server struct {
	cfg    *config.Config
	store  store.Store
	tokens *auth.TokenManager

	authHandlers   *auth.Handlers
	authMiddleware *auth.Middleware
}

// NewServer assembles the handler dependencies. The same store backs both
// credential tiers and all fitness resources.
func NewServer(cfg *config.Config, st store.Store, tokens *auth.TokenManager) *Server {
	resolver := auth.NewResolver(st, st)
	return &Server{
		cfg:            cfg,
		store:          st,
		tokens:         tokens,
		authHandlers:   auth.NewHandlers(st, st, tokens),
		authMiddleware: auth.NewMiddleware(tokens, resolver),
	}
}

// Routes builds the full route tree.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.Security.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	if !s.cfg.Security.RateLimitDisabled {
		r.Use(httprate.Limit(
			s.cfg.Security.RateLimitReqs,
			s.cfg.Security.RateLimitWindow,
			httprate.WithKeyFuncs(httprate.KeyByRealIP),
		))
	}

	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.Health)

		r.Post("/signup", s.authHandlers.Signup)
		r.Post("/signin", s.authHandlers.Signin)
		r.With(s.authMiddleware.RequireAuth).Post("/signout", s.authHandlers.Signout)
		r.Post("/refresh-token", s.authHandlers.Refresh)

		r.Route("/user", func(r chi.Router) {
			r.Use(s.authMiddleware.RequireUser)
			r.Get("/profile", s.GetProfile)
			r.Put("/profile", s.UpdateProfile)
			r.Put("/change-password", s.ChangePassword)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(s.authMiddleware.RequireAdmin)
			r.Get("/users", s.ListUsers)
			r.Get("/users/{id}", s.GetUser)
			r.Put("/users/{id}", s.UpdateUser)
			r.Delete("/users/{id}", s.DeleteUser)
			r.Post("/admins", s.CreateAdmin)
			r.Get("/admins", s.ListAdmins)
			r.Get("/admins/{id}", s.GetAdmin)
			r.Put("/admins/{id}", s.UpdateAdmin)
			r.Delete("/admins/{id}", s.DeleteAdmin)
		})

		r.Route("/workouts", func(r chi.Router) {
			r.Use(s.authMiddleware.RequireUser)
			r.Post("/", s.CreateWorkoutPlan)
			r.Get("/", s.ListWorkoutPlans)
			r.Get("/{id}", s.GetWorkoutPlan)
			r.Put("/{id}", s.UpdateWorkoutPlan)
			r.Delete("/{id}", s.DeleteWorkoutPlan)
		})

		r.Route("/nutrition-plans", func(r chi.Router) {
			r.Use(s.authMiddleware.RequireUser)
			r.Post("/", s.CreateNutritionPlan)
			r.Get("/", s.ListNutritionPlans)
			r.Get("/{id}", s.GetNutritionPlan)
			r.Put("/{id}", s.UpdateNutritionPlan)
			r.Delete("/{id}", s.DeleteNutritionPlan)
		})

		r.Route("/health-metrics", func(r chi.Router) {
			r.Use(s.authMiddleware.RequireUser)
			r.Post("/", s.LogHealthMetric)
			r.Get("/", s.ListHealthMetrics)
			r.Get("/{id}", s.GetHealthMetric)
			r.Put("/{id}", s.UpdateHealthMetric)
			r.Delete("/{id}", s.DeleteHealthMetric)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondMessage(w, http.StatusNotFound, "Resource not found.")
	})

	return r
}
