// Fittrackd - Multi-Tenant Fitness Tracking API
// Copyright 2026 Fittrackd Contributors
// SPDX-License-Identifier: MIT
// https://github.com/fittrackd/fittrackd

// Command server runs the Fittrackd HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/fittrackd/fittrackd/internal/api"
	"github.com/fittrackd/fittrackd/internal/auth"
	"github.com/fittrackd/fittrackd/internal/config"
	"github.com/fittrackd/fittrackd/internal/logging"
	"github.com/fittrackd/fittrackd/internal/store"
)

func main() {
	if err := run(); err != nil {
		logging.Err(err).Msg("Server exited with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.NewPostgres(ctx, cfg.Database, cfg.Security.BcryptCost)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer st.Close()

	if err := st.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("preparing database schema: %w", err)
	}

	tokens, err := auth.NewTokenManager(&cfg.Security)
	if err != nil {
		return fmt.Errorf("configuring token manager: %w", err)
	}

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      api.NewServer(cfg, st, tokens).Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().
			Str("addr", server.Addr).
			Str("environment", cfg.Server.Environment).
			Msg("Server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Info().Msg("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	logging.Info().Msg("Server stopped")
	return nil
}
