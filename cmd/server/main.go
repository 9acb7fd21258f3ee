// Norwood Storefront - Catalog, Cart, and Recommendations Backend
// Copyright 2026 Norwood House
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/norwoodhouse/storefront

// Command server runs the storefront HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/norwoodhouse/storefront/internal/api"
	"github.com/norwoodhouse/storefront/internal/auth"
	"github.com/norwoodhouse/storefront/internal/config"
	"github.com/norwoodhouse/storefront/internal/logging"
	"github.com/norwoodhouse/storefront/internal/models"
	"github.com/norwoodhouse/storefront/internal/payments"
	"github.com/norwoodhouse/storefront/internal/recommend"
	"github.com/norwoodhouse/storefront/internal/store"
)

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logger := logging.Logger()

	st, err := store.Open(cfg.Store, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Error().Err(cerr).Msg("failed to close store")
		}
	}()

	sessions, err := auth.NewManager(cfg.Auth)
	if err != nil {
		return fmt.Errorf("init sessions: %w", err)
	}

	if err := bootstrapAdmin(cfg, st); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	recommender := recommend.NewCoOccurrenceRecommender(
		recommend.Config{
			CacheTTL:           cfg.Recommend.CacheTTL,
			MaxRecommendations: cfg.Recommend.MaxRecommendations,
		},
		store.NewRecommendationDataProvider(st),
		logger,
	)

	payClient := payments.NewClient(cfg.Payments, logger)

	server := api.NewServer(cfg, st, recommender, payClient, sessions, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", httpServer.Addr).
			Bool("payments", payClient != nil).
			Msg("storefront listening")
		if serr := httpServer.ListenAndServe(); serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			errCh <- serr
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-stop:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.Info().Msg("shutdown complete")
	return nil
}

// bootstrapAdmin creates the configured admin account on first start.
// An existing account with the same username is left untouched.
func bootstrapAdmin(cfg *config.Config, st *store.Store) error {
	if cfg.Auth.AdminUsername == "" {
		return nil
	}

	ctx := context.Background()
	if _, err := st.GetUserByUsername(ctx, cfg.Auth.AdminUsername); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrUserNotFound) {
		return err
	}

	hash, err := auth.HashPassword(cfg.Auth.AdminPassword)
	if err != nil {
		return err
	}
	admin := &models.User{
		ID:           uuid.New().String(),
		Username:     cfg.Auth.AdminUsername,
		PasswordHash: hash,
		IsAdmin:      true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := st.CreateUser(ctx, admin); err != nil {
		return err
	}
	logging.Info().Str("username", cfg.Auth.AdminUsername).Msg("bootstrapped admin account")
	return nil
}
