// Norwood Storefront - Catalog, Cart, and Recommendations Backend
// Copyright 2026 Norwood House
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/norwoodhouse/storefront

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/norwoodhouse/storefront/internal/auth"
	"github.com/norwoodhouse/storefront/internal/config"
	"github.com/norwoodhouse/storefront/internal/middleware"
	"github.com/norwoodhouse/storefront/internal/payments"
	"github.com/norwoodhouse/storefront/internal/recommend"
	"github.com/norwoodhouse/storefront/internal/store"
)

// Server wires the storefront's HTTP handlers to their collaborators.
type Server struct {
	cfg         *config.Config
	store       *store.Store
	recommender *recommend.CoOccurrenceRecommender
	payments    *payments.Client
	sessions    *auth.Manager
	logger      zerolog.Logger
}

// NewServer creates the API server. The payments client may be nil when
// payments are disabled.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewServer(
	cfg *config.Config,
	st *store.Store,
	recommender *recommend.CoOccurrenceRecommender,
	pay *payments.Client,
	sessions *auth.Manager,
	logger zerolog.Logger,
) *Server {
	return &Server{
		cfg:         cfg,
		store:       st,
		recommender: recommender,
		payments:    pay,
		sessions:    sessions,
		logger:      logger.With().Str("component", "api").Logger(),
	}
}

// Router builds the chi router with the full middleware stack and all
// /api/v1 routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(chimiddleware.Recoverer)

	if len(s.cfg.Server.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.cfg.Server.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	if s.cfg.Server.RateLimitReqs > 0 {
		window := s.cfg.Server.RateLimitWindow
		if window <= 0 {
			window = time.Minute
		}
		r.Use(httprate.LimitByIP(s.cfg.Server.RateLimitReqs, window))
	}

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/logout", s.handleLogout)

		r.Get("/items", s.handleListItems)
		r.Get("/items/{itemID}", s.handleGetItem)

		r.Get("/recommendations", s.handleRecommendations)
		r.Get("/recommendations/ranked", s.handleRankedCatalog)

		// Authenticated routes.
		r.Group(func(r chi.Router) {
			r.Use(s.sessions.RequireUser)

			r.Get("/auth/me", s.handleMe)
			r.Post("/quiz", s.handleQuiz)
			r.Post("/items/{itemID}/view", s.handleRecordView)

			r.Get("/cart", s.handleGetCart)
			r.Post("/cart", s.handleAddToCart)
			r.Delete("/cart", s.handleClearCart)
			r.Delete("/cart/{productID}", s.handleRemoveFromCart)

			r.Post("/checkout", s.handleCheckout)
			r.Get("/orders", s.handleListMyOrders)
			r.Get("/orders/{orderID}", s.handleGetOrder)
		})

		// Admin routes.
		r.Group(func(r chi.Router) {
			r.Use(s.sessions.RequireUser)
			r.Use(s.sessions.RequireAdmin)

			r.Post("/items", s.handleCreateItem)
			r.Put("/items/{itemID}", s.handleUpdateItem)
			r.Delete("/items/{itemID}", s.handleDeleteItem)

			r.Get("/admin/users", s.handleListUsers)
			r.Delete("/admin/users/{userID}", s.handleDeleteUser)
			r.Get("/admin/orders", s.handleListAllOrders)
		})
	})

	return r
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}
