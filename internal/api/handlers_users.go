// Norwood Storefront - Catalog, Cart, and Recommendations Backend
// Copyright 2026 Norwood House
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/norwoodhouse/storefront

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/norwoodhouse/storefront/internal/auth"
	"github.com/norwoodhouse/storefront/internal/logging"
	"github.com/norwoodhouse/storefront/internal/models"
	"github.com/norwoodhouse/storefront/internal/store"
)

// handleListUsers returns all accounts without credential material.
// Admin only.
//
// GET /api/v1/admin/users
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to list users", err)
		return
	}

	public := make([]models.PublicUser, 0, len(users))
	for i := range users {
		public = append(public, users[i].Public())
	}
	respondSuccess(w, http.StatusOK, public)
}

// handleDeleteUser removes an account and its cart. Admin only; admins
// cannot delete themselves.
//
// DELETE /api/v1/admin/users/{userID}
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	userID := chi.URLParam(r, "userID")

	if userID == claims.UserID {
		respondError(w, http.StatusConflict, "SELF_DELETE", "cannot delete the active admin account", nil)
		return
	}

	if err := s.store.DeleteUser(r.Context(), userID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "USER_NOT_FOUND", "user not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to delete user", err)
		return
	}

	logger := logging.Ctx(r.Context())
	logger.Info().Str("user_id", sanitizeLogValue(userID)).Msg("user deleted")
	respondSuccess(w, http.StatusOK, map[string]string{"deleted": userID})
}
