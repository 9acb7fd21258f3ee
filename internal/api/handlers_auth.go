// Norwood Storefront - Catalog, Cart, and Recommendations Backend
// Copyright 2026 Norwood House
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/norwoodhouse/storefront

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/norwoodhouse/storefront/internal/auth"
	"github.com/norwoodhouse/storefront/internal/logging"
	"github.com/norwoodhouse/storefront/internal/models"
	"github.com/norwoodhouse/storefront/internal/store"
)

// registerRequest is the account creation payload.
type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64,alphanum"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// loginRequest is the login payload.
type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// quizRequest carries the preference quiz answers. All fields are
// optional; empty answers clear the preference.
type quizRequest struct {
	Category  string `json:"category" validate:"max=100"`
	Time      string `json:"time" validate:"omitempty,oneof=Morning Afternoon Night Anytime"`
	Frequency string `json:"frequency" validate:"max=100"`
}

// handleRegister creates an account and opens a session.
//
// POST /api/v1/auth/register
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "malformed request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to create account", err)
		return
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			respondError(w, http.StatusConflict, "USERNAME_TAKEN", "username is already taken", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to create account", err)
		return
	}

	s.openSession(w, r, user)
	logger := logging.Ctx(r.Context())
	logger.Info().Str("user_id", user.ID).Msg("account registered")
	respondSuccess(w, http.StatusCreated, user.Public())
}

// handleLogin verifies credentials and opens a session.
//
// POST /api/v1/auth/login
//
// Unknown usernames and wrong passwords return the same error so the
// endpoint cannot be used to enumerate accounts.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "malformed request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	user, err := s.store.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			respondError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid username or password", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to log in", err)
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		logger := logging.Ctx(r.Context())
		logger.Warn().Str("username", sanitizeLogValue(req.Username)).Msg("failed login attempt")
		respondError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid username or password", nil)
		return
	}

	s.openSession(w, r, user)
	respondSuccess(w, http.StatusOK, user.Public())
}

// handleLogout clears the session cookie.
//
// POST /api/v1/auth/logout
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.sessions.ClearSessionCookie(w)
	respondSuccess(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// handleMe returns the session user's profile.
//
// GET /api/v1/auth/me
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	user, err := s.store.GetUser(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Valid token for a deleted account.
			s.sessions.ClearSessionCookie(w)
			respondError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "account no longer exists", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to load profile", err)
		return
	}
	respondSuccess(w, http.StatusOK, user.Public())
}

// handleQuiz stores the session user's preference quiz answers.
//
// POST /api/v1/quiz
func (s *Server) handleQuiz(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	var req quizRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "malformed request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	prefs := &models.UserPreferences{
		Category:  req.Category,
		Time:      req.Time,
		Frequency: req.Frequency,
	}
	if err := s.store.SetUserPreferences(r.Context(), claims.UserID, prefs); err != nil {
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to save preferences", err)
		return
	}
	respondSuccess(w, http.StatusOK, prefs)
}

// openSession issues a session token and sets the cookie. Token
// generation failure is logged but does not fail the request; the user
// can log in again.
func (s *Server) openSession(w http.ResponseWriter, r *http.Request, user *models.User) {
	token, err := s.sessions.GenerateToken(user)
	if err != nil {
		logger := logging.Ctx(r.Context())
		logger.Error().Err(err).Msg("failed to issue session token")
		return
	}
	s.sessions.SetSessionCookie(w, token)
}
