// Norwood Storefront - Catalog, Cart, and Recommendations Backend
// Copyright 2026 Norwood House
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/norwoodhouse/storefront

package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/norwoodhouse/storefront/internal/config"
	"github.com/norwoodhouse/storefront/internal/models"
)

// ErrNoSession is returned when a request carries no session cookie.
var ErrNoSession = errors.New("no session")

// SessionClaims are the JWT claims embedded in a session token.
type SessionClaims struct {
	UserID   string `json:"uid"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

// Manager creates and validates session tokens and manages the session
// cookie. Tokens are HMAC-SHA256 signed and stateless: logout clears the
// cookie, it does not revoke the token.
type Manager struct {
	secret       []byte
	ttl          time.Duration
	cookieName   string
	cookieSecure bool
}

// NewManager creates a session manager from the auth configuration.
// The secret must be at least 32 characters; the secret is kept as
// []byte for the lifetime of the process.
func NewManager(cfg config.AuthConfig) (*Manager, error) {
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 characters")
	}
	cookieName := cfg.CookieName
	if cookieName == "" {
		cookieName = "norwood_session"
	}
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{
		secret:       []byte(cfg.JWTSecret),
		ttl:          ttl,
		cookieName:   cookieName,
		cookieSecure: cfg.CookieSecure,
	}, nil
}

// GenerateToken creates a signed session token for the user.
func (m *Manager) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID:   user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a session token. The signing method
// is pinned to HMAC; tokens signed any other way are rejected.
func (m *Manager) ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid session claims")
	}
	return claims, nil
}

// SetSessionCookie attaches the session token to the response as an
// HTTP-only cookie.
func (m *Manager) SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func (m *Manager) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClaimsFromRequest extracts and validates the session from the request
// cookie. Returns ErrNoSession when the cookie is absent.
func (m *Manager) ClaimsFromRequest(r *http.Request) (*SessionClaims, error) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return nil, ErrNoSession
	}
	return m.ValidateToken(cookie.Value)
}
