// Norwood Storefront - Catalog, Cart, and Recommendations Backend
// Copyright 2026 Norwood House
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/norwoodhouse/storefront

// Package middleware provides chi-compatible HTTP middleware: request
// ID propagation and Prometheus request instrumentation.
package middleware

import (
	"net/http"

	"github.com/norwoodhouse/storefront/internal/logging"
)

// RequestID assigns each request a unique ID, echoing an upstream
// X-Request-ID when present. The ID is exposed in the response header
// and attached to the request context for structured logging.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = logging.GenerateRequestID()
		}

		w.Header().Set("X-Request-ID", requestID)
		ctx := logging.ContextWithRequestID(r.Context(), requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
