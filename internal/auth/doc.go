// Norwood Storefront - Catalog, Cart, and Recommendations Backend
// Copyright 2026 Norwood House
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/norwoodhouse/storefront

// Package auth implements session authentication for the storefront.
//
// Sessions are stateless HS256 JWTs carried in an HTTP-only cookie.
// Passwords are hashed with bcrypt. The package exposes chi-compatible
// middleware for user and admin route protection and context helpers
// for handlers to read the authenticated session.
package auth
