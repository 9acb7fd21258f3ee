// Norwood Storefront - Catalog, Cart, and Recommendations Backend
// Copyright 2026 Norwood House
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/norwoodhouse/storefront

// Package models contains the shared domain types for the storefront:
// catalog items, cart records, users with quiz preferences, orders, and
// the standardized API response envelope.
//
// Types in this package are plain data carriers. Behavior lives in the
// packages that own the corresponding workflows (store, recommend, api).
package models
