// Norwood Storefront - Catalog, Cart, and Recommendations Backend
// Copyright 2026 Norwood House
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/norwoodhouse/storefront

// Package api implements the storefront HTTP surface under /api/v1.
//
// All endpoints respond with the models.APIResponse envelope. Error
// responses carry a machine-readable code; in particular the
// recommendation endpoint distinguishes RECOMMENDATIONS_UNAVAILABLE
// (data source failure, 503) from a successful empty shelf (200 with an
// empty list).
package api
