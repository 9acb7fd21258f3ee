// Norwood Storefront - Catalog, Cart, and Recommendations Backend
// Copyright 2026 Norwood House
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/norwoodhouse/storefront

// Package recommend implements the storefront's two recommendation
// strategies:
//
//   - CoOccurrenceRecommender: "people who added X also added Y",
//     computed from a full cart snapshot, cached process-wide with a
//     fixed TTL, with a popular-items fallback.
//   - Preference scoring: ranks the catalog for one user by weighted
//     rules over quiz preferences and view history.
//
// The two strategies are independent and composable; neither depends on
// the other. The package has no dependency on the store package: data
// access goes through the DataProvider interface, which the database
// layer implements.
package recommend
