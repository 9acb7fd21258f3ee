// Norwood Storefront - Catalog, Cart, and Recommendations Backend
// Copyright 2026 Norwood House
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/norwoodhouse/storefront

package api

import (
	"net/http"

	"github.com/norwoodhouse/storefront/internal/logging"
	"github.com/norwoodhouse/storefront/internal/models"
	"github.com/norwoodhouse/storefront/internal/recommend"
	"github.com/norwoodhouse/storefront/internal/store"
)

// handleRecommendations serves the co-occurrence shelf.
//
// GET /api/v1/recommendations?product_id=<id>
//
// Without product_id, or when the product has no co-occurrence data,
// the newest presentable items are returned. An empty shelf is a 200
// with an empty list; only a data source failure produces the 503
// RECOMMENDATIONS_UNAVAILABLE error.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	productID := r.URL.Query().Get("product_id")
	if productID == "" {
		productID = r.URL.Query().Get("productId")
	}

	items, err := s.recommender.Recommend(r.Context(), productID)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "RECOMMENDATIONS_UNAVAILABLE",
			"recommendations are temporarily unavailable", err)
		return
	}
	if items == nil {
		items = []models.CatalogItem{}
	}
	respondSuccess(w, http.StatusOK, items)
}

// handleRankedCatalog serves the catalog ranked by the preference
// scorer.
//
// GET /api/v1/recommendations/ranked
//
// The session is optional: anonymous requests get the catalog with
// uniform base scores in catalog order.
func (s *Server) handleRankedCatalog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var user *models.User
	if claims, err := s.sessions.ClaimsFromRequest(r); err == nil {
		u, gerr := s.store.GetUser(ctx, claims.UserID)
		if gerr == nil {
			user = u
		} else {
			logger := logging.Ctx(ctx)
			logger.Debug().Err(gerr).Msg("session user not found, ranking anonymously")
		}
	}

	items, err := s.store.ListItems(ctx, store.ItemFilter{InStockOnly: true})
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "RECOMMENDATIONS_UNAVAILABLE",
			"catalog is temporarily unavailable", err)
		return
	}

	ranked := recommend.ScoreAndRank(items, user)
	if ranked == nil {
		ranked = []recommend.ScoredItem{}
	}
	respondSuccess(w, http.StatusOK, ranked)
}
