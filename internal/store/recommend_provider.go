// Norwood Storefront - Catalog, Cart, and Recommendations Backend
// Copyright 2026 Norwood House
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/norwoodhouse/storefront

package store

import (
	"context"

	"github.com/norwoodhouse/storefront/internal/models"
)

// RecommendationDataProvider adapts the store to the recommendation
// core's data interface. The recommend package stays decoupled from
// BadgerDB; this is the only bridge between the two.
type RecommendationDataProvider struct {
	store *Store
}

// NewRecommendationDataProvider creates a provider backed by the store.
func NewRecommendationDataProvider(s *Store) *RecommendationDataProvider {
	return &RecommendationDataProvider{store: s}
}

// ListCartRecords returns the full cart snapshot the co-occurrence
// matrix is built from.
func (p *RecommendationDataProvider) ListCartRecords(ctx context.Context) ([]models.CartRecord, error) {
	return p.store.ListCartRecords(ctx)
}

// ListPresentableItems returns up to limit shelf-ready items, newest
// first. Used as the recommendation fallback.
func (p *RecommendationDataProvider) ListPresentableItems(ctx context.Context, limit int) ([]models.CatalogItem, error) {
	return p.store.ListItems(ctx, ItemFilter{
		InStockOnly:  true,
		RequireName:  true,
		RequireImage: true,
		Limit:        limit,
	})
}

// GetItemsByIDs resolves candidate IDs against the live catalog.
func (p *RecommendationDataProvider) GetItemsByIDs(ctx context.Context, ids []string) ([]models.CatalogItem, error) {
	return p.store.GetItemsByIDs(ctx, ids)
}
