// Norwood Storefront - Catalog, Cart, and Recommendations Backend
// Copyright 2026 Norwood House
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/norwoodhouse/storefront

package recommend

import (
	"context"
	"errors"
	"time"

	"github.com/norwoodhouse/storefront/internal/models"
)

// ErrDataSourceUnavailable wraps cart or catalog read failures. Callers
// must be able to tell this apart from an empty recommendation result:
// the two states render differently (error banner vs. empty shelf).
var ErrDataSourceUnavailable = errors.New("recommendation data source unavailable")

// Matrix is the product affinity matrix: Matrix[A][B] is the number of
// users whose cart contained both A and B. Symmetric by construction.
type Matrix map[string]map[string]int

// DataProvider supplies the cart and catalog reads the recommenders
// need. Implemented by the store package.
type DataProvider interface {
	// ListCartRecords returns a full snapshot of all cart lines.
	ListCartRecords(ctx context.Context) ([]models.CartRecord, error)

	// ListPresentableItems returns up to limit in-stock items with a
	// non-empty name and image, newest first.
	ListPresentableItems(ctx context.Context, limit int) ([]models.CatalogItem, error)

	// GetItemsByIDs resolves item IDs against the live catalog,
	// silently skipping unknown IDs and preserving input order.
	GetItemsByIDs(ctx context.Context, ids []string) ([]models.CatalogItem, error)
}

// Config contains tunables for the co-occurrence recommender.
type Config struct {
	// CacheTTL is how long a built matrix is served before a full
	// rebuild. The empty matrix is cached like any other.
	CacheTTL time.Duration

	// MaxRecommendations caps the returned shelf size.
	MaxRecommendations int
}

// DefaultConfig returns the reference behavior: 5 minute TTL, 4 items.
func DefaultConfig() Config {
	return Config{
		CacheTTL:           5 * time.Minute,
		MaxRecommendations: 4,
	}
}

// withDefaults fills zero fields with the defaults.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.CacheTTL <= 0 {
		c.CacheTTL = d.CacheTTL
	}
	if c.MaxRecommendations < 1 {
		c.MaxRecommendations = d.MaxRecommendations
	}
	return c
}

// ScoredItem pairs a catalog item with its preference score. It exists
// only transiently during a scoring request and is never persisted.
type ScoredItem struct {
	Item  models.CatalogItem `json:"item"`
	Score int                `json:"score"`
}
