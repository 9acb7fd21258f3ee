// Norwood Storefront - Catalog, Cart, and Recommendations Backend
// Copyright 2026 Norwood House
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/norwoodhouse/storefront

package recommend

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/norwoodhouse/storefront/internal/metrics"
	"github.com/norwoodhouse/storefront/internal/models"
)

// CoOccurrenceRecommender serves "people who added X also added Y"
// recommendations from a cached product affinity matrix.
//
// The matrix is rebuilt from a full cart snapshot when the cache
// expires; requests inside the TTL window never touch the cart
// collection. There is exactly one cache slot per recommender instance
// (not per user), guarded by a mutex: a request that finds the cache
// expired rebuilds while holding the lock, so concurrent requests wait
// for one rebuild instead of duplicating it.
//
// It is safe for concurrent use.
type CoOccurrenceRecommender struct {
	config Config
	logger zerolog.Logger
	data   DataProvider

	mu        sync.Mutex
	matrix    Matrix
	expiresAt time.Time

	// now is the clock, injectable for tests.
	now func() time.Time
}

// NewCoOccurrenceRecommender creates a recommender over the given data
// provider. Zero config fields fall back to DefaultConfig.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCoOccurrenceRecommender(cfg Config, data DataProvider, logger zerolog.Logger) *CoOccurrenceRecommender {
	return &CoOccurrenceRecommender{
		config: cfg.withDefaults(),
		logger: logger.With().Str("component", "recommend").Logger(),
		data:   data,
		now:    time.Now,
	}
}

// ComputeCoOccurrence builds the affinity matrix from a cart snapshot.
//
// Records are grouped by user into the set of product IDs that user has
// added; for every ordered pair (A, B), A != B, within one user's set,
// matrix[A][B] is incremented once. The result counts, for each pair,
// the number of distinct users whose cart held both products, and is
// symmetric by construction. A product that no user shares with another
// has no entry.
//
// Records missing a user or product ID are skipped and logged, never
// fatal. An empty snapshot yields an empty matrix, not an error.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func ComputeCoOccurrence(records []models.CartRecord, logger zerolog.Logger) Matrix {
	userProducts := make(map[string]map[string]struct{})
	for i := range records {
		record := &records[i]
		if !record.Valid() {
			logger.Warn().
				Str("user_id", record.UserID).
				Str("product_id", record.ProductID).
				Msg("skipping cart record with missing identifiers")
			continue
		}
		set := userProducts[record.UserID]
		if set == nil {
			set = make(map[string]struct{})
			userProducts[record.UserID] = set
		}
		set[record.ProductID] = struct{}{}
	}

	matrix := make(Matrix)
	for _, products := range userProducts {
		for a := range products {
			for b := range products {
				if a == b {
					continue
				}
				row := matrix[a]
				if row == nil {
					row = make(map[string]int)
					matrix[a] = row
				}
				row[b]++
			}
		}
	}
	return matrix
}

// matrixSnapshot returns the cached matrix, rebuilding it first if the
// TTL has elapsed. The expiry clock resets from rebuild completion.
func (r *CoOccurrenceRecommender) matrixSnapshot(ctx context.Context) (Matrix, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.matrix != nil && r.now().Before(r.expiresAt) {
		metrics.CoOccurrenceCacheHits.Inc()
		return r.matrix, nil
	}
	metrics.CoOccurrenceCacheMisses.Inc()

	start := r.now()
	records, err := r.data.ListCartRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list cart records: %v", ErrDataSourceUnavailable, err)
	}

	matrix := ComputeCoOccurrence(records, r.logger)
	metrics.CoOccurrenceRebuildDuration.Observe(r.now().Sub(start).Seconds())
	metrics.CoOccurrenceMatrixSize.Set(float64(len(matrix)))

	// The empty matrix is cached too; an empty cart collection must not
	// trigger a rebuild on every request.
	r.matrix = matrix
	r.expiresAt = r.now().Add(r.config.CacheTTL)

	r.logger.Debug().
		Int("cart_records", len(records)).
		Int("products", len(matrix)).
		Time("expires_at", r.expiresAt).
		Msg("rebuilt co-occurrence matrix")

	return matrix, nil
}

// Recommend returns up to MaxRecommendations presentable catalog items.
//
// With a productID that has recorded co-occurrences, neighbors are
// ranked by shared-cart count descending, ties broken by product ID
// ascending (a deterministic tie-break; which tied product wins is
// otherwise unspecified). Without a productID, or when the product has
// no co-occurrences, the fallback is the most recently available
// presentable items.
//
// Candidate IDs that resolve to deleted, out-of-stock, or malformed
// items are dropped silently. An empty result is a valid outcome, not
// an error; errors are reserved for data source failures and always
// wrap ErrDataSourceUnavailable.
func (r *CoOccurrenceRecommender) Recommend(ctx context.Context, productID string) ([]models.CatalogItem, error) {
	matrix, err := r.matrixSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	var candidates []string
	if productID != "" {
		if row, ok := matrix[productID]; ok && len(row) > 0 {
			candidates = topNeighbors(row, r.config.MaxRecommendations)
		} else {
			r.logger.Debug().
				Str("product_id", productID).
				Msg("no co-occurrences recorded, using fallback")
		}
	}

	if len(candidates) == 0 {
		items, ferr := r.data.ListPresentableItems(ctx, r.config.MaxRecommendations)
		if ferr != nil {
			return nil, fmt.Errorf("%w: list fallback items: %v", ErrDataSourceUnavailable, ferr)
		}
		return items, nil
	}

	resolved, err := r.data.GetItemsByIDs(ctx, candidates)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve candidates: %v", ErrDataSourceUnavailable, err)
	}

	items := make([]models.CatalogItem, 0, len(resolved))
	for i := range resolved {
		if !resolved[i].Presentable() {
			continue
		}
		items = append(items, resolved[i])
		if len(items) == r.config.MaxRecommendations {
			break
		}
	}
	return items, nil
}

// Invalidate drops the cached matrix so the next request rebuilds.
func (r *CoOccurrenceRecommender) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matrix = nil
	r.expiresAt = time.Time{}
}

// topNeighbors ranks a co-occurrence row by count descending, ties by
// product ID ascending, and returns up to n product IDs.
func topNeighbors(row map[string]int, n int) []string {
	ids := make([]string, 0, len(row))
	for id := range row {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if row[ids[i]] != row[ids[j]] {
			return row[ids[i]] > row[ids[j]]
		}
		return ids[i] < ids[j]
	})
	if len(ids) > n {
		ids = ids[:n]
	}
	return ids
}
