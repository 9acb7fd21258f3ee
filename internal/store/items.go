// Norwood Storefront - Catalog, Cart, and Recommendations Backend
// Copyright 2026 Norwood House
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/norwoodhouse/storefront

package store

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/goccy/go-json"

	"github.com/norwoodhouse/storefront/internal/metrics"
	"github.com/norwoodhouse/storefront/internal/models"
)

// ItemFilter narrows ListItems results. The zero value returns the
// whole catalog.
type ItemFilter struct {
	// InStockOnly keeps only purchasable items.
	InStockOnly bool

	// RequireName drops items with an empty name.
	RequireName bool

	// RequireImage drops items with an empty primary image.
	RequireImage bool

	// Category keeps only items in the given category. Empty matches all.
	Category string

	// Limit caps the result count after sorting. Zero means no cap.
	Limit int
}

// matches reports whether the item passes the filter.
func (f ItemFilter) matches(item *models.CatalogItem) bool {
	if f.InStockOnly && !item.InStock {
		return false
	}
	if f.RequireName && item.Name == "" {
		return false
	}
	if f.RequireImage && item.ImageBase64 == "" {
		return false
	}
	if f.Category != "" && item.Category != f.Category {
		return false
	}
	return true
}

// PutItem creates or replaces a catalog item.
func (s *Store) PutItem(ctx context.Context, item *models.CatalogItem) error {
	start := time.Now()
	err := s.put(itemKeyPrefix+item.ID, item)
	metrics.RecordStoreOp("put", "items", time.Since(start), err)
	return err
}

// GetItem fetches a catalog item by ID. Returns ErrItemNotFound if absent.
func (s *Store) GetItem(ctx context.Context, id string) (*models.CatalogItem, error) {
	start := time.Now()
	var item models.CatalogItem
	err := s.get(itemKeyPrefix+id, &item, ErrItemNotFound)
	metrics.RecordStoreOp("get", "items", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem removes a catalog item. Deleting an absent item is not an
// error; cart lines referencing it are left in place and filtered out
// at read time by consumers.
func (s *Store) DeleteItem(ctx context.Context, id string) error {
	start := time.Now()
	err := s.delete(itemKeyPrefix + id)
	metrics.RecordStoreOp("delete", "items", time.Since(start), err)
	return err
}

// ListItems returns catalog items passing the filter, newest first.
// The newest-first order is what makes the recommendation fallback
// return the most recently available items.
func (s *Store) ListItems(ctx context.Context, filter ItemFilter) ([]models.CatalogItem, error) {
	start := time.Now()
	var items []models.CatalogItem
	err := s.scanPrefix(itemKeyPrefix, func(val []byte) error {
		var item models.CatalogItem
		if err := json.Unmarshal(val, &item); err != nil {
			return err
		}
		if filter.matches(&item) {
			items = append(items, item)
		}
		return nil
	})
	metrics.RecordStoreOp("list", "items", time.Since(start), err)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})

	if filter.Limit > 0 && len(items) > filter.Limit {
		items = items[:filter.Limit]
	}
	return items, nil
}

// GetItemsByIDs resolves the given IDs against the catalog. Unknown IDs
// are skipped silently; the result preserves the order of ids.
func (s *Store) GetItemsByIDs(ctx context.Context, ids []string) ([]models.CatalogItem, error) {
	items := make([]models.CatalogItem, 0, len(ids))
	for _, id := range ids {
		item, err := s.GetItem(ctx, id)
		if err != nil {
			if errors.Is(err, ErrItemNotFound) {
				continue
			}
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}
