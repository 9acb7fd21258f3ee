// Norwood Storefront - Catalog, Cart, and Recommendations Backend
// Copyright 2026 Norwood House
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/norwoodhouse/storefront

package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/norwoodhouse/storefront/internal/metrics"
	"github.com/norwoodhouse/storefront/internal/models"
)

// CreateOrder stores a new order and its per-user index entry.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	start := time.Now()

	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if serr := txn.Set([]byte(orderKeyPrefix+order.ID), data); serr != nil {
			return fmt.Errorf("set order: %w", serr)
		}
		indexKey := []byte(orderUserKeyPrefix + order.UserID + ":" + order.ID)
		return txn.Set(indexKey, []byte(order.ID))
	})

	metrics.RecordStoreOp("create", "orders", time.Since(start), err)
	return err
}

// GetOrder fetches an order by ID. Returns ErrOrderNotFound if absent.
func (s *Store) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	start := time.Now()
	var order models.Order
	err := s.get(orderKeyPrefix+id, &order, ErrOrderNotFound)
	metrics.RecordStoreOp("get", "orders", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrder replaces an existing order document.
func (s *Store) UpdateOrder(ctx context.Context, order *models.Order) error {
	if _, err := s.GetOrder(ctx, order.ID); err != nil {
		return err
	}
	return s.put(orderKeyPrefix+order.ID, order)
}

// ListOrders returns all orders, newest first.
func (s *Store) ListOrders(ctx context.Context) ([]models.Order, error) {
	start := time.Now()
	var orders []models.Order
	err := s.scanPrefix(orderKeyPrefix, func(val []byte) error {
		var order models.Order
		if err := json.Unmarshal(val, &order); err != nil {
			return err
		}
		orders = append(orders, order)
		return nil
	})
	metrics.RecordStoreOp("list", "orders", time.Since(start), err)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

// ListOrdersByUser returns one user's orders, newest first.
func (s *Store) ListOrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var ids []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(orderUserKeyPrefix + userID + ":")
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if verr := it.Item().Value(func(val []byte) error {
				ids = append(ids, string(val))
				return nil
			}); verr != nil {
				return verr
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0, len(ids))
	for _, id := range ids {
		order, gerr := s.GetOrder(ctx, id)
		if gerr != nil {
			return nil, gerr
		}
		orders = append(orders, *order)
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}
