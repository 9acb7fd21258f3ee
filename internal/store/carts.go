// Norwood Storefront - Catalog, Cart, and Recommendations Backend
// Copyright 2026 Norwood House
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/norwoodhouse/storefront

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/norwoodhouse/storefront/internal/metrics"
	"github.com/norwoodhouse/storefront/internal/models"
)

// cartKey builds the composite cart line key.
func cartKey(userID, productID string) string {
	return cartKeyPrefix + userID + ":" + productID
}

// UpsertCartLine adds a product to a user's cart or adjusts the
// quantity of an existing line.
func (s *Store) UpsertCartLine(ctx context.Context, userID, productID string, quantity int) error {
	start := time.Now()
	now := time.Now()

	err := s.db.Update(func(txn *badger.Txn) error {
		key := []byte(cartKey(userID, productID))

		record := models.CartRecord{
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
			CreatedAt: now,
			UpdatedAt: now,
		}

		item, err := txn.Get(key)
		if err == nil {
			var existing models.CartRecord
			if verr := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &existing)
			}); verr == nil {
				record.CreatedAt = existing.CreatedAt
			}
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("get cart line: %w", err)
		}

		data, err := json.Marshal(&record)
		if err != nil {
			return fmt.Errorf("marshal cart line: %w", err)
		}
		return txn.Set(key, data)
	})

	metrics.RecordStoreOp("upsert", "carts", time.Since(start), err)
	return err
}

// DeleteCartLine removes a single product from a user's cart.
// Returns ErrCartLineNotFound if the line does not exist.
func (s *Store) DeleteCartLine(ctx context.Context, userID, productID string) error {
	start := time.Now()
	err := s.db.Update(func(txn *badger.Txn) error {
		key := []byte(cartKey(userID, productID))
		if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrCartLineNotFound
		}
		return txn.Delete(key)
	})
	metrics.RecordStoreOp("delete", "carts", time.Since(start), err)
	return err
}

// ClearCart removes every line in a user's cart. Used by checkout.
func (s *Store) ClearCart(ctx context.Context, userID string) error {
	start := time.Now()

	lines, err := s.GetCartLines(ctx, userID)
	if err != nil {
		metrics.RecordStoreOp("clear", "carts", time.Since(start), err)
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		for i := range lines {
			if derr := txn.Delete([]byte(cartKey(userID, lines[i].ProductID))); derr != nil && !errors.Is(derr, badger.ErrKeyNotFound) {
				return derr
			}
		}
		return nil
	})
	metrics.RecordStoreOp("clear", "carts", time.Since(start), err)
	return err
}

// GetCartLines returns all cart lines for one user.
func (s *Store) GetCartLines(ctx context.Context, userID string) ([]models.CartRecord, error) {
	start := time.Now()
	var lines []models.CartRecord
	err := s.scanPrefix(cartKeyPrefix+userID+":", func(val []byte) error {
		var record models.CartRecord
		if err := json.Unmarshal(val, &record); err != nil {
			return err
		}
		lines = append(lines, record)
		return nil
	})
	metrics.RecordStoreOp("list", "carts", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// ListCartRecords returns a full snapshot of every cart line across all
// users. This is the co-occurrence builder's training read.
func (s *Store) ListCartRecords(ctx context.Context) ([]models.CartRecord, error) {
	start := time.Now()
	var records []models.CartRecord
	err := s.scanPrefix(cartKeyPrefix, func(val []byte) error {
		var record models.CartRecord
		if err := json.Unmarshal(val, &record); err != nil {
			return err
		}
		records = append(records, record)
		return nil
	})
	metrics.RecordStoreOp("snapshot", "carts", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return records, nil
}
