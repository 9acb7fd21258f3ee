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

// maxViewHistory bounds the per-user view history; the oldest entries
// are dropped first.
const maxViewHistory = 50

// CreateUser stores a new user and its username index entry.
// Returns ErrUsernameTaken if the username index already has an entry.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	start := time.Now()

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		usernameKey := []byte(usernameKeyPrefix + user.Username)
		if _, gerr := txn.Get(usernameKey); gerr == nil {
			return ErrUsernameTaken
		} else if !errors.Is(gerr, badger.ErrKeyNotFound) {
			return fmt.Errorf("check username: %w", gerr)
		}

		if serr := txn.Set([]byte(userKeyPrefix+user.ID), data); serr != nil {
			return fmt.Errorf("set user: %w", serr)
		}
		return txn.Set(usernameKey, []byte(user.ID))
	})

	metrics.RecordStoreOp("create", "users", time.Since(start), err)
	return err
}

// GetUser fetches a user by ID. Returns ErrUserNotFound if absent.
func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	start := time.Now()
	var user models.User
	err := s.get(userKeyPrefix+id, &user, ErrUserNotFound)
	metrics.RecordStoreOp("get", "users", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername resolves the username index and fetches the user.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var userID string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(usernameKeyPrefix + username))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("get username index: %w", err)
		}
		return item.Value(func(val []byte) error {
			userID = string(val)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return s.GetUser(ctx, userID)
}

// UpdateUser replaces an existing user document.
func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	start := time.Now()
	if _, err := s.GetUser(ctx, user.ID); err != nil {
		return err
	}
	err := s.put(userKeyPrefix+user.ID, user)
	metrics.RecordStoreOp("update", "users", time.Since(start), err)
	return err
}

// DeleteUser removes a user and its username index entry. The user's
// cart lines are cleared as well.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	start := time.Now()

	user, err := s.GetUser(ctx, id)
	if err != nil {
		metrics.RecordStoreOp("delete", "users", time.Since(start), err)
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if derr := txn.Delete([]byte(userKeyPrefix + id)); derr != nil {
			return derr
		}
		derr := txn.Delete([]byte(usernameKeyPrefix + user.Username))
		if derr != nil && !errors.Is(derr, badger.ErrKeyNotFound) {
			return derr
		}
		return nil
	})
	if err == nil {
		err = s.ClearCart(ctx, id)
	}

	metrics.RecordStoreOp("delete", "users", time.Since(start), err)
	return err
}

// ListUsers returns all registered users.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	start := time.Now()
	var users []models.User
	err := s.scanPrefix(userKeyPrefix, func(val []byte) error {
		var user models.User
		if err := json.Unmarshal(val, &user); err != nil {
			return err
		}
		users = append(users, user)
		return nil
	})
	metrics.RecordStoreOp("list", "users", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return users, nil
}

// SetUserPreferences stores quiz answers on the user document.
func (s *Store) SetUserPreferences(ctx context.Context, userID string, prefs *models.UserPreferences) error {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	user.Preferences = prefs
	return s.UpdateUser(ctx, user)
}

// AppendViewHistory records a viewed item on the user document. The
// history is bounded; consecutive duplicate views are collapsed.
func (s *Store) AppendViewHistory(ctx context.Context, userID, itemID string) error {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	n := len(user.ViewHistory)
	if n > 0 && user.ViewHistory[n-1] == itemID {
		return nil
	}

	user.ViewHistory = append(user.ViewHistory, itemID)
	if len(user.ViewHistory) > maxViewHistory {
		user.ViewHistory = user.ViewHistory[len(user.ViewHistory)-maxViewHistory:]
	}
	return s.UpdateUser(ctx, user)
}

// GetUserViewHistory returns the user's viewed item IDs, oldest first.
// An unknown user has an empty history rather than an error; the scorer
// treats both identically.
func (s *Store) GetUserViewHistory(ctx context.Context, userID string) ([]string, error) {
	user, err := s.GetUser(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user.ViewHistory, nil
}
