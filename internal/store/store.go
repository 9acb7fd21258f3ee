// Norwood Storefront - Catalog, Cart, and Recommendations Backend
// Copyright 2026 Norwood House
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/norwoodhouse/storefront

// Package store implements the storefront's document database on
// BadgerDB. Documents are stored as JSON values under typed key
// prefixes:
//
//	item:<itemID>                 -> models.CatalogItem
//	cart:<userID>:<productID>     -> models.CartRecord
//	user:<userID>                 -> models.User
//	username:<username>           -> userID (secondary index)
//	order:<orderID>               -> models.Order
//	order_user:<userID>:<orderID> -> orderID (secondary index)
//
// The store implements the provider interfaces consumed by the
// recommendation core (catalog and cart snapshot reads).
package store

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/norwoodhouse/storefront/internal/config"
)

// Key prefixes for the document collections.
const (
	itemKeyPrefix      = "item:"
	cartKeyPrefix      = "cart:"
	userKeyPrefix      = "user:"
	usernameKeyPrefix  = "username:"
	orderKeyPrefix     = "order:"
	orderUserKeyPrefix = "order_user:"
)

// Sentinel errors for missing or conflicting documents.
var (
	// ErrItemNotFound is returned when a catalog item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrOrderNotFound is returned when an order does not exist.
	ErrOrderNotFound = errors.New("order not found")

	// ErrCartLineNotFound is returned when a cart line does not exist.
	ErrCartLineNotFound = errors.New("cart line not found")

	// ErrUsernameTaken is returned when registering a duplicate username.
	ErrUsernameTaken = errors.New("username already taken")
)

// Store is the BadgerDB-backed document store. It is safe for
// concurrent use.
type Store struct {
	db     *badger.DB
	logger zerolog.Logger
}

// Open opens (or creates) the store at the configured path. With
// InMemory set, the store lives entirely in RAM; tests use this mode.
func Open(cfg config.StoreConfig, logger zerolog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	// Badger logs through its own interface; route it to zerolog.
	opts = opts.WithLogger(badgerLogger{logger: logger.With().Str("component", "badger").Logger()})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", cfg.Path, err)
	}

	return &Store{
		db:     db,
		logger: logger.With().Str("component", "store").Logger(),
	}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// put marshals a document and writes it under key.
func (s *Store) put(key string, doc interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// get reads and unmarshals a document into out. Returns notFound when
// the key is absent.
func (s *Store) get(key string, out interface{}, notFound error) error {
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return notFound
		}
		if err != nil {
			return fmt.Errorf("get %s: %w", key, err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, out)
		})
	})
	return err
}

// delete removes a key. Deleting an absent key is not an error.
func (s *Store) delete(key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}

// scanPrefix iterates all documents under prefix, invoking fn with each
// raw value. fn errors abort the scan.
func (s *Store) scanPrefix(prefix string, fn func(val []byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := it.Item().Value(fn); err != nil {
				return err
			}
		}
		return nil
	})
}

// badgerLogger adapts zerolog to badger's logging interface.
type badgerLogger struct {
	logger zerolog.Logger
}

func (b badgerLogger) Errorf(format string, args ...interface{}) {
	b.logger.Error().Msgf(format, args...)
}

func (b badgerLogger) Warningf(format string, args ...interface{}) {
	b.logger.Warn().Msgf(format, args...)
}

func (b badgerLogger) Infof(format string, args ...interface{}) {
	b.logger.Debug().Msgf(format, args...)
}

func (b badgerLogger) Debugf(format string, args ...interface{}) {
	b.logger.Debug().Msgf(format, args...)
}
