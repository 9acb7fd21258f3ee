// Norwood Storefront - Catalog, Cart, and Recommendations Backend
// Copyright 2026 Norwood House
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/norwoodhouse/storefront

package models

import "time"

// CartRecord is a single (user, product) line in a cart. A user's cart
// is the set of records sharing their user ID.
//
// The co-occurrence builder reads these as an immutable snapshot; records
// missing either ID are skipped during matrix construction rather than
// failing the build.
type CartRecord struct {
	// UserID is the owner of the cart line.
	UserID string `json:"user_id"`

	// ProductID references a CatalogItem.
	ProductID string `json:"product_id"`

	// Quantity is the number of units. Always >= 1 for stored records.
	Quantity int `json:"quantity"`

	// CreatedAt is when the line was first added.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the quantity last changed.
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Valid reports whether the record carries both identifiers required to
// participate in co-occurrence counting.
func (c *CartRecord) Valid() bool {
	return c.UserID != "" && c.ProductID != ""
}
