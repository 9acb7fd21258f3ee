// Norwood Storefront - Catalog, Cart, and Recommendations Backend
// Copyright 2026 Norwood House
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/norwoodhouse/storefront

package models

import "time"

// Order status values.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusCancelled = "cancelled"
)

// OrderLine is a purchased item snapshot. Name and unit price are copied
// from the catalog at checkout time so later catalog edits don't rewrite
// order history.
type OrderLine struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

// Order is a completed checkout.
type Order struct {
	// ID is the opaque order identifier (UUID).
	ID string `json:"id"`

	// UserID is the purchasing user.
	UserID string `json:"user_id"`

	// Lines are the purchased items.
	Lines []OrderLine `json:"lines"`

	// Total is the order total in Currency.
	Total float64 `json:"total"`

	// Currency is the ISO currency code.
	Currency string `json:"currency"`

	// PaymentIntentID references the intent created with the payment
	// collaborator. Empty if intent creation was skipped or failed.
	PaymentIntentID string `json:"payment_intent_id,omitempty"`

	// Status is one of the OrderStatus constants.
	Status string `json:"status"`

	// CreatedAt is when the order was placed.
	CreatedAt time.Time `json:"created_at"`
}
