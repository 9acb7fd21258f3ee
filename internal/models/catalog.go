// Norwood Storefront - Catalog, Cart, and Recommendations Backend
// Copyright 2026 Norwood House
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/norwoodhouse/storefront

package models

import "time"

// Item tags form a small closed vocabulary. Quiz time preferences are
// matched against the time-of-day tags case-insensitively.
const (
	TagSalty     = "salty"
	TagSweet     = "sweet"
	TagSpicy     = "spicy"
	TagHealthy   = "healthy"
	TagMorning   = "morning"
	TagAfternoon = "afternoon"
	TagNight     = "night"
)

// KnownTags lists the full tag vocabulary accepted on catalog items.
var KnownTags = []string{
	TagSalty, TagSweet, TagSpicy, TagHealthy,
	TagMorning, TagAfternoon, TagNight,
}

// CatalogItem represents a product in the store catalog.
//
// Category is a free-form string, conventionally one of a small closed
// set ("Snacks", "Bites", ...). Documents written by earlier versions of
// the dashboard may omit Category or Tags entirely; consumers must treat
// a missing category as never-matching and missing tags as an empty set.
type CatalogItem struct {
	// ID is the opaque item identifier (UUID).
	ID string `json:"id"`

	// Name is the display name. Items with an empty name are hidden
	// from recommendation shelves.
	Name string `json:"name"`

	// Description is the product description shown on the detail page.
	Description string `json:"description,omitempty"`

	// Category is the product category (e.g. "Snacks", "Bites").
	Category string `json:"category,omitempty"`

	// Tags is a subset of KnownTags.
	Tags []string `json:"tags,omitempty"`

	// ImageBase64 is the primary product image, base64-encoded.
	// Items without an image are hidden from recommendation shelves.
	ImageBase64 string `json:"image_base64,omitempty"`

	// Price is the unit price in the item's currency.
	Price float64 `json:"price"`

	// Currency is the ISO currency code (LKR, USD, EUR, GBP).
	Currency string `json:"currency,omitempty"`

	// InStock indicates whether the item is currently purchasable.
	InStock bool `json:"in_stock"`

	// CreatedAt is when the item was added to the catalog.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the item was last modified.
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// HasTag reports whether the item carries the given tag.
// The comparison is case-insensitive on the caller's side; tags are
// stored lowercase by convention.
func (i *CatalogItem) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Presentable reports whether the item may appear on a recommendation
// shelf: in stock, with a non-empty name and a non-empty primary image.
func (i *CatalogItem) Presentable() bool {
	return i.InStock && i.Name != "" && i.ImageBase64 != ""
}
