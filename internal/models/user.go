// Norwood Storefront - Catalog, Cart, and Recommendations Backend
// Copyright 2026 Norwood House
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/norwoodhouse/storefront

package models

import "time"

// TimeAnytime is the quiz time preference that opts out of
// time-of-day scoring.
const TimeAnytime = "Anytime"

// UserPreferences holds a user's quiz answers. All fields are optional;
// an absent preference simply contributes no score.
type UserPreferences struct {
	// Category is the preferred product category (case-sensitive match
	// against CatalogItem.Category).
	Category string `json:"category,omitempty"`

	// Time is the preferred time of day ("Morning", "Afternoon",
	// "Night", or TimeAnytime). Matched case-insensitively against
	// item tags.
	Time string `json:"time,omitempty"`

	// Frequency is the declared purchase frequency. Collected by the
	// quiz but not currently used in scoring.
	Frequency string `json:"frequency,omitempty"`
}

// Empty reports whether no preference has been declared.
func (p *UserPreferences) Empty() bool {
	return p == nil || (p.Category == "" && p.Time == "" && p.Frequency == "")
}

// User is a registered storefront account.
type User struct {
	// ID is the opaque user identifier (UUID).
	ID string `json:"id"`

	// Username is the unique login name.
	Username string `json:"username"`

	// Email is optional.
	Email string `json:"email,omitempty"`

	// PasswordHash is the bcrypt hash of the password. Never serialized
	// in API responses.
	PasswordHash string `json:"-"`

	// IsAdmin grants access to the dashboard endpoints.
	IsAdmin bool `json:"is_admin,omitempty"`

	// Preferences holds quiz answers, if the user has taken the quiz.
	Preferences *UserPreferences `json:"preferences,omitempty"`

	// ViewHistory is the ordered list of item IDs the user has viewed,
	// oldest first. May be empty.
	ViewHistory []string `json:"view_history,omitempty"`

	// CreatedAt is when the account was registered.
	CreatedAt time.Time `json:"created_at"`
}

// PublicUser is the API-safe projection of a User.
type PublicUser struct {
	ID          string           `json:"id"`
	Username    string           `json:"username"`
	Email       string           `json:"email,omitempty"`
	IsAdmin     bool             `json:"is_admin,omitempty"`
	Preferences *UserPreferences `json:"preferences,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// Public returns the API-safe projection of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		IsAdmin:     u.IsAdmin,
		Preferences: u.Preferences,
		CreatedAt:   u.CreatedAt,
	}
}
