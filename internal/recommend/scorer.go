// Norwood Storefront - Catalog, Cart, and Recommendations Backend
// Copyright 2026 Norwood House
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/norwoodhouse/storefront

package recommend

import (
	"sort"
	"strings"

	"github.com/norwoodhouse/storefront/internal/models"
)

// Scoring weights. Chosen so the explicit quiz answers dominate the
// implicit browse signal.
const (
	baseScore        = 1
	categoryMatch    = 10
	timeTagMatch     = 8
	viewHistoryMatch = 5
)

// ScoreItems scores every catalog item for the given user, preserving
// the input order. Every item scores at least baseScore.
//
// A nil user, or one with no preferences and no view history, yields a
// uniform baseScore for every item; ranking such a result leaves the
// catalog order unchanged.
//
// The function is pure: it never mutates its inputs and performs no
// I/O. View history is resolved against the supplied catalog only.
func ScoreItems(catalog []models.CatalogItem, user *models.User) []ScoredItem {
	var prefs *models.UserPreferences
	var viewed map[string]struct{}
	if user != nil {
		prefs = user.Preferences
		viewed = viewedCategories(catalog, user.ViewHistory)
	}

	scored := make([]ScoredItem, len(catalog))
	for i := range catalog {
		scored[i] = ScoredItem{
			Item:  catalog[i],
			Score: scoreItem(&catalog[i], prefs, viewed),
		}
	}
	return scored
}

// ScoreAndRank scores the catalog for the user and sorts by score
// descending. The sort is stable, so equally scored items keep their
// catalog order.
func ScoreAndRank(catalog []models.CatalogItem, user *models.User) []ScoredItem {
	scored := ScoreItems(catalog, user)
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// scoreItem applies the weighted rules to one item. Each rule fires at
// most once per item.
func scoreItem(item *models.CatalogItem, prefs *models.UserPreferences, viewed map[string]struct{}) int {
	score := baseScore

	if prefs != nil {
		if prefs.Category != "" && item.Category == prefs.Category {
			score += categoryMatch
		}
		if timePref := strings.ToLower(prefs.Time); timePref != "" && timePref != strings.ToLower(models.TimeAnytime) {
			for _, tag := range item.Tags {
				if strings.ToLower(tag) == timePref {
					score += timeTagMatch
					break
				}
			}
		}
	}

	if item.Category != "" {
		if _, ok := viewed[item.Category]; ok {
			score += viewHistoryMatch
		}
	}

	return score
}

// viewedCategories resolves a view history against the catalog into the
// set of categories the user has browsed. Unknown item IDs and items
// without a category contribute nothing; an item viewed many times
// counts the same as one viewed once.
func viewedCategories(catalog []models.CatalogItem, history []string) map[string]struct{} {
	if len(history) == 0 {
		return nil
	}

	byID := make(map[string]*models.CatalogItem, len(catalog))
	for i := range catalog {
		byID[catalog[i].ID] = &catalog[i]
	}

	viewed := make(map[string]struct{})
	for _, id := range history {
		item, ok := byID[id]
		if !ok || item.Category == "" {
			continue
		}
		viewed[item.Category] = struct{}{}
	}
	return viewed
}
