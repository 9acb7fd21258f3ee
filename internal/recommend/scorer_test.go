// Norwood Storefront - Catalog, Cart, and Recommendations Backend
// Copyright 2026 Norwood House
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/norwoodhouse/storefront

package recommend

import (
	"testing"

	"github.com/norwoodhouse/storefront/internal/models"
)

func catalogItem(id, category string, tags ...string) models.CatalogItem {
	return models.CatalogItem{
		ID:       id,
		Name:     "Item " + id,
		Category: category,
		Tags:     tags,
		InStock:  true,
	}
}

func TestScoreItemWeights(t *testing.T) {
	prefs := &models.UserPreferences{Category: "Snacks", Time: "Morning"}

	tests := []struct {
		name   string
		item   models.CatalogItem
		viewed []string
		want   int
	}{
		{
			name: "no matches",
			item: catalogItem("i1", "Bites"),
			want: 1,
		},
		{
			name: "category only",
			item: catalogItem("i1", "Snacks"),
			want: 11,
		},
		{
			name: "time tag only",
			item: catalogItem("i1", "Bites", models.TagMorning),
			want: 9,
		},
		{
			name: "category and time tag",
			item: catalogItem("i1", "Snacks", models.TagMorning),
			want: 19,
		},
		{
			name:   "all three rules",
			item:   catalogItem("i1", "Snacks", models.TagMorning),
			viewed: []string{"i1"},
			want:   24,
		},
		{
			name: "wrong time tag",
			item: catalogItem("i1", "Bites", models.TagNight),
			want: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &models.User{Preferences: prefs, ViewHistory: tt.viewed}
			scored := ScoreItems([]models.CatalogItem{tt.item}, user)
			if scored[0].Score != tt.want {
				t.Errorf("score = %d, want %d", scored[0].Score, tt.want)
			}
		})
	}
}

func TestScoreCategoryMatchIsCaseSensitive(t *testing.T) {
	user := &models.User{Preferences: &models.UserPreferences{Category: "Snacks"}}
	scored := ScoreItems([]models.CatalogItem{catalogItem("i1", "snacks")}, user)
	if scored[0].Score != 1 {
		t.Errorf("score = %d, want 1 (category match is exact)", scored[0].Score)
	}
}

func TestScoreTimeMatchIsCaseInsensitive(t *testing.T) {
	user := &models.User{Preferences: &models.UserPreferences{Time: "MORNING"}}
	scored := ScoreItems([]models.CatalogItem{catalogItem("i1", "", "morning")}, user)
	if scored[0].Score != 9 {
		t.Errorf("score = %d, want 9", scored[0].Score)
	}
}

func TestScoreAnytimeSkipsTimeRule(t *testing.T) {
	user := &models.User{Preferences: &models.UserPreferences{Time: models.TimeAnytime}}
	items := []models.CatalogItem{
		catalogItem("i1", "", models.TagMorning, models.TagAfternoon, models.TagNight),
	}
	scored := ScoreItems(items, user)
	if scored[0].Score != 1 {
		t.Errorf("score = %d, want 1 (Anytime opts out of time scoring)", scored[0].Score)
	}
}

func TestScoreViewHistory(t *testing.T) {
	catalog := []models.CatalogItem{
		catalogItem("i1", "Snacks"),
		catalogItem("i2", "Snacks"),
		catalogItem("i3", "Bites"),
		catalogItem("i4", ""),
	}

	t.Run("viewed category boosts whole category", func(t *testing.T) {
		user := &models.User{ViewHistory: []string{"i1"}}
		scored := ScoreItems(catalog, user)
		// i1 and i2 share the viewed category; i3 and i4 do not.
		wants := []int{6, 6, 1, 1}
		for i, want := range wants {
			if scored[i].Score != want {
				t.Errorf("scored[%d] = %d, want %d", i, scored[i].Score, want)
			}
		}
	})

	t.Run("repeat views count once", func(t *testing.T) {
		user := &models.User{ViewHistory: []string{"i1", "i2", "i1"}}
		scored := ScoreItems(catalog, user)
		if scored[0].Score != 6 {
			t.Errorf("score = %d, want 6 (no double count)", scored[0].Score)
		}
	})

	t.Run("uncategorized views contribute nothing", func(t *testing.T) {
		user := &models.User{ViewHistory: []string{"i4"}}
		scored := ScoreItems(catalog, user)
		for i := range scored {
			if scored[i].Score != 1 {
				t.Errorf("scored[%d] = %d, want 1", i, scored[i].Score)
			}
		}
	})

	t.Run("unknown item IDs are skipped", func(t *testing.T) {
		user := &models.User{ViewHistory: []string{"deleted-item"}}
		scored := ScoreItems(catalog, user)
		for i := range scored {
			if scored[i].Score != 1 {
				t.Errorf("scored[%d] = %d, want 1", i, scored[i].Score)
			}
		}
	})
}

func TestScoreAndRankOrdersByScoreDescending(t *testing.T) {
	catalog := []models.CatalogItem{
		catalogItem("i1", "Bites"),
		catalogItem("i2", "Snacks", models.TagMorning),
		catalogItem("i3", "Snacks"),
	}
	user := &models.User{
		Preferences: &models.UserPreferences{Category: "Snacks", Time: "Morning"},
	}

	ranked := ScoreAndRank(catalog, user)

	want := []string{"i2", "i3", "i1"}
	for i, id := range want {
		if ranked[i].Item.ID != id {
			t.Errorf("ranked[%d] = %s, want %s", i, ranked[i].Item.ID, id)
		}
	}
}

func TestScoreAndRankIsStableOnTies(t *testing.T) {
	catalog := []models.CatalogItem{
		catalogItem("i1", "Bites"),
		catalogItem("i2", "Bites"),
		catalogItem("i3", "Bites"),
	}

	ranked := ScoreAndRank(catalog, &models.User{})

	for i, id := range []string{"i1", "i2", "i3"} {
		if ranked[i].Item.ID != id {
			t.Errorf("ranked[%d] = %s, want %s (ties keep catalog order)", i, ranked[i].Item.ID, id)
		}
	}
}

func TestScoreNilUser(t *testing.T) {
	catalog := []models.CatalogItem{
		catalogItem("i1", "Snacks", models.TagMorning),
		catalogItem("i2", "Bites"),
	}

	ranked := ScoreAndRank(catalog, nil)

	for i := range ranked {
		if ranked[i].Score != 1 {
			t.Errorf("ranked[%d].Score = %d, want 1", i, ranked[i].Score)
		}
		if ranked[i].Item.ID != catalog[i].ID {
			t.Errorf("ranked[%d] = %s, want %s (nil user keeps order)", i, ranked[i].Item.ID, catalog[i].ID)
		}
	}
}

func TestScoreDoesNotMutateInput(t *testing.T) {
	catalog := []models.CatalogItem{
		catalogItem("i1", "Snacks"),
		catalogItem("i2", "Bites"),
	}
	user := &models.User{Preferences: &models.UserPreferences{Category: "Bites"}}

	_ = ScoreAndRank(catalog, user)

	if catalog[0].ID != "i1" || catalog[1].ID != "i2" {
		t.Error("input catalog order changed")
	}
}

func TestScoreEmptyCatalog(t *testing.T) {
	ranked := ScoreAndRank(nil, &models.User{})
	if len(ranked) != 0 {
		t.Errorf("got %d results, want 0", len(ranked))
	}
}
