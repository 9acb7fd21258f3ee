// Norwood Storefront - Catalog, Cart, and Recommendations Backend
// Copyright 2026 Norwood House
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/norwoodhouse/storefront

package api

import (
	"net/http"
	"testing"

	"github.com/goccy/go-json"

	"github.com/norwoodhouse/storefront/internal/models"
	"github.com/norwoodhouse/storefront/internal/recommend"
)

func TestRecommendationsFromCoOccurrence(t *testing.T) {
	ts := newTestServer(t)
	for _, id := range []string{"p1", "p2", "p3"} {
		ts.seedItem(t, id, "Snacks")
	}
	// Two users share p1+p2, one shares p1+p3.
	for _, pair := range []struct{ user, product string }{
		{"u1", "p1"}, {"u1", "p2"},
		{"u2", "p1"}, {"u2", "p2"},
		{"u3", "p1"}, {"u3", "p3"},
	} {
		if err := ts.store.UpsertCartLine(t.Context(), pair.user, pair.product, 1); err != nil {
			t.Fatalf("seed cart: %v", err)
		}
	}

	rec, env := ts.do(t, http.MethodGet, "/api/v1/recommendations?product_id=p1", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var items []models.CatalogItem
	if err := json.Unmarshal(env.Data, &items); err != nil {
		t.Fatalf("decode items: %v", err)
	}
	if len(items) != 2 || items[0].ID != "p2" || items[1].ID != "p3" {
		t.Errorf("items = %v, want [p2 p3]", items)
	}
}

func TestRecommendationsEmptyStoreIsSuccess(t *testing.T) {
	ts := newTestServer(t)

	rec, env := ts.do(t, http.MethodGet, "/api/v1/recommendations", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (empty shelf is not an error)", rec.Code)
	}
	if env.Status != "success" {
		t.Errorf("envelope status = %s", env.Status)
	}

	var items []models.CatalogItem
	if err := json.Unmarshal(env.Data, &items); err != nil {
		t.Fatalf("decode items: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("items = %v, want empty", items)
	}
}

func TestRecommendationsFallbackWithoutProduct(t *testing.T) {
	ts := newTestServer(t)
	ts.seedItem(t, "p1", "Snacks")
	ts.seedItem(t, "p2", "Bites")

	rec, env := ts.do(t, http.MethodGet, "/api/v1/recommendations", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var items []models.CatalogItem
	if err := json.Unmarshal(env.Data, &items); err != nil {
		t.Fatalf("decode items: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("got %d fallback items, want 2", len(items))
	}
}

func TestRecommendationsUnavailable(t *testing.T) {
	ts := newTestServer(t)
	// A closed store fails every read.
	if err := ts.store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	rec, env := ts.do(t, http.MethodGet, "/api/v1/recommendations?product_id=p1", nil, nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "RECOMMENDATIONS_UNAVAILABLE" {
		t.Errorf("error = %+v, want RECOMMENDATIONS_UNAVAILABLE", env.Error)
	}
}

func TestRankedCatalogAnonymous(t *testing.T) {
	ts := newTestServer(t)
	ts.seedItem(t, "p1", "Snacks")
	ts.seedItem(t, "p2", "Bites")

	rec, env := ts.do(t, http.MethodGet, "/api/v1/recommendations/ranked", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var ranked []recommend.ScoredItem
	if err := json.Unmarshal(env.Data, &ranked); err != nil {
		t.Fatalf("decode ranked: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("got %d items, want 2", len(ranked))
	}
	for _, s := range ranked {
		if s.Score != 1 {
			t.Errorf("anonymous score = %d, want 1", s.Score)
		}
	}
}

func TestRankedCatalogUsesPreferences(t *testing.T) {
	ts := newTestServer(t)
	ts.seedItem(t, "p1", "Bites")
	ts.seedItem(t, "p2", "Snacks", models.TagMorning)

	cookie := ts.register(t, "alice")
	rec, _ := ts.do(t, http.MethodPost, "/api/v1/quiz", map[string]interface{}{
		"category": "Snacks",
		"time":     "Morning",
	}, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("quiz: status %d", rec.Code)
	}

	rec, env := ts.do(t, http.MethodGet, "/api/v1/recommendations/ranked", nil, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("ranked: status %d", rec.Code)
	}

	var ranked []recommend.ScoredItem
	if err := json.Unmarshal(env.Data, &ranked); err != nil {
		t.Fatalf("decode ranked: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("got %d items, want 2", len(ranked))
	}
	if ranked[0].Item.ID != "p2" {
		t.Errorf("top item = %s, want p2 (category and time match)", ranked[0].Item.ID)
	}
	if ranked[0].Score != 19 {
		t.Errorf("top score = %d, want 19 (1 base + 10 category + 8 time)", ranked[0].Score)
	}
}
