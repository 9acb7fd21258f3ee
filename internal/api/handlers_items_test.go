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
)

func TestItemCRUDOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.adminCookie(t, "root")

	// Create.
	rec, env := ts.do(t, http.MethodPost, "/api/v1/items", map[string]interface{}{
		"name":         "Masala Mix",
		"category":     "Snacks",
		"tags":         []string{"spicy", "afternoon"},
		"image_base64": "data:image/png;base64,AAAA",
		"price":        4.5,
		"currency":     "USD",
		"in_stock":     true,
	}, admin)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status %d: %s", rec.Code, rec.Body.String())
	}
	var created models.CatalogItem
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.ID == "" || created.Name != "Masala Mix" {
		t.Errorf("created = %+v", created)
	}

	// Public read.
	rec, env = ts.do(t, http.MethodGet, "/api/v1/items/"+created.ID, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: status %d", rec.Code)
	}

	// Update preserves CreatedAt.
	rec, env = ts.do(t, http.MethodPut, "/api/v1/items/"+created.ID, map[string]interface{}{
		"name":         "Masala Mix Deluxe",
		"category":     "Snacks",
		"image_base64": "data:image/png;base64,AAAA",
		"price":        5.0,
		"in_stock":     true,
	}, admin)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: status %d: %s", rec.Code, rec.Body.String())
	}
	var updated models.CatalogItem
	if err := json.Unmarshal(env.Data, &updated); err != nil {
		t.Fatalf("decode updated: %v", err)
	}
	if updated.Name != "Masala Mix Deluxe" {
		t.Errorf("updated name = %s", updated.Name)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt changed on update: %v -> %v", created.CreatedAt, updated.CreatedAt)
	}

	// Delete.
	rec, _ = ts.do(t, http.MethodDelete, "/api/v1/items/"+created.ID, nil, admin)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: status %d", rec.Code)
	}
	rec, _ = ts.do(t, http.MethodGet, "/api/v1/items/"+created.ID, nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete: status = %d, want 404", rec.Code)
	}
}

func TestItemWriteRequiresAdmin(t *testing.T) {
	ts := newTestServer(t)
	user := ts.register(t, "alice")

	rec, _ := ts.do(t, http.MethodPost, "/api/v1/items", map[string]interface{}{
		"name": "Nope",
	}, user)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}

	rec, _ = ts.do(t, http.MethodPost, "/api/v1/items", map[string]interface{}{
		"name": "Nope",
	}, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 without session", rec.Code)
	}
}

func TestItemValidation(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.adminCookie(t, "root")

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing name", map[string]interface{}{"price": 1.0}},
		{"negative price", map[string]interface{}{"name": "X", "price": -1.0}},
		{"unknown tag", map[string]interface{}{"name": "X", "tags": []string{"umami"}}},
		{"bad currency", map[string]interface{}{"name": "X", "currency": "BTC"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := ts.do(t, http.MethodPost, "/api/v1/items", tt.body, admin)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
				t.Errorf("error = %+v", env.Error)
			}
		})
	}
}

func TestListItemsFilters(t *testing.T) {
	ts := newTestServer(t)
	ts.seedItem(t, "p1", "Snacks")
	ts.seedItem(t, "p2", "Bites")

	rec, env := ts.do(t, http.MethodGet, "/api/v1/items?category=Snacks", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var items []models.CatalogItem
	if err := json.Unmarshal(env.Data, &items); err != nil {
		t.Fatalf("decode items: %v", err)
	}
	if len(items) != 1 || items[0].ID != "p1" {
		t.Errorf("items = %v, want just p1", items)
	}
}

func TestRecordViewFeedsScorer(t *testing.T) {
	ts := newTestServer(t)
	ts.seedItem(t, "p1", "Snacks")
	ts.seedItem(t, "p2", "Snacks")
	ts.seedItem(t, "p3", "Bites")
	cookie := ts.register(t, "alice")

	rec, _ := ts.do(t, http.MethodPost, "/api/v1/items/p1/view", nil, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("view: status %d", rec.Code)
	}

	rec, _ = ts.do(t, http.MethodPost, "/api/v1/items/ghost/view", nil, cookie)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown item view: status = %d, want 404", rec.Code)
	}

	history, err := ts.store.GetUserViewHistory(t.Context(), mustUserID(t, ts, "alice"))
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0] != "p1" {
		t.Errorf("history = %v, want [p1]", history)
	}
}

func mustUserID(t *testing.T, ts *testServer, username string) string {
	t.Helper()
	user, err := ts.store.GetUserByUsername(t.Context(), username)
	if err != nil {
		t.Fatalf("load %s: %v", username, err)
	}
	return user.ID
}
