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

func TestCartFlow(t *testing.T) {
	ts := newTestServer(t)
	ts.seedItem(t, "p1", "Snacks")
	ts.seedItem(t, "p2", "Bites")
	cookie := ts.register(t, "alice")

	// Add two products.
	for _, body := range []map[string]interface{}{
		{"product_id": "p1", "quantity": 2},
		{"product_id": "p2", "quantity": 1},
	} {
		rec, _ := ts.do(t, http.MethodPost, "/api/v1/cart", body, cookie)
		if rec.Code != http.StatusOK {
			t.Fatalf("add to cart: status %d: %s", rec.Code, rec.Body.String())
		}
	}

	rec, env := ts.do(t, http.MethodGet, "/api/v1/cart", nil, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("get cart: status %d", rec.Code)
	}
	var lines []cartLineView
	if err := json.Unmarshal(env.Data, &lines); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("cart has %d lines, want 2", len(lines))
	}
	for _, line := range lines {
		if line.Item == nil {
			t.Errorf("line %s missing catalog item", line.ProductID)
		}
	}

	// Remove one line.
	rec, _ = ts.do(t, http.MethodDelete, "/api/v1/cart/p2", nil, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("remove: status %d", rec.Code)
	}
	rec, env = ts.do(t, http.MethodGet, "/api/v1/cart", nil, cookie)
	if err := json.Unmarshal(env.Data, &lines); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	if len(lines) != 1 || lines[0].ProductID != "p1" {
		t.Errorf("cart = %v, want just p1", lines)
	}

	// Clear.
	rec, _ = ts.do(t, http.MethodDelete, "/api/v1/cart", nil, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("clear: status %d", rec.Code)
	}
	_, env = ts.do(t, http.MethodGet, "/api/v1/cart", nil, cookie)
	if err := json.Unmarshal(env.Data, &lines); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("cart = %v, want empty", lines)
	}
}

func TestAddToCartUnknownProduct(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.register(t, "alice")

	rec, env := ts.do(t, http.MethodPost, "/api/v1/cart", map[string]interface{}{
		"product_id": "ghost",
		"quantity":   1,
	}, cookie)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if env.Error.Code != "ITEM_NOT_FOUND" {
		t.Errorf("error code = %s", env.Error.Code)
	}
}

func TestAddToCartOutOfStock(t *testing.T) {
	ts := newTestServer(t)
	item := &models.CatalogItem{
		ID:          "p1",
		Name:        "Sold out",
		ImageBase64: "x",
		InStock:     false,
	}
	if err := ts.store.PutItem(t.Context(), item); err != nil {
		t.Fatalf("seed: %v", err)
	}
	cookie := ts.register(t, "alice")

	rec, env := ts.do(t, http.MethodPost, "/api/v1/cart", map[string]interface{}{
		"product_id": "p1",
		"quantity":   1,
	}, cookie)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if env.Error.Code != "OUT_OF_STOCK" {
		t.Errorf("error code = %s", env.Error.Code)
	}
}

func TestAddToCartQuantityValidation(t *testing.T) {
	ts := newTestServer(t)
	ts.seedItem(t, "p1", "Snacks")
	cookie := ts.register(t, "alice")

	rec, _ := ts.do(t, http.MethodPost, "/api/v1/cart", map[string]interface{}{
		"product_id": "p1",
		"quantity":   0,
	}, cookie)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for zero quantity", rec.Code)
	}
}

func TestCheckoutFlow(t *testing.T) {
	ts := newTestServer(t)
	ts.seedItem(t, "p1", "Snacks")
	ts.seedItem(t, "p2", "Bites")
	cookie := ts.register(t, "alice")

	for _, body := range []map[string]interface{}{
		{"product_id": "p1", "quantity": 2},
		{"product_id": "p2", "quantity": 1},
	} {
		if rec, _ := ts.do(t, http.MethodPost, "/api/v1/cart", body, cookie); rec.Code != http.StatusOK {
			t.Fatalf("add to cart: status %d", rec.Code)
		}
	}

	rec, env := ts.do(t, http.MethodPost, "/api/v1/checkout", nil, cookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("checkout: status %d: %s", rec.Code, rec.Body.String())
	}
	var order models.Order
	if err := json.Unmarshal(env.Data, &order); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if len(order.Lines) != 2 || order.Total != 15 {
		t.Errorf("order = %+v, want 2 lines totalling 15", order)
	}
	if order.Status != models.OrderStatusPending {
		t.Errorf("status = %s", order.Status)
	}

	// Cart is cleared by checkout.
	_, env = ts.do(t, http.MethodGet, "/api/v1/cart", nil, cookie)
	var lines []cartLineView
	if err := json.Unmarshal(env.Data, &lines); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("cart after checkout = %v, want empty", lines)
	}

	// The order is listed for its owner.
	_, env = ts.do(t, http.MethodGet, "/api/v1/orders", nil, cookie)
	var orders []models.Order
	if err := json.Unmarshal(env.Data, &orders); err != nil {
		t.Fatalf("decode orders: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != order.ID {
		t.Errorf("orders = %v, want [%s]", orders, order.ID)
	}

	// Another user cannot see it.
	other := ts.register(t, "mallory")
	rec, _ = ts.do(t, http.MethodGet, "/api/v1/orders/"+order.ID, nil, other)
	if rec.Code != http.StatusNotFound {
		t.Errorf("foreign order fetch: status = %d, want 404", rec.Code)
	}

	// The owner can.
	rec, _ = ts.do(t, http.MethodGet, "/api/v1/orders/"+order.ID, nil, cookie)
	if rec.Code != http.StatusOK {
		t.Errorf("own order fetch: status = %d, want 200", rec.Code)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.register(t, "alice")

	rec, env := ts.do(t, http.MethodPost, "/api/v1/checkout", nil, cookie)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if env.Error.Code != "EMPTY_CART" {
		t.Errorf("error code = %s", env.Error.Code)
	}
}

func TestCheckoutSkipsDeletedProducts(t *testing.T) {
	ts := newTestServer(t)
	ts.seedItem(t, "p1", "Snacks")
	ts.seedItem(t, "p2", "Bites")
	cookie := ts.register(t, "alice")

	for _, body := range []map[string]interface{}{
		{"product_id": "p1", "quantity": 1},
		{"product_id": "p2", "quantity": 1},
	} {
		if rec, _ := ts.do(t, http.MethodPost, "/api/v1/cart", body, cookie); rec.Code != http.StatusOK {
			t.Fatalf("add to cart: status %d", rec.Code)
		}
	}
	if err := ts.store.DeleteItem(t.Context(), "p2"); err != nil {
		t.Fatalf("delete item: %v", err)
	}

	rec, env := ts.do(t, http.MethodPost, "/api/v1/checkout", nil, cookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("checkout: status %d", rec.Code)
	}
	var order models.Order
	if err := json.Unmarshal(env.Data, &order); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if len(order.Lines) != 1 || order.Lines[0].ProductID != "p1" {
		t.Errorf("order lines = %v, want just p1", order.Lines)
	}
}
