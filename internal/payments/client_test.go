// Norwood Storefront - Catalog, Cart, and Recommendations Backend
// Copyright 2026 Norwood House
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/norwoodhouse/storefront

package payments

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/norwoodhouse/storefront/internal/config"
)

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	c := NewClient(config.PaymentsConfig{
		Enabled:   true,
		IntentURL: url,
		APIKey:    "test-key",
	}, zerolog.New(io.Discard))
	if c == nil {
		t.Fatal("NewClient returned nil for enabled config")
	}
	return c
}

func TestCreateIntent(t *testing.T) {
	var gotAuth string
	var gotReq intentRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(Intent{
			ID:       "pi_123",
			Amount:   gotReq.Amount,
			Currency: gotReq.Currency,
			Status:   "requires_payment",
		})
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	intent, err := c.CreateIntent(context.Background(), "o1", 12.50, "USD")
	if err != nil {
		t.Fatalf("CreateIntent: %v", err)
	}

	if intent.ID != "pi_123" || intent.Amount != 12.50 {
		t.Errorf("intent = %+v", intent)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotReq.OrderID != "o1" || gotReq.Currency != "USD" {
		t.Errorf("request = %+v", gotReq)
	}
}

func TestCreateIntentServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	_, err := c.CreateIntent(context.Background(), "o1", 1, "USD")
	if !errors.Is(err, ErrPaymentsUnavailable) {
		t.Fatalf("err = %v, want ErrPaymentsUnavailable", err)
	}
}

func TestCreateIntentMissingID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Intent{Status: "weird"})
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	if _, err := c.CreateIntent(context.Background(), "o1", 1, "USD"); !errors.Is(err, ErrPaymentsUnavailable) {
		t.Fatalf("err = %v, want ErrPaymentsUnavailable", err)
	}
}

func TestNilClient(t *testing.T) {
	c := NewClient(config.PaymentsConfig{Enabled: false}, zerolog.New(io.Discard))
	if c != nil {
		t.Fatal("NewClient should return nil when disabled")
	}
	if _, err := c.CreateIntent(context.Background(), "o1", 1, "USD"); !errors.Is(err, ErrPaymentsUnavailable) {
		t.Fatalf("err = %v, want ErrPaymentsUnavailable", err)
	}
}

func TestCircuitOpensAfterRepeatedFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	for i := 0; i < 10; i++ {
		_, _ = c.CreateIntent(context.Background(), "o1", 1, "USD")
	}

	// The breaker should now reject without reaching the server.
	var served int
	server.Config.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		served++
	})
	if _, err := c.CreateIntent(context.Background(), "o1", 1, "USD"); !errors.Is(err, ErrPaymentsUnavailable) {
		t.Fatalf("err = %v, want ErrPaymentsUnavailable", err)
	}
	if served != 0 {
		t.Errorf("server saw %d requests with circuit open, want 0", served)
	}
}
