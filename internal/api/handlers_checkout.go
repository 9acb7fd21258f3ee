// Norwood Storefront - Catalog, Cart, and Recommendations Backend
// Copyright 2026 Norwood House
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/norwoodhouse/storefront

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/norwoodhouse/storefront/internal/auth"
	"github.com/norwoodhouse/storefront/internal/logging"
	"github.com/norwoodhouse/storefront/internal/models"
	"github.com/norwoodhouse/storefront/internal/payments"
	"github.com/norwoodhouse/storefront/internal/store"
)

// defaultCurrency is used when no cart item declares one.
const defaultCurrency = "USD"

// handleCheckout turns the session user's cart into an order.
//
// POST /api/v1/checkout
//
// Cart lines whose product has been deleted are dropped. Item names and
// prices are snapshotted onto the order. When a payment collaborator is
// configured, an intent is created; if the collaborator is down the
// order is still placed, just without an intent.
func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims, _ := auth.ClaimsFromContext(ctx)

	lines, err := s.store.GetCartLines(ctx, claims.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to load cart", err)
		return
	}

	var (
		orderLines []models.OrderLine
		total      float64
		currency   string
	)
	for i := range lines {
		item, gerr := s.store.GetItem(ctx, lines[i].ProductID)
		if gerr != nil {
			if errors.Is(gerr, store.ErrItemNotFound) {
				continue
			}
			respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to load cart items", gerr)
			return
		}
		if !item.InStock {
			respondError(w, http.StatusConflict, "OUT_OF_STOCK", "item "+item.Name+" is out of stock", nil)
			return
		}
		orderLines = append(orderLines, models.OrderLine{
			ProductID: item.ID,
			Name:      item.Name,
			UnitPrice: item.Price,
			Quantity:  lines[i].Quantity,
		})
		total += item.Price * float64(lines[i].Quantity)
		if currency == "" && item.Currency != "" {
			currency = item.Currency
		}
	}
	if len(orderLines) == 0 {
		respondError(w, http.StatusBadRequest, "EMPTY_CART", "cart is empty", nil)
		return
	}
	if currency == "" {
		currency = defaultCurrency
	}

	order := &models.Order{
		ID:        uuid.New().String(),
		UserID:    claims.UserID,
		Lines:     orderLines,
		Total:     total,
		Currency:  currency,
		Status:    models.OrderStatusPending,
		CreatedAt: time.Now().UTC(),
	}

	if intent, perr := s.payments.CreateIntent(ctx, order.ID, order.Total, order.Currency); perr == nil {
		order.PaymentIntentID = intent.ID
	} else if !errors.Is(perr, payments.ErrPaymentsUnavailable) {
		respondError(w, http.StatusInternalServerError, "PAYMENT_ERROR", "failed to start payment", perr)
		return
	} else if s.payments != nil {
		logger := logging.Ctx(ctx)
		logger.Warn().Err(perr).Str("order_id", order.ID).Msg("placing order without payment intent")
	}

	if err := s.store.CreateOrder(ctx, order); err != nil {
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to create order", err)
		return
	}
	if err := s.store.ClearCart(ctx, claims.UserID); err != nil {
		// The order exists; a stale cart is recoverable.
		logger := logging.Ctx(ctx)
		logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to clear cart after checkout")
	}

	logger := logging.Ctx(ctx)
	logger.Info().
		Str("order_id", order.ID).
		Float64("total", order.Total).
		Int("lines", len(order.Lines)).
		Msg("order placed")
	respondSuccess(w, http.StatusCreated, order)
}

// handleListMyOrders returns the session user's orders, newest first.
//
// GET /api/v1/orders
func (s *Server) handleListMyOrders(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	orders, err := s.store.ListOrdersByUser(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to list orders", err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	respondSuccess(w, http.StatusOK, orders)
}

// handleGetOrder returns one order. Users see their own orders; admins
// see all.
//
// GET /api/v1/orders/{orderID}
func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	orderID := chi.URLParam(r, "orderID")

	order, err := s.store.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			respondError(w, http.StatusNotFound, "ORDER_NOT_FOUND", "order not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to load order", err)
		return
	}
	if order.UserID != claims.UserID && !claims.IsAdmin {
		// Hidden, not forbidden: don't leak order existence.
		respondError(w, http.StatusNotFound, "ORDER_NOT_FOUND", "order not found", nil)
		return
	}
	respondSuccess(w, http.StatusOK, order)
}

// handleListAllOrders returns every order. Admin only.
//
// GET /api/v1/admin/orders
func (s *Server) handleListAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.store.ListOrders(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to list orders", err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	respondSuccess(w, http.StatusOK, orders)
}
