// Norwood Storefront - Catalog, Cart, and Recommendations Backend
// Copyright 2026 Norwood House
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/norwoodhouse/storefront

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/norwoodhouse/storefront/internal/auth"
	"github.com/norwoodhouse/storefront/internal/models"
	"github.com/norwoodhouse/storefront/internal/store"
)

// addToCartRequest is the add/update cart line payload.
type addToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1,max=99"`
}

// cartLineView joins a cart line with its current catalog item for the
// cart page.
type cartLineView struct {
	ProductID string              `json:"product_id"`
	Quantity  int                 `json:"quantity"`
	Item      *models.CatalogItem `json:"item,omitempty"`
}

// handleGetCart returns the session user's cart with catalog details.
// Lines whose product has been deleted are returned without an item so
// the UI can prompt removal.
//
// GET /api/v1/cart
func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	lines, err := s.store.GetCartLines(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to load cart", err)
		return
	}

	views := make([]cartLineView, 0, len(lines))
	for i := range lines {
		view := cartLineView{
			ProductID: lines[i].ProductID,
			Quantity:  lines[i].Quantity,
		}
		item, gerr := s.store.GetItem(r.Context(), lines[i].ProductID)
		if gerr == nil {
			view.Item = item
		} else if !errors.Is(gerr, store.ErrItemNotFound) {
			respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to load cart", gerr)
			return
		}
		views = append(views, view)
	}
	respondSuccess(w, http.StatusOK, views)
}

// handleAddToCart adds a product or updates its quantity.
//
// POST /api/v1/cart
func (s *Server) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	var req addToCartRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "malformed request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	item, err := s.store.GetItem(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			respondError(w, http.StatusNotFound, "ITEM_NOT_FOUND", "product not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to load product", err)
		return
	}
	if !item.InStock {
		respondError(w, http.StatusConflict, "OUT_OF_STOCK", "product is out of stock", nil)
		return
	}

	if err := s.store.UpsertCartLine(r.Context(), claims.UserID, req.ProductID, req.Quantity); err != nil {
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to update cart", err)
		return
	}
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"product_id": req.ProductID,
		"quantity":   req.Quantity,
	})
}

// handleRemoveFromCart removes a single product from the cart.
//
// DELETE /api/v1/cart/{productID}
func (s *Server) handleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	productID := chi.URLParam(r, "productID")

	if err := s.store.DeleteCartLine(r.Context(), claims.UserID, productID); err != nil {
		if errors.Is(err, store.ErrCartLineNotFound) {
			respondError(w, http.StatusNotFound, "CART_LINE_NOT_FOUND", "product is not in the cart", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to update cart", err)
		return
	}
	respondSuccess(w, http.StatusOK, map[string]string{"removed": productID})
}

// handleClearCart empties the session user's cart.
//
// DELETE /api/v1/cart
func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	if err := s.store.ClearCart(r.Context(), claims.UserID); err != nil {
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to clear cart", err)
		return
	}
	respondSuccess(w, http.StatusOK, map[string]string{"status": "cleared"})
}
