// Norwood Storefront - Catalog, Cart, and Recommendations Backend
// Copyright 2026 Norwood House
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/norwoodhouse/storefront

package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/norwoodhouse/storefront/internal/auth"
	"github.com/norwoodhouse/storefront/internal/logging"
	"github.com/norwoodhouse/storefront/internal/models"
	"github.com/norwoodhouse/storefront/internal/store"
)

// itemRequest is the create/update payload for catalog items.
type itemRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=5000"`
	Category    string   `json:"category" validate:"max=100"`
	Tags        []string `json:"tags" validate:"max=10,dive,oneof=salty sweet spicy healthy morning afternoon night"`
	ImageBase64 string   `json:"image_base64"`
	Price       float64  `json:"price" validate:"gte=0"`
	Currency    string   `json:"currency" validate:"omitempty,oneof=LKR USD EUR GBP"`
	InStock     bool     `json:"in_stock"`
}

// handleListItems serves the catalog.
//
// GET /api/v1/items?category=<c>&in_stock=true&limit=<n>
func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	filter := store.ItemFilter{
		Category: r.URL.Query().Get("category"),
		Limit:    getIntParam(r, "limit", 0),
	}
	if r.URL.Query().Get("in_stock") == "true" {
		filter.InStockOnly = true
	}

	items, err := s.store.ListItems(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to list items", err)
		return
	}
	if items == nil {
		items = []models.CatalogItem{}
	}
	respondSuccess(w, http.StatusOK, items)
}

// handleGetItem serves a single catalog item.
func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	item, err := s.store.GetItem(r.Context(), itemID)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			respondError(w, http.StatusNotFound, "ITEM_NOT_FOUND", "item not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to load item", err)
		return
	}
	respondSuccess(w, http.StatusOK, item)
}

// handleCreateItem creates a catalog item. Admin only.
func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "malformed request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	now := time.Now().UTC()
	item := &models.CatalogItem{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Tags:        req.Tags,
		ImageBase64: req.ImageBase64,
		Price:       req.Price,
		Currency:    req.Currency,
		InStock:     req.InStock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.PutItem(r.Context(), item); err != nil {
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to create item", err)
		return
	}

	logger := logging.Ctx(r.Context())
	logger.Info().Str("item_id", item.ID).Msg("catalog item created")
	respondSuccess(w, http.StatusCreated, item)
}

// handleUpdateItem replaces a catalog item. Admin only. The creation
// time is preserved.
func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")

	existing, err := s.store.GetItem(r.Context(), itemID)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			respondError(w, http.StatusNotFound, "ITEM_NOT_FOUND", "item not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to load item", err)
		return
	}

	var req itemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "malformed request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	item := &models.CatalogItem{
		ID:          itemID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Tags:        req.Tags,
		ImageBase64: req.ImageBase64,
		Price:       req.Price,
		Currency:    req.Currency,
		InStock:     req.InStock,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := s.store.PutItem(r.Context(), item); err != nil {
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to update item", err)
		return
	}
	respondSuccess(w, http.StatusOK, item)
}

// handleDeleteItem removes a catalog item. Admin only. Cart lines
// referencing the item stay in place; consumers drop them at read time.
func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	if err := s.store.DeleteItem(r.Context(), itemID); err != nil {
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to delete item", err)
		return
	}
	logger := logging.Ctx(r.Context())
	logger.Info().Str("item_id", sanitizeLogValue(itemID)).Msg("catalog item deleted")
	respondSuccess(w, http.StatusOK, map[string]string{"deleted": itemID})
}

// handleRecordView appends an item to the session user's view history,
// feeding the preference scorer's browse signal.
//
// POST /api/v1/items/{itemID}/view
func (s *Server) handleRecordView(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	itemID := chi.URLParam(r, "itemID")

	if _, err := s.store.GetItem(r.Context(), itemID); err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			respondError(w, http.StatusNotFound, "ITEM_NOT_FOUND", "item not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to load item", err)
		return
	}

	if err := s.store.AppendViewHistory(r.Context(), claims.UserID, itemID); err != nil {
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to record view", err)
		return
	}
	respondSuccess(w, http.StatusOK, map[string]string{"viewed": itemID})
}

// getIntParam extracts an integer query parameter with a default.
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
