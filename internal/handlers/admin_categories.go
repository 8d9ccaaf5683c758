// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"dianabeauty/internal/models"
	"dianabeauty/internal/store"
)

// CreateCategory adds a non-default category and returns the full list.
func (a *Admin) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID          string `json:"id"`
		Label       string `json:"label"`
		Description string `json:"description"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateCategory(req.Label, req.Description); msg != "" {
		writeError(w, msg, http.StatusBadRequest)
		return
	}

	data, err := a.productData.Update(func(d *models.ProductData) error {
		return store.CreateCategory(d, models.CategoryConfig{
			ID:          req.ID,
			Label:       req.Label,
			Description: req.Description,
		})
	})
	if err != nil {
		writeStoreError(w, r, err, "")
		return
	}
	a.invalidateCatalog(r.Context())

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "categories": data.Categories})
}

// UpdateCategory changes the label and description of a category.
func (a *Admin) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req struct {
		Label       string  `json:"label"`
		Description *string `json:"description"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	desc := ""
	if req.Description != nil {
		desc = *req.Description
	}
	if msg := validateCategory(req.Label, desc); msg != "" {
		writeError(w, msg, http.StatusBadRequest)
		return
	}

	var updated models.CategoryConfig
	_, err := a.productData.Update(func(d *models.ProductData) error {
		var err error
		updated, err = store.UpdateCategory(d, id, req.Label, req.Description)
		return err
	})
	if err != nil {
		writeStoreError(w, r, err, "Category not found.")
		return
	}
	a.invalidateCatalog(r.Context())

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "category": updated})
}

// DeleteCategory removes a category unless it is a default one or still
// in use, and returns the remaining list.
func (a *Admin) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	data, err := a.productData.Update(func(d *models.ProductData) error {
		return store.DeleteCategory(d, id)
	})
	if err != nil {
		writeStoreError(w, r, err, "Category not found.")
		return
	}
	a.invalidateCatalog(r.Context())

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "categories": data.Categories})
}
