// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"dianabeauty/internal/models"
)

// saveOverrideRequest is the body of POST /api/save-product-override.
// Price is kept raw because the admin UI sends either a number or the
// text of a number input.
type saveOverrideRequest struct {
	ID          string          `json:"id"`
	IDs         []string        `json:"ids"`
	Name        string          `json:"name"`
	Price       json.RawMessage `json:"price"`
	Description string          `json:"description"`
}

// SaveOverride applies one patch to the override record of every given id.
// Empty strings and a null or empty price leave the field untouched.
func (a *Admin) SaveOverride(w http.ResponseWriter, r *http.Request) {
	var req saveOverrideRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	// A present ids array, even an empty one, takes precedence over id.
	ids := req.IDs
	if ids == nil && req.ID != "" {
		ids = []string{req.ID}
	}
	if len(ids) == 0 {
		writeError(w, "Product id(s) required.", http.StatusBadRequest)
		return
	}

	var patch models.OverrideRecord
	if req.Name != "" {
		if msg := validateProductName(req.Name); msg != "" {
			writeError(w, msg, http.StatusBadRequest)
			return
		}
		patch.Name = &req.Name
	}
	if req.Description != "" {
		if msg := validateDescription(req.Description); msg != "" {
			writeError(w, msg, http.StatusBadRequest)
			return
		}
		patch.Description = &req.Description
	}
	price, err := parseRawPrice(req.Price)
	if err != nil {
		writeError(w, "Price must be a number.", http.StatusBadRequest)
		return
	}
	patch.Price = price

	if _, err := a.overrides.Upsert(ids, patch); err != nil {
		writeStoreError(w, r, err, "")
		return
	}
	a.invalidateCatalog(r.Context())

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("%d product(s) updated", len(ids)),
	})
}

// parseRawPrice accepts a JSON number or a string holding one. A missing,
// null or blank value yields nil.
func parseRawPrice(raw json.RawMessage) (*float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return parsePrice(s)
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// parsePrice parses a form price. A blank value yields nil.
func parsePrice(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
