// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"dianabeauty/internal/cache"
	"dianabeauty/internal/catalog"
	"dianabeauty/internal/models"
	"dianabeauty/internal/store"
)

// Public serves the storefront-facing endpoints: the assembled catalog and
// the browser-local override blob.
type Public struct {
	loader       *catalog.Loader
	local        *store.LocalOverrideStore
	catalogCache *cache.CatalogCache
}

// NewPublic creates the public handler group. catalogCache may be nil.
func NewPublic(loader *catalog.Loader, local *store.LocalOverrideStore, catalogCache *cache.CatalogCache) *Public {
	return &Public{loader: loader, local: local, catalogCache: catalogCache}
}

// catalogResponse is the body of GET /api/catalog.
type catalogResponse struct {
	Success  bool             `json:"success"`
	Count    int              `json:"count"`
	Products []models.Product `json:"products"`
}

// Catalog assembles the catalog and filters it by the category,
// subcategory and subSubcategory query parameters. Responses are cached
// until the next admin mutation.
func (p *Public) Catalog(w http.ResponseWriter, r *http.Request) {
	q := catalog.Query{
		Category:       r.URL.Query().Get("category"),
		Subcategory:    r.URL.Query().Get("subcategory"),
		SubSubcategory: r.URL.Query().Get("subSubcategory"),
	}
	ctx := r.Context()

	if body, ok := p.catalogCache.Get(ctx, q.Key()); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "HIT")
		w.Write(body)
		return
	}

	in, err := p.loader.Load(ctx)
	if err != nil {
		writeStoreError(w, r, err, "")
		return
	}
	products := catalog.Filter(catalog.Assemble(in), q)

	body, err := json.Marshal(catalogResponse{Success: true, Count: len(products), Products: products})
	if err != nil {
		slog.Error("encode catalog failed", "error", err)
		writeError(w, "Internal server error.", http.StatusInternalServerError)
		return
	}
	p.catalogCache.Set(ctx, q.Key(), body)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "MISS")
	w.Write(body)
}

// LocalOverrides returns the browser-local blob, or null when none is stored.
func (p *Public) LocalOverrides(w http.ResponseWriter, r *http.Request) {
	data, err := p.local.Load(r.Context())
	if err != nil {
		writeStoreError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": data})
}

// SaveLocalOverrides replaces the browser-local blob.
func (p *Public) SaveLocalOverrides(w http.ResponseWriter, r *http.Request) {
	var data models.ProductData
	if !decodeJSON(w, r, &data) {
		return
	}
	if err := p.local.Save(r.Context(), &data); err != nil {
		writeStoreError(w, r, err, "")
		return
	}
	p.catalogCache.InvalidateAll(r.Context())

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": &data})
}
