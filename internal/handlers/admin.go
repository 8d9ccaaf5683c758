// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers of the catalog admin server.
// Handlers are grouped by audience (admin, public) and receive their
// dependencies through the handler struct.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"dianabeauty/internal/cache"
	"dianabeauty/internal/inventory"
	"dianabeauty/internal/media"
	"dianabeauty/internal/store"
)

// maxJSONBody caps JSON request bodies.
const maxJSONBody = 1 << 20

// Admin groups the admin API handlers and their dependencies.
type Admin struct {
	overrides      *store.OverrideStore
	productData    *store.ProductDataStore
	library        *media.Library
	scanner        *inventory.Scanner
	imagePathsFile string
	catalogCache   *cache.CatalogCache

	// now is replaceable in tests.
	now func() time.Time
}

// NewAdmin creates the admin handler group. catalogCache may be nil.
func NewAdmin(overrides *store.OverrideStore, productData *store.ProductDataStore, library *media.Library, scanner *inventory.Scanner, imagePathsFile string, catalogCache *cache.CatalogCache) *Admin {
	return &Admin{
		overrides:      overrides,
		productData:    productData,
		library:        library,
		scanner:        scanner,
		imagePathsFile: imagePathsFile,
		catalogCache:   catalogCache,
		now:            time.Now,
	}
}

// invalidateCatalog drops every cached catalog after a successful mutation.
func (a *Admin) invalidateCatalog(ctx context.Context) {
	a.catalogCache.InvalidateAll(ctx)
}

// ProductsData returns the whole product data blob.
func (a *Admin) ProductsData(w http.ResponseWriter, r *http.Request) {
	data, err := a.productData.Load()
	if err != nil {
		writeStoreError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": data})
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encode response failed", "error", err)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeStoreError maps a store or media error onto a status code and a
// message the admin UI can show verbatim. notFound replaces the generic
// message for unknown ids.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		if notFound == "" {
			notFound = "Not found."
		}
		writeError(w, notFound, http.StatusNotFound)
	case errors.Is(err, store.ErrDuplicate):
		writeError(w, "A record with this id already exists.", http.StatusBadRequest)
	case errors.Is(err, store.ErrCategoryProtected):
		writeError(w, "Default categories cannot be deleted.", http.StatusBadRequest)
	case errors.Is(err, store.ErrCategoryInUse):
		writeError(w, "This category is still used by a product.", http.StatusBadRequest)
	case errors.Is(err, store.ErrNoCoverImage):
		writeError(w, "The product must keep at least one image.", http.StatusBadRequest)
	case errors.Is(err, store.ErrInvalid):
		writeError(w, invalidMessage(err), http.StatusBadRequest)
	case errors.Is(err, media.ErrTooLarge):
		writeError(w, "Image too large.", http.StatusRequestEntityTooLarge)
	case errors.Is(err, media.ErrUnsupportedType):
		writeError(w, "Only JPEG, PNG and WebP images are allowed.", http.StatusBadRequest)
	case errors.Is(err, media.ErrInvalidPath), errors.Is(err, inventory.ErrInvalidFolder):
		writeError(w, "Invalid image path.", http.StatusBadRequest)
	case errors.Is(err, store.ErrUnreadable):
		slog.Error("store unreadable", "path", r.URL.Path, "error", err)
		writeError(w, err.Error(), http.StatusInternalServerError)
	default:
		slog.Error("admin request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, "Internal server error.", http.StatusInternalServerError)
	}
}

// invalidMessage strips the sentinel suffix from an ErrInvalid chain and
// capitalizes the remainder.
func invalidMessage(err error) string {
	msg := strings.TrimSuffix(err.Error(), ": "+store.ErrInvalid.Error())
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		msg = msg[i+2:]
	}
	if msg == "" {
		return "Invalid input."
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}

// decodeJSON reads a size-limited JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, "Invalid JSON body.", http.StatusBadRequest)
		return false
	}
	return true
}
