// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"dianabeauty/internal/media"
	"dianabeauty/internal/models"
	"dianabeauty/internal/store"
)

// multipartMemory is how much of a multipart body is kept in memory before
// spilling file parts to disk.
const multipartMemory = 32 << 20

// parseMultipart parses a size-limited multipart body. It writes the error
// response itself and reports whether the handler may continue.
func (a *Admin) parseMultipart(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, a.library.MaxFileSize()*maxUploadFiles+(1<<20))
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, "Upload too large.", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, "Invalid multipart form.", http.StatusBadRequest)
		return false
	}
	return true
}

// formField returns a multipart value and whether the field was sent at all.
func formField(r *http.Request, key string) (string, bool) {
	vs, ok := r.MultipartForm.Value[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// stageFiles validates and stages every upload. On failure the files
// staged so far are discarded.
func (a *Admin) stageFiles(files []*multipart.FileHeader) ([]media.Staged, error) {
	if len(files) > maxUploadFiles {
		return nil, fmt.Errorf("at most %d images per request: %w", maxUploadFiles, store.ErrInvalid)
	}
	staged := make([]media.Staged, 0, len(files))
	for _, fh := range files {
		s, err := a.library.Stage(fh)
		if err != nil {
			a.library.Discard(staged)
			return nil, err
		}
		staged = append(staged, s)
	}
	return staged, nil
}

// rollbackImages removes uploads of a failed mutation, whether they are
// still staged or were already moved to their final place.
func (a *Admin) rollbackImages(staged []media.Staged, placements []media.Placement) {
	a.library.Discard(staged)
	for _, p := range placements {
		if err := a.library.DeleteImage(p.SitePath); err != nil {
			slog.Warn("rollback image failed", "path", p.SitePath, "error", err)
		}
	}
}

// CreateCustomProduct creates a custom product from a multipart form with
// name, price, category, optional description and id, and images.
func (a *Admin) CreateCustomProduct(w http.ResponseWriter, r *http.Request) {
	if !a.parseMultipart(w, r) {
		return
	}
	defer r.MultipartForm.RemoveAll()

	in := store.CustomProductInput{
		ID:          r.FormValue("id"),
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Category:    strings.TrimSpace(r.FormValue("category")),
	}
	price, err := parsePrice(r.FormValue("price"))
	if err != nil {
		writeError(w, "Price must be a number.", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(in.Name) == "" || in.Category == "" || price == nil {
		writeError(w, "Name, category and price are required.", http.StatusBadRequest)
		return
	}
	in.Price = *price
	if msg := validateProductName(in.Name); msg != "" {
		writeError(w, msg, http.StatusBadRequest)
		return
	}
	if msg := validateDescription(in.Description); msg != "" {
		writeError(w, msg, http.StatusBadRequest)
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		writeError(w, "Add at least one image.", http.StatusBadRequest)
		return
	}
	staged, err := a.stageFiles(files)
	if err != nil {
		writeStoreError(w, r, err, "")
		return
	}

	now := a.now()
	var (
		placements []media.Placement
		created    models.CustomProduct
	)
	_, err = a.productData.Update(func(d *models.ProductData) error {
		id, err := store.ResolveCustomProductID(d, in, now)
		if err != nil {
			return err
		}
		placements, err = a.library.PlanProductImages(id, staged)
		if err != nil {
			return err
		}
		created, err = store.AddCustomProduct(d, id, in, media.SitePaths(placements), now)
		if err != nil {
			return err
		}
		return a.library.Commit(placements)
	})
	if err != nil {
		a.rollbackImages(staged, placements)
		writeStoreError(w, r, err, "")
		return
	}
	a.invalidateCatalog(r.Context())

	slog.Info("custom product created", "id", created.ID, "images", len(placements))
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "product": created})
}

// UpdateCustomProduct edits a custom product. Every field is optional;
// removeImages is a JSON array of image paths and new images are appended
// to the gallery.
func (a *Admin) UpdateCustomProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !a.parseMultipart(w, r) {
		return
	}
	defer r.MultipartForm.RemoveAll()

	patch := store.CustomProductPatch{CoverImage: strings.TrimSpace(r.FormValue("coverImage"))}
	if v, ok := formField(r, "name"); ok && strings.TrimSpace(v) != "" {
		if msg := validateProductName(v); msg != "" {
			writeError(w, msg, http.StatusBadRequest)
			return
		}
		patch.Name = &v
	}
	if v, ok := formField(r, "description"); ok {
		if msg := validateDescription(v); msg != "" {
			writeError(w, msg, http.StatusBadRequest)
			return
		}
		patch.Description = &v
	}
	if v, ok := formField(r, "category"); ok && strings.TrimSpace(v) != "" {
		v = strings.TrimSpace(v)
		patch.Category = &v
	}
	if v, ok := formField(r, "price"); ok {
		price, err := parsePrice(v)
		if err != nil {
			writeError(w, "Price must be a number.", http.StatusBadRequest)
			return
		}
		patch.Price = price
	}
	if v := strings.TrimSpace(r.FormValue("removeImages")); v != "" {
		if err := json.Unmarshal([]byte(v), &patch.RemoveImages); err != nil {
			writeError(w, "removeImages must be a JSON array of image paths.", http.StatusBadRequest)
			return
		}
	}

	staged, err := a.stageFiles(r.MultipartForm.File["images"])
	if err != nil {
		writeStoreError(w, r, err, "")
		return
	}

	now := a.now()
	var (
		placements []media.Placement
		updated    models.CustomProduct
		removed    []string
	)
	_, err = a.productData.Update(func(d *models.ProductData) error {
		i := d.FindCustomProduct(id)
		if i < 0 {
			return fmt.Errorf("custom product %q: %w", id, store.ErrNotFound)
		}
		var err error
		placements, err = a.library.PlanProductImages(id, staged)
		if err != nil {
			return err
		}
		updated, removed, err = store.UpdateCustomProduct(d.CustomProducts[i], patch, media.SitePaths(placements), now)
		if err != nil {
			return err
		}
		if err := a.library.Commit(placements); err != nil {
			return err
		}
		d.CustomProducts[i] = updated
		return nil
	})
	if err != nil {
		a.rollbackImages(staged, placements)
		writeStoreError(w, r, err, "Product not found.")
		return
	}

	for _, img := range removed {
		if err := a.library.DeleteImage(img); err != nil {
			slog.Warn("delete removed image failed", "product", id, "path", img, "error", err)
		}
	}
	a.invalidateCatalog(r.Context())

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "product": updated})
}

// DeleteCustomProduct removes a custom product, its hidden flag and its
// image directory.
func (a *Admin) DeleteCustomProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	_, err := a.productData.Update(func(d *models.ProductData) error {
		_, err := store.DeleteCustomProduct(d, id)
		return err
	})
	if err != nil {
		writeStoreError(w, r, err, "Product not found.")
		return
	}
	if err := a.library.RemoveProductDir(id); err != nil {
		slog.Warn("remove product images failed", "product", id, "error", err)
	}
	a.invalidateCatalog(r.Context())

	slog.Info("custom product deleted", "id", id)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// SetHidden adds a product id to or removes it from the hidden set.
func (a *Admin) SetHidden(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"productId"`
		Hidden    bool   `json:"hidden"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ProductID == "" {
		writeError(w, "productId is required.", http.StatusBadRequest)
		return
	}

	data, err := a.productData.Update(func(d *models.ProductData) error {
		_, err := store.SetHidden(d, req.ProductID, req.Hidden)
		return err
	})
	if err != nil {
		writeStoreError(w, r, err, "")
		return
	}
	a.invalidateCatalog(r.Context())

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "hiddenProductIds": data.HiddenProductIDs})
}
