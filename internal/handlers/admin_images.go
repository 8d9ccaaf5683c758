// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"dianabeauty/internal/inventory"
	"dianabeauty/internal/media"
)

// uploadedImage describes one placed inventory upload.
type uploadedImage struct {
	OriginalName string `json:"originalName"`
	SavedPath    string `json:"savedPath"`
	Category     string `json:"category"`
}

// UploadImages places uploaded files into the inventory folders. The
// "images" field is a JSON array of targets matched to "files" by
// position; a file without a target goes to the men's fragrance folder.
func (a *Admin) UploadImages(w http.ResponseWriter, r *http.Request) {
	if !a.parseMultipart(w, r) {
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeError(w, "No file provided.", http.StatusBadRequest)
		return
	}
	var targets []media.InventoryUpload
	if v := strings.TrimSpace(r.FormValue("images")); v != "" {
		if err := json.Unmarshal([]byte(v), &targets); err != nil {
			writeError(w, "images must be a JSON array of upload targets.", http.StatusBadRequest)
			return
		}
	}

	staged, err := a.stageFiles(files)
	if err != nil {
		writeStoreError(w, r, err, "")
		return
	}

	now := a.now()
	uploaded := make([]uploadedImage, 0, len(staged))
	for i, s := range staged {
		target := media.InventoryUpload{Category: inventory.Folders[0].Name}
		if i < len(targets) {
			target = targets[i]
		}
		dest, err := a.library.PlaceInventoryImage(s, target, now)
		if err != nil {
			a.library.Discard(staged[i:])
			a.invalidateCatalog(r.Context())
			writeStoreError(w, r, err, "")
			return
		}
		uploaded = append(uploaded, uploadedImage{
			OriginalName: s.OriginalName,
			SavedPath:    a.sitePath(dest),
			Category:     target.Category,
		})
	}
	a.invalidateCatalog(r.Context())

	slog.Info("inventory images uploaded", "count", len(uploaded))
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(uploaded),
		"files":   uploaded,
	})
}

// sitePath maps an absolute file below the images directory to the path
// the storefront serves it at.
func (a *Admin) sitePath(abs string) string {
	rel, err := filepath.Rel(a.library.ImagesDir(), abs)
	if err != nil {
		return abs
	}
	return path.Join("/images", filepath.ToSlash(rel))
}

// RegenerateImages rescans the inventory and rewrites the image-path
// module. Prior mutations are never rolled back when this fails.
func (a *Admin) RegenerateImages(w http.ResponseWriter, r *http.Request) {
	counts, err := inventory.Regenerate(a.scanner, a.imagePathsFile)
	if err != nil {
		slog.Error("regenerate image paths failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":  err.Error(),
			"counts": counts,
		})
		return
	}
	a.invalidateCatalog(r.Context())

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Image list regenerated",
		"counts":  counts,
	})
}
