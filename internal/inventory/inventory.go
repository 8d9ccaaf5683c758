// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package inventory scans the public image folders that back the
// inventory-derived catalog and writes the generated image-path module.
//
// Product ids are derived from the position of an image in the sorted scan
// ("homme-1", "homme-2", ...). Adding or removing a file shifts the index
// of every later image in the same folder, so overrides keyed by those ids
// can detach after a regeneration. Callers must treat regeneration as an
// operation that may invalidate existing overrides.
package inventory

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"dianabeauty/internal/models"
)

// Folder is one top-level image directory under public/images.
type Folder struct {
	Name     string // directory name, also the key in the generated module
	Category string
	Label    string // prefix of generated product names
}

// Folders are scanned in this order.
var Folders = []Folder{
	{Name: "Parfum Homme", Category: models.CategoryHomme, Label: "Parfum Homme"},
	{Name: "Parfum Femme", Category: models.CategoryFemme, Label: "Parfum Femme"},
	{Name: "skincare", Category: models.CategorySkincare, Label: "Produit Skincare"},
}

// FolderFor returns the folder holding images of category.
func FolderFor(category string) (Folder, bool) {
	for _, f := range Folders {
		if f.Category == category || f.Name == category {
			return f, true
		}
	}
	return Folder{}, false
}

// Directories below public/images that are not inventory folders.
const (
	TempFolder   = "temp"
	CustomFolder = "custom"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// IsImage reports whether name has an accepted image extension. The match
// is case-insensitive.
func IsImage(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// Scan walks root recursively and returns every image file as base joined
// with its path relative to root, using forward slashes. The result is
// sorted by byte order.
func Scan(root, base string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan %s: not a directory", root)
	}

	files := []string{}
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() || !IsImage(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		files = append(files, path.Join(base, filepath.ToSlash(rel)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	slices.Sort(files)
	return files, nil
}

// Inventory maps a folder name to its sorted relative image paths
// ("images/Parfum Homme/a.jpg").
type Inventory map[string][]string

// Count returns the number of images per folder and in total.
func (inv Inventory) Count() (perFolder map[string]int, total int) {
	perFolder = make(map[string]int, len(Folders))
	for _, f := range Folders {
		n := len(inv[f.Name])
		perFolder[f.Name] = n
		total += n
	}
	return perFolder, total
}

// Scanner scans the inventory folders below one images directory.
type Scanner struct {
	imagesDir string
}

// NewScanner returns a scanner rooted at imagesDir (public/images).
func NewScanner(imagesDir string) *Scanner {
	return &Scanner{imagesDir: imagesDir}
}

// ImagesDir returns the scanned root.
func (s *Scanner) ImagesDir() string {
	return s.imagesDir
}

// ScanAll scans every folder independently. A failing folder is left out
// of the inventory and its error is joined into the returned error; the
// other folders are still scanned.
func (s *Scanner) ScanAll() (Inventory, error) {
	inv := make(Inventory, len(Folders))
	var errs []error
	for _, f := range Folders {
		paths, err := Scan(filepath.Join(s.imagesDir, f.Name), "images/"+f.Name)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.Name, err))
			continue
		}
		inv[f.Name] = paths
	}
	return inv, errors.Join(errs...)
}

// EnsureDirectories creates the inventory folders, the upload holding area,
// the custom product root and the skincare sub-tree when missing.
func EnsureDirectories(imagesDir string) error {
	dirs := []string{TempFolder, CustomFolder}
	for _, f := range Folders {
		dirs = append(dirs, f.Name)
	}
	for _, sub := range SkincareTree {
		for _, subSub := range sub.Children {
			dirs = append(dirs, filepath.Join("skincare", sub.Name, subSub))
		}
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(imagesDir, d), 0o755); err != nil {
			return fmt.Errorf("ensure directory %s: %w", d, err)
		}
	}
	return nil
}

// ErrInvalidFolder is returned when an upload destination would escape the
// images directory.
var ErrInvalidFolder = errors.New("invalid folder name")

// UploadDir returns the directory, relative to the images directory, that
// receives an uploaded inventory image. Unknown categories fall back to
// the first folder. Subfolders only apply to skincare.
func UploadDir(category, subcategory, subSubcategory string) (string, error) {
	folder := Folders[0]
	if f, ok := FolderFor(category); ok {
		folder = f
	}
	if folder.Category != models.CategorySkincare || subcategory == "" {
		return folder.Name, nil
	}

	parts := []string{folder.Name, subcategory}
	if subSubcategory != "" {
		parts = append(parts, subSubcategory)
	}
	for _, p := range parts[1:] {
		if p == "." || p == ".." || strings.ContainsAny(p, `/\`) {
			return "", fmt.Errorf("%q: %w", p, ErrInvalidFolder)
		}
	}
	return filepath.Join(parts...), nil
}
