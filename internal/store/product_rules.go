// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"dianabeauty/internal/models"
	"dianabeauty/internal/slug"
)

// CustomProductInput carries the fields of a create request.
type CustomProductInput struct {
	ID          string // optional; generated when empty
	Name        string
	Price       float64
	Description string
	Category    string
}

// CustomProductPatch carries the fields of an update request. Nil fields
// are left unchanged.
type CustomProductPatch struct {
	Name         *string
	Price        *float64
	Description  *string
	Category     *string
	CoverImage   string   // requested new cover; must already belong to the product
	RemoveImages []string // site paths to drop from cover and gallery
}

// NewCustomProductID builds "{category}-{slug(name)}-{base36 millis}".
func NewCustomProductID(category, name string, now time.Time) string {
	if category == "" {
		category = "custom"
	}
	return category + "-" + slug.OrFallback(name) + "-" + strconv.FormatInt(now.UnixMilli(), 36)
}

func validPrice(p float64) bool {
	return !math.IsNaN(p) && !math.IsInf(p, 0) && p >= 0
}

// ResolveCustomProductID returns the id a create request will use and
// rejects ids that are already taken.
func ResolveCustomProductID(d *models.ProductData, in CustomProductInput, now time.Time) (string, error) {
	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = NewCustomProductID(in.Category, in.Name, now)
	}
	if id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("product id %q must not contain path separators: %w", id, ErrInvalid)
	}
	if d.FindCustomProduct(id) >= 0 {
		return "", fmt.Errorf("custom product %q: %w", id, ErrDuplicate)
	}
	return id, nil
}

// AddCustomProduct appends a new custom product using images in order: the
// first becomes the cover and the rest the gallery.
func AddCustomProduct(d *models.ProductData, id string, in CustomProductInput, images []string, now time.Time) (models.CustomProduct, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Category == "" {
		return models.CustomProduct{}, fmt.Errorf("name, category and price are required: %w", ErrInvalid)
	}
	if !validPrice(in.Price) {
		return models.CustomProduct{}, fmt.Errorf("price must be a non-negative number: %w", ErrInvalid)
	}
	if len(images) == 0 || images[0] == "" {
		return models.CustomProduct{}, fmt.Errorf("create %q: %w", id, ErrNoCoverImage)
	}
	if d.FindCustomProduct(id) >= 0 {
		return models.CustomProduct{}, fmt.Errorf("custom product %q: %w", id, ErrDuplicate)
	}

	stamp := now.UTC().Format(time.RFC3339Nano)
	rec := models.CustomProduct{
		ID:          id,
		Name:        name,
		Price:       in.Price,
		Description: strings.TrimSpace(in.Description),
		Category:    in.Category,
		CoverImage:  images[0],
		Gallery:     append([]string{}, images[1:]...),
		CreatedAt:   stamp,
		UpdatedAt:   stamp,
	}
	d.CustomProducts = append(d.CustomProducts, rec)
	return rec, nil
}

// UpdateCustomProduct applies patch and the newly uploaded images to p and
// returns the updated record together with the images that were dropped
// (whose files the caller should delete). p itself is not modified.
//
// When the cover is removed and no explicit replacement is given, the first
// new image becomes the cover, else the first remaining gallery image. A
// result without a cover is rejected with ErrNoCoverImage.
func UpdateCustomProduct(p models.CustomProduct, patch CustomProductPatch, newImages []string, now time.Time) (models.CustomProduct, []string, error) {
	p.Gallery = append([]string{}, p.Gallery...)
	newImages = append([]string{}, newImages...)

	if patch.Name != nil {
		if name := strings.TrimSpace(*patch.Name); name != "" {
			p.Name = name
		}
	}
	if patch.Description != nil {
		p.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Category != nil && *patch.Category != "" {
		p.Category = *patch.Category
	}
	if patch.Price != nil {
		if !validPrice(*patch.Price) {
			return models.CustomProduct{}, nil, fmt.Errorf("price must be a non-negative number: %w", ErrInvalid)
		}
		p.Price = *patch.Price
	}

	var removed []string
	if len(patch.RemoveImages) > 0 {
		kept := p.Gallery[:0]
		for _, img := range p.Gallery {
			if slices.Contains(patch.RemoveImages, img) {
				removed = append(removed, img)
				continue
			}
			kept = append(kept, img)
		}
		p.Gallery = kept

		if p.CoverImage != "" && slices.Contains(patch.RemoveImages, p.CoverImage) {
			removed = append(removed, p.CoverImage)
			p.CoverImage = ""
		}
	}

	if p.CoverImage == "" {
		var replacement string
		switch {
		case len(newImages) > 0:
			replacement = newImages[0]
			newImages = newImages[1:]
		case len(p.Gallery) > 0:
			replacement = p.Gallery[0]
			p.Gallery = p.Gallery[1:]
		default:
			return models.CustomProduct{}, nil, fmt.Errorf("update %q: %w", p.ID, ErrNoCoverImage)
		}
		p.CoverImage = replacement
	}

	for _, img := range newImages {
		if img != p.CoverImage {
			p.Gallery = append(p.Gallery, img)
		}
	}

	if want := patch.CoverImage; want != "" && want != p.CoverImage && slices.Contains(p.Gallery, want) {
		gallery := []string{p.CoverImage}
		for _, img := range p.Gallery {
			if img != want {
				gallery = append(gallery, img)
			}
		}
		p.CoverImage = want
		p.Gallery = gallery
	}

	if p.CoverImage == "" {
		return models.CustomProduct{}, nil, fmt.Errorf("update %q: %w", p.ID, ErrNoCoverImage)
	}
	p.UpdatedAt = now.UTC().Format(time.RFC3339Nano)
	return p, removed, nil
}

// DeleteCustomProduct removes the product with id and drops it from the
// hidden-id set.
func DeleteCustomProduct(d *models.ProductData, id string) (models.CustomProduct, error) {
	i := d.FindCustomProduct(id)
	if i < 0 {
		return models.CustomProduct{}, fmt.Errorf("custom product %q: %w", id, ErrNotFound)
	}
	rec := d.CustomProducts[i]
	d.CustomProducts = slices.Delete(d.CustomProducts, i, i+1)
	d.HiddenProductIDs = slices.DeleteFunc(d.HiddenProductIDs, func(h string) bool { return h == id })
	return rec, nil
}

// SetHidden adds id to or removes it from the hidden-id set. It is
// idempotent in both directions and keeps first-insertion order.
func SetHidden(d *models.ProductData, id string, hidden bool) ([]string, error) {
	if id == "" {
		return nil, fmt.Errorf("productId is required: %w", ErrInvalid)
	}
	present := slices.Contains(d.HiddenProductIDs, id)
	switch {
	case hidden && !present:
		d.HiddenProductIDs = append(d.HiddenProductIDs, id)
	case !hidden && present:
		d.HiddenProductIDs = slices.DeleteFunc(d.HiddenProductIDs, func(h string) bool { return h == id })
	}
	return d.HiddenProductIDs, nil
}

// CreateCategory appends a non-default category.
func CreateCategory(d *models.ProductData, c models.CategoryConfig) error {
	c.ID = strings.TrimSpace(c.ID)
	c.Label = strings.TrimSpace(c.Label)
	if c.ID == "" || c.Label == "" {
		return fmt.Errorf("id and label are required: %w", ErrInvalid)
	}
	if !slug.Valid(c.ID) {
		return fmt.Errorf("category id %q must contain only a-z, 0-9 and hyphens: %w", c.ID, ErrInvalid)
	}
	if d.FindCategory(c.ID) >= 0 {
		return fmt.Errorf("category %q: %w", c.ID, ErrDuplicate)
	}
	c.IsDefault = false
	d.Categories = append(d.Categories, c)
	return nil
}

// UpdateCategory changes the label (when non-empty) and the description
// (when non-nil) of an existing category.
func UpdateCategory(d *models.ProductData, id string, label string, description *string) (models.CategoryConfig, error) {
	i := d.FindCategory(id)
	if i < 0 {
		return models.CategoryConfig{}, fmt.Errorf("category %q: %w", id, ErrNotFound)
	}
	if label = strings.TrimSpace(label); label != "" {
		d.Categories[i].Label = label
	}
	if description != nil {
		d.Categories[i].Description = *description
	}
	return d.Categories[i], nil
}

// DeleteCategory removes a category unless it is a default one or a custom
// product still references it.
func DeleteCategory(d *models.ProductData, id string) error {
	i := d.FindCategory(id)
	if i < 0 {
		return fmt.Errorf("category %q: %w", id, ErrNotFound)
	}
	if d.Categories[i].IsDefault || models.IsDefaultCategory(id) {
		return fmt.Errorf("category %q: %w", id, ErrCategoryProtected)
	}
	if d.CategoryInUse(id) {
		return fmt.Errorf("category %q: %w", id, ErrCategoryInUse)
	}
	d.Categories = slices.Delete(d.Categories, i, i+1)
	return nil
}
