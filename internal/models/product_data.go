// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// CategoryConfig describes a catalog category. Default categories are
// immutable and can never be deleted.
type CategoryConfig struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	IsDefault   bool   `json:"isDefault,omitempty"`
}

// CustomProduct is an admin-authored product. CoverImage is never empty
// after a successful mutation and never appears in Gallery.
type CustomProduct struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	CoverImage  string   `json:"coverImage"`
	Gallery     []string `json:"gallery"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

// ToProduct maps the record into the assembled Product shape.
func (c CustomProduct) ToProduct() Product {
	gallery := c.Gallery
	if gallery == nil {
		gallery = []string{}
	}
	source := c.CoverImage
	for len(source) > 0 && source[0] == '/' {
		source = source[1:]
	}
	return Product{
		ID:          c.ID,
		Name:        c.Name,
		Price:       c.Price,
		Description: c.Description,
		Image:       c.CoverImage,
		Gallery:     gallery,
		Category:    c.Category,
		IsCustom:    true,
		SourceImage: source,
	}
}

// ProductData is the machine-managed JSON blob persisted by the product data
// store and mirrored by the browser-local store.
type ProductData struct {
	Categories       []CategoryConfig `json:"categories"`
	CustomProducts   []CustomProduct  `json:"customProducts"`
	HiddenProductIDs []string         `json:"hiddenProductIds"`
}

// Normalize replaces nil sequences with empty ones so the blob always
// serializes with all three arrays present.
func (d *ProductData) Normalize() {
	if d.Categories == nil {
		d.Categories = []CategoryConfig{}
	}
	if d.CustomProducts == nil {
		d.CustomProducts = []CustomProduct{}
	}
	if d.HiddenProductIDs == nil {
		d.HiddenProductIDs = []string{}
	}
	for i := range d.CustomProducts {
		if d.CustomProducts[i].Gallery == nil {
			d.CustomProducts[i].Gallery = []string{}
		}
	}
}

// FindCustomProduct returns the index of the custom product with id, or -1.
func (d *ProductData) FindCustomProduct(id string) int {
	for i := range d.CustomProducts {
		if d.CustomProducts[i].ID == id {
			return i
		}
	}
	return -1
}

// FindCategory returns the index of the category with id, or -1.
func (d *ProductData) FindCategory(id string) int {
	for i := range d.Categories {
		if d.Categories[i].ID == id {
			return i
		}
	}
	return -1
}

// CategoryInUse reports whether any custom product references category id.
func (d *ProductData) CategoryInUse(id string) bool {
	for _, p := range d.CustomProducts {
		if p.Category == id {
			return true
		}
	}
	return false
}

// DefaultCategories returns the four built-in categories.
func DefaultCategories() []CategoryConfig {
	return []CategoryConfig{
		{ID: CategoryHomme, Label: "Parfums Homme", IsDefault: true},
		{ID: CategoryFemme, Label: "Parfums Femme", IsDefault: true},
		{ID: CategoryMixte, Label: "Parfums Mixte", IsDefault: true},
		{ID: CategorySkincare, Label: "Skincare", IsDefault: true},
	}
}

// IsDefaultCategory reports whether id names one of the built-in categories.
func IsDefaultCategory(id string) bool {
	switch id {
	case CategoryHomme, CategoryFemme, CategoryMixte, CategorySkincare:
		return true
	}
	return false
}
