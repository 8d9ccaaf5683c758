// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"slices"

	"dianabeauty/internal/models"
)

// Query filters an assembled catalog. Empty fields match everything.
type Query struct {
	Category       string
	Subcategory    string
	SubSubcategory string
}

// Key returns a stable cache key for q.
func (q Query) Key() string {
	return q.Category + "|" + q.Subcategory + "|" + q.SubSubcategory
}

// Filter returns the products matching q, keeping their order.
func Filter(products []models.Product, q Query) []models.Product {
	out := []models.Product{}
	for _, p := range products {
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if q.Subcategory != "" && p.Subcategory != q.Subcategory {
			continue
		}
		if q.SubSubcategory != "" && p.SubSubcategory != q.SubSubcategory {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ByCategory returns the products of one category.
func ByCategory(products []models.Product, category string) []models.Product {
	return Filter(products, Query{Category: category})
}

// CoverImage returns the image of the first product of category, or "".
func CoverImage(products []models.Product, category string) string {
	for _, p := range products {
		if p.Category == category {
			return p.Image
		}
	}
	return ""
}

// SkincareSubcategories lists the distinct skincare subcategories in the
// order they first appear.
func SkincareSubcategories(products []models.Product) []string {
	out := []string{}
	for _, p := range products {
		if p.Category == models.CategorySkincare && p.Subcategory != "" && !slices.Contains(out, p.Subcategory) {
			out = append(out, p.Subcategory)
		}
	}
	return out
}

// SkincareSubSubcategories lists the distinct skincare sub-subcategories in
// the order they first appear, restricted to subcategory when it is set.
func SkincareSubSubcategories(products []models.Product, subcategory string) []string {
	out := []string{}
	for _, p := range products {
		if p.Category != models.CategorySkincare || p.SubSubcategory == "" {
			continue
		}
		if subcategory != "" && p.Subcategory != subcategory {
			continue
		}
		if !slices.Contains(out, p.SubSubcategory) {
			out = append(out, p.SubSubcategory)
		}
	}
	return out
}
