// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the catalog data types shared by the stores, the
// catalog assembler and the HTTP handlers.
package models

// Default category identifiers. They always exist and cannot be deleted.
const (
	CategoryHomme    = "homme"
	CategoryFemme    = "femme"
	CategoryMixte    = "mixte"
	CategorySkincare = "skincare"
)

// Product is the assembled, read-only view of a catalog entry. It is either
// derived from an inventory image (IsCustom false) or mapped from an
// admin-authored CustomProduct (IsCustom true).
type Product struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Price          float64  `json:"price"`
	Description    string   `json:"description"`
	Image          string   `json:"image"`
	Gallery        []string `json:"gallery,omitempty"`
	Category       string   `json:"category"`
	Subcategory    string   `json:"subcategory,omitempty"`
	SubSubcategory string   `json:"subSubcategory,omitempty"`
	IsCustom       bool     `json:"isCustom,omitempty"`
	SourceImage    string   `json:"sourceImage,omitempty"`
}
