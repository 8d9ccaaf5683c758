// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog assembles the product list shown by the storefront from
// the image inventory, the override store, the product data store and the
// optional browser-local store.
package catalog

import (
	"strconv"
	"strings"

	"dianabeauty/internal/inventory"
	"dianabeauty/internal/models"
)

// PlaceholderDescription is the description of an inventory product that
// has no override.
const PlaceholderDescription = "Ajoutez une description dans productOverrides.ts"

// BaseProducts derives one product per inventory image, folder by folder.
// Ids are "{category}-{position}" with 1-based positions in the sorted scan,
// so adding or removing an image shifts the ids of the images after it.
func BaseProducts(inv inventory.Inventory) []models.Product {
	var out []models.Product
	for _, f := range inventory.Folders {
		for i, rel := range inv[f.Name] {
			n := strconv.Itoa(i + 1)
			p := models.Product{
				ID:          f.Category + "-" + n,
				Name:        f.Label + " " + n,
				Description: PlaceholderDescription,
				Image:       "/" + rel,
				Category:    f.Category,
				SourceImage: strings.TrimPrefix(rel, "/"),
			}
			if f.Category == models.CategorySkincare {
				p.Subcategory, p.SubSubcategory = inventory.ClassifySkincare(rel)
				switch {
				case p.SubSubcategory != "":
					p.Name = p.SubSubcategory + " " + n
				case p.Subcategory != "":
					p.Name = p.Subcategory + " " + n
				}
			}
			out = append(out, p)
		}
	}
	return out
}

// Context carries every input of one assembly. It is built once per
// request so that tests can inject fixtures directly.
type Context struct {
	Base      []models.Product
	Overrides *models.OverrideSet
	Data      *models.ProductData
	Local     *models.ProductData // nil when no browser-local value exists
}

// Assemble returns custom products followed by inventory products. Custom
// products from the browser-local store come before those of the product
// data store. Hidden ids from both stores are removed from both lists.
// Colliding ids are not de-duplicated.
func Assemble(c Context) []models.Product {
	hidden := make(map[string]bool)
	var customs []models.CustomProduct
	if c.Local != nil {
		for _, id := range c.Local.HiddenProductIDs {
			hidden[id] = true
		}
		customs = append(customs, c.Local.CustomProducts...)
	}
	if c.Data != nil {
		for _, id := range c.Data.HiddenProductIDs {
			hidden[id] = true
		}
		customs = append(customs, c.Data.CustomProducts...)
	}

	out := make([]models.Product, 0, len(customs)+len(c.Base))
	for _, cp := range customs {
		if hidden[cp.ID] {
			continue
		}
		out = append(out, cp.ToProduct())
	}
	for _, p := range c.Base {
		if hidden[p.ID] {
			continue
		}
		out = append(out, applyOverride(p, c.Overrides))
	}
	return out
}

func applyOverride(p models.Product, set *models.OverrideSet) models.Product {
	rec, ok := set.Get(p.ID)
	if !ok {
		return p
	}
	if rec.Name != nil {
		p.Name = *rec.Name
	}
	if rec.Price != nil {
		p.Price = *rec.Price
	}
	if rec.Description != nil {
		p.Description = *rec.Description
	}
	return p
}
