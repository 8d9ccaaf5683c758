// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package inventory

import "strings"

// SkincareSubcategory is a second-level skincare folder and its children.
type SkincareSubcategory struct {
	Name     string
	Children []string
}

// DefaultSkincareSubcategory is assigned to images stored less than two
// folders below images/skincare.
const DefaultSkincareSubcategory = "cremes hydratantes"

// SkincareTree is the folder layout created at startup.
var SkincareTree = []SkincareSubcategory{
	{Name: "cremes hydratantes", Children: []string{"Crèmes visage", "Gels hydratants", "Huiles visage"}},
	{Name: "masques visage", Children: []string{"Masques de nuit", "Masques exfoliants", "Masques tissu"}},
	{Name: "nettoyants", Children: []string{
		"Baumes démaquillants",
		"Eaux micellaires",
		"Huiles nettoyantes",
		"Lingettes nettoyantes & Démaquillants",
		"Nettoyants à base d'eau",
	}},
	{Name: "traitements", Children: []string{"Ampoules", "Essences", "Sérums", "Traitements des boutons"}},
}

// ClassifySkincare derives the subcategory and sub-subcategory of a
// relative path of the form images/skincare/{sub}/{subSub}/file. A file
// directly in a subcategory folder has no sub-subcategory, and a file
// directly under images/skincare gets DefaultSkincareSubcategory.
func ClassifySkincare(relPath string) (subcategory, subSubcategory string) {
	parts := strings.Split(relPath, "/")
	switch {
	case len(parts) >= 5:
		return parts[2], parts[3]
	case len(parts) == 4:
		return parts[2], ""
	default:
		return DefaultSkincareSubcategory, ""
	}
}
