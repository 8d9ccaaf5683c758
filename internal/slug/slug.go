// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug turns product names into ASCII identifiers suitable for ids
// and directory names.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength caps the length of a generated slug.
const MaxLength = 48

// Fallback is used when a name has no ASCII letters or digits left.
const Fallback = "produit"

// nonAlphanumeric matches any run of characters outside [a-z0-9].
var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a slug from s: accents are folded by NFD decomposition
// and removal of combining marks, the result is lowercased, every run of
// characters outside [a-z0-9] becomes a single hyphen, leading and trailing
// hyphens are trimmed and the result is cut to MaxLength bytes.
// Example: "Crème Visage: Éclat" → "creme-visage-eclat"
func Generate(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn))), s)
	if err != nil {
		folded = s
	}
	result := strings.ToLower(folded)
	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	if len(result) > MaxLength {
		result = result[:MaxLength]
	}
	return result
}

// OrFallback returns Generate(s), or Fallback when that is empty.
func OrFallback(s string) string {
	if out := Generate(s); out != "" {
		return out
	}
	return Fallback
}

// Valid reports whether s is already a non-empty slug.
func Valid(s string) bool {
	return s != "" && Generate(s) == s
}
