package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for product and category fields.
const (
	maxProductNameLen   = 200
	maxDescriptionLen   = 5_000
	maxCategoryLabelLen = 100
	maxUploadFiles      = 20
)

// validateProductName checks a product name that is being set.
func validateProductName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxProductNameLen {
		return "Name is too long (max 200 characters)."
	}
	return ""
}

// validateDescription checks an optional description.
func validateDescription(desc string) string {
	if utf8.RuneCountInString(desc) > maxDescriptionLen {
		return "Description is too long (max 5,000 characters)."
	}
	return ""
}

// validateCategory checks category label and description inputs. An empty
// label is reported by the store, which knows whether it is required.
func validateCategory(label, desc string) string {
	if utf8.RuneCountInString(label) > maxCategoryLabelLen {
		return "Label is too long (max 100 characters)."
	}
	return validateDescription(desc)
}
