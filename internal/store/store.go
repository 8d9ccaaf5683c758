// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store implements the file-backed catalog stores: the override
// store (sparse name/price/description patches keyed by product id), the
// product data store (a JSON blob between sentinel markers inside a source
// file) and the browser-local override store (a JSON value in a key-value
// backend).
//
// None of the stores coordinate with other processes. Within one process,
// every read-modify-write cycle holds a lock keyed by the file path.
package store

import "errors"

var (
	// ErrNotFound is returned when a product or category id is unknown.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when creating a record whose id already exists.
	ErrDuplicate = errors.New("already exists")

	// ErrInvalid is returned for malformed input.
	ErrInvalid = errors.New("invalid input")

	// ErrCategoryProtected is returned when deleting a default category.
	ErrCategoryProtected = errors.New("default category cannot be deleted")

	// ErrCategoryInUse is returned when deleting a category still referenced
	// by a custom product.
	ErrCategoryInUse = errors.New("category is used by a product")

	// ErrNoCoverImage is returned when a custom product mutation would leave
	// the product without a cover image.
	ErrNoCoverImage = errors.New("product must keep at least one image")

	// ErrUnreadable is returned when a store file exists but its structure
	// cannot be located.
	ErrUnreadable = errors.New("store file unreadable")
)
