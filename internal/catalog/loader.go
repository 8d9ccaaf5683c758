// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"dianabeauty/internal/inventory"
	"dianabeauty/internal/store"
)

// Loader reads every input of an assembly from disk and the KV backend.
type Loader struct {
	scanner   *inventory.Scanner
	overrides *store.OverrideStore
	data      *store.ProductDataStore
	local     *store.LocalOverrideStore
}

// NewLoader creates a Loader. local may be nil.
func NewLoader(scanner *inventory.Scanner, overrides *store.OverrideStore, data *store.ProductDataStore, local *store.LocalOverrideStore) *Loader {
	return &Loader{scanner: scanner, overrides: overrides, data: data, local: local}
}

// Load scans the inventory and reads the stores. A folder that fails to
// scan is logged and left out; store failures abort the load, except for
// the browser-local store which is treated as absent.
func (l *Loader) Load(ctx context.Context) (Context, error) {
	inv, err := l.scanner.ScanAll()
	if err != nil {
		slog.Warn("inventory scan incomplete", "error", err)
	}

	overrides, err := l.overrides.ReadAll()
	if err != nil {
		return Context{}, fmt.Errorf("load overrides: %w", err)
	}
	data, err := l.data.Load()
	if err != nil {
		return Context{}, fmt.Errorf("load product data: %w", err)
	}

	c := Context{
		Base:      BaseProducts(inv),
		Overrides: overrides,
		Data:      data,
	}
	if l.local != nil {
		local, err := l.local.Load(ctx)
		if err != nil {
			slog.Warn("browser-local overrides unavailable", "error", err)
		}
		c.Local = local
	}
	return c, nil
}
