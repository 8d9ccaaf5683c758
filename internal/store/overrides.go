// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"dianabeauty/internal/fsutil"
	"dianabeauty/internal/models"
)

// OverrideStore persists override records in a generated source file.
type OverrideStore struct {
	path string
}

// NewOverrideStore returns a store backed by the file at path.
func NewOverrideStore(path string) *OverrideStore {
	return &OverrideStore{path: path}
}

// Path returns the backing file path.
func (s *OverrideStore) Path() string {
	return s.path
}

// ReadAll parses the current records. A missing file reads as an empty set.
// Malformed entries are skipped with a warning.
func (s *OverrideStore) ReadAll() (*models.OverrideSet, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return models.NewOverrideSet(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read overrides %s: %w", s.path, err)
	}

	set, skipped, err := DecodeOverrides(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse overrides %s: %w: %w", s.path, ErrUnreadable, err)
	}
	if skipped > 0 {
		slog.Warn("skipped malformed override entries", "path", s.path, "count", skipped)
	}
	return set, nil
}

// Upsert applies the non-nil fields of patch to the record of every id and
// rewrites the whole file. Either every id is updated or the file is left
// unchanged.
func (s *OverrideStore) Upsert(ids []string, patch models.OverrideRecord) (*models.OverrideSet, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("upsert overrides: no product id: %w", ErrInvalid)
	}
	for _, id := range ids {
		if id == "" {
			return nil, fmt.Errorf("upsert overrides: empty product id: %w", ErrInvalid)
		}
	}
	if patch.Price != nil && !validPrice(*patch.Price) {
		return nil, fmt.Errorf("upsert overrides: price must be a non-negative number: %w", ErrInvalid)
	}

	unlock := fsutil.LockPath(s.path)
	defer unlock()

	set, err := s.ReadAll()
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		current, _ := set.Get(id)
		next := current.Apply(patch)
		if next.IsEmpty() {
			continue
		}
		set.Set(id, next)
	}

	if err := fsutil.WriteFileAtomic(s.path, []byte(EncodeOverrides(set)), 0o644); err != nil {
		return nil, fmt.Errorf("write overrides: %w", err)
	}
	return set, nil
}
