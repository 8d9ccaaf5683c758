// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"dianabeauty/internal/models"
)

// LocalOverridesKey is the fixed storage key of the client-local blob.
const LocalOverridesKey = "diana-product-overrides"

// KV is a minimal string key-value store.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// LocalOverrideStore keeps a product data blob owned by a single client
// under LocalOverridesKey. It is never merged back into the server-side
// product data file.
type LocalOverrideStore struct {
	kv KV
}

// NewLocalOverrideStore returns a store backed by kv.
func NewLocalOverrideStore(kv KV) *LocalOverrideStore {
	return &LocalOverrideStore{kv: kv}
}

// Load returns the stored blob, or nil when nothing is stored or the stored
// value does not decode. Only backend failures are returned as errors.
func (s *LocalOverrideStore) Load(ctx context.Context) (*models.ProductData, error) {
	raw, ok, err := s.kv.Get(ctx, LocalOverridesKey)
	if err != nil {
		return nil, fmt.Errorf("load local overrides: %w", err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	data, err := DecodeProductData(raw)
	if err != nil {
		slog.Warn("ignoring unreadable local overrides", "error", err)
		return nil, nil
	}
	return data, nil
}

// Save replaces the stored blob with data.
func (s *LocalOverrideStore) Save(ctx context.Context, data *models.ProductData) error {
	if data == nil {
		return fmt.Errorf("save local overrides: no data: %w", ErrInvalid)
	}
	data.Normalize()
	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode local overrides: %w", err)
	}
	if err := s.kv.Set(ctx, LocalOverridesKey, string(body)); err != nil {
		return fmt.Errorf("save local overrides: %w", err)
	}
	return nil
}

// MemoryKV is an in-process KV, used when no Valkey server is configured.
type MemoryKV struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemoryKV returns an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{m: make(map[string]string)}
}

func (k *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	v, ok := k.m[key]
	return v, ok, nil
}

func (k *MemoryKV) Set(_ context.Context, key, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.m[key] = value
	return nil
}
