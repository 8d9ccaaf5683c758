// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// kvKeyPrefix namespaces persistent client values.
const kvKeyPrefix = "kv:"

// KV is a persistent string store on Valkey. Values never expire.
type KV struct {
	client *redis.Client
}

// NewKV creates a KV backed by the given Valkey client.
func NewKV(client *redis.Client) *KV {
	return &KV{client: client}
}

// Get returns the value stored under key and whether it exists.
func (kv *KV) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := kv.client.Get(ctx, kvKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("kv get %s: %w", key, err)
	}
	return val, true, nil
}

// Set stores value under key without expiry.
func (kv *KV) Set(ctx context.Context, key, value string) error {
	if err := kv.client.Set(ctx, kvKeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("kv set %s: %w", key, err)
	}
	return nil
}
