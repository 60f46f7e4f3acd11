// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/NVIDIA/restaurant-gateway/pkg/errors"
)

// Cache applies TTL freshness on top of a Store.
type Cache struct {
	store Store
	now   func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a Cache over the given store.
func New(store Store, opts ...Option) *Cache {
	c := &Cache{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the data stored under key when it is not older than ttl.
func (c *Cache) Get(ctx context.Context, key string, ttl time.Duration) ([]byte, bool) {
	entry := c.load(ctx, key)
	if entry == nil {
		lookups.WithLabelValues(resultMiss).Inc()
		return nil, false
	}
	if entry.Expired(c.now(), ttl) {
		lookups.WithLabelValues(resultExpired).Inc()
		return nil, false
	}
	lookups.WithLabelValues(resultHit).Inc()
	return entry.Data, true
}

// GetStale returns the data stored under key regardless of its age.
func (c *Cache) GetStale(ctx context.Context, key string) ([]byte, bool) {
	entry := c.load(ctx, key)
	if entry == nil {
		lookups.WithLabelValues(resultMiss).Inc()
		return nil, false
	}
	lookups.WithLabelValues(resultStale).Inc()
	return entry.Data, true
}

// Lookup returns the raw entry for inspection.
func (c *Cache) Lookup(ctx context.Context, key string) (*Entry, bool) {
	entry := c.load(ctx, key)
	return entry, entry != nil
}

// Set stores data under key, replacing any previous entry.
func (c *Cache) Set(ctx context.Context, key string, data []byte) error {
	if !json.Valid(data) {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "cache data is not valid JSON", map[string]any{
			"key": key,
		})
	}

	entry := &Entry{
		Key:       key,
		Data:      json.RawMessage(data),
		Timestamp: c.now().UTC(),
	}
	if err := c.store.Save(ctx, entry); err != nil {
		writes.WithLabelValues(resultError).Inc()
		return errors.Wrap(errors.ErrCodeInternal, "failed to save cache entry", err)
	}
	writes.WithLabelValues(resultOK).Inc()
	return nil
}

// Invalidate removes the entry stored under key.
func (c *Cache) Invalidate(ctx context.Context, key string) error {
	if err := c.store.Delete(ctx, key); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to delete cache entry", err)
	}
	invalidations.Inc()
	return nil
}

// InvalidatePrefix removes every entry whose key starts with prefix.
func (c *Cache) InvalidatePrefix(ctx context.Context, prefix string) error {
	if prefix == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "invalidation prefix is required")
	}
	if err := c.store.DeletePrefix(ctx, prefix); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to delete cache entries by prefix", err)
	}
	invalidations.Inc()
	return nil
}

// Close releases the underlying store.
func (c *Cache) Close() error {
	return c.store.Close()
}

func (c *Cache) load(ctx context.Context, key string) *Entry {
	entry, err := c.store.Load(ctx, key)
	if err != nil {
		lookups.WithLabelValues(resultError).Inc()
		slog.Warn("cache entry unreadable, treating as miss", "key", key, "error", err)
		return nil
	}
	return entry
}
