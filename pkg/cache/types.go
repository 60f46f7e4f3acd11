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
	"net/url"
	"strings"
	"time"
)

// Entry is one persisted response.
type Entry struct {
	Key       string          `json:"key" yaml:"key"`
	Data      json.RawMessage `json:"data" yaml:"-"`
	Timestamp time.Time       `json:"timestamp" yaml:"timestamp"`
}

// Age returns how old the entry is relative to now.
func (e *Entry) Age(now time.Time) time.Duration {
	return now.Sub(e.Timestamp)
}

// Expired reports whether the entry is older than ttl.
func (e *Entry) Expired(now time.Time, ttl time.Duration) bool {
	return e.Age(now) > ttl
}

// Store is a durable cache backend. Load returns (nil, nil) when the key is
// absent. Implementations must be safe for concurrent use.
type Store interface {
	Load(ctx context.Context, key string) (*Entry, error)
	Save(ctx context.Context, entry *Entry) error
	Delete(ctx context.Context, key string) error
	DeletePrefix(ctx context.Context, prefix string) error
	Close() error
}

const (
	keySeparator = "|"
	anonymous    = "-"
)

// Key builds the canonical cache key for an operation. Parameters are sorted
// by name so that equivalent filters always map to the same key. The identity
// segment is "-" for resources that are not scoped to a caller.
func Key(operation string, params map[string]string, identity string) string {
	values := url.Values{}
	for k, v := range params {
		if v == "" {
			continue
		}
		values.Set(k, v)
	}

	if identity == "" {
		identity = anonymous
	}

	return strings.Join([]string{operation, identity, values.Encode()}, keySeparator)
}

// Operation returns the operation segment of a key built by Key.
func Operation(key string) string {
	op, _, _ := strings.Cut(key, keySeparator)
	return op
}
