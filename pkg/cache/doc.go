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

/*
Package cache persists genuine upstream responses so the gateway can serve
them while they are fresh and fall back to them, at any age, when every
upstream candidate fails.

A Cache wraps one Store backend and applies the freshness policy:

	store, err := cache.NewFileStore("/var/cache/gateway")
	if err != nil {
		return err
	}
	c := cache.New(store)
	defer c.Close()

	key := cache.Key("orders.list", map[string]string{"start_date": "2025-01-01"}, "")
	if data, ok := c.Get(ctx, key, 5*time.Minute); ok {
		// fresh hit
	}

Backends:
  - FileStore: one JSON document per key, atomic temp-file rename writes
  - SQLiteStore: single table keyed by cache key
  - RedisStore: one string value per key, SCAN-based prefix deletion

Storage failures and corrupt entries are reported as misses. Concurrent
writes to the same key are last-write-wins.
*/
package cache
