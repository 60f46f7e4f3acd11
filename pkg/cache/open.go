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
	"fmt"
	"log/slog"
	"strings"
)

// Supported backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config selects and configures a backend.
type Config struct {
	Backend    string `json:"backend" yaml:"backend"`
	Dir        string `json:"dir,omitempty" yaml:"dir,omitempty"`
	SQLitePath string `json:"sqlitePath,omitempty" yaml:"sqlitePath,omitempty"`
	RedisAddr  string `json:"redisAddr,omitempty" yaml:"redisAddr,omitempty"`
	RedisDB    int    `json:"redisDB,omitempty" yaml:"redisDB,omitempty"`
}

// Open creates the configured store and wraps it in a Cache.
func Open(ctx context.Context, cfg Config, opts ...Option) (*Cache, error) {
	var (
		store Store
		err   error
	)

	switch strings.ToLower(cfg.Backend) {
	case "", BackendFile:
		store, err = NewFileStore(cfg.Dir)
	case BackendSQLite:
		store, err = NewSQLiteStore(cfg.SQLitePath)
	case BackendRedis:
		store, err = NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisDB)
	default:
		return nil, fmt.Errorf("unsupported cache backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}

	slog.Debug("cache store opened", "backend", cfg.Backend)
	return New(store, opts...), nil
}
