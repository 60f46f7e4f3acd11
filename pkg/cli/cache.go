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

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/restaurant-gateway/pkg/cache"
	"github.com/NVIDIA/restaurant-gateway/pkg/domain"
	"github.com/NVIDIA/restaurant-gateway/pkg/gateway"
)

// cacheEntryView is the printable form of a cache entry.
type cacheEntryView struct {
	Key       string    `json:"key" yaml:"key"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Age       string    `json:"age" yaml:"age"`
	Fresh     bool      `json:"fresh" yaml:"fresh"`
	Data      any       `json:"data" yaml:"data"`
}

func cacheCmd() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect or invalidate cached responses",
		Commands: []*cli.Command{
			cacheGetCmd(),
			cacheInvalidateCmd(),
		},
	}
}

func cacheGetCmd() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Print the cached entry of a read operation",
		ArgsUsage: "<operation>",
		Description: `Compute the cache key for an operation and its parameters and print the stored
entry with its age. Identity scoped operations are keyed by the caller, so
pass the same --token, --user and --role the request carried.

  gatewayctl cache get reservations.list --token $TOKEN --user 17 --param date=2025-03-01`,
		Flags: append([]cli.Flag{
			paramFlag(),
			outputFlag(),
			formatFlag(),
		}, identityFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			op, err := operationArg(cmd)
			if err != nil {
				return err
			}
			if !op.IsRead() {
				return fmt.Errorf("operation %s is not cached", op.Name)
			}
			path, query, err := parseParams(op, cmd.StringSlice("param"))
			if err != nil {
				return err
			}
			key, err := gateway.CacheKey(op, gateway.Call{
				PathParams: path,
				Query:      query,
				Identity: domain.Identity{
					BearerToken: cmd.String("token"),
					UserID:      cmd.String("user"),
					Role:        cmd.String("role"),
				},
			})
			if err != nil {
				return err
			}

			c, err := openCache(ctx, cmd)
			if err != nil {
				return err
			}
			defer closeCache(c)

			entry, ok := c.Lookup(ctx, key)
			if !ok {
				return fmt.Errorf("no cache entry for key %q", key)
			}

			view := cacheEntryView{
				Key:       entry.Key,
				Timestamp: entry.Timestamp,
				Age:       formatAge(entry.Age(time.Now())),
				Fresh:     !entry.Expired(time.Now(), op.TTL),
			}
			if err := json.Unmarshal(entry.Data, &view.Data); err != nil {
				return fmt.Errorf("cache entry %q is not valid JSON: %w", key, err)
			}
			return write(ctx, cmd, view)
		},
	}
}

func cacheInvalidateCmd() *cli.Command {
	return &cli.Command{
		Name:      "invalidate",
		Usage:     "Delete cached entries by key prefix",
		ArgsUsage: "<prefix>",
		Description: `Delete every entry whose key starts with the prefix. Keys start with the
operation name, so "orders." clears all order reads and "menu.list" clears the menu.

  gatewayctl cache invalidate orders.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			prefix := strings.TrimSpace(cmd.Args().First())
			if prefix == "" {
				return fmt.Errorf("prefix is required")
			}

			c, err := openCache(ctx, cmd)
			if err != nil {
				return err
			}
			defer closeCache(c)

			if err := c.InvalidatePrefix(ctx, prefix); err != nil {
				return err
			}
			slog.Info("cache entries invalidated", "prefix", prefix)
			return nil
		},
	}
}

func openCache(ctx context.Context, cmd *cli.Command) (*cache.Cache, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return cache.Open(ctx, cfg.Cache)
}

func closeCache(c *cache.Cache) {
	if err := c.Close(); err != nil {
		slog.Warn("failed to close cache", "error", err)
	}
}
