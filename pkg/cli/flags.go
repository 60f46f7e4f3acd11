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
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/restaurant-gateway/pkg/config"
	"github.com/NVIDIA/restaurant-gateway/pkg/gateway"
	"github.com/NVIDIA/restaurant-gateway/pkg/serializer"
)

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Usage:   fmt.Sprintf("Output format (supported values: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
		Value:   string(serializer.FormatJSON),
	}
}

func paramFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:    "param",
		Aliases: []string{"p"},
		Usage:   "Path or query parameter (format: key=value, can be repeated)",
	}
}

// settingsFlags mirror the gateway environment variables.
func settingsFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "upstream-url",
			Usage:   "Upstream base address",
			Sources: cli.EnvVars(config.EnvUpstreamBaseURL),
		},
		&cli.StringFlag{
			Name:    "api-prefix",
			Usage:   "Upstream API path prefix",
			Sources: cli.EnvVars(config.EnvUpstreamAPIPrefix),
		},
		&cli.BoolFlag{
			Name:    "insecure-tls",
			Usage:   "Skip TLS verification for the upstream host",
			Sources: cli.EnvVars(config.EnvUpstreamInsecureTLS),
		},
		&cli.DurationFlag{
			Name:  "upstream-timeout",
			Usage: "Per-attempt upstream timeout (overrides per-operation defaults)",
		},
		&cli.StringFlag{
			Name:    "cache-backend",
			Usage:   "Cache backend (file, sqlite, redis)",
			Sources: cli.EnvVars(config.EnvCacheBackend),
		},
		&cli.StringFlag{
			Name:    "cache-dir",
			Usage:   "Directory for the file cache",
			Sources: cli.EnvVars(config.EnvCacheDir),
		},
		&cli.StringFlag{
			Name:    "cache-sqlite-path",
			Usage:   "Database path for the sqlite cache",
			Sources: cli.EnvVars(config.EnvCacheSQLitePath),
		},
		&cli.StringFlag{
			Name:    "cache-redis-addr",
			Usage:   "Address of the redis cache",
			Sources: cli.EnvVars(config.EnvCacheRedisAddr),
		},
		&cli.IntFlag{
			Name:    "cache-redis-db",
			Usage:   "Database number of the redis cache",
			Sources: cli.EnvVars(config.EnvCacheRedisDB),
		},
		&cli.Int64Flag{
			Name:    "seed",
			Usage:   "Seed for synthetic data",
			Sources: cli.EnvVars(config.EnvSynthSeed),
		},
	}
}

func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(strings.ToLower(strings.TrimSpace(cmd.String("format"))))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q", cmd.String("format"))
	}
	return f, nil
}

// loadConfig reads the environment and env files, then applies flags that
// were set explicitly.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.StringSlice("env-file")...)
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("upstream-url") {
		cfg.Upstream.BaseURL = cmd.String("upstream-url")
	}
	if cmd.IsSet("api-prefix") {
		cfg.Upstream.APIPrefix = cmd.String("api-prefix")
	}
	if cmd.IsSet("insecure-tls") {
		cfg.Upstream.InsecureTLS = cmd.Bool("insecure-tls")
	}
	if cmd.IsSet("upstream-timeout") {
		cfg.Upstream.Timeout = cmd.Duration("upstream-timeout")
	}
	if cmd.IsSet("cache-backend") {
		cfg.Cache.Backend = strings.ToLower(cmd.String("cache-backend"))
	}
	if cmd.IsSet("cache-dir") {
		cfg.Cache.Dir = cmd.String("cache-dir")
	}
	if cmd.IsSet("cache-sqlite-path") {
		cfg.Cache.SQLitePath = cmd.String("cache-sqlite-path")
	}
	if cmd.IsSet("cache-redis-addr") {
		cfg.Cache.RedisAddr = cmd.String("cache-redis-addr")
	}
	if cmd.IsSet("cache-redis-db") {
		cfg.Cache.RedisDB = cmd.Int("cache-redis-db")
	}
	if cmd.IsSet("seed") {
		cfg.SynthSeed = cmd.Int64("seed")
	}
	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// operationArg resolves the first positional argument to a registered operation.
func operationArg(cmd *cli.Command) (gateway.Operation, error) {
	n := cmd.Args().First()
	if n == "" {
		return gateway.Operation{}, fmt.Errorf("operation name is required (one of: %s)", strings.Join(gateway.Names(), ", "))
	}
	op, ok := gateway.Lookup(n)
	if !ok {
		return gateway.Operation{}, fmt.Errorf("unknown operation: %q", n)
	}
	return op, nil
}

// parseParams splits key=value pairs into path and query parameters of op.
func parseParams(op gateway.Operation, pairs []string) (path, query map[string]string, err error) {
	path = map[string]string{}
	query = map[string]string{}

	isPath := make(map[string]bool, len(op.PathParams))
	for _, p := range op.PathParams {
		isPath[p] = true
	}

	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, nil, fmt.Errorf("invalid parameter %q: expected key=value", pair)
		}
		if isPath[k] {
			path[k] = strings.TrimSpace(v)
		} else {
			query[k] = strings.TrimSpace(v)
		}
	}
	return path, query, nil
}

// write serializes v to the configured output.
func write(ctx context.Context, cmd *cli.Command, v any) error {
	f, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	w := serializer.NewFileWriterOrStdout(f, cmd.String("output"))
	defer func() {
		_ = w.Close()
	}()

	if err := w.Serialize(ctx, v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func formatAge(d time.Duration) string {
	return d.Round(time.Second).String()
}
