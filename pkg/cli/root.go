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
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/restaurant-gateway/pkg/logging"
	"github.com/NVIDIA/restaurant-gateway/pkg/version"
)

const name = "gatewayctl"

// Execute runs the CLI with os.Args and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	build := version.Build()
	return &cli.Command{
		Name:                  name,
		Usage:                 "Operate the restaurant gateway",
		Version:               fmt.Sprintf("%s (commit %s, built %s)", build.Version, build.Commit, build.Date),
		EnableShellCompletion: true,
		Description: `Operator tooling for the resilient restaurant gateway:

  serve       - run the gateway HTTP server
  operations  - list the operation registry
  resolve     - print the upstream candidates an operation would try
  probe       - run one operation through the full fallback policy
  synth       - generate synthetic data for an operation
  cache       - inspect or invalidate cached responses

Settings are read from the environment (and ./.env) and may be overridden with flags.`,
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars(logging.EnvLogLevel),
				Value:   "warn",
			},
			&cli.StringSliceFlag{
				Name:  "env-file",
				Usage: "Load settings from the named .env file (can be repeated)",
			},
		}, settingsFlags()...),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, build.Version, cmd.String("log-level"))
			slog.Debug("starting",
				"name", name,
				"version", build.Version,
				"commit", build.Commit,
				"date", build.Date)
			return ctx, nil
		},
		Commands: []*cli.Command{
			serveCmd(),
			operationsCmd(),
			resolveCmd(),
			probeCmd(),
			synthCmd(),
			cacheCmd(),
			configCmd(),
		},
	}
}
