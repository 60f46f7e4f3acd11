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

package api

import (
	"context"
	"log/slog"

	"github.com/NVIDIA/restaurant-gateway/pkg/config"
	"github.com/NVIDIA/restaurant-gateway/pkg/logging"
	"github.com/NVIDIA/restaurant-gateway/pkg/server"
	"github.com/NVIDIA/restaurant-gateway/pkg/version"
)

const name = "gatewayd"

// Serve loads configuration from the environment, starts the gateway and
// blocks until shutdown.
func Serve() error {
	cfg, err := config.Load()
	if err != nil {
		logging.SetDefaultStructuredLogger(name, version.Build().Version)
		slog.Error("invalid configuration", "error", err)
		return err
	}
	return Run(context.Background(), cfg)
}

// Run starts the gateway with cfg and blocks until ctx is done or a
// termination signal arrives.
func Run(ctx context.Context, cfg *config.Config) error {
	build := version.Build()
	logging.SetDefaultStructuredLoggerWithLevel(name, build.Version, cfg.LogLevel)
	slog.Info("starting",
		"name", name,
		"version", build.Version,
		"commit", build.Commit,
		"date", build.Date,
	)

	app, err := Build(ctx, cfg)
	if err != nil {
		slog.Error("failed to assemble gateway", "error", err)
		return err
	}
	defer func() {
		if cerr := app.Close(); cerr != nil {
			slog.Warn("failed to close cache", "error", cerr)
		}
	}()

	s := server.New(
		server.WithName(name),
		server.WithVersion(build.Version),
		server.WithHandler(Routes(app.Gateway)),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}
	return nil
}
