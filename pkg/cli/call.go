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

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/restaurant-gateway/pkg/api"
	"github.com/NVIDIA/restaurant-gateway/pkg/domain"
	"github.com/NVIDIA/restaurant-gateway/pkg/endpoint"
	"github.com/NVIDIA/restaurant-gateway/pkg/gateway"
	"github.com/NVIDIA/restaurant-gateway/pkg/serializer"
)

const envToken = "GATEWAY_TOKEN"

func identityFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "token",
			Usage:   "Bearer token forwarded to the upstream",
			Sources: cli.EnvVars(envToken),
		},
		&cli.StringFlag{
			Name:  "user",
			Usage: "Caller user id (X-User-ID)",
		},
		&cli.StringFlag{
			Name:  "role",
			Usage: "Caller role (X-User-Role)",
		},
	}
}

// buildCall assembles a gateway call from positional and flag input.
func buildCall(cmd *cli.Command, op gateway.Operation) (gateway.Call, error) {
	path, query, err := parseParams(op, cmd.StringSlice("param"))
	if err != nil {
		return gateway.Call{}, err
	}

	call := gateway.Call{
		PathParams: path,
		Query:      query,
		Identity: domain.Identity{
			BearerToken: cmd.String("token"),
			UserID:      cmd.String("user"),
			Role:        cmd.String("role"),
		},
		RequestID: uuid.NewString(),
	}

	if file := cmd.String("body"); file != "" {
		if op.IsRead() {
			return call, fmt.Errorf("operation %s does not take a body", op.Name)
		}
		b, err := serializer.JSONFromFile(file)
		if err != nil {
			return call, fmt.Errorf("failed to load body from %q: %w", file, err)
		}
		call.Body = b
	}
	return call, nil
}

func resolveCmd() *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Usage:     "Print the upstream candidates an operation would try",
		ArgsUsage: "<operation>",
		Description: `Resolve the ordered candidate list for an operation, after the duplicated
prefix correction. No request is sent.

  gatewayctl resolve orders.get --param id=42`,
		Flags: []cli.Flag{
			paramFlag(),
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			op, err := operationArg(cmd)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			call, err := buildCall(cmd, op)
			if err != nil {
				return err
			}

			r, err := endpoint.NewResolver(cfg.Upstream.BaseURL, cfg.Upstream.APIPrefix)
			if err != nil {
				return err
			}
			candidates, err := gateway.Candidates(r, op, call)
			if err != nil {
				return err
			}
			return write(ctx, cmd, map[string]any{
				"operation":  op.Name,
				"base":       r.Base(),
				"candidates": candidates,
			})
		},
	}
}

func probeCmd() *cli.Command {
	return &cli.Command{
		Name:      "probe",
		Usage:     "Run one operation through the full fallback policy",
		ArgsUsage: "<operation>",
		Description: `Execute an operation once, exactly as the HTTP surface would, and print the
degradation level, every attempt and the resulting data.

  gatewayctl probe orders.list --token $TOKEN --param start_date=2025-01-01
  gatewayctl probe orders.create --body order.yaml`,
		Flags: append([]cli.Flag{
			paramFlag(),
			&cli.StringFlag{
				Name:    "body",
				Aliases: []string{"b"},
				Usage:   "JSON or YAML file with the request body of a mutation",
			},
			&cli.BoolFlag{
				Name:  "fail-degraded",
				Usage: "Exit non-zero unless the result is genuine",
			},
			outputFlag(),
			formatFlag(),
		}, identityFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			op, err := operationArg(cmd)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			call, err := buildCall(cmd, op)
			if err != nil {
				return err
			}

			app, err := api.Build(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := app.Close(); cerr != nil {
					slog.Warn("failed to close cache", "error", cerr)
				}
			}()

			res, err := app.Gateway.Execute(ctx, op, call)
			if err != nil {
				return err
			}
			if err := write(ctx, cmd, res); err != nil {
				return err
			}
			if cmd.Bool("fail-degraded") && res.Level != gateway.LevelGenuine {
				return cli.Exit(fmt.Sprintf("%s: degraded to %s", op.Name, res.Level), 2)
			}
			return nil
		},
	}
}
