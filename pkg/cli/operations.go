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

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/restaurant-gateway/pkg/gateway"
)

type operationRow struct {
	Name     string `json:"name" yaml:"name"`
	Pattern  string `json:"pattern" yaml:"pattern"`
	Kind     string `json:"kind" yaml:"kind"`
	Auth     bool   `json:"auth" yaml:"auth"`
	Scoped   bool   `json:"scoped" yaml:"scoped"`
	TTL      string `json:"ttl" yaml:"ttl"`
	Upstream string `json:"upstream" yaml:"upstream"`
}

func operationsCmd() *cli.Command {
	return &cli.Command{
		Name:  "operations",
		Usage: "List the operation registry",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "detail",
				Usage: "Print the full operation definitions",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ops := gateway.Operations()
			if cmd.Bool("detail") {
				return write(ctx, cmd, ops)
			}
			return write(ctx, cmd, operationRows(ops))
		},
	}
}

func operationRows(ops []gateway.Operation) []operationRow {
	rows := make([]operationRow, 0, len(ops))
	for _, op := range ops {
		ttl := "-"
		if op.TTL > 0 {
			ttl = op.TTL.String()
		}
		rows = append(rows, operationRow{
			Name:     op.Name,
			Pattern:  op.Pattern,
			Kind:     string(op.Kind),
			Auth:     op.RequiresAuth,
			Scoped:   op.IdentityScoped,
			TTL:      ttl,
			Upstream: op.Method + " " + op.Route.Path,
		})
	}
	return rows
}
