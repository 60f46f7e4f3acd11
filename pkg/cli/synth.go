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

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/restaurant-gateway/pkg/synth"
)

func synthCmd() *cli.Command {
	return &cli.Command{
		Name:      "synth",
		Usage:     "Generate synthetic data for a read operation",
		ArgsUsage: "<operation>",
		Description: `Print the synthetic records the gateway would serve for a read operation when
the upstream and the cache are both unavailable. Filters passed with --param
seed the generator the same way request filters do; --seed makes the output
reproducible.

  gatewayctl synth orders.list --param status=paid --seed 42 --format yaml`,
		Flags: []cli.Flag{
			paramFlag(),
			&cli.StringFlag{
				Name:  "user",
				Usage: "Caller user id used to scope generated records",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			op, err := operationArg(cmd)
			if err != nil {
				return err
			}
			if !op.IsRead() || op.Synth == "" {
				return fmt.Errorf("operation %s has no synthetic fallback", op.Name)
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			path, query, err := parseParams(op, cmd.StringSlice("param"))
			if err != nil {
				return err
			}
			seeds := query
			for k, v := range path {
				seeds[k] = v
			}
			if u := cmd.String("user"); u != "" && op.IdentityScoped {
				switch op.Synth {
				case synth.KindWaiterOrders:
					seeds[synth.ParamWaiterID] = u
				case synth.KindReservations:
					seeds[synth.ParamUserID] = u
				}
			}

			records, err := synth.New(cfg.SynthSeed).Generate(op.Synth, seeds)
			if err != nil {
				return err
			}
			return write(ctx, cmd, records)
		},
	}
}
