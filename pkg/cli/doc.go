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

// Package cli implements gatewayctl, the operator tool for the restaurant gateway.
//
// # Commands
//
// serve - Run the gateway HTTP server:
//
//	gatewayctl serve [--upstream-url URL] [--cache-backend file|sqlite|redis]
//
// operations - List the operation registry:
//
//	gatewayctl operations [--detail] [--format json|yaml|table]
//
// resolve - Print the upstream candidates of an operation without sending anything:
//
//	gatewayctl resolve orders.get --param id=42
//
// probe - Run one operation through the cascade, cache and synthetic fallback:
//
//	gatewayctl probe orders.list --token $GATEWAY_TOKEN --param start_date=2025-01-01
//
// synth - Print synthetic data for a read operation:
//
//	gatewayctl --seed 42 synth orders.list --format yaml
//
// cache - Inspect or invalidate cached responses:
//
//	gatewayctl cache get reservations.list --user 17
//	gatewayctl cache invalidate orders.
//
// config - Print the effective configuration.
//
// # Global Flags
//
//	--log-level         Log level (debug, info, warn, error)
//	--env-file          Load a .env file (repeatable; ./.env is loaded when present)
//	--upstream-url      Upstream base address (UPSTREAM_BASE_URL)
//	--api-prefix        Upstream API prefix (UPSTREAM_API_PREFIX)
//	--cache-backend     Cache backend (CACHE_BACKEND)
//	--seed              Synthetic data seed (SYNTH_SEED)
//
// Commands that print data accept --format and --output (-o); output goes to
// stdout unless a file is named.
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/restaurant-gateway/pkg/version.version=1.0.0'"
package cli
