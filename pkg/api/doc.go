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

// Package api wires the gateway into the HTTP server and exposes one route
// per registered operation.
//
// Usage:
//
//	import (
//	    "log"
//	    "github.com/NVIDIA/restaurant-gateway/pkg/api"
//	)
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Architecture
//
// Build assembles the cache, endpoint resolver, forwarder and synthetic
// generator into a gateway.Gateway from a config.Config. Routes turns the
// operation registry into ServeMux handlers. pkg/server handles lifecycle,
// middleware, health and readiness, and metrics.
//
// # Response Headers
//
// Every operation response carries:
//   - X-Gateway-Degradation: genuine, stale-cache or synthetic
//   - X-Gateway-Cache: HIT when served from cache, MISS otherwise
//   - X-Gateway-Attempts: number of upstream candidates tried
//
// Degraded responses are also marked Cache-Control: no-store so downstream
// caches never keep them.
//
// # Status Codes
//
// Reads and writes answer 200 even when the upstream is down. Only
// malformed input (400) and missing or rejected credentials (401) are
// reported as failures.
package api
