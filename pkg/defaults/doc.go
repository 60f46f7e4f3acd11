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

// Package defaults provides centralized configuration constants for the gateway.
//
// This package defines timeout values, cache lifetimes, and other configuration
// defaults used across the codebase. Centralizing these values ensures consistency
// and makes tuning easier.
//
// # Categories
//
//   - Upstream timeouts: per-attempt bounds for calls to the backend service
//   - Cascade budget: the total time one gateway operation may spend forwarding
//   - Cache TTLs: freshness windows for transactional and catalog data
//   - Server timeouts: for HTTP server configuration
//   - HTTP client timeouts: for the outbound transport
//
// # Usage
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.CascadeBudget)
//	defer cancel()
//
// # Guidelines
//
//   - Upstream attempts: 5s for critical writes, 8s for reads, 15s ceiling
//   - Cascade budget must fit inside the server write timeout
//   - Transactional lists: 5m TTL; catalog data: 1h TTL
package defaults
