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

/*
Package gateway runs the resilient policy behind every client-facing
operation.

Reads:

	CacheCheck -> Forwarding(i) -> Success | NextCandidate
	           -> CacheFallback (stale) -> SyntheticFallback -> Respond

A fresh cache entry answers without touching the network. Candidates are
tried strictly in order by Cascade; the first accepted response is
normalized, written through to the cache and returned. A 401 from any
candidate stops the cascade and is reported to the caller as UNAUTHORIZED
with no fallback. When every candidate fails, any cached entry is served
regardless of age, and when there is none the Synthetic generator fills in.
Synthetic data is never cached.

Mutations use the same cascade. Whatever the upstream outcome (except 401),
the affected cache prefixes are invalidated and the caller receives

	{"success": true, "backend_success": <bool>, "<resource>": {...}}

where the resource is the normalized upstream body or a local echo of the
intended change.

Every Result carries its degradation Level (genuine, stale-cache, synthetic)
so the HTTP layer can expose it without altering the payload shape.
*/
package gateway
