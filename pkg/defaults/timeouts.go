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

package defaults

import "time"

// Upstream timeouts for a single forwarded attempt.
const (
	// UpstreamMinTimeout is the lower bound applied to any per-attempt timeout.
	UpstreamMinTimeout = 5 * time.Second

	// UpstreamMaxTimeout is the upper bound applied to any per-attempt timeout.
	UpstreamMaxTimeout = 15 * time.Second

	// UpstreamReadTimeout is the per-attempt timeout for read operations.
	UpstreamReadTimeout = 8 * time.Second

	// UpstreamWriteTimeout is the per-attempt timeout for mutating operations.
	UpstreamWriteTimeout = 10 * time.Second

	// UpstreamCriticalTimeout is used for payment updates where the UI is blocked.
	UpstreamCriticalTimeout = 5 * time.Second

	// UpstreamMaxResponseBytes bounds how much of an upstream body is read.
	UpstreamMaxResponseBytes = 8 << 20
)

// Gateway handler budgets.
const (
	// CascadeBudget is the total time a gateway operation may spend trying
	// candidates before falling back to cache or synthetic data.
	CascadeBudget = 40 * time.Second

	// FallbackTimeout bounds cache lookups performed after the cascade budget
	// has been spent.
	FallbackTimeout = 2 * time.Second
)

// Cache lifetimes.
const (
	// TransactionalCacheTTL applies to orders, reservations, users and tables.
	TransactionalCacheTTL = 5 * time.Minute

	// CatalogCacheTTL applies to slow-changing menu and category data.
	CatalogCacheTTL = 1 * time.Hour
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	// Must exceed CascadeBudget so degraded responses can still be written.
	ServerWriteTimeout = 60 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// HTTP client timeouts for outbound requests.
const (
	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 10 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second

	// HTTPExpectContinueTimeout is the timeout for Expect: 100-continue.
	HTTPExpectContinueTimeout = 1 * time.Second
)

// CLI timeouts for command-line operations.
const (
	// CLIProbeTimeout bounds a single `gatewayctl probe` run.
	CLIProbeTimeout = 1 * time.Minute
)
