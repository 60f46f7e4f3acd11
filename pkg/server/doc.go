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

// Package server provides the HTTP server shared by the gateway binaries.
//
// # Architecture
//
// API handlers are registered by ServeMux pattern and wrapped with a fixed
// middleware chain:
//
//   - Prometheus RED metrics labeled by route pattern
//   - API version negotiation via Accept: application/vnd.restaurant.gateway.v1+json
//   - Request ID tracking (X-Request-Id, UUID format)
//   - Panic recovery
//   - Token bucket rate limiting (golang.org/x/time/rate)
//   - Request body size limits
//   - Debug request logging
//
// CORS headers are applied in front of the mux when CORS_ALLOWED_ORIGINS is
// set, so preflight requests are answered before routing.
//
// # Usage
//
//	s := server.New(
//	    server.WithName("gatewayd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "GET /api/orders": listOrders,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// # System Endpoints
//
//	GET /        route listing
//	GET /health  liveness, always 200
//	GET /ready   readiness, 503 while starting or shutting down
//	GET /metrics Prometheus exposition
//
// # Error Handling
//
// All errors return the same JSON envelope:
//
//	{
//	  "code": "INVALID_REQUEST",
//	  "message": "start_date must be YYYY-MM-DD",
//	  "details": {"field": "start_date"},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2025-01-31T12:00:00Z",
//	  "retryable": false
//	}
//
// Codes map to status through HTTPStatusFromCode: INVALID_REQUEST 400,
// UNAUTHORIZED 401, NOT_FOUND 404, METHOD_NOT_ALLOWED 405,
// RATE_LIMIT_EXCEEDED 429, SERVICE_UNAVAILABLE 503, TIMEOUT 504, and
// INTERNAL 500 for everything else.
//
// # Configuration
//
// NewConfig reads PORT, SHUTDOWN_TIMEOUT_SECONDS, RATE_LIMIT,
// RATE_LIMIT_BURST and CORS_ALLOWED_ORIGINS. Timeouts default to the values
// in pkg/defaults.
package server
