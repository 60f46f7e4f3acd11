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

// Package errors provides structured error types for better observability
// and programmatic error handling across the gateway.
//
// Only two classes of failure are allowed to reach a gateway caller:
// authorization failures (ErrCodeUnauthorized) and malformed requests
// (ErrCodeInvalidRequest). Upstream unavailability (ErrCodeUnavailable,
// ErrCodeTimeout) is used internally to describe cascade attempts and is
// resolved by cache or synthetic fallback before a response is written.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeUnavailable,
//	    "upstream candidate failed",
//	    cause,
//	    map[string]any{
//	        "operation": "orders.list",
//	        "address":   addr,
//	    },
//	)
package errors
