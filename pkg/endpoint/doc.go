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

// Package endpoint builds the ordered list of upstream addresses tried for a
// gateway operation.
//
// The primary path of a Route is relative to the configured API base
// (for example http://backend:8000/api/v1). Alternate paths are historical
// variants observed in deployed upstreams and are resolved against the host
// root. Repeated occurrences of the API prefix, a known configuration bug
// (/api/v1/api/v1/orders), are collapsed in both the base and every path.
package endpoint
