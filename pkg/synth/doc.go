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

// Package synth fabricates plausible restaurant records for the last-resort
// fallback of read operations.
//
// Generated records satisfy the same invariants as genuine data: order totals
// equal the sum of their line items, statuses come from the fixed vocabularies,
// created_at <= updated_at <= now, and phone and email fields are well formed.
// The package performs no I/O. Callers tag synthetic results themselves.
package synth
