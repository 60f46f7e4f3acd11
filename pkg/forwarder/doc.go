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

// Package forwarder issues a single outbound call to one upstream candidate
// and classifies the result.
//
// Send never returns an error: transport failures, timeouts and non-2xx
// statuses become a retryable Outcome, 401 becomes an auth Outcome and any
// 2xx becomes success. Each call runs under its own timeout, clamped to the
// range allowed for upstream calls, and is cancelled when it expires.
//
// Certificate verification can be relaxed for the declared upstream host
// only. Every other host is contacted with strict TLS 1.2+.
package forwarder
