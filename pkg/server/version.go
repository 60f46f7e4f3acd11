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

package server

import (
	"net/http"
	"strings"

	"github.com/NVIDIA/restaurant-gateway/pkg/version"
)

const (
	// DefaultAPIVersion is the default API version if none is negotiated
	DefaultAPIVersion = "v1"

	// HeaderAPIVersion carries the negotiated version on every response.
	HeaderAPIVersion = "X-API-Version"

	vendorMediaPrefix = "application/vnd.restaurant.gateway."
)

// Oldest and newest API versions served.
var (
	minAPIVersion = version.MustParse("v1")
	maxAPIVersion = version.MustParse("v1")
)

// negotiateAPIVersion reads the version from a vendor media type in the
// Accept header, e.g. application/vnd.restaurant.gateway.v1+json. The first
// supported version wins; anything else yields DefaultAPIVersion.
func negotiateAPIVersion(r *http.Request) string {
	for _, mediaRange := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, _, _ := strings.Cut(strings.TrimSpace(mediaRange), ";")
		rest, ok := strings.CutPrefix(strings.ToLower(strings.TrimSpace(mediaType)), vendorMediaPrefix)
		if !ok {
			continue
		}
		version, _, _ := strings.Cut(rest, "+")
		if isValidAPIVersion(version) {
			return version
		}
	}
	return DefaultAPIVersion
}

// isValidAPIVersion accepts major-only versions such as "v1" within the
// served range.
func isValidAPIVersion(v string) bool {
	if !strings.HasPrefix(v, "v") {
		return false
	}
	parsed, err := version.Parse(v)
	if err != nil || parsed.Precision != 1 || parsed.Extras != "" {
		return false
	}
	return parsed.Within(minAPIVersion, maxAPIVersion)
}

// SetAPIVersionHeader sets the API version header in the response.
func SetAPIVersionHeader(w http.ResponseWriter, version string) {
	w.Header().Set(HeaderAPIVersion, version)
}
