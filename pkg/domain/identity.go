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

package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
)

// Identity header names forwarded to the upstream service.
const (
	HeaderAuthorization = "Authorization"
	HeaderUserID        = "X-User-ID"
	HeaderUserRole      = "X-User-Role"
)

// Identity is the caller context handed to the gateway. Its validity is never
// checked here; only presence matters.
type Identity struct {
	BearerToken string `json:"-" yaml:"-"`
	UserID      string `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	Role        string `json:"role,omitempty" yaml:"role,omitempty"`
}

// HasCredential reports whether a bearer token was supplied.
func (i Identity) HasCredential() bool {
	return i.BearerToken != ""
}

// CacheScope names the caller in identity scoped cache keys. The token
// fingerprint is always part of it, so a caller cannot reach another
// caller's entries by sending a different X-User-ID or by omitting it.
func (i Identity) CacheScope() string {
	parts := make([]string, 0, 3)
	if i.UserID != "" {
		parts = append(parts, i.UserID)
	}
	if i.Role != "" {
		parts = append(parts, strings.ToLower(i.Role))
	}
	if i.BearerToken != "" {
		sum := sha256.Sum256([]byte(i.BearerToken))
		parts = append(parts, hex.EncodeToString(sum[:8]))
	}
	return strings.Join(parts, ":")
}

// IdentityFromRequest extracts the identity headers from an incoming request.
func IdentityFromRequest(r *http.Request) Identity {
	return Identity{
		BearerToken: bearerToken(r.Header.Get(HeaderAuthorization)),
		UserID:      strings.TrimSpace(r.Header.Get(HeaderUserID)),
		Role:        strings.TrimSpace(r.Header.Get(HeaderUserRole)),
	}
}

// Apply writes the identity onto outbound headers.
func (i Identity) Apply(h http.Header) {
	if i.BearerToken != "" {
		h.Set(HeaderAuthorization, "Bearer "+i.BearerToken)
	}
	if i.UserID != "" {
		h.Set(HeaderUserID, i.UserID)
	}
	if i.Role != "" {
		h.Set(HeaderUserRole, i.Role)
	}
}

func bearerToken(v string) string {
	v = strings.TrimSpace(v)
	if len(v) < 7 || !strings.EqualFold(v[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(v[7:])
}
