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

package endpoint

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/NVIDIA/restaurant-gateway/pkg/errors"
)

// DefaultAPIPrefix is the path prefix most upstream deployments mount their API under.
const DefaultAPIPrefix = "/api/v1"

// Route describes where an operation lives on the upstream.
type Route struct {
	// Path is the primary path template relative to the API base, e.g. /orders/{id}.
	Path string
	// Alternates are root-relative path templates tried after the primary.
	Alternates []string
}

// Resolver turns routes into absolute candidate addresses.
type Resolver struct {
	root     string // scheme://host[:port]
	basePath string
	prefix   string

	reported sync.Map
}

// NewResolver parses the upstream base address.
func NewResolver(baseURL, apiPrefix string) (*Resolver, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid upstream base address", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "upstream base address must be http or https", map[string]any{
			"baseURL": baseURL,
		})
	}
	if u.Host == "" {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "upstream base address has no host", map[string]any{
			"baseURL": baseURL,
		})
	}

	r := &Resolver{
		root:   u.Scheme + "://" + u.Host,
		prefix: normalizePrefix(apiPrefix),
	}
	r.basePath = strings.TrimRight(r.collapse(u.Path, "base"), "/")
	return r, nil
}

// Host returns the upstream host (with port, if any).
func (r *Resolver) Host() string {
	return strings.TrimPrefix(strings.TrimPrefix(r.root, "https://"), "http://")
}

// Base returns the corrected base address.
func (r *Resolver) Base() string {
	return r.root + r.basePath
}

// Resolve returns the ordered, de-duplicated candidate list for route. Path
// parameters substitute {name} placeholders; query is appended to every
// candidate. The result always contains the primary address first.
func (r *Resolver) Resolve(route Route, pathParams map[string]string, query url.Values) ([]string, error) {
	primary, err := expand(route.Path, pathParams)
	if err != nil {
		return nil, err
	}

	rawQuery := ""
	if len(query) > 0 {
		rawQuery = "?" + query.Encode()
	}

	seen := make(map[string]bool, len(route.Alternates)+1)
	candidates := make([]string, 0, len(route.Alternates)+1)
	add := func(addr string) {
		addr += rawQuery
		if seen[addr] {
			return
		}
		seen[addr] = true
		candidates = append(candidates, addr)
	}

	add(r.root + Join(r.basePath, r.collapse(primary, "path"), r.prefix))

	for _, alt := range route.Alternates {
		p, err := expand(alt, pathParams)
		if err != nil {
			return nil, err
		}
		add(r.root + ensureLeadingSlash(r.collapse(p, "path")))
	}

	return candidates, nil
}

// collapse applies CollapsePrefix and reports each distinct correction once.
func (r *Resolver) collapse(p, source string) string {
	fixed := CollapsePrefix(p, r.prefix)
	if fixed != p {
		if _, loaded := r.reported.LoadOrStore(p, struct{}{}); !loaded {
			slog.Warn("collapsed duplicated api prefix",
				"source", source, "original", p, "corrected", fixed, "prefix", r.prefix)
		}
	}
	return fixed
}

// CollapsePrefix collapses consecutive repetitions of prefix in p to a single
// occurrence. Only whole path segments match: /api/v1/api/v1x is left alone.
func CollapsePrefix(p, prefix string) string {
	prefix = normalizePrefix(prefix)
	if prefix == "" {
		return p
	}

	doubled := prefix + prefix
	from := 0
	for {
		i := strings.Index(p[from:], doubled)
		if i < 0 {
			return p
		}
		i += from
		end := i + len(doubled)
		if end == len(p) || p[end] == '/' || p[end] == '?' {
			p = p[:i] + p[i+len(prefix):]
			from = i
			continue
		}
		from = i + 1
	}
}

// Join appends p to basePath without repeating the prefix the base already
// ends with, and without doubling slashes. A trailing slash on p is kept.
func Join(basePath, p, prefix string) string {
	basePath = strings.TrimRight(basePath, "/")
	p = ensureLeadingSlash(p)

	prefix = normalizePrefix(prefix)
	if prefix != "" && strings.HasSuffix(basePath, prefix) {
		if p == prefix {
			p = "/"
		} else if strings.HasPrefix(p, prefix+"/") {
			p = p[len(prefix):]
		}
	}

	if p == "/" && basePath != "" {
		return basePath
	}
	return basePath + p
}

func expand(template string, params map[string]string) (string, error) {
	var b strings.Builder
	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		closing := strings.IndexByte(rest[open:], '}')
		if closing < 0 {
			return "", errors.New(errors.ErrCodeInternal, fmt.Sprintf("unterminated placeholder in %q", template))
		}
		name := rest[open+1 : open+closing]
		value, ok := params[name]
		if !ok || value == "" {
			return "", errors.NewWithContext(errors.ErrCodeInvalidRequest, "missing path parameter", map[string]any{
				"parameter": name,
			})
		}
		b.WriteString(rest[:open])
		b.WriteString(url.PathEscape(value))
		rest = rest[open+closing+1:]
	}
}

func normalizePrefix(prefix string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return ""
	}
	return "/" + prefix
}

func ensureLeadingSlash(p string) string {
	if !strings.HasPrefix(p, "/") {
		return "/" + p
	}
	return p
}
