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

package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Enumerated fields whose casing is normalized.
var statusFields = []string{"status", "payment_status"}

// listWrappers are envelope keys that hold the actual list.
var listWrappers = []string{"items", "data", "results"}

// Normalize decodes an upstream body into the stable shape callers expect.
// Lists are always arrays; object payloads are unwrapped from {"data": {...}};
// documented defaults are filled and status values lower-cased.
func Normalize(op Operation, body []byte) (any, error) {
	body = bytes.TrimSpace(body)

	var v any
	if len(body) > 0 {
		if err := json.Unmarshal(body, &v); err != nil {
			return nil, fmt.Errorf("invalid JSON payload: %w", err)
		}
	}

	if op.Shape == ShapeObject {
		return normalizeObject(op, v)
	}
	return normalizeList(op, v)
}

func normalizeList(op Operation, v any) ([]any, error) {
	list, err := unwrapList(op, v)
	if err != nil {
		return nil, err
	}

	lower := cases.Lower(language.Und)
	for i, item := range list {
		if m, ok := item.(map[string]any); ok {
			list[i] = normalizeRecord(op, m, lower)
		}
	}
	return list, nil
}

func unwrapList(op Operation, v any) ([]any, error) {
	switch t := v.(type) {
	case nil:
		return []any{}, nil
	case []any:
		return t, nil
	case map[string]any:
		keys := listWrappers
		if op.Collection != "" {
			keys = append([]string{op.Collection}, listWrappers...)
		}
		for _, k := range keys {
			inner, ok := t[k]
			if !ok {
				continue
			}
			switch l := inner.(type) {
			case nil:
				return []any{}, nil
			case []any:
				return l, nil
			}
		}
		return nil, fmt.Errorf("expected a list, got an object without a list wrapper")
	default:
		return nil, fmt.Errorf("expected a list, got %T", v)
	}
}

func normalizeObject(op Operation, v any) (map[string]any, error) {
	m, err := unwrapObject(op, v)
	if err != nil {
		return nil, err
	}
	return normalizeRecord(op, m, cases.Lower(language.Und)), nil
}

func unwrapObject(op Operation, v any) (map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected an object, got %T", v)
	}
	if _, hasID := m["id"]; !hasID {
		if inner, ok := m["data"].(map[string]any); ok {
			m = inner
		} else if op.Resource != "" {
			if inner, ok := m[op.Resource].(map[string]any); ok {
				m = inner
			}
		}
	}
	return m, nil
}

// mergeWriteResult lays the record an upstream returned for a write over the
// local echo. Bodies that carry no record with an id, such as
// {"success":true} or plain text, leave the echo untouched.
func mergeWriteResult(op Operation, echo map[string]any, body []byte) map[string]any {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return echo
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return echo
	}
	m, err := unwrapObject(op, v)
	if err != nil || m["id"] == nil {
		return echo
	}
	out := make(map[string]any, len(echo)+len(m))
	for k, val := range echo {
		out[k] = val
	}
	for k, val := range m {
		if val != nil {
			out[k] = val
		}
	}
	return normalizeRecord(op, out, cases.Lower(language.Und))
}

func normalizeRecord(op Operation, m map[string]any, lower cases.Caser) map[string]any {
	for k, def := range op.Defaults {
		if cur, ok := m[k]; !ok || cur == nil {
			m[k] = cloneDefault(def)
		}
	}
	recase(m, lower)
	return m
}

func recase(m map[string]any, c cases.Caser) {
	for _, f := range statusFields {
		if s, ok := m[f].(string); ok {
			m[f] = c.String(s)
		}
	}
}

// cloneDefault keeps records from sharing a mutable default slice or map.
func cloneDefault(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		copy(out, t)
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = val
		}
		return out
	default:
		return v
	}
}

// UpperCaseStatus upper-cases status fields in an outbound body.
func UpperCaseStatus(m map[string]any) {
	recase(m, cases.Upper(language.Und))
}

// LowerCaseStatus lower-cases status fields.
func LowerCaseStatus(m map[string]any) {
	recase(m, cases.Lower(language.Und))
}
