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
	"strconv"
	"strings"
	"time"

	"github.com/NVIDIA/restaurant-gateway/pkg/domain"
	"github.com/NVIDIA/restaurant-gateway/pkg/errors"
)

const dateLayout = "2006-01-02"

// request is a validated Call.
type request struct {
	path  map[string]string
	query map[string]string
	body  map[string]any
}

// params merges path and query parameters, used for cache keys and synthesis.
func (r request) params() map[string]string {
	out := make(map[string]string, len(r.path)+len(r.query))
	for k, v := range r.query {
		out[k] = v
	}
	for k, v := range r.path {
		out[k] = v
	}
	return out
}

func invalid(op Operation, field, message string) error {
	return errors.NewWithContext(errors.ErrCodeInvalidRequest, message, map[string]any{
		"operation": op.Name,
		"field":     field,
	})
}

// validate checks caller input and returns the canonical request. Unknown
// query parameters are dropped.
func validate(op Operation, call Call) (request, error) {
	req := request{
		path:  make(map[string]string, len(op.PathParams)),
		query: make(map[string]string, len(op.Query)),
	}

	for _, name := range op.PathParams {
		v := strings.TrimSpace(call.PathParams[name])
		if v == "" {
			return req, invalid(op, name, "missing path parameter")
		}
		if _, ok := positive(v); !ok {
			return req, invalid(op, name, "must be a positive integer")
		}
		req.path[name] = v
	}

	for _, name := range op.Query {
		v := strings.TrimSpace(call.Query[name])
		if v == "" {
			continue
		}
		canonical, err := checkQuery(op, name, v)
		if err != nil {
			return req, err
		}
		req.query[name] = canonical
	}
	if s, e := req.query["start_date"], req.query["end_date"]; s != "" && e != "" && s > e {
		return req, invalid(op, "start_date", "start_date must not be after end_date")
	}

	if op.Kind == KindMutate {
		body, err := checkBody(op, call.Body)
		if err != nil {
			return req, err
		}
		req.body = body
	}
	return req, nil
}

func checkQuery(op Operation, name, v string) (string, error) {
	switch name {
	case "start_date", "end_date", "date":
		if _, err := time.Parse(dateLayout, v); err != nil {
			return "", invalid(op, name, "must be an ISO date (YYYY-MM-DD)")
		}
		return v, nil
	case "status":
		if op.StatusValid == nil || !op.StatusValid(v) {
			return "", invalid(op, name, "unknown status")
		}
		return strings.ToLower(v), nil
	case "payment_status":
		if !paymentStatusValid(v) {
			return "", invalid(op, name, "unknown payment status")
		}
		return strings.ToLower(v), nil
	case "role":
		r, ok := domain.ParseRole(v)
		if !ok {
			return "", invalid(op, name, "unknown role")
		}
		return string(r), nil
	default:
		if _, ok := positive(v); !ok {
			return "", invalid(op, name, "must be a positive integer")
		}
		return v, nil
	}
}

func checkBody(op Operation, raw []byte) (map[string]any, error) {
	body := map[string]any{}
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &body); err != nil || body == nil {
			return nil, invalid(op, "body", "body must be a JSON object")
		}
	}

	for _, f := range op.Required {
		if !present(body[f]) {
			return nil, invalid(op, f, "required field is missing")
		}
	}

	if d, ok := body["reservation_date"].(string); ok {
		if _, err := time.Parse(dateLayout, d); err != nil {
			return nil, invalid(op, "reservation_date", "must be an ISO date (YYYY-MM-DD)")
		}
	}
	if v, ok := body["guests_count"]; ok {
		if n, ok := v.(float64); !ok || n < 1 || n != float64(int(n)) {
			return nil, invalid(op, "guests_count", "must be a positive integer")
		}
	}
	if items, ok := body["items"]; ok {
		if err := checkItems(op, items); err != nil {
			return nil, err
		}
	}

	if op.StatusField != "" {
		v, ok := body[op.StatusField].(string)
		if !ok {
			// accept the generic field name as an alias
			v, ok = body["status"].(string)
		}
		if !ok || v == "" {
			return nil, invalid(op, op.StatusField, "required field is missing")
		}
		if op.StatusValid != nil && !op.StatusValid(v) {
			return nil, invalid(op, op.StatusField, "unknown status")
		}
		if op.StatusField != "status" {
			delete(body, "status")
		}
		body[op.StatusField] = strings.ToLower(strings.TrimSpace(v))
	}
	return body, nil
}

func checkItems(op Operation, v any) error {
	items, ok := v.([]any)
	if !ok || len(items) == 0 {
		return invalid(op, "items", "must be a non-empty list")
	}
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			return invalid(op, "items", "each item must be an object")
		}
		if q, ok := m["quantity"].(float64); !ok || q < 1 {
			return invalid(op, "items", "each item needs a positive quantity")
		}
		if p, ok := m["price"]; ok {
			if n, ok := p.(float64); !ok || n < 0 {
				return invalid(op, "items", "item price must be a non-negative number")
			}
		}
	}
	return nil
}

func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(t) != ""
	case []any:
		return len(t) > 0
	default:
		return true
	}
}

func positive(v string) (int, bool) {
	n, err := strconv.Atoi(v)
	return n, err == nil && n > 0
}
