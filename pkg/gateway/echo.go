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
	"strconv"
	"time"

	"github.com/NVIDIA/restaurant-gateway/pkg/domain"
)

func cloneBody(body map[string]any) map[string]any {
	out := make(map[string]any, len(body)+4)
	for k, v := range body {
		out[k] = v
	}
	return out
}

func withID(out map[string]any, call Call) map[string]any {
	if id, err := strconv.Atoi(call.PathParams["id"]); err == nil {
		out["id"] = id
	}
	return out
}

func stamp(out map[string]any, now time.Time, created bool) {
	ts := now.UTC().Format(time.RFC3339)
	if created {
		out["created_at"] = ts
	}
	out["updated_at"] = ts
}

func setDefault(out map[string]any, key string, v any) {
	if cur, ok := out[key]; !ok || cur == nil || cur == "" {
		out[key] = v
	}
}

// echoUpdate reflects a status change onto the addressed resource.
func echoUpdate(call Call, body map[string]any, now time.Time) map[string]any {
	out := withID(cloneBody(body), call)
	stamp(out, now, false)
	return out
}

func echoCreateOrder(call Call, body map[string]any, now time.Time) map[string]any {
	out := cloneBody(body)
	setDefault(out, "status", string(domain.OrderPending))
	setDefault(out, "payment_status", string(domain.PaymentPending))
	setDefault(out, "order_type", string(domain.OrderDineIn))

	var total float64
	if items, ok := out["items"].([]any); ok {
		for _, it := range items {
			m, ok := it.(map[string]any)
			if !ok {
				continue
			}
			price, _ := m["price"].(float64)
			qty, _ := m["quantity"].(float64)
			m["total"] = price * qty
			total += price * qty
		}
	}
	out["total_amount"] = total
	stamp(out, now, true)
	return out
}

func echoCreateReservation(call Call, body map[string]any, now time.Time) map[string]any {
	out := cloneBody(body)
	setDefault(out, "status", string(domain.ReservationPending))
	if call.Identity.UserID != "" {
		if id, err := strconv.Atoi(call.Identity.UserID); err == nil {
			setDefault(out, "user_id", id)
		}
	}
	stamp(out, now, true)
	return out
}

func echoCancel(call Call, body map[string]any, now time.Time) map[string]any {
	out := withID(cloneBody(body), call)
	out["status"] = string(domain.ReservationCancelled)
	stamp(out, now, false)
	return out
}

// echoAssign binds the order to the waiter from the body, or to the caller.
func echoAssign(call Call, body map[string]any, now time.Time) map[string]any {
	out := withID(cloneBody(body), call)
	if _, ok := out["waiter_id"]; !ok {
		if id, err := strconv.Atoi(call.Identity.UserID); err == nil {
			out["waiter_id"] = id
		}
	}
	stamp(out, now, false)
	return out
}
