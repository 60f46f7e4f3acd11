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
	"net/http"
	"slices"
	"sort"

	"github.com/NVIDIA/restaurant-gateway/pkg/defaults"
	"github.com/NVIDIA/restaurant-gateway/pkg/domain"
	"github.com/NVIDIA/restaurant-gateway/pkg/endpoint"
	"github.com/NVIDIA/restaurant-gateway/pkg/synth"
)

// Cache prefixes touched by mutations.
const (
	prefixOrders       = "orders."
	prefixWaiterOrders = "waiter.orders."
	prefixReservations = "reservations."
	prefixTables       = "tables."
)

var (
	orderInvalidations       = []string{prefixOrders, prefixWaiterOrders}
	reservationInvalidations = []string{prefixReservations, prefixTables}
)

func orderStatusValid(s string) bool {
	_, ok := domain.ParseOrderStatus(s)
	return ok
}

func paymentStatusValid(s string) bool {
	_, ok := domain.ParsePaymentStatus(s)
	return ok
}

func reservationStatusValid(s string) bool {
	_, ok := domain.ParseReservationStatus(s)
	return ok
}

var registry = []Operation{
	{
		Name:           "orders.list",
		Pattern:        "GET /api/orders",
		Method:         http.MethodGet,
		Kind:           KindRead,
		Shape:          ShapeList,
		Route:          endpoint.Route{Path: "/orders", Alternates: []string{"/api/orders", "/orders", "/api/v1/orders/"}},
		Resource:       "order",
		Collection:     "orders",
		Synth:          synth.KindOrders,
		TTL:            defaults.TransactionalCacheTTL,
		Timeout:        defaults.UpstreamReadTimeout,
		IdentityScoped: true,
		RequiresAuth:   true,
		Query:          []string{"start_date", "end_date", "status", "payment_status", "user_id"},
		Defaults:       map[string]any{"items": []any{}},
		StatusValid:    orderStatusValid,
	},
	{
		Name:           "orders.get",
		Pattern:        "GET /api/orders/{id}",
		Method:         http.MethodGet,
		Kind:           KindRead,
		Shape:          ShapeObject,
		Route:          endpoint.Route{Path: "/orders/{id}", Alternates: []string{"/api/orders/{id}"}},
		Resource:       "order",
		Synth:          synth.KindOrders,
		TTL:            defaults.TransactionalCacheTTL,
		Timeout:        defaults.UpstreamReadTimeout,
		IdentityScoped: true,
		RequiresAuth:   true,
		PathParams:     []string{"id"},
		Defaults:       map[string]any{"items": []any{}},
	},
	{
		Name:        "orders.create",
		Pattern:     "POST /api/orders",
		Method:      http.MethodPost,
		Kind:        KindMutate,
		Route:       endpoint.Route{Path: "/orders", Alternates: []string{"/api/orders"}},
		Resource:    "order",
		Timeout:     defaults.UpstreamWriteTimeout,
		Invalidates: orderInvalidations,
		Required:    []string{"customer_name", "customer_phone", "items"},
		Echo:        echoCreateOrder,
	},
	{
		Name:         "orders.update_status",
		Pattern:      "PATCH /api/orders/{id}/status",
		Method:       http.MethodPatch,
		Kind:         KindMutate,
		Route:        endpoint.Route{Path: "/orders/{id}/status", Alternates: []string{"/api/orders/{id}/status"}},
		Resource:     "order",
		Timeout:      defaults.UpstreamWriteTimeout,
		RequiresAuth: true,
		Invalidates:  orderInvalidations,
		PathParams:   []string{"id"},
		StatusField:  "status",
		StatusValid:  orderStatusValid,
		Echo:         echoUpdate,
	},
	{
		Name:            "orders.update_payment_status",
		Pattern:         "PATCH /api/orders/{id}/payment-status",
		Method:          http.MethodPatch,
		Kind:            KindMutate,
		Route:           endpoint.Route{Path: "/orders/{id}/payment-status", Alternates: []string{"/api/orders/{id}/payment-status", "/orders/{id}/payment"}},
		Resource:        "order",
		Timeout:         defaults.UpstreamCriticalTimeout,
		RequiresAuth:    true,
		Invalidates:     orderInvalidations,
		UpperCaseStatus: true,
		PathParams:      []string{"id"},
		StatusField:     "payment_status",
		StatusValid:     paymentStatusValid,
		Echo:            echoUpdate,
	},
	{
		Name:           "waiter.orders.list",
		Pattern:        "GET /api/waiter/orders",
		Method:         http.MethodGet,
		Kind:           KindRead,
		Shape:          ShapeList,
		Route:          endpoint.Route{Path: "/waiter/orders", Alternates: []string{"/api/waiter/orders", "/orders/waiter"}},
		Resource:       "order",
		Collection:     "orders",
		Synth:          synth.KindWaiterOrders,
		TTL:            defaults.TransactionalCacheTTL,
		Timeout:        defaults.UpstreamReadTimeout,
		IdentityScoped: true,
		RequiresAuth:   true,
		Query:          []string{"status"},
		Defaults:       map[string]any{"items": []any{}},
		StatusValid:    orderStatusValid,
	},
	{
		Name:         "waiter.orders.assign",
		Pattern:      "POST /api/waiter/orders/{id}/assign",
		Method:       http.MethodPost,
		Kind:         KindMutate,
		Route:        endpoint.Route{Path: "/waiter/orders/{id}/assign", Alternates: []string{"/api/waiter/orders/{id}/assign"}},
		Resource:     "order",
		Timeout:      defaults.UpstreamWriteTimeout,
		RequiresAuth: true,
		Invalidates:  orderInvalidations,
		PathParams:   []string{"id"},
		Echo:         echoAssign,
	},
	{
		Name:           "reservations.list",
		Pattern:        "GET /api/reservations",
		Method:         http.MethodGet,
		Kind:           KindRead,
		Shape:          ShapeList,
		Route:          endpoint.Route{Path: "/reservations", Alternates: []string{"/api/reservations", "/reservations/"}},
		Resource:       "reservation",
		Collection:     "reservations",
		Synth:          synth.KindReservations,
		TTL:            defaults.TransactionalCacheTTL,
		Timeout:        defaults.UpstreamReadTimeout,
		IdentityScoped: true,
		RequiresAuth:   true,
		Query:          []string{"date", "status", "start_date", "end_date"},
		StatusValid:    reservationStatusValid,
	},
	{
		Name:           "reservations.get",
		Pattern:        "GET /api/reservations/{id}",
		Method:         http.MethodGet,
		Kind:           KindRead,
		Shape:          ShapeObject,
		Route:          endpoint.Route{Path: "/reservations/{id}", Alternates: []string{"/api/reservations/{id}"}},
		Resource:       "reservation",
		Synth:          synth.KindReservations,
		TTL:            defaults.TransactionalCacheTTL,
		Timeout:        defaults.UpstreamReadTimeout,
		IdentityScoped: true,
		RequiresAuth:   true,
		PathParams:     []string{"id"},
	},
	{
		Name:         "reservations.create",
		Pattern:      "POST /api/reservations",
		Method:       http.MethodPost,
		Kind:         KindMutate,
		Route:        endpoint.Route{Path: "/reservations", Alternates: []string{"/api/reservations"}},
		Resource:     "reservation",
		Timeout:      defaults.UpstreamWriteTimeout,
		RequiresAuth: true,
		Invalidates:  reservationInvalidations,
		Required:     []string{"guest_name", "guest_phone", "reservation_date", "reservation_time", "guests_count"},
		Echo:         echoCreateReservation,
	},
	{
		Name:         "reservations.cancel",
		Pattern:      "DELETE /api/reservations/{id}",
		Method:       http.MethodDelete,
		Kind:         KindMutate,
		Route:        endpoint.Route{Path: "/reservations/{id}", Alternates: []string{"/api/reservations/{id}"}},
		Resource:     "reservation",
		Timeout:      defaults.UpstreamWriteTimeout,
		RequiresAuth: true,
		Invalidates:  reservationInvalidations,
		PathParams:   []string{"id"},
		Echo:         echoCancel,
	},
	{
		Name:           "users.list",
		Pattern:        "GET /api/users",
		Method:         http.MethodGet,
		Kind:           KindRead,
		Shape:          ShapeList,
		Route:          endpoint.Route{Path: "/users", Alternates: []string{"/api/users", "/users/"}},
		Resource:       "user",
		Collection:     "users",
		Synth:          synth.KindUsers,
		TTL:            defaults.TransactionalCacheTTL,
		Timeout:        defaults.UpstreamReadTimeout,
		IdentityScoped: true,
		RequiresAuth:   true,
		Query:          []string{"role"},
		Defaults:       map[string]any{"is_active": true},
	},
	{
		Name:       "menu.list",
		Pattern:    "GET /api/menu",
		Method:     http.MethodGet,
		Kind:       KindRead,
		Shape:      ShapeList,
		Route:      endpoint.Route{Path: "/menu", Alternates: []string{"/api/menu", "/dishes"}},
		Resource:   "dish",
		Collection: "dishes",
		Synth:      synth.KindMenu,
		TTL:        defaults.CatalogCacheTTL,
		Timeout:    defaults.UpstreamReadTimeout,
		Query:      []string{"category_id"},
		Defaults:   map[string]any{"is_active": true, "is_available": true},
	},
	{
		Name:       "menu.categories",
		Pattern:    "GET /api/categories",
		Method:     http.MethodGet,
		Kind:       KindRead,
		Shape:      ShapeList,
		Route:      endpoint.Route{Path: "/categories", Alternates: []string{"/api/categories", "/menu/categories"}},
		Resource:   "category",
		Collection: "categories",
		Synth:      synth.KindCategories,
		TTL:        defaults.CatalogCacheTTL,
		Timeout:    defaults.UpstreamReadTimeout,
		Defaults:   map[string]any{"is_active": true},
	},
	{
		Name:       "tables.list",
		Pattern:    "GET /api/tables",
		Method:     http.MethodGet,
		Kind:       KindRead,
		Shape:      ShapeList,
		Route:      endpoint.Route{Path: "/tables", Alternates: []string{"/api/tables"}},
		Resource:   "table",
		Collection: "tables",
		Synth:      synth.KindTables,
		TTL:        defaults.TransactionalCacheTTL,
		Timeout:    defaults.UpstreamReadTimeout,
		Query:      []string{"date", "guests"},
		Defaults:   map[string]any{"is_active": true, "is_available": true},
	},
}

// Operations returns the registry sorted by name.
func Operations() []Operation {
	ops := slices.Clone(registry)
	sort.Slice(ops, func(i, j int) bool { return ops[i].Name < ops[j].Name })
	return ops
}

// Lookup finds an operation by name.
func Lookup(name string) (Operation, bool) {
	for _, op := range registry {
		if op.Name == name {
			return op, true
		}
	}
	return Operation{}, false
}

// Names returns every registered operation name, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for _, op := range registry {
		names = append(names, op.Name)
	}
	sort.Strings(names)
	return names
}
