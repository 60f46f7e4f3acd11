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
	"slices"
	"strings"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderServed    OrderStatus = "served"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// PaymentStatus is the settlement state of an order.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// ReservationStatus is the lifecycle state of a table reservation.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationCompleted ReservationStatus = "completed"
)

// Role is the back-office role of a user.
type Role string

const (
	RoleClient Role = "client"
	RoleWaiter Role = "waiter"
	RoleAdmin  Role = "admin"
)

// PaymentMethod is how an order is paid.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentOnline PaymentMethod = "online"
)

// OrderType is how an order is fulfilled.
type OrderType string

const (
	OrderDineIn   OrderType = "dine_in"
	OrderTakeaway OrderType = "takeaway"
	OrderDelivery OrderType = "delivery"
)

// OrderStatuses returns the order status vocabulary.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{OrderPending, OrderConfirmed, OrderPreparing, OrderReady, OrderServed, OrderCompleted, OrderCancelled}
}

// PaymentStatuses returns the payment status vocabulary.
func PaymentStatuses() []PaymentStatus {
	return []PaymentStatus{PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded}
}

// ReservationStatuses returns the reservation status vocabulary.
func ReservationStatuses() []ReservationStatus {
	return []ReservationStatus{ReservationPending, ReservationConfirmed, ReservationCancelled, ReservationCompleted}
}

// Roles returns the user role vocabulary.
func Roles() []Role {
	return []Role{RoleClient, RoleWaiter, RoleAdmin}
}

// PaymentMethods returns the payment method vocabulary.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentCash, PaymentCard, PaymentOnline}
}

// OrderTypes returns the order type vocabulary.
func OrderTypes() []OrderType {
	return []OrderType{OrderDineIn, OrderTakeaway, OrderDelivery}
}

// IsValid reports whether s belongs to the order status vocabulary.
func (s OrderStatus) IsValid() bool { return slices.Contains(OrderStatuses(), s) }

// IsValid reports whether s belongs to the payment status vocabulary.
func (s PaymentStatus) IsValid() bool { return slices.Contains(PaymentStatuses(), s) }

// IsValid reports whether s belongs to the reservation status vocabulary.
func (s ReservationStatus) IsValid() bool { return slices.Contains(ReservationStatuses(), s) }

// IsValid reports whether r belongs to the role vocabulary.
func (r Role) IsValid() bool { return slices.Contains(Roles(), r) }

// ParseOrderStatus accepts any casing and returns the canonical value.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	v := OrderStatus(strings.ToLower(strings.TrimSpace(s)))
	return v, v.IsValid()
}

// ParsePaymentStatus accepts any casing and returns the canonical value.
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	v := PaymentStatus(strings.ToLower(strings.TrimSpace(s)))
	return v, v.IsValid()
}

// ParseReservationStatus accepts any casing and returns the canonical value.
func ParseReservationStatus(s string) (ReservationStatus, bool) {
	v := ReservationStatus(strings.ToLower(strings.TrimSpace(s)))
	return v, v.IsValid()
}

// ParseRole accepts any casing and returns the canonical value.
func ParseRole(s string) (Role, bool) {
	v := Role(strings.ToLower(strings.TrimSpace(s)))
	return v, v.IsValid()
}
