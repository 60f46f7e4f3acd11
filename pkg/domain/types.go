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

import "time"

// OrderItem is one line of an order.
type OrderItem struct {
	ID       int     `json:"id" yaml:"id"`
	DishID   int     `json:"dish_id" yaml:"dish_id"`
	Name     string  `json:"name" yaml:"name"`
	Price    float64 `json:"price" yaml:"price"`
	Quantity int     `json:"quantity" yaml:"quantity"`
	Total    float64 `json:"total" yaml:"total"`
}

// Order is a customer order placed through the UI or by a waiter.
type Order struct {
	ID            int           `json:"id" yaml:"id"`
	UserID        int           `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	WaiterID      *int          `json:"waiter_id" yaml:"waiter_id"`
	TableNumber   *int          `json:"table_number" yaml:"table_number"`
	CustomerName  string        `json:"customer_name" yaml:"customer_name"`
	CustomerPhone string        `json:"customer_phone" yaml:"customer_phone"`
	CustomerEmail string        `json:"customer_email,omitempty" yaml:"customer_email,omitempty"`
	Status        OrderStatus   `json:"status" yaml:"status"`
	PaymentStatus PaymentStatus `json:"payment_status" yaml:"payment_status"`
	PaymentMethod PaymentMethod `json:"payment_method" yaml:"payment_method"`
	OrderType     OrderType     `json:"order_type" yaml:"order_type"`
	Items         []OrderItem   `json:"items" yaml:"items"`
	TotalAmount   float64       `json:"total_amount" yaml:"total_amount"`
	Comment       string        `json:"comment,omitempty" yaml:"comment,omitempty"`
	CreatedAt     time.Time     `json:"created_at" yaml:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" yaml:"updated_at"`
}

// ItemsTotal returns the sum of price*quantity over all items.
func (o Order) ItemsTotal() float64 {
	var sum float64
	for _, it := range o.Items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}

// Reservation is a table booking.
type Reservation struct {
	ID              int               `json:"id" yaml:"id"`
	UserID          int               `json:"user_id" yaml:"user_id"`
	TableID         int               `json:"table_id" yaml:"table_id"`
	TableNumber     int               `json:"table_number" yaml:"table_number"`
	GuestName       string            `json:"guest_name" yaml:"guest_name"`
	GuestPhone      string            `json:"guest_phone" yaml:"guest_phone"`
	GuestEmail      string            `json:"guest_email,omitempty" yaml:"guest_email,omitempty"`
	GuestsCount     int               `json:"guests_count" yaml:"guests_count"`
	ReservationDate string            `json:"reservation_date" yaml:"reservation_date"`
	ReservationTime string            `json:"reservation_time" yaml:"reservation_time"`
	Status          ReservationStatus `json:"status" yaml:"status"`
	Comment         string            `json:"comment,omitempty" yaml:"comment,omitempty"`
	CreatedAt       time.Time         `json:"created_at" yaml:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at" yaml:"updated_at"`
}

// User is an account known to the backend.
type User struct {
	ID        int       `json:"id" yaml:"id"`
	FullName  string    `json:"full_name" yaml:"full_name"`
	Email     string    `json:"email" yaml:"email"`
	Phone     string    `json:"phone" yaml:"phone"`
	Role      Role      `json:"role" yaml:"role"`
	IsActive  bool      `json:"is_active" yaml:"is_active"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// Category groups menu items.
type Category struct {
	ID       int    `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	IsActive bool   `json:"is_active" yaml:"is_active"`
}

// MenuItem is a dish offered on the menu.
type MenuItem struct {
	ID          int     `json:"id" yaml:"id"`
	CategoryID  int     `json:"category_id" yaml:"category_id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Price       float64 `json:"price" yaml:"price"`
	WeightGrams int     `json:"weight_grams" yaml:"weight_grams"`
	ImageURL    string  `json:"image_url,omitempty" yaml:"image_url,omitempty"`
	IsAvailable bool    `json:"is_available" yaml:"is_available"`
	IsActive    bool    `json:"is_active" yaml:"is_active"`
}

// Table is a seat group on the floor plan.
type Table struct {
	ID          int    `json:"id" yaml:"id"`
	Number      int    `json:"number" yaml:"number"`
	Capacity    int    `json:"capacity" yaml:"capacity"`
	Zone        string `json:"zone" yaml:"zone"`
	PositionX   int    `json:"position_x" yaml:"position_x"`
	PositionY   int    `json:"position_y" yaml:"position_y"`
	IsAvailable bool   `json:"is_available" yaml:"is_available"`
	IsActive    bool   `json:"is_active" yaml:"is_active"`
}
