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

package synth

import (
	"fmt"
	"time"

	"github.com/NVIDIA/restaurant-gateway/pkg/domain"
)

// Id ranges of generated records.
var (
	orderIDs       = idRange{1000, 9999}
	reservationIDs = idRange{100, 999}
	userIDs        = idRange{1, 500}
	menuIDs        = idRange{1, 120}
)

var menuCategories = []domain.Category{
	{ID: 1, Name: "Salads", IsActive: true},
	{ID: 2, Name: "Soups", IsActive: true},
	{ID: 3, Name: "Main courses", IsActive: true},
	{ID: 4, Name: "Desserts", IsActive: true},
	{ID: 5, Name: "Drinks", IsActive: true},
}

var drinks = []string{"Lemonade", "Black tea", "Espresso", "Cappuccino", "Mors", "Mineral water", "Orange juice"}

var zones = []string{"main", "terrace", "vip", "bar"}

var capacities = []int{2, 2, 4, 4, 6, 8}

func categories() []domain.Category {
	out := make([]domain.Category, len(menuCategories))
	copy(out, menuCategories)
	return out
}

// price returns a whole-rouble price so totals sum exactly.
func (g *Generator) price(min, max int) float64 {
	return float64(g.faker.Number(min, max) * 10)
}

func (g *Generator) dishName(categoryID int) string {
	switch categoryID {
	case 4:
		return g.faker.Dessert()
	case 5:
		return pick(g, drinks)
	case 1, 2:
		return g.faker.Lunch()
	default:
		return g.faker.Dinner()
	}
}

func (g *Generator) order(s seeds, id int, waiter bool) domain.Order {
	name, email, phone := g.person()
	created, updated := g.stamps(s)

	items := make([]domain.OrderItem, g.faker.Number(1, 5))
	for i := range items {
		dishID := g.faker.Number(1, 120)
		item := domain.OrderItem{
			ID:       id*10 + i + 1,
			DishID:   dishID,
			Name:     g.dishName(g.faker.Number(1, len(menuCategories))),
			Price:    g.price(15, 120),
			Quantity: g.faker.Number(1, 4),
		}
		item.Total = item.Price * float64(item.Quantity)
		items[i] = item
	}

	o := domain.Order{
		ID:            id,
		UserID:        s.userID,
		CustomerName:  name,
		CustomerPhone: phone,
		CustomerEmail: email,
		Status:        domain.OrderStatus(s.status),
		PaymentStatus: domain.PaymentStatus(s.paymentStatus),
		PaymentMethod: pick(g, domain.PaymentMethods()),
		OrderType:     pick(g, domain.OrderTypes()),
		Items:         items,
		CreatedAt:     created,
		UpdatedAt:     updated,
	}
	if o.UserID == 0 {
		o.UserID = g.ids(userIDs, 1)
	}
	if !o.Status.IsValid() {
		o.Status = pick(g, domain.OrderStatuses())
	}
	if !o.PaymentStatus.IsValid() {
		o.PaymentStatus = pick(g, domain.PaymentStatuses())
	}
	if o.OrderType == domain.OrderDineIn || waiter {
		table := g.faker.Number(1, 30)
		o.TableNumber = &table
		o.OrderType = domain.OrderDineIn
	}
	if waiter {
		w := s.waiterID
		if w == 0 {
			w = g.faker.Number(1, 50)
		}
		o.WaiterID = &w
	}
	o.TotalAmount = o.ItemsTotal()
	return o
}

func (g *Generator) reservation(s seeds, id int) domain.Reservation {
	name, email, phone := g.person()
	created, updated := g.stamps(s)

	date := s.date
	if date == "" {
		date = g.between(s.now, s.now.Add(14*24*time.Hour)).Format(DateLayout)
	}
	userID := s.userID
	if userID == 0 {
		userID = g.ids(userIDs, 1)
	}
	table := g.faker.Number(1, 30)

	r := domain.Reservation{
		ID:              id,
		UserID:          userID,
		TableID:         table,
		TableNumber:     table,
		GuestName:       name,
		GuestPhone:      phone,
		GuestEmail:      email,
		GuestsCount:     g.faker.Number(1, 8),
		ReservationDate: date,
		ReservationTime: fmt.Sprintf("%02d:%02d", g.faker.Number(12, 22), pick(g, []int{0, 30})),
		Status:          domain.ReservationStatus(s.status),
		CreatedAt:       created,
		UpdatedAt:       updated,
	}
	if !r.Status.IsValid() {
		r.Status = pick(g, domain.ReservationStatuses())
	}
	return r
}

func (g *Generator) user(s seeds, id int) domain.User {
	name, email, phone := g.person()
	created, updated := g.stamps(s)

	u := domain.User{
		ID:        id,
		FullName:  name,
		Email:     email,
		Phone:     phone,
		Role:      domain.Role(s.role),
		IsActive:  g.faker.Number(1, 10) > 1,
		CreatedAt: created,
		UpdatedAt: updated,
	}
	if !u.Role.IsValid() {
		u.Role = pick(g, domain.Roles())
	}
	return u
}

func (g *Generator) menuItem(s seeds, id int) domain.MenuItem {
	category := s.categoryID
	if category == 0 || category > len(menuCategories) {
		category = g.faker.Number(1, len(menuCategories))
	}
	return domain.MenuItem{
		ID:          id,
		CategoryID:  category,
		Name:        g.dishName(category),
		Description: g.faker.Sentence(8),
		Price:       g.price(15, 120),
		WeightGrams: g.faker.Number(10, 50) * 10,
		ImageURL:    fmt.Sprintf("/images/menu/%d.jpg", id),
		IsAvailable: true,
		IsActive:    true,
	}
}

func (g *Generator) table(number int) domain.Table {
	return domain.Table{
		ID:          number,
		Number:      number,
		Capacity:    pick(g, capacities),
		Zone:        pick(g, zones),
		PositionX:   (number - 1) % 5 * 120,
		PositionY:   (number - 1) / 5 * 120,
		IsAvailable: g.faker.Bool(),
		IsActive:    true,
	}
}
