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
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/NVIDIA/restaurant-gateway/pkg/domain"
	"github.com/NVIDIA/restaurant-gateway/pkg/errors"
)

// Kind selects what to generate.
type Kind string

const (
	KindOrders       Kind = "orders"
	KindWaiterOrders Kind = "waiter_orders"
	KindReservations Kind = "reservations"
	KindUsers        Kind = "users"
	KindMenu         Kind = "menu"
	KindCategories   Kind = "categories"
	KindTables       Kind = "tables"
)

// Kinds returns every supported kind.
func Kinds() []Kind {
	return []Kind{KindOrders, KindWaiterOrders, KindReservations, KindUsers, KindMenu, KindCategories, KindTables}
}

// Seed parameter names understood by Generate.
const (
	ParamID            = "id"
	ParamStartDate     = "start_date"
	ParamEndDate       = "end_date"
	ParamStatus        = "status"
	ParamPaymentStatus = "payment_status"
	ParamRole          = "role"
	ParamDate          = "date"
	ParamUserID        = "user_id"
	ParamWaiterID      = "waiter_id"
	ParamCategoryID    = "category_id"
)

// List size bounds.
const (
	MinRecords = 2
	MaxRecords = 10
)

// DateLayout is the ISO date format of date seeds.
const DateLayout = "2006-01-02"

// defaultWindow is how far back created_at reaches without a date seed.
const defaultWindow = 30 * 24 * time.Hour

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// Generator produces synthetic records. It is safe for concurrent use.
type Generator struct {
	mu    sync.Mutex
	faker *gofakeit.Faker
	now   func() time.Time
}

// New creates a Generator. A zero seed picks a random one.
func New(seed int64, opts ...Option) *Generator {
	g := &Generator{
		faker: gofakeit.New(seed),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a slice of 2 to 10 records of the given kind, or a single
// record when params carries an id.
func (g *Generator) Generate(kind Kind, params map[string]string) (any, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := g.seeds(params)

	switch kind {
	case KindOrders, KindWaiterOrders:
		if s.id > 0 {
			return g.order(s, s.id, kind == KindWaiterOrders), nil
		}
		n := g.count()
		first := g.ids(orderIDs, n)
		return collect(n, func(i int) domain.Order {
			return g.order(s, first+i, kind == KindWaiterOrders)
		}), nil
	case KindReservations:
		if s.id > 0 {
			return g.reservation(s, s.id), nil
		}
		n := g.count()
		first := g.ids(reservationIDs, n)
		return collect(n, func(i int) domain.Reservation {
			return g.reservation(s, first+i)
		}), nil
	case KindUsers:
		if s.id > 0 {
			return g.user(s, s.id), nil
		}
		n := g.count()
		first := g.ids(userIDs, n)
		return collect(n, func(i int) domain.User {
			return g.user(s, first+i)
		}), nil
	case KindMenu:
		if s.id > 0 {
			return g.menuItem(s, s.id), nil
		}
		n := g.count()
		first := g.ids(menuIDs, n)
		return collect(n, func(i int) domain.MenuItem {
			return g.menuItem(s, first+i)
		}), nil
	case KindCategories:
		return categories(), nil
	case KindTables:
		n := g.count()
		return collect(n, func(i int) domain.Table {
			return g.table(i + 1)
		}), nil
	default:
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "unsupported synthetic kind", map[string]any{
			"kind": string(kind),
		})
	}
}

func collect[T any](n int, fn func(i int) T) []T {
	out := make([]T, 0, n)
	for i := range n {
		out = append(out, fn(i))
	}
	return out
}

func (g *Generator) count() int {
	return g.faker.Number(MinRecords, MaxRecords)
}

type idRange struct{ min, max int }

// ids picks the first of n consecutive ids inside r, so ids within one list
// never repeat.
func (g *Generator) ids(r idRange, n int) int {
	return g.faker.Number(r.min, r.max-n+1)
}

// seeds holds parsed generation parameters.
type seeds struct {
	id            int
	from, to      time.Time
	now           time.Time
	status        string
	paymentStatus string
	role          string
	date          string
	userID        int
	waiterID      int
	categoryID    int
}

func (g *Generator) seeds(params map[string]string) seeds {
	now := g.now().UTC().Truncate(time.Second)
	s := seeds{
		now:  now,
		from: now.Add(-defaultWindow),
		to:   now,
	}

	s.id = positiveInt(params[ParamID])
	s.userID = positiveInt(params[ParamUserID])
	s.waiterID = positiveInt(params[ParamWaiterID])
	s.categoryID = positiveInt(params[ParamCategoryID])

	if st, ok := domain.ParseOrderStatus(params[ParamStatus]); ok {
		s.status = string(st)
	} else if rs, ok := domain.ParseReservationStatus(params[ParamStatus]); ok {
		s.status = string(rs)
	}
	if ps, ok := domain.ParsePaymentStatus(params[ParamPaymentStatus]); ok {
		s.paymentStatus = string(ps)
	}
	if r, ok := domain.ParseRole(params[ParamRole]); ok {
		s.role = string(r)
	}
	if d, err := time.Parse(DateLayout, params[ParamDate]); err == nil {
		s.date = d.Format(DateLayout)
	}

	if d, err := time.Parse(DateLayout, params[ParamStartDate]); err == nil {
		s.from = d
	}
	if d, err := time.Parse(DateLayout, params[ParamEndDate]); err == nil {
		// end date is inclusive
		s.to = d.Add(24*time.Hour - time.Second)
	}
	if s.to.After(now) {
		s.to = now
	}
	if s.from.After(s.to) {
		s.from = s.to
	}
	return s
}

func positiveInt(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

// between returns a second-granular instant in [from, to].
func (g *Generator) between(from, to time.Time) time.Time {
	if !to.After(from) {
		return from
	}
	span := int(to.Sub(from) / time.Second)
	return from.Add(time.Duration(g.faker.Number(0, span)) * time.Second)
}

// stamps returns created_at and updated_at inside [from, to] and <= now.
func (g *Generator) stamps(s seeds) (time.Time, time.Time) {
	created := g.between(s.from, s.to).Truncate(time.Second)
	updated := g.between(created, s.now).Truncate(time.Second)
	return created, updated
}

func (g *Generator) person() (string, string, string) {
	first := g.faker.FirstName()
	last := g.faker.LastName()
	return first + " " + last, g.email(first, last), g.phone()
}

// phone formats a mobile number as +7 (9XX) XXX-XX-XX.
func (g *Generator) phone() string {
	return fmt.Sprintf("+7 (9%02d) %03d-%02d-%02d",
		g.faker.Number(0, 99),
		g.faker.Number(0, 999),
		g.faker.Number(0, 99),
		g.faker.Number(0, 99))
}

func (g *Generator) email(first, last string) string {
	local := slug(first) + "." + slug(last)
	if local == "." {
		local = "guest"
	}
	return fmt.Sprintf("%s%d@example.com", local, g.faker.Number(1, 99))
}

func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func pick[T any](g *Generator, values []T) T {
	return values[g.faker.Number(0, len(values)-1)]
}
