package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/restaurant-gateway/pkg/cache"
	"github.com/NVIDIA/restaurant-gateway/pkg/domain"
	"github.com/NVIDIA/restaurant-gateway/pkg/endpoint"
	"github.com/NVIDIA/restaurant-gateway/pkg/errors"
	"github.com/NVIDIA/restaurant-gateway/pkg/forwarder"
	"github.com/NVIDIA/restaurant-gateway/pkg/synth"
)

type fakeSender struct {
	mu      sync.Mutex
	calls   []forwarder.Request
	respond func(i int, req forwarder.Request) forwarder.Outcome
}

func (s *fakeSender) Send(_ context.Context, req forwarder.Request) forwarder.Outcome {
	s.mu.Lock()
	i := len(s.calls)
	s.calls = append(s.calls, req)
	s.mu.Unlock()

	out := s.respond(i, req)
	out.Address = req.Address
	return out
}

func (s *fakeSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func down(int, forwarder.Request) forwarder.Outcome {
	return forwarder.Outcome{Kind: forwarder.KindRetryable, Reason: "network error: connection refused"}
}

func ok(body string) forwarder.Outcome {
	return forwarder.Outcome{Kind: forwarder.KindSuccess, Status: http.StatusOK, Body: []byte(body)}
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	gw     *Gateway
	cache  *cache.Cache
	sender *fakeSender
	clock  *clock
}

func newFixture(t *testing.T, respond func(int, forwarder.Request) forwarder.Outcome) *fixture {
	t.Helper()

	store, err := cache.NewFileStore(t.TempDir())
	require.NoError(t, err)

	clk := &clock{now: time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)}
	c := cache.New(store, cache.WithClock(clk.Now))

	r, err := endpoint.NewResolver("http://backend:8000/api/v1", endpoint.DefaultAPIPrefix)
	require.NoError(t, err)

	s := &fakeSender{respond: respond}
	gen := synth.New(42, synth.WithClock(clk.Now))

	return &fixture{
		gw:     New(c, r, s, gen, WithClock(clk.Now)),
		cache:  c,
		sender: s,
		clock:  clk,
	}
}

func mustOp(t *testing.T, name string) Operation {
	t.Helper()
	op, found := Lookup(name)
	require.True(t, found, name)
	return op
}

var authed = domain.Identity{BearerToken: "tok", UserID: "17", Role: "admin"}

func ordersCall() Call {
	return Call{
		Query:    map[string]string{"start_date": "2025-01-01", "end_date": "2025-01-31"},
		Identity: authed,
	}
}

func asOrders(t *testing.T, v any) []domain.Order {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	var orders []domain.Order
	require.NoError(t, json.Unmarshal(b, &orders))
	return orders
}

func TestExhaustedCandidatesSynthesizeOrders(t *testing.T) {
	f := newFixture(t, down)

	res, err := f.gw.Execute(context.Background(), mustOp(t, "orders.list"), ordersCall())
	require.NoError(t, err)

	assert.Equal(t, LevelSynthetic, res.Level)
	assert.False(t, res.CacheHit)
	assert.Len(t, res.Attempts, 4, "all four candidates should be tried")
	assert.Equal(t, 4, f.sender.count())

	orders := asOrders(t, res.Data)
	assert.GreaterOrEqual(t, len(orders), synth.MinRecords)
	assert.LessOrEqual(t, len(orders), synth.MaxRecords)
	for _, o := range orders {
		var sum float64
		for _, it := range o.Items {
			sum += it.Price * float64(it.Quantity)
		}
		assert.Equal(t, sum, o.TotalAmount)
		assert.True(t, o.Status.IsValid())
	}
}

func TestSyntheticResultsAreNeverCached(t *testing.T) {
	upstreamUp := false
	f := newFixture(t, func(i int, req forwarder.Request) forwarder.Outcome {
		if upstreamUp {
			return ok(`[{"id":7,"status":"PENDING","items":[],"total_amount":0}]`)
		}
		return down(i, req)
	})
	op := mustOp(t, "orders.list")

	first, err := f.gw.Execute(context.Background(), op, ordersCall())
	require.NoError(t, err)
	require.Equal(t, LevelSynthetic, first.Level)

	key, err := f.gw.CacheKey(op, ordersCall())
	require.NoError(t, err)
	_, cached := f.cache.GetStale(context.Background(), key)
	assert.False(t, cached, "synthetic data must not be written to the cache")

	upstreamUp = true
	f.clock.Advance(time.Minute)

	second, err := f.gw.Execute(context.Background(), op, ordersCall())
	require.NoError(t, err)
	assert.Equal(t, LevelGenuine, second.Level)
	assert.False(t, second.CacheHit)
	assert.Equal(t, 5, f.sender.count(), "second call should reach the network")

	orders := asOrders(t, second.Data)
	require.Len(t, orders, 1)
	assert.Equal(t, domain.OrderPending, orders[0].Status)
}

func TestAuthFailureShortCircuits(t *testing.T) {
	f := newFixture(t, func(i int, req forwarder.Request) forwarder.Outcome {
		if i == 1 {
			return forwarder.Outcome{Kind: forwarder.KindAuth, Status: http.StatusUnauthorized}
		}
		return down(i, req)
	})

	_, err := f.gw.Execute(context.Background(), mustOp(t, "orders.list"), ordersCall())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnauthorized))
	assert.Equal(t, 2, f.sender.count(), "cascade must stop at the 401")
}

func TestAuthFailureSkipsStaleCache(t *testing.T) {
	f := newFixture(t, func(int, forwarder.Request) forwarder.Outcome {
		return forwarder.Outcome{Kind: forwarder.KindAuth, Status: http.StatusUnauthorized}
	})
	op := mustOp(t, "users.list")
	call := Call{Identity: authed}

	key, err := f.gw.CacheKey(op, call)
	require.NoError(t, err)
	require.NoError(t, f.cache.Set(context.Background(), key, []byte(`[{"id":1}]`)))
	f.clock.Advance(time.Hour)

	_, err = f.gw.Execute(context.Background(), op, call)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnauthorized))
}

func TestMissingCredential(t *testing.T) {
	f := newFixture(t, down)

	_, err := f.gw.Execute(context.Background(), mustOp(t, "reservations.list"), Call{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnauthorized))
	assert.Zero(t, f.sender.count())

	// public catalog data needs no credential
	res, err := f.gw.Execute(context.Background(), mustOp(t, "menu.list"), Call{})
	require.NoError(t, err)
	assert.Equal(t, LevelSynthetic, res.Level)
}

func TestGenuineWriteThroughAndCacheHit(t *testing.T) {
	f := newFixture(t, func(i int, req forwarder.Request) forwarder.Outcome {
		if i == 0 {
			return forwarder.Outcome{Kind: forwarder.KindRetryable, Status: http.StatusBadGateway}
		}
		return ok(`{"items":[{"id":1,"status":"PAID","payment_status":"Paid"}]}`)
	})
	op := mustOp(t, "orders.list")

	res, err := f.gw.Execute(context.Background(), op, ordersCall())
	require.NoError(t, err)
	assert.Equal(t, LevelGenuine, res.Level)
	assert.Len(t, res.Attempts, 2)

	list, isList := res.Data.([]any)
	require.True(t, isList)
	require.Len(t, list, 1)
	rec := list[0].(map[string]any)
	assert.Equal(t, "paid", rec["status"])
	assert.Equal(t, "paid", rec["payment_status"])
	assert.Equal(t, []any{}, rec["items"])

	f.clock.Advance(4 * time.Minute)
	hit, err := f.gw.Execute(context.Background(), op, ordersCall())
	require.NoError(t, err)
	assert.True(t, hit.CacheHit)
	assert.Equal(t, LevelGenuine, hit.Level)
	assert.Empty(t, hit.Attempts)
	assert.Equal(t, 2, f.sender.count(), "fresh cache hit must not touch the network")
	assert.Equal(t, res.Data, hit.Data)
}

func TestStaleCacheFallback(t *testing.T) {
	up := true
	f := newFixture(t, func(i int, req forwarder.Request) forwarder.Outcome {
		if up {
			return ok(`[{"id":3,"number":3,"capacity":4}]`)
		}
		return down(i, req)
	})
	op := mustOp(t, "tables.list")

	_, err := f.gw.Execute(context.Background(), op, Call{})
	require.NoError(t, err)

	up = false
	f.clock.Advance(op.TTL + time.Minute)

	res, err := f.gw.Execute(context.Background(), op, Call{})
	require.NoError(t, err)
	assert.Equal(t, LevelStaleCache, res.Level)
	assert.True(t, res.CacheHit)
	assert.NotEmpty(t, res.Attempts)

	list := res.Data.([]any)
	require.Len(t, list, 1)
	assert.Equal(t, true, list[0].(map[string]any)["is_active"])
}

func TestReadRejectsUnexpectedShape(t *testing.T) {
	f := newFixture(t, func(i int, req forwarder.Request) forwarder.Outcome {
		switch i {
		case 0:
			return ok(`<html>maintenance</html>`)
		case 1:
			return ok(`{"detail":"not a list"}`)
		default:
			return ok(`{"results":[{"role":"waiter"}]}`)
		}
	})

	res, err := f.gw.Execute(context.Background(), mustOp(t, "users.list"), Call{Identity: authed})
	require.NoError(t, err)
	assert.Equal(t, LevelGenuine, res.Level)
	assert.Len(t, res.Attempts, 3)
	rec := res.Data.([]any)[0].(map[string]any)
	assert.Equal(t, true, rec["is_active"])
}

func TestIdentityScopedKeys(t *testing.T) {
	f := newFixture(t, down)
	op := mustOp(t, "reservations.list")

	a, err := f.gw.CacheKey(op, Call{Identity: domain.Identity{BearerToken: "t", UserID: "1"}})
	require.NoError(t, err)
	b, err := f.gw.CacheKey(op, Call{Identity: domain.Identity{BearerToken: "t", UserID: "2"}})
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	res, err := f.gw.Execute(context.Background(), op, Call{Identity: domain.Identity{BearerToken: "t", UserID: "23"}})
	require.NoError(t, err)
	for _, r := range res.Data.([]any) {
		assert.EqualValues(t, 23, r.(map[string]any)["user_id"])
	}
}

// perCaller answers with a record naming the bearer token it was sent.
func perCaller(_ int, req forwarder.Request) forwarder.Outcome {
	owner := strings.TrimPrefix(req.Headers.Get("Authorization"), "Bearer ")
	return ok(`[{"id":1,"owner":"` + owner + `"}]`)
}

func TestScopedReadsWithoutUserIDDoNotShareCache(t *testing.T) {
	for _, name := range []string{"reservations.list", "orders.list", "users.list"} {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, perCaller)
			op := mustOp(t, name)

			alice, err := f.gw.Execute(context.Background(), op, Call{Identity: domain.Identity{BearerToken: "alice"}})
			require.NoError(t, err)
			require.Equal(t, LevelGenuine, alice.Level)

			bob, err := f.gw.Execute(context.Background(), op, Call{Identity: domain.Identity{BearerToken: "bob"}})
			require.NoError(t, err)
			assert.False(t, bob.CacheHit, "another token must not read the first caller's entry")
			assert.Equal(t, 2, f.sender.count())
			assert.Equal(t, "bob", bob.Data.([]any)[0].(map[string]any)["owner"])

			again, err := f.gw.Execute(context.Background(), op, Call{Identity: domain.Identity{BearerToken: "alice"}})
			require.NoError(t, err)
			assert.True(t, again.CacheHit)
			assert.Equal(t, "alice", again.Data.([]any)[0].(map[string]any)["owner"])
		})
	}
}

func TestAdminListsNotServedToOtherCallers(t *testing.T) {
	admin := domain.Identity{BearerToken: "admin-token", UserID: "1", Role: "admin"}
	client := domain.Identity{BearerToken: "client-token", UserID: "2", Role: "client"}
	spoof := domain.Identity{BearerToken: "client-token", UserID: "1", Role: "admin"}

	for _, name := range []string{"orders.list", "users.list", "orders.get"} {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, func(i int, req forwarder.Request) forwarder.Outcome {
				owner := strings.TrimPrefix(req.Headers.Get("Authorization"), "Bearer ")
				if name == "orders.get" {
					return ok(`{"id":5,"owner":"` + owner + `"}`)
				}
				return perCaller(i, req)
			})
			op := mustOp(t, name)
			call := func(id domain.Identity) Call {
				c := Call{Identity: id}
				if name == "orders.get" {
					c.PathParams = map[string]string{"id": "5"}
				}
				return c
			}

			_, err := f.gw.Execute(context.Background(), op, call(admin))
			require.NoError(t, err)

			for _, other := range []domain.Identity{client, spoof} {
				res, err := f.gw.Execute(context.Background(), op, call(other))
				require.NoError(t, err)
				assert.False(t, res.CacheHit, "admin data must not be served to %+v", other)
			}
			assert.Equal(t, 3, f.sender.count())
		})
	}
}

func TestPaymentStatusWhileUpstreamDown(t *testing.T) {
	f := newFixture(t, down)
	ctx := context.Background()

	listOp := mustOp(t, "orders.list")
	listKey, err := f.gw.CacheKey(listOp, ordersCall())
	require.NoError(t, err)
	require.NoError(t, f.cache.Set(ctx, listKey, []byte(`[{"id":42,"payment_status":"pending"}]`)))
	waiterKey, err := f.gw.CacheKey(mustOp(t, "waiter.orders.list"), Call{Identity: authed})
	require.NoError(t, err)
	require.NoError(t, f.cache.Set(ctx, waiterKey, []byte(`[]`)))
	menuKey := cache.Key("menu.list", nil, "")
	require.NoError(t, f.cache.Set(ctx, menuKey, []byte(`[]`)))

	res, err := f.gw.Execute(ctx, mustOp(t, "orders.update_payment_status"), Call{
		PathParams: map[string]string{"id": "42"},
		Body:       []byte(`{"payment_status":"paid"}`),
		Identity:   authed,
	})
	require.NoError(t, err)

	require.NotNil(t, res.BackendSuccess)
	assert.False(t, *res.BackendSuccess)
	assert.Equal(t, LevelSynthetic, res.Level)

	body, err := json.Marshal(res.Data)
	require.NoError(t, err)
	var got struct {
		Success        bool `json:"success"`
		BackendSuccess bool `json:"backend_success"`
		Order          struct {
			ID            int    `json:"id"`
			PaymentStatus string `json:"payment_status"`
		} `json:"order"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.True(t, got.Success)
	assert.False(t, got.BackendSuccess)
	assert.Equal(t, 42, got.Order.ID)
	assert.Equal(t, "paid", got.Order.PaymentStatus)

	_, found := f.cache.GetStale(ctx, listKey)
	assert.False(t, found, "cached order lists must be invalidated")
	_, found = f.cache.GetStale(ctx, waiterKey)
	assert.False(t, found, "cached waiter lists must be invalidated")
	_, found = f.cache.GetStale(ctx, menuKey)
	assert.True(t, found, "unrelated entries survive")

	require.NotEmpty(t, f.sender.calls)
	for _, c := range f.sender.calls {
		assert.JSONEq(t, `{"payment_status":"PAID"}`, string(c.Body), "upstream expects upper-case status")
		assert.Equal(t, http.MethodPatch, c.Method)
		assert.Equal(t, "Bearer tok", c.Headers.Get("Authorization"))
		assert.Contains(t, c.Address, "/42/")
	}
}

func TestMutationBackendSuccess(t *testing.T) {
	f := newFixture(t, func(int, forwarder.Request) forwarder.Outcome {
		return ok(`{"data":{"id":99,"status":"CONFIRMED","waiter_id":5}}`)
	})

	res, err := f.gw.Execute(context.Background(), mustOp(t, "waiter.orders.assign"), Call{
		PathParams: map[string]string{"id": "99"},
		Identity:   authed,
	})
	require.NoError(t, err)
	require.True(t, *res.BackendSuccess)
	assert.Equal(t, LevelGenuine, res.Level)
	assert.Equal(t, 1, f.sender.count(), "first success must stop the cascade")

	data := res.Data.(map[string]any)
	assert.Equal(t, true, data["backend_success"])
	order := data["order"].(map[string]any)
	assert.Equal(t, "confirmed", order["status"])
	assert.EqualValues(t, 99, order["id"])
}

func TestMutationEmptyUpstreamBodyUsesEcho(t *testing.T) {
	f := newFixture(t, func(int, forwarder.Request) forwarder.Outcome {
		return forwarder.Outcome{Kind: forwarder.KindSuccess, Status: http.StatusNoContent}
	})

	res, err := f.gw.Execute(context.Background(), mustOp(t, "reservations.cancel"), Call{
		PathParams: map[string]string{"id": "12"},
		Identity:   authed,
	})
	require.NoError(t, err)
	assert.True(t, *res.BackendSuccess)
	assert.Nil(t, f.sender.calls[0].Body, "DELETE without a body sends none")

	r := res.Data.(map[string]any)["reservation"].(map[string]any)
	assert.Equal(t, 12, r["id"])
	assert.Equal(t, "cancelled", r["status"])
}

func TestMutationTextBodyIsNotResent(t *testing.T) {
	f := newFixture(t, func(int, forwarder.Request) forwarder.Outcome {
		return forwarder.Outcome{Kind: forwarder.KindSuccess, Status: http.StatusCreated, Body: []byte("Created")}
	})

	res, err := f.gw.Execute(context.Background(), mustOp(t, "orders.create"), Call{
		Body: []byte(`{"customer_name":"Anna","customer_phone":"+7 (912) 345-67-89","items":[{"dish_id":1,"price":350,"quantity":2}]}`),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, f.sender.count(), "an accepted write must not reach another candidate")
	assert.Equal(t, http.MethodPost, f.sender.calls[0].Method)
	require.True(t, *res.BackendSuccess)
	assert.Equal(t, LevelGenuine, res.Level)

	data := res.Data.(map[string]any)
	assert.Equal(t, true, data["backend_success"])
	order := data["order"].(map[string]any)
	assert.Equal(t, "Anna", order["customer_name"])
	assert.Equal(t, 700.0, order["total_amount"])
}

func TestMutationAckKeepsEcho(t *testing.T) {
	f := newFixture(t, func(int, forwarder.Request) forwarder.Outcome {
		return ok(`{"success":true}`)
	})

	res, err := f.gw.Execute(context.Background(), mustOp(t, "orders.update_status"), Call{
		PathParams: map[string]string{"id": "42"},
		Body:       []byte(`{"status":"ready"}`),
		Identity:   authed,
	})
	require.NoError(t, err)
	require.True(t, *res.BackendSuccess)

	order := res.Data.(map[string]any)["order"].(map[string]any)
	assert.EqualValues(t, 42, order["id"])
	assert.Equal(t, "ready", order["status"])
	assert.NotContains(t, order, "success", "an acknowledgement is not the order")
}

func TestCreateOrderEcho(t *testing.T) {
	f := newFixture(t, down)

	res, err := f.gw.Execute(context.Background(), mustOp(t, "orders.create"), Call{
		Body: []byte(`{"customer_name":"Anna","customer_phone":"+7 (912) 345-67-89",
			"items":[{"dish_id":1,"price":350,"quantity":2},{"dish_id":4,"price":120,"quantity":1}]}`),
	})
	require.NoError(t, err)
	assert.False(t, *res.BackendSuccess)

	order := res.Data.(map[string]any)["order"].(map[string]any)
	assert.Equal(t, 820.0, order["total_amount"])
	assert.Equal(t, "pending", order["status"])
	assert.Equal(t, "pending", order["payment_status"])
	assert.NotEmpty(t, order["created_at"])
}

func TestMalformedRequests(t *testing.T) {
	f := newFixture(t, down)

	tests := []struct {
		name string
		op   string
		call Call
	}{
		{"non-numeric id", "orders.get", Call{PathParams: map[string]string{"id": "abc"}, Identity: authed}},
		{"zero id", "orders.get", Call{PathParams: map[string]string{"id": "0"}, Identity: authed}},
		{"missing id", "reservations.get", Call{Identity: authed}},
		{"bad date", "orders.list", Call{Query: map[string]string{"start_date": "01/02/2025"}, Identity: authed}},
		{"reversed range", "orders.list", Call{Query: map[string]string{"start_date": "2025-02-01", "end_date": "2025-01-01"}, Identity: authed}},
		{"unknown status filter", "orders.list", Call{Query: map[string]string{"status": "lost"}, Identity: authed}},
		{"unknown role", "users.list", Call{Query: map[string]string{"role": "chef"}, Identity: authed}},
		{"bad category", "menu.list", Call{Query: map[string]string{"category_id": "-1"}}},
		{"unknown payment status", "orders.update_payment_status", Call{PathParams: map[string]string{"id": "42"}, Body: []byte(`{"payment_status":"settled"}`), Identity: authed}},
		{"missing status", "orders.update_status", Call{PathParams: map[string]string{"id": "42"}, Body: []byte(`{}`), Identity: authed}},
		{"body not an object", "orders.update_status", Call{PathParams: map[string]string{"id": "42"}, Body: []byte(`["ready"]`), Identity: authed}},
		{"invalid json", "orders.create", Call{Body: []byte(`{"customer_name":`)}},
		{"missing required", "orders.create", Call{Body: []byte(`{"customer_name":"A","items":[{"quantity":1}]}`)}},
		{"empty items", "orders.create", Call{Body: []byte(`{"customer_name":"A","customer_phone":"1","items":[]}`)}},
		{"bad quantity", "orders.create", Call{Body: []byte(`{"customer_name":"A","customer_phone":"1","items":[{"quantity":0}]}`)}},
		{"bad guests", "reservations.create", Call{Body: []byte(`{"guest_name":"A","guest_phone":"1","reservation_date":"2025-03-01","reservation_time":"19:00","guests_count":1.5}`), Identity: authed}},
		{"bad reservation date", "reservations.create", Call{Body: []byte(`{"guest_name":"A","guest_phone":"1","reservation_date":"tomorrow","reservation_time":"19:00","guests_count":2}`), Identity: authed}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.gw.Execute(context.Background(), mustOp(t, tt.op), tt.call)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest), "got %v", err)
		})
	}
	assert.Zero(t, f.sender.count(), "malformed input must not reach the upstream")
}

func TestStatusAliasAndCasing(t *testing.T) {
	f := newFixture(t, down)

	res, err := f.gw.Execute(context.Background(), mustOp(t, "orders.update_payment_status"), Call{
		PathParams: map[string]string{"id": "5"},
		Body:       []byte(`{"status":"REFUNDED"}`),
		Identity:   authed,
	})
	require.NoError(t, err)
	order := res.Data.(map[string]any)["order"].(map[string]any)
	assert.Equal(t, "refunded", order["payment_status"])
	assert.NotContains(t, order, "status")
}

func TestUnknownQueryParamsDropped(t *testing.T) {
	f := newFixture(t, down)
	op := mustOp(t, "users.list")

	a, err := f.gw.CacheKey(op, Call{Query: map[string]string{"role": "Admin", "utm": "x"}})
	require.NoError(t, err)
	b, err := f.gw.CacheKey(op, Call{Query: map[string]string{"role": "admin"}})
	require.NoError(t, err)
	assert.Equal(t, a, b)

	candidates, err := f.gw.Candidates(op, Call{Query: map[string]string{"role": "admin", "utm": "x"}})
	require.NoError(t, err)
	for _, c := range candidates {
		assert.True(t, strings.HasSuffix(c, "?role=admin"), c)
	}
}

func TestEndToEndWithForwarder(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if r.URL.Path != "/api/orders" {
			http.Error(w, "gone", http.StatusServiceUnavailable)
			return
		}
		assert.Equal(t, "req-9", r.Header.Get(HeaderRequestID))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":1,"status":"READY","items":null}]}`))
	}))
	defer srv.Close()

	store, err := cache.NewSQLiteStore(t.TempDir() + "/cache.db")
	require.NoError(t, err)
	c := cache.New(store)
	defer c.Close()

	r, err := endpoint.NewResolver(srv.URL+"/api/v1/api/v1", endpoint.DefaultAPIPrefix)
	require.NoError(t, err)
	gw := New(c, r, forwarder.New(), synth.New(1))

	call := ordersCall()
	call.RequestID = "req-9"
	res, err := gw.Execute(context.Background(), mustOp(t, "orders.list"), call)
	require.NoError(t, err)
	assert.Equal(t, LevelGenuine, res.Level)
	assert.Equal(t, 2, hits)
	assert.Equal(t, srv.URL+"/api/v1/orders?end_date=2025-01-31&start_date=2025-01-01", res.Attempts[0].Address)

	rec := res.Data.([]any)[0].(map[string]any)
	assert.Equal(t, "ready", rec["status"])
	assert.Equal(t, []any{}, rec["items"])
}

func TestAttemptTimeoutOverride(t *testing.T) {
	f := newFixture(t, func(int, forwarder.Request) forwarder.Outcome { return ok(`[]`) })
	f.gw = New(f.cache, f.gw.resolver, f.sender, f.gw.generator, WithAttemptTimeout(12*time.Second))

	_, err := f.gw.Execute(context.Background(), mustOp(t, "orders.list"), ordersCall())
	require.NoError(t, err)
	require.Equal(t, 1, f.sender.count())
	assert.Equal(t, 12*time.Second, f.sender.calls[0].Timeout)
}
