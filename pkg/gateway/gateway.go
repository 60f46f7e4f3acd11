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
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/NVIDIA/restaurant-gateway/pkg/cache"
	"github.com/NVIDIA/restaurant-gateway/pkg/defaults"
	"github.com/NVIDIA/restaurant-gateway/pkg/endpoint"
	"github.com/NVIDIA/restaurant-gateway/pkg/errors"
	"github.com/NVIDIA/restaurant-gateway/pkg/forwarder"
	"github.com/NVIDIA/restaurant-gateway/pkg/synth"
)

// HeaderRequestID is propagated to the upstream on every attempt.
const HeaderRequestID = "X-Request-Id"

// Option configures a Gateway.
type Option func(*Gateway)

// WithClock overrides the time source used for echoes.
func WithClock(now func() time.Time) Option {
	return func(g *Gateway) {
		if now != nil {
			g.now = now
		}
	}
}

// WithBudget bounds the total time spent walking candidates.
func WithBudget(d time.Duration) Option {
	return func(g *Gateway) {
		if d > 0 {
			g.budget = d
		}
	}
}

// WithAttemptTimeout replaces every operation's per-attempt timeout. The
// forwarder still clamps it to its allowed range.
func WithAttemptTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		if d > 0 {
			g.attemptTimeout = d
		}
	}
}

// Gateway executes operations against the upstream with cache and
// synthetic fallback. It holds no per-request state.
type Gateway struct {
	cache     *cache.Cache
	resolver  *endpoint.Resolver
	sender    Sender
	generator *synth.Generator
	now       func() time.Time
	budget    time.Duration

	attemptTimeout time.Duration
}

// New creates a Gateway. All collaborators are required.
func New(c *cache.Cache, r *endpoint.Resolver, s Sender, gen *synth.Generator, opts ...Option) *Gateway {
	g := &Gateway{
		cache:     c,
		resolver:  r,
		sender:    s,
		generator: gen,
		now:       time.Now,
		budget:    defaults.CascadeBudget,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Resolver returns the endpoint resolver in use.
func (g *Gateway) Resolver() *endpoint.Resolver {
	return g.resolver
}

// Candidates returns the upstream addresses op would try for call.
func (g *Gateway) Candidates(op Operation, call Call) ([]string, error) {
	return Candidates(g.resolver, op, call)
}

// CacheKey returns the cache key op uses for call.
func (g *Gateway) CacheKey(op Operation, call Call) (string, error) {
	return CacheKey(op, call)
}

// Candidates validates call and resolves the candidate list with r.
func Candidates(r *endpoint.Resolver, op Operation, call Call) ([]string, error) {
	req, err := validate(op, call)
	if err != nil {
		return nil, err
	}
	return r.Resolve(op.Route, req.path, toValues(req.query))
}

// CacheKey validates call and returns the key its read is cached under.
func CacheKey(op Operation, call Call) (string, error) {
	req, err := validate(op, call)
	if err != nil {
		return "", err
	}
	return cacheKey(op, call, req), nil
}

// Execute runs the full policy for op. Only INVALID_REQUEST and UNAUTHORIZED
// errors are returned; every other condition degrades to a Result.
func (g *Gateway) Execute(ctx context.Context, op Operation, call Call) (*Result, error) {
	if op.RequiresAuth && !call.Identity.HasCredential() {
		authFailures.WithLabelValues(op.Name).Inc()
		return nil, errors.NewWithContext(errors.ErrCodeUnauthorized, "authorization required", map[string]any{
			"operation": op.Name,
		})
	}
	req, err := validate(op, call)
	if err != nil {
		return nil, err
	}

	var res *Result
	if op.IsRead() {
		res, err = g.read(ctx, op, call, req)
	} else {
		res, err = g.mutate(ctx, op, call, req)
	}
	if err != nil {
		return nil, err
	}
	responsesTotal.WithLabelValues(op.Name, string(res.Level)).Inc()
	return res, nil
}

func (g *Gateway) read(ctx context.Context, op Operation, call Call, req request) (*Result, error) {
	key := cacheKey(op, call, req)
	res := &Result{Operation: op.Name, Attempts: []Attempt{}}

	if data, ok := g.cache.Get(ctx, key, op.TTL); ok {
		if v, err := decode(data); err == nil {
			res.Level = LevelGenuine
			res.CacheHit = true
			res.Data = v
			return res, nil
		}
	}

	cr, err := g.cascade(ctx, op, call, req, readClassifier(op), nil)
	if err != nil {
		return nil, err
	}
	res.Attempts = cr.Attempts

	switch cr.Decision {
	case Accept:
		v, err := Normalize(op, cr.Outcome.Body)
		if err == nil {
			res.Level = LevelGenuine
			res.Data = v
			g.store(ctx, key, v)
			return res, nil
		}
		// unreachable with readClassifier, degrade anyway
		slog.Warn("accepted upstream body failed normalization", "operation", op.Name, "error", err)
	case Abort:
		return nil, unauthorized(op, cr)
	}

	fctx, cancel := fallbackContext(ctx)
	defer cancel()

	if data, ok := g.cache.GetStale(fctx, key); ok {
		if v, err := decode(data); err == nil {
			slog.Warn("serving stale cache entry",
				"operation", op.Name, "key", key, "attempts", len(cr.Attempts))
			res.Level = LevelStaleCache
			res.CacheHit = true
			res.Data = v
			return res, nil
		}
	}

	v, err := g.synthesize(op, call, req)
	if err != nil {
		return nil, err
	}
	slog.Warn("serving synthetic data",
		"operation", op.Name, "attempts", len(cr.Attempts))
	res.Level = LevelSynthetic
	res.Data = v
	return res, nil
}

func (g *Gateway) mutate(ctx context.Context, op Operation, call Call, req request) (*Result, error) {
	outbound := cloneBody(req.body)
	if op.UpperCaseStatus {
		UpperCaseStatus(outbound)
	}
	payload, err := json.Marshal(outbound)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "failed to encode request body", err)
	}
	if op.Method == http.MethodDelete && len(req.body) == 0 {
		payload = nil
	}

	cr, err := g.cascade(ctx, op, call, req, MutationClassifier, payload)
	if err != nil {
		return nil, err
	}
	if cr.Decision == Abort {
		return nil, unauthorized(op, cr)
	}

	g.invalidate(ctx, op)

	ok := cr.Decision == Accept
	resource := g.echo(op, call, req)
	if ok {
		resource = mergeWriteResult(op, resource, cr.Outcome.Body)
	} else {
		slog.Warn("upstream write failed on every candidate, returning local echo",
			"operation", op.Name, "attempts", len(cr.Attempts))
	}

	level := LevelGenuine
	if !ok {
		level = LevelSynthetic
	}
	return &Result{
		Operation:      op.Name,
		Level:          level,
		BackendSuccess: &ok,
		Attempts:       cr.Attempts,
		Data: map[string]any{
			"success":         true,
			"backend_success": ok,
			op.Resource:       resource,
		},
	}, nil
}

func (g *Gateway) cascade(ctx context.Context, op Operation, call Call, req request, classify Classifier, body []byte) (CascadeResult, error) {
	candidates, err := g.resolver.Resolve(op.Route, req.path, toValues(req.query))
	if err != nil {
		return CascadeResult{}, err
	}

	headers := http.Header{}
	call.Identity.Apply(headers)
	if call.RequestID != "" {
		headers.Set(HeaderRequestID, call.RequestID)
	}

	timeout := op.Timeout
	if g.attemptTimeout > 0 {
		timeout = g.attemptTimeout
	}

	cctx, cancel := context.WithTimeout(ctx, g.budget)
	defer cancel()

	start := time.Now()
	cr := Cascade{Sender: g.sender, Classify: classify}.Run(cctx, candidates, func(addr string) forwarder.Request {
		return forwarder.Request{
			Address: addr,
			Method:  op.Method,
			Body:    body,
			Headers: headers,
			Timeout: timeout,
		}
	})
	cascadeDuration.WithLabelValues(op.Name).Observe(time.Since(start).Seconds())
	observeAttempts(op.Name, cr.Attempts)

	slog.Debug("cascade finished",
		"operation", op.Name,
		"decision", cr.Decision.String(),
		"attempts", len(cr.Attempts),
		"candidates", len(candidates))
	return cr, nil
}

func (g *Gateway) invalidate(ctx context.Context, op Operation) {
	fctx, cancel := fallbackContext(ctx)
	defer cancel()

	for _, prefix := range op.Invalidates {
		if err := g.cache.InvalidatePrefix(fctx, prefix); err != nil {
			slog.Error("cache invalidation failed", "operation", op.Name, "prefix", prefix, "error", err)
		}
	}
}

func (g *Gateway) store(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to encode response for cache", "key", key, "error", err)
		return
	}
	fctx, cancel := fallbackContext(ctx)
	defer cancel()
	if err := g.cache.Set(fctx, key, b); err != nil {
		slog.Error("failed to write cache entry", "key", key, "error", err)
	}
}

func (g *Gateway) synthesize(op Operation, call Call, req request) (any, error) {
	seeds := req.params()
	if op.IdentityScoped && call.Identity.UserID != "" {
		switch op.Synth {
		case synth.KindWaiterOrders:
			seeds[synth.ParamWaiterID] = call.Identity.UserID
		case synth.KindReservations:
			seeds[synth.ParamUserID] = call.Identity.UserID
		}
	}

	records, err := g.generator.Generate(op.Synth, seeds)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "synthetic generation failed", err)
	}
	b, err := json.Marshal(records)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to encode synthetic data", err)
	}
	return decode(b)
}

func (g *Gateway) echo(op Operation, call Call, req request) map[string]any {
	if op.Echo == nil {
		return withID(cloneBody(req.body), call)
	}
	return op.Echo(call, req.body, g.now())
}

func readClassifier(op Operation) Classifier {
	return func(o forwarder.Outcome) Decision {
		d := DefaultClassifier(o)
		if d != Accept {
			return d
		}
		if _, err := Normalize(op, o.Body); err != nil {
			slog.Debug("upstream body has unexpected shape", "operation", op.Name, "address", o.Address, "error", err)
			return Next
		}
		return Accept
	}
}

func cacheKey(op Operation, call Call, req request) string {
	identity := ""
	if op.IdentityScoped {
		identity = call.Identity.CacheScope()
	}
	return cache.Key(op.Name, req.params(), identity)
}

func unauthorized(op Operation, cr CascadeResult) error {
	authFailures.WithLabelValues(op.Name).Inc()
	ctx := map[string]any{"operation": op.Name, "attempts": len(cr.Attempts)}
	if cr.Outcome != nil {
		ctx["address"] = cr.Outcome.Address
	}
	return errors.NewWithContext(errors.ErrCodeUnauthorized, "upstream rejected credentials", ctx)
}

// fallbackContext detaches from the caller so cache work still completes
// after the cascade consumed the request deadline.
func fallbackContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), defaults.FallbackTimeout)
}

func toValues(m map[string]string) url.Values {
	if len(m) == 0 {
		return nil
	}
	v := url.Values{}
	for k, val := range m {
		v.Set(k, val)
	}
	return v
}

func decode(b []byte) (any, error) {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return v, nil
}

