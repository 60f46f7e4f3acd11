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

package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

func newTestServer(mutate func(*Config)) *Server {
	cfg := NewConfig()
	if mutate != nil {
		mutate(cfg)
	}
	return &Server{
		config:      cfg,
		rateLimiter: rate.NewLimiter(cfg.RateLimit, cfg.RateLimitBurst),
	}
}

func ok(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRequestIDMiddleware_Cases(t *testing.T) {
	valid := uuid.NewString()

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"absent", "", false},
		{"valid uuid kept", valid, true},
		{"invalid replaced", "order-42", false},
	}

	s := newTestServer(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			h := s.requestIDMiddleware(func(w http.ResponseWriter, r *http.Request) {
				seen = RequestIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
			if tt.incoming != "" {
				req.Header.Set(HeaderRequestID, tt.incoming)
			}
			rec := httptest.NewRecorder()
			h(rec, req)

			if _, err := uuid.Parse(seen); err != nil {
				t.Fatalf("request id %q is not a uuid", seen)
			}
			if tt.keep && seen != tt.incoming {
				t.Errorf("request id = %s, want %s", seen, tt.incoming)
			}
			if !tt.keep && seen == tt.incoming {
				t.Errorf("request id %q should have been replaced", seen)
			}
			if got := rec.Header().Get(HeaderRequestID); got != seen {
				t.Errorf("response header = %s, want %s", got, seen)
			}
		})
	}
}

func TestVersionMiddleware_NegotiatesFromAccept(t *testing.T) {
	s := newTestServer(nil)

	var seen string
	h := s.versionMiddleware(func(w http.ResponseWriter, r *http.Request) {
		seen = APIVersionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/menu", nil)
	req.Header.Set("Accept", "text/html, application/vnd.restaurant.gateway.v1+json")
	rec := httptest.NewRecorder()
	h(rec, req)

	if seen != "v1" {
		t.Errorf("context version = %q, want v1", seen)
	}
	if got := rec.Header().Get(HeaderAPIVersion); got != "v1" {
		t.Errorf("%s = %q, want v1", HeaderAPIVersion, got)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("allows and reports budget", func(t *testing.T) {
		s := newTestServer(nil)
		rec := httptest.NewRecorder()
		s.rateLimitMiddleware(ok)(rec, httptest.NewRequest(http.MethodGet, "/api/tables", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		for _, h := range []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"} {
			if rec.Header().Get(h) == "" {
				t.Errorf("expected %s header", h)
			}
		}
	})

	t.Run("rejects with envelope", func(t *testing.T) {
		s := newTestServer(nil)
		s.rateLimiter = rate.NewLimiter(0, 0)

		called := false
		rec := httptest.NewRecorder()
		s.rateLimitMiddleware(func(w http.ResponseWriter, _ *http.Request) {
			called = true
		})(rec, httptest.NewRequest(http.MethodGet, "/api/tables", nil))

		if called {
			t.Error("handler must not run when rate limited")
		}
		if rec.Code != http.StatusTooManyRequests {
			t.Fatalf("status = %d, want 429", rec.Code)
		}
		if rec.Header().Get("Retry-After") == "" {
			t.Error("expected Retry-After header")
		}

		var resp ErrorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid envelope: %v", err)
		}
		if resp.Code != "RATE_LIMIT_EXCEEDED" || !resp.Retryable {
			t.Errorf("envelope = %+v, want retryable RATE_LIMIT_EXCEEDED", resp)
		}
	})
}

func TestPanicRecoveryMiddleware(t *testing.T) {
	s := newTestServer(nil)

	rec := httptest.NewRecorder()
	s.panicRecoveryMiddleware(func(http.ResponseWriter, *http.Request) {
		panic("synthetic generator exploded")
	})(rec, httptest.NewRequest(http.MethodGet, "/api/orders", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}

	rec = httptest.NewRecorder()
	s.panicRecoveryMiddleware(ok)(rec, httptest.NewRequest(http.MethodGet, "/api/orders", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 for a handler that does not panic", rec.Code)
	}
}

func TestLoggingMiddleware_PreservesStatus(t *testing.T) {
	s := newTestServer(nil)

	for _, status := range []int{http.StatusOK, http.StatusBadRequest, http.StatusUnauthorized, http.StatusInternalServerError} {
		h := s.loggingMiddleware(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		})
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/api/users", nil))
		if rec.Code != status {
			t.Errorf("status = %d, want %d", rec.Code, status)
		}
	}
}

func TestBodyLimitMiddleware(t *testing.T) {
	s := newTestServer(func(c *Config) { c.MaxBodyBytes = 8 })

	var readErr error
	h := s.bodyLimitMiddleware(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	})

	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodPatch, "/api/orders/1/status", strings.NewReader(`{"status":"paid"}`)))
	if readErr == nil {
		t.Error("expected oversized body read to fail")
	}

	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodPatch, "/api/orders/1/status", strings.NewReader(`{}`)))
	if readErr != nil {
		t.Errorf("expected small body to be readable, got %v", readErr)
	}
}

func TestMiddlewareChain(t *testing.T) {
	s := newTestServer(nil)

	var requestID, apiVersion string
	h := s.withMiddleware(func(w http.ResponseWriter, r *http.Request) {
		requestID = RequestIDFromContext(r.Context())
		apiVersion = APIVersionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/api/reservations", nil))

	if requestID == "" || apiVersion == "" {
		t.Errorf("context values missing: requestID=%q apiVersion=%q", requestID, apiVersion)
	}
	for _, header := range []string{HeaderRequestID, "X-RateLimit-Limit", HeaderAPIVersion} {
		if rec.Header().Get(header) == "" {
			t.Errorf("expected header %s to be set", header)
		}
	}
}
