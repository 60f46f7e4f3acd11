package forwarder

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/NVIDIA/restaurant-gateway/pkg/defaults"
)

func TestClampTimeout(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want time.Duration
	}{
		{"zero uses default", 0, defaults.UpstreamReadTimeout},
		{"negative uses default", -time.Second, defaults.UpstreamReadTimeout},
		{"below minimum", time.Second, defaults.UpstreamMinTimeout},
		{"within range", 7 * time.Second, 7 * time.Second},
		{"above maximum", time.Minute, defaults.UpstreamMaxTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampTimeout(tt.in); got != tt.want {
				t.Errorf("ClampTimeout(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSendClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind Kind
	}{
		{"ok", http.StatusOK, `[{"id":1}]`, KindSuccess},
		{"created", http.StatusCreated, `{"id":9}`, KindSuccess},
		{"no content", http.StatusNoContent, ``, KindSuccess},
		{"unauthorized", http.StatusUnauthorized, `{"detail":"bad token"}`, KindAuth},
		{"forbidden is retryable", http.StatusForbidden, ``, KindRetryable},
		{"not found is retryable", http.StatusNotFound, ``, KindRetryable},
		{"server error", http.StatusInternalServerError, `oops`, KindRetryable},
		{"bad gateway", http.StatusBadGateway, ``, KindRetryable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			out := New().Send(context.Background(), Request{Address: srv.URL + "/orders", Method: http.MethodGet})
			if out.Kind != tt.wantKind {
				t.Fatalf("kind = %s, want %s (reason %q)", out.Kind, tt.wantKind, out.Reason)
			}
			if out.Status != tt.status {
				t.Errorf("status = %d, want %d", out.Status, tt.status)
			}
			if tt.wantKind == KindSuccess && string(out.Body) != tt.body {
				t.Errorf("body = %q, want %q", out.Body, tt.body)
			}
			if out.Address != srv.URL+"/orders" {
				t.Errorf("address = %q", out.Address)
			}
		})
	}
}

func TestSendNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	out := New().Send(context.Background(), Request{Address: addr + "/orders"})
	if out.Kind != KindRetryable {
		t.Fatalf("kind = %s, want retryable", out.Kind)
	}
	if !strings.HasPrefix(out.Reason, "network error") {
		t.Errorf("reason = %q, want network error", out.Reason)
	}
}

func TestSendInvalidAddress(t *testing.T) {
	for _, addr := range []string{"", "not a url", "http://"} {
		out := New().Send(context.Background(), Request{Address: addr})
		if out.Kind != KindRetryable {
			t.Errorf("Send(%q) kind = %s, want retryable", addr, out.Kind)
		}
	}
}

func TestSendTimeoutCancelsAttempt(t *testing.T) {
	cancelled := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
			close(cancelled)
		case <-time.After(3 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	out := New().Send(ctx, Request{Address: srv.URL, Timeout: defaults.UpstreamMinTimeout})
	if out.Kind != KindRetryable || out.Reason != "timeout" {
		t.Fatalf("got %s/%q, want retryable/timeout", out.Kind, out.Reason)
	}
	if time.Since(start) > 2*time.Second {
		t.Errorf("attempt was not cancelled promptly")
	}

	select {
	case <-cancelled:
	case <-time.After(2 * time.Second):
		t.Error("upstream did not observe cancellation")
	}

	// a fresh attempt is not affected by the previous cancellation
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	}))
	defer ok.Close()

	if out := New().Send(context.Background(), Request{Address: ok.URL}); out.Kind != KindSuccess {
		t.Errorf("next attempt kind = %s, want success", out.Kind)
	}
}

func TestSendPropagatesHeaders(t *testing.T) {
	var got http.Header
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	h := http.Header{}
	h.Set("Authorization", "Bearer tok")
	h.Set("X-User-ID", "17")
	h.Set("X-User-Role", "waiter")
	h.Set("X-Request-Id", "req-1")
	h.Set("Cookie", "session=secret")

	out := New(WithUserAgent("test-agent")).Send(context.Background(), Request{
		Address: srv.URL,
		Method:  http.MethodPatch,
		Body:    []byte(`{"status":"PAID"}`),
		Headers: h,
	})
	if out.Kind != KindSuccess {
		t.Fatalf("kind = %s, reason %q", out.Kind, out.Reason)
	}

	want := map[string]string{
		"Authorization": "Bearer tok",
		"X-User-Id":     "17",
		"X-User-Role":   "waiter",
		"X-Request-Id":  "req-1",
		"Content-Type":  "application/json",
		"Accept":        "application/json",
		"User-Agent":    "test-agent",
	}
	for k, v := range want {
		if got.Get(k) != v {
			t.Errorf("header %s = %q, want %q", k, got.Get(k), v)
		}
	}
	if got.Get("Cookie") != "" {
		t.Error("non-allowlisted header was forwarded")
	}
	if gotBody != `{"status":"PAID"}` {
		t.Errorf("body = %q", gotBody)
	}
}

func TestSendBoundedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, strings.Repeat("x", 64))
	}))
	defer srv.Close()

	out := New(WithMaxBodyBytes(16)).Send(context.Background(), Request{Address: srv.URL})
	if out.Kind != KindRetryable {
		t.Fatalf("kind = %s, want retryable for oversized body", out.Kind)
	}

	out = New(WithMaxBodyBytes(64)).Send(context.Background(), Request{Address: srv.URL})
	if out.Kind != KindSuccess {
		t.Fatalf("kind = %s, want success at the limit", out.Kind)
	}
}

func TestRelaxedTLSOnlyForUpstreamHost(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	})
	upstream := httptest.NewTLSServer(handler)
	defer upstream.Close()
	thirdParty := httptest.NewTLSServer(handler)
	defer thirdParty.Close()

	host := strings.TrimPrefix(upstream.URL, "https://")
	f := New(WithUpstreamHost(host), WithInsecureUpstream(true))

	if out := f.Send(context.Background(), Request{Address: upstream.URL}); out.Kind != KindSuccess {
		t.Errorf("upstream host: kind = %s, reason %q", out.Kind, out.Reason)
	}
	if out := f.Send(context.Background(), Request{Address: thirdParty.URL}); out.Kind != KindRetryable {
		t.Errorf("third-party host: kind = %s, want retryable certificate failure", out.Kind)
	}

	strict := New(WithUpstreamHost(host))
	if out := strict.Send(context.Background(), Request{Address: upstream.URL}); out.Kind != KindRetryable {
		t.Errorf("strict mode: kind = %s, want retryable certificate failure", out.Kind)
	}
}

func TestRelaxedClientRefusesCrossHostRedirect(t *testing.T) {
	thirdParty := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"from":"third-party"}`)
	}))
	defer thirdParty.Close()

	upstream := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/moved" {
			http.Redirect(w, r, "/orders", http.StatusFound)
			return
		}
		if r.URL.Path == "/orders" {
			_, _ = io.WriteString(w, `{"from":"upstream"}`)
			return
		}
		http.Redirect(w, r, thirdParty.URL+"/steal", http.StatusFound)
	}))
	defer upstream.Close()

	host := strings.TrimPrefix(upstream.URL, "https://")
	f := New(WithUpstreamHost(host), WithInsecureUpstream(true))

	out := f.Send(context.Background(), Request{Address: upstream.URL + "/away"})
	if out.Kind != KindRetryable {
		t.Fatalf("kind = %s, want retryable for a redirect off the upstream host", out.Kind)
	}
	if out.Status != http.StatusFound {
		t.Errorf("status = %d, want the unfollowed 302", out.Status)
	}
	if strings.Contains(string(out.Body), "third-party") {
		t.Errorf("body from the redirect target leaked: %s", out.Body)
	}

	out = f.Send(context.Background(), Request{Address: upstream.URL + "/moved"})
	if out.Kind != KindSuccess || !strings.Contains(string(out.Body), "upstream") {
		t.Errorf("same-host redirect: kind = %s, body %s", out.Kind, out.Body)
	}
}

func TestSendRecordsDuration(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(20 * time.Millisecond)
	}))
	defer srv.Close()

	out := New().Send(context.Background(), Request{Address: srv.URL})
	if out.Duration < 20*time.Millisecond {
		t.Errorf("duration = %v, want >= 20ms", out.Duration)
	}
}
