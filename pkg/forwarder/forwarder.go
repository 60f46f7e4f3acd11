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

package forwarder

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/NVIDIA/restaurant-gateway/pkg/defaults"
)

const (
	DefaultUserAgent           = "Restaurant-Gateway/1.0"
	DefaultMaxIdleConns        = 100
	DefaultMaxIdleConnsPerHost = 10
)

// maxRedirects matches the net/http default.
const maxRedirects = 10

// Option configures a Forwarder.
type Option func(*Forwarder)

// Forwarder sends requests to upstream candidates.
type Forwarder struct {
	userAgent        string
	upstreamHost     string
	insecureUpstream bool
	maxBodyBytes     int64

	strict  *http.Client
	relaxed *http.Client
}

// WithUserAgent sets the User-Agent used when the caller supplies none.
func WithUserAgent(ua string) Option {
	return func(f *Forwarder) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithUpstreamHost declares the upstream host (host[:port]) that may use
// relaxed TLS verification.
func WithUpstreamHost(host string) Option {
	return func(f *Forwarder) {
		f.upstreamHost = strings.ToLower(host)
	}
}

// WithInsecureUpstream skips certificate verification for the declared upstream host.
func WithInsecureUpstream(insecure bool) Option {
	return func(f *Forwarder) {
		f.insecureUpstream = insecure
	}
}

// WithMaxBodyBytes bounds how much of a response body is read.
func WithMaxBodyBytes(n int64) Option {
	return func(f *Forwarder) {
		if n > 0 {
			f.maxBodyBytes = n
		}
	}
}

// WithClient replaces the strict client, mainly for tests.
func WithClient(c *http.Client) Option {
	return func(f *Forwarder) {
		if c != nil {
			f.strict = c
		}
	}
}

// New creates a Forwarder with pooled transports.
func New(opts ...Option) *Forwarder {
	f := &Forwarder{
		userAgent:    DefaultUserAgent,
		maxBodyBytes: defaults.UpstreamMaxResponseBytes,
		strict:       &http.Client{Transport: newTransport(false)},
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.insecureUpstream && f.upstreamHost != "" {
		f.relaxed = &http.Client{Transport: newTransport(true), CheckRedirect: f.checkRelaxedRedirect}
	}
	return f
}

// checkRelaxedRedirect keeps the unverified transport on the upstream host.
// A redirect elsewhere is not followed and its 3xx is returned as is.
func (f *Forwarder) checkRelaxedRedirect(req *http.Request, via []*http.Request) error {
	if !strings.EqualFold(req.URL.Host, f.upstreamHost) {
		slog.Warn("refusing redirect away from upstream host", "from", via[len(via)-1].URL.Host, "to", req.URL.Host)
		return http.ErrUseLastResponse
	}
	if len(via) >= maxRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRedirects)
	}
	return nil
}

func newTransport(insecure bool) *http.Transport {
	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        DefaultMaxIdleConns,
		MaxIdleConnsPerHost: DefaultMaxIdleConnsPerHost,

		DialContext: (&net.Dialer{
			Timeout:   defaults.HTTPConnectTimeout,
			KeepAlive: defaults.HTTPKeepAlive,
		}).DialContext,
		TLSHandshakeTimeout:   defaults.HTTPTLSHandshakeTimeout,
		ResponseHeaderTimeout: defaults.HTTPResponseHeaderTimeout,
		ExpectContinueTimeout: defaults.HTTPExpectContinueTimeout,
		IdleConnTimeout:       defaults.HTTPIdleConnTimeout,
		ForceAttemptHTTP2:     true,

		TLSClientConfig: &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: insecure, //nolint:gosec // limited to the declared upstream host
		},
	}
}

// ClampTimeout bounds d to the allowed upstream range. Zero selects the
// default read timeout.
func ClampTimeout(d time.Duration) time.Duration {
	switch {
	case d <= 0:
		return defaults.UpstreamReadTimeout
	case d < defaults.UpstreamMinTimeout:
		return defaults.UpstreamMinTimeout
	case d > defaults.UpstreamMaxTimeout:
		return defaults.UpstreamMaxTimeout
	default:
		return d
	}
}

// Send issues req and classifies the result.
func (f *Forwarder) Send(ctx context.Context, req Request) (out Outcome) {
	start := time.Now()
	out.Address = req.Address

	defer func() {
		if r := recover(); r != nil {
			out = Outcome{Kind: KindRetryable, Address: req.Address, Reason: fmt.Sprintf("panic: %v", r)}
		}
		out.Duration = time.Since(start)
		slog.Debug("upstream attempt",
			"method", req.Method,
			"address", req.Address,
			"kind", out.Kind,
			"status", out.Status,
			"reason", out.Reason,
			"duration", out.Duration)
	}()

	if ctx == nil {
		ctx = context.Background()
	}
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	u, err := url.Parse(req.Address)
	if err != nil || u.Host == "" {
		return retryable(req.Address, "invalid address")
	}

	attemptCtx, cancel := context.WithTimeout(ctx, ClampTimeout(req.Timeout))
	defer cancel()

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	hreq, err := http.NewRequestWithContext(attemptCtx, method, req.Address, body)
	if err != nil {
		return retryable(req.Address, fmt.Sprintf("failed to build request: %v", err))
	}
	f.applyHeaders(hreq, req)

	resp, err := f.clientFor(u.Host).Do(hreq)
	if err != nil {
		return retryable(req.Address, describe(err))
	}
	defer resp.Body.Close()

	out.Status = resp.StatusCode
	if resp.StatusCode == http.StatusUnauthorized {
		out.Kind = KindAuth
		out.Reason = "upstream rejected credentials"
		return out
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain a little so the connection can be reused
		_, _ = io.CopyN(io.Discard, resp.Body, 4<<10)
		out.Kind = KindRetryable
		out.Reason = "status " + resp.Status
		return out
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes+1))
	if err != nil {
		out.Kind = KindRetryable
		out.Reason = describe(err)
		return out
	}
	if int64(len(data)) > f.maxBodyBytes {
		out.Kind = KindRetryable
		out.Reason = fmt.Sprintf("response exceeds %d bytes", f.maxBodyBytes)
		return out
	}

	out.Kind = KindSuccess
	out.Body = data
	return out
}

func (f *Forwarder) clientFor(host string) *http.Client {
	if f.relaxed != nil && strings.EqualFold(host, f.upstreamHost) {
		return f.relaxed
	}
	return f.strict
}

func (f *Forwarder) applyHeaders(hreq *http.Request, req Request) {
	for _, name := range propagatedHeaders {
		if v := req.Headers.Get(name); v != "" {
			hreq.Header.Set(name, v)
		}
	}
	if hreq.Header.Get("Accept") == "" {
		hreq.Header.Set("Accept", "application/json")
	}
	if len(req.Body) > 0 && hreq.Header.Get("Content-Type") == "" {
		hreq.Header.Set("Content-Type", "application/json")
	}
	if hreq.Header.Get("User-Agent") == "" {
		hreq.Header.Set("User-Agent", f.userAgent)
	}
}

func retryable(addr, reason string) Outcome {
	return Outcome{Kind: KindRetryable, Address: addr, Reason: reason}
}

func describe(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	if errors.Is(err, context.Canceled) {
		return "cancelled"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timeout"
	}
	return "network error: " + err.Error()
}
