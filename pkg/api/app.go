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

package api

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/NVIDIA/restaurant-gateway/pkg/cache"
	"github.com/NVIDIA/restaurant-gateway/pkg/config"
	"github.com/NVIDIA/restaurant-gateway/pkg/endpoint"
	"github.com/NVIDIA/restaurant-gateway/pkg/forwarder"
	"github.com/NVIDIA/restaurant-gateway/pkg/gateway"
	"github.com/NVIDIA/restaurant-gateway/pkg/synth"
	"github.com/NVIDIA/restaurant-gateway/pkg/version"
)

// App holds the assembled gateway and the resources it owns.
type App struct {
	Gateway   *gateway.Gateway
	Cache     *cache.Cache
	Resolver  *endpoint.Resolver
	Generator *synth.Generator
}

// Build assembles an App from cfg. Close must be called to release the
// cache store.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	resolver, err := endpoint.NewResolver(cfg.Upstream.BaseURL, cfg.Upstream.APIPrefix)
	if err != nil {
		return nil, err
	}

	c, err := cache.Open(ctx, cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s cache: %w", cfg.Cache.Backend, err)
	}

	fwd := forwarder.New(
		forwarder.WithUserAgent(fmt.Sprintf("%s/%s", name, version.Build().Version)),
		forwarder.WithUpstreamHost(resolver.Host()),
		forwarder.WithInsecureUpstream(cfg.Upstream.InsecureTLS),
	)
	gen := synth.New(cfg.SynthSeed)

	slog.Debug("gateway assembled",
		"upstream", resolver.Base(),
		"cache", cfg.Cache.Backend,
		"insecureTLS", cfg.Upstream.InsecureTLS,
		"attemptTimeout", cfg.Upstream.Timeout.String())

	return &App{
		Gateway:   gateway.New(c, resolver, fwd, gen, gateway.WithAttemptTimeout(cfg.Upstream.Timeout)),
		Cache:     c,
		Resolver:  resolver,
		Generator: gen,
	}, nil
}

// Close releases the cache store.
func (a *App) Close() error {
	if a == nil || a.Cache == nil {
		return nil
	}
	return a.Cache.Close()
}
