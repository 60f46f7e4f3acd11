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

package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultHit     = "hit"
	resultMiss    = "miss"
	resultExpired = "expired"
	resultStale   = "stale"
	resultError   = "error"
	resultOK      = "ok"
)

var (
	lookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_cache_lookups_total",
			Help: "Total number of cache lookups by result",
		},
		[]string{"result"},
	)

	writes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_cache_writes_total",
			Help: "Total number of cache writes by result",
		},
		[]string{"result"},
	)

	invalidations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gateway_cache_invalidations_total",
			Help: "Total number of cache invalidation calls",
		},
	)
)
