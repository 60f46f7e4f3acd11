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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	attemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_upstream_attempts_total",
			Help: "Total number of upstream candidate attempts by outcome",
		},
		[]string{"operation", "outcome"},
	)

	responsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_responses_total",
			Help: "Total number of gateway responses by degradation level",
		},
		[]string{"operation", "level"},
	)

	cascadeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_cascade_duration_seconds",
			Help:    "Time spent walking upstream candidates",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	authFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_auth_failures_total",
			Help: "Total number of requests rejected for missing or refused credentials",
		},
		[]string{"operation"},
	)
)

func observeAttempts(op string, attempts []Attempt) {
	for _, a := range attempts {
		attemptsTotal.WithLabelValues(op, string(a.Kind)).Inc()
	}
}
