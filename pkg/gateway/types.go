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
	"time"

	"github.com/NVIDIA/restaurant-gateway/pkg/domain"
	"github.com/NVIDIA/restaurant-gateway/pkg/endpoint"
	"github.com/NVIDIA/restaurant-gateway/pkg/forwarder"
	"github.com/NVIDIA/restaurant-gateway/pkg/synth"
)

// Kind distinguishes read from mutating operations.
type Kind string

const (
	KindRead   Kind = "read"
	KindMutate Kind = "mutate"
)

// Shape is the normalized payload shape of a read.
type Shape string

const (
	ShapeList   Shape = "list"
	ShapeObject Shape = "object"
)

// Level is the degradation level of a Result.
type Level string

const (
	LevelGenuine    Level = "genuine"
	LevelStaleCache Level = "stale-cache"
	LevelSynthetic  Level = "synthetic"
)

// EchoFunc builds the locally fabricated resource returned for a mutation.
type EchoFunc func(call Call, body map[string]any, now time.Time) map[string]any

// Operation describes one logical gateway operation. Values are immutable
// and live in the static registry.
type Operation struct {
	Name    string `json:"name" yaml:"name"`
	Pattern string `json:"pattern" yaml:"pattern"` // client-facing METHOD /path
	Method  string `json:"method" yaml:"method"`   // upstream method
	Kind    Kind   `json:"kind" yaml:"kind"`
	Shape   Shape  `json:"shape,omitempty" yaml:"shape,omitempty"`

	Route    endpoint.Route `json:"-" yaml:"-"`
	Resource string         `json:"resource" yaml:"resource"`
	// Collection is an extra list wrapper key some upstreams use, e.g. {"orders": [...]}.
	Collection string     `json:"-" yaml:"-"`
	Synth      synth.Kind `json:"-" yaml:"-"`

	TTL     time.Duration `json:"ttl,omitempty" yaml:"ttl,omitempty"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	IdentityScoped  bool     `json:"identityScoped" yaml:"identityScoped"`
	RequiresAuth    bool     `json:"requiresAuth" yaml:"requiresAuth"`
	Invalidates     []string `json:"invalidates,omitempty" yaml:"invalidates,omitempty"`
	UpperCaseStatus bool     `json:"upperCaseStatus,omitempty" yaml:"upperCaseStatus,omitempty"`

	PathParams []string       `json:"-" yaml:"-"`
	Query      []string       `json:"query,omitempty" yaml:"query,omitempty"`
	Required   []string       `json:"required,omitempty" yaml:"required,omitempty"`
	Defaults   map[string]any `json:"-" yaml:"-"`

	// StatusField is the body field carrying the new status of a status update.
	StatusField string `json:"-" yaml:"-"`
	// StatusValid checks status filters and status updates.
	StatusValid func(string) bool `json:"-" yaml:"-"`

	Echo EchoFunc `json:"-" yaml:"-"`
}

// IsRead reports whether op is a read.
func (op Operation) IsRead() bool {
	return op.Kind == KindRead
}

// Call is a single invocation of an Operation.
type Call struct {
	PathParams map[string]string
	Query      map[string]string
	Body       []byte
	Identity   domain.Identity
	RequestID  string
}

// Attempt records one candidate tried by the cascade.
type Attempt struct {
	Address  string         `json:"address" yaml:"address"`
	Kind     forwarder.Kind `json:"kind" yaml:"kind"`
	Status   int            `json:"status,omitempty" yaml:"status,omitempty"`
	Reason   string         `json:"reason,omitempty" yaml:"reason,omitempty"`
	Duration time.Duration  `json:"duration" yaml:"duration"`
}

// Result is the outcome of Execute.
type Result struct {
	Operation      string    `json:"operation" yaml:"operation"`
	Level          Level     `json:"level" yaml:"level"`
	CacheHit       bool      `json:"cacheHit" yaml:"cacheHit"`
	BackendSuccess *bool     `json:"backendSuccess,omitempty" yaml:"backendSuccess,omitempty"`
	Attempts       []Attempt `json:"attempts" yaml:"attempts"`
	Data           any       `json:"data" yaml:"data"`
}
