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
	"bytes"
	"context"
	"encoding/json"

	"github.com/NVIDIA/restaurant-gateway/pkg/forwarder"
)

// Decision is what a Classifier wants the cascade to do with an Outcome.
type Decision int

const (
	// Next tries the following candidate.
	Next Decision = iota
	// Accept stops the cascade with this outcome as the answer.
	Accept
	// Abort stops the cascade without an answer and without fallback.
	Abort
)

func (d Decision) String() string {
	switch d {
	case Accept:
		return "accept"
	case Abort:
		return "abort"
	default:
		return "next"
	}
}

// Sender issues one outbound request.
type Sender interface {
	Send(ctx context.Context, req forwarder.Request) forwarder.Outcome
}

// Classifier maps an Outcome to a Decision.
type Classifier func(forwarder.Outcome) Decision

// DefaultClassifier accepts successes with an empty or JSON body, aborts on
// authorization failures and moves on for everything else.
func DefaultClassifier(o forwarder.Outcome) Decision {
	switch o.Kind {
	case forwarder.KindSuccess:
		body := bytes.TrimSpace(o.Body)
		if len(body) == 0 || json.Valid(body) {
			return Accept
		}
		return Next
	case forwarder.KindAuth:
		return Abort
	default:
		return Next
	}
}

// MutationClassifier accepts any 2xx whatever its body. The upstream has
// already applied the write, so trying another candidate would repeat it.
func MutationClassifier(o forwarder.Outcome) Decision {
	switch o.Kind {
	case forwarder.KindSuccess:
		return Accept
	case forwarder.KindAuth:
		return Abort
	default:
		return Next
	}
}

// Cascade tries candidates strictly one after another.
type Cascade struct {
	Sender   Sender
	Classify Classifier
}

// CascadeResult reports how a cascade ended. Outcome is set for Accept and
// Abort; Decision is Next when every candidate was exhausted.
type CascadeResult struct {
	Decision Decision
	Outcome  *forwarder.Outcome
	Attempts []Attempt
}

// Run sends build(addr) for each candidate in order until one is accepted or
// aborted. It stops early when ctx is done.
func (c Cascade) Run(ctx context.Context, candidates []string, build func(addr string) forwarder.Request) CascadeResult {
	classify := c.Classify
	if classify == nil {
		classify = DefaultClassifier
	}

	res := CascadeResult{Decision: Next, Attempts: make([]Attempt, 0, len(candidates))}
	for _, addr := range candidates {
		if ctx.Err() != nil {
			break
		}

		out := c.Sender.Send(ctx, build(addr))
		res.Attempts = append(res.Attempts, Attempt{
			Address:  out.Address,
			Kind:     out.Kind,
			Status:   out.Status,
			Reason:   out.Reason,
			Duration: out.Duration,
		})

		if d := classify(out); d != Next {
			res.Decision = d
			res.Outcome = &out
			return res
		}
	}
	return res
}
