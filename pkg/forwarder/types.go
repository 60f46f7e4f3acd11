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
	"net/http"
	"time"
)

// Kind classifies an Outcome.
type Kind string

const (
	KindSuccess   Kind = "success"
	KindRetryable Kind = "retryable"
	KindAuth      Kind = "auth"
)

// Request is one outbound call.
type Request struct {
	Address string
	Method  string
	Body    []byte
	Headers http.Header
	Timeout time.Duration
}

// Outcome is the classified result of a Request.
type Outcome struct {
	Kind     Kind          `json:"kind" yaml:"kind"`
	Address  string        `json:"address" yaml:"address"`
	Status   int           `json:"status,omitempty" yaml:"status,omitempty"`
	Body     []byte        `json:"-" yaml:"-"`
	Reason   string        `json:"reason,omitempty" yaml:"reason,omitempty"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// propagatedHeaders are copied from Request.Headers onto the outbound call.
var propagatedHeaders = []string{
	"Authorization",
	"X-User-ID",
	"X-User-Role",
	"X-Request-Id",
	"Content-Type",
	"Accept",
	"User-Agent",
}
