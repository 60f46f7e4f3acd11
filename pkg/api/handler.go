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
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/NVIDIA/restaurant-gateway/pkg/domain"
	gwerrors "github.com/NVIDIA/restaurant-gateway/pkg/errors"
	"github.com/NVIDIA/restaurant-gateway/pkg/gateway"
	"github.com/NVIDIA/restaurant-gateway/pkg/serializer"
	"github.com/NVIDIA/restaurant-gateway/pkg/server"
)

// Response headers describing how a result was produced.
const (
	HeaderDegradation = "X-Gateway-Degradation"
	HeaderCache       = "X-Gateway-Cache"
	HeaderAttempts    = "X-Gateway-Attempts"
)

// Routes returns one handler per registered operation, keyed by pattern.
func Routes(gw *gateway.Gateway) map[string]http.HandlerFunc {
	ops := gateway.Operations()
	routes := make(map[string]http.HandlerFunc, len(ops))
	for _, op := range ops {
		routes[op.Pattern] = handle(gw, op)
	}
	return routes
}

func handle(gw *gateway.Gateway, op gateway.Operation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		call, err := callFromRequest(op, r)
		if err != nil {
			server.WriteErrorFromErr(w, r, err, "invalid request", nil)
			return
		}

		res, err := gw.Execute(r.Context(), op, call)
		if err != nil {
			slog.Debug("operation rejected",
				"operation", op.Name,
				"requestID", call.RequestID,
				"code", gwerrors.CodeOf(err),
				"error", err)
			server.WriteErrorFromErr(w, r, err, "operation failed", map[string]any{
				"operation": op.Name,
			})
			return
		}

		writeResult(w, res)
	}
}

// callFromRequest maps an HTTP request onto a gateway call. Only the first
// value of each query parameter is used.
func callFromRequest(op gateway.Operation, r *http.Request) (gateway.Call, error) {
	call := gateway.Call{
		PathParams: make(map[string]string, len(op.PathParams)),
		Query:      make(map[string]string),
		Identity:   domain.IdentityFromRequest(r),
		RequestID:  server.RequestIDFromContext(r.Context()),
	}

	for _, name := range op.PathParams {
		call.PathParams[name] = r.PathValue(name)
	}
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			call.Query[k] = v[0]
		}
	}

	if !op.IsRead() && r.Body != nil {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return gateway.Call{}, gwerrors.Wrap(gwerrors.ErrCodeInvalidRequest, "request body could not be read", err)
		}
		call.Body = body
	}
	return call, nil
}

func writeResult(w http.ResponseWriter, res *gateway.Result) {
	h := w.Header()
	h.Set(HeaderDegradation, string(res.Level))
	h.Set(HeaderAttempts, strconv.Itoa(len(res.Attempts)))
	if res.CacheHit {
		h.Set(HeaderCache, "HIT")
	} else {
		h.Set(HeaderCache, "MISS")
	}
	if res.Level != gateway.LevelGenuine {
		h.Set("Cache-Control", "no-store")
	}

	serializer.RespondJSON(w, http.StatusOK, res.Data)
}
