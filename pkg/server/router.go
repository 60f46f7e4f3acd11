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
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	gwerrors "github.com/NVIDIA/restaurant-gateway/pkg/errors"
	"github.com/NVIDIA/restaurant-gateway/pkg/serializer"
)

// systemRoutes are served without the API middleware chain.
var systemRoutes = []string{
	"GET /health",
	"GET /ready",
	"GET /metrics",
}

// setupRoutes registers system endpoints and every configured handler.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ready", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	for pattern, handler := range s.config.Handlers {
		mux.HandleFunc(pattern, s.withMiddleware(handler))
	}

	return s.corsMiddleware(mux)
}

// rootHandler lists the registered routes. Unknown paths fall through to
// it, so anything other than "/" is reported as not found.
func (s *Server) rootHandler(routes []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			WriteError(w, r, http.StatusNotFound, gwerrors.ErrCodeNotFound,
				"Route not found", false, map[string]any{"path": r.URL.Path})
			return
		}
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			WriteError(w, r, http.StatusMethodNotAllowed, gwerrors.ErrCodeMethodNotAllowed,
				"Method not allowed", false, map[string]any{"method": r.Method})
			return
		}

		slog.Debug("handling root route",
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)

		serializer.RespondJSON(w, http.StatusOK, struct {
			Name      string   `json:"name"`
			Version   string   `json:"version"`
			Ready     bool     `json:"ready"`
			Timestamp string   `json:"timestamp"`
			Routes    []string `json:"routes"`
		}{
			Name:      s.config.Name,
			Version:   s.config.Version,
			Ready:     s.isReady(),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Routes:    routes,
		})
	}
}

// routeList returns the sorted API patterns followed by system routes.
func routeList(handlers map[string]http.HandlerFunc) []string {
	routes := make([]string, 0, len(handlers)+len(systemRoutes))
	for pattern := range handlers {
		if pattern == "/" {
			continue
		}
		routes = append(routes, pattern)
	}
	sort.Strings(routes)
	return append(routes, systemRoutes...)
}
