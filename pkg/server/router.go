// Copyright (c) 2025, The metrics-agent Authors.  All rights reserved.
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
	"slices"
	"time"

	"github.com/byteload/metrics-agent/pkg/errors"
	"github.com/byteload/metrics-agent/pkg/serializer"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	rootPattern = "/"

	// exactRootPattern matches "/" only, leaving other paths to the 404
	// handler.
	exactRootPattern = "/{$}"
)

func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	// System endpoints (no middleware)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.Handle("/metrics", promhttp.Handler())

	// API endpoints with middleware
	for pattern, handler := range s.config.Handlers {
		if pattern == rootPattern {
			pattern = exactRootPattern
		}
		mux.HandleFunc(pattern, s.withMiddleware(handler))
	}

	// Everything else
	mux.HandleFunc(rootPattern, s.withMiddleware(s.handleNotFound))

	return mux
}

// routes lists the registered API patterns in sorted order.
func (s *Server) routes() []string {
	res := make([]string, 0, len(s.config.Handlers))
	for pattern := range s.config.Handlers {
		res = append(res, pattern)
	}
	slices.Sort(res)
	return res
}

// handleDefault describes the server when no root handler is registered.
func (s *Server) handleDefault(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		WriteError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{"method": r.Method})
		return
	}

	slog.Debug("handling default route",
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr,
		"user_agent", r.UserAgent(),
	)

	resp := struct {
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
		Routes:    s.routes(),
	}

	serializer.RespondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	err := errors.NewWithContext(errors.ErrCodeNotFound, "Not found", map[string]any{
		"path": r.URL.Path,
	})
	WriteErrorFromErr(w, r, err, "Not found", nil)
}
