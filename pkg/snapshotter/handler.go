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

package snapshotter

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/byteload/metrics-agent/pkg/config"
	"github.com/byteload/metrics-agent/pkg/defaults"
	"github.com/byteload/metrics-agent/pkg/errors"
	"github.com/byteload/metrics-agent/pkg/serializer"
	"github.com/byteload/metrics-agent/pkg/server"
)

const (
	// MessageSnapshotFailed is the error message for a failed snapshot request.
	MessageSnapshotFailed = "Error getting system data"

	// MessageContainersFailed is the error message for a failed inventory request.
	MessageContainersFailed = "Error getting docker data"

	servicesParam = "services"
)

// ParseRequest reads snapshot options from the query string. A present but
// empty services parameter selects no services.
func ParseRequest(r *http.Request) Request {
	var req Request
	if vals, ok := r.URL.Query()[servicesParam]; ok {
		req.Services = config.ParseServices(strings.Join(vals, ","))
	}
	return req
}

// HandleSnapshot serves the host snapshot as JSON.
func (n *HostSnapshotter) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), n.handlerTimeout())
	defer cancel()

	req := ParseRequest(r)
	slog.Debug("snapshot request", "services", req.Services)

	snap, err := n.Snapshot(ctx, req)
	if err != nil {
		slog.Error("snapshot failed", slog.String("error", err.Error()))
		server.WriteError(w, r, http.StatusInternalServerError, errors.CodeOf(err),
			MessageSnapshotFailed, true, nil)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	serializer.RespondJSON(w, http.StatusOK, snap)
}

// HandleContainers serves the full container inventory as JSON.
func (n *HostSnapshotter) HandleContainers(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), n.handlerTimeout())
	defer cancel()

	containers, err := n.Containers(ctx)
	if err != nil {
		slog.Error("container inventory failed", slog.String("error", err.Error()))
		server.WriteError(w, r, http.StatusInternalServerError, errors.CodeOf(err),
			MessageContainersFailed, true, nil)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	serializer.RespondJSON(w, http.StatusOK, containers)
}

func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return true
	}
	w.Header().Set("Allow", http.MethodGet)
	server.WriteError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
		"Method not allowed", false, map[string]any{
			"method":  r.Method,
			"allowed": []string{http.MethodGet},
		})
	return false
}

func (n *HostSnapshotter) handlerTimeout() time.Duration {
	return defaults.HandlerTimeout(n.probeTimeout())
}
