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

// Package api wires the agent together and runs its HTTP API.
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// Serve loads the configuration, installs the structured logger, builds the
// host platform, collector factory and snapshotter, and hands the routes to
// pkg/server, which owns the HTTP lifecycle.
//
// # Endpoints
//
// Application endpoints (with middleware and rate limiting):
//   - GET /        host snapshot; ?services=a,b overrides the service list
//   - GET /docker  full container inventory with usage samples
//
// System endpoints:
//   - GET /health   liveness
//   - GET /ready    readiness
//   - GET /metrics  Prometheus metrics
//
// Build information is injected with ldflags:
//
//	go build -ldflags "-X github.com/byteload/metrics-agent/pkg/api.version=1.0.0"
package api
