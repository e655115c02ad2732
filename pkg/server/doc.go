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

// Package server provides the HTTP server the agent runs its API on.
//
// The server owns routing, the middleware chain, health and readiness
// probes, Prometheus exposition and graceful shutdown. API handlers are
// supplied by the caller as a pattern to handler map.
//
// # Middleware
//
// Every API handler is wrapped, outermost first, in:
//
//   - metrics: request count, latency and in-flight gauge per route
//   - version: X-API-Version header from Accept negotiation
//   - request ID: X-Request-Id accepted when a valid UUID, generated otherwise
//   - panic recovery: 500 error envelope
//   - rate limiting: token bucket (golang.org/x/time/rate), 429 error envelope
//   - logging: debug request start and completion
//
// # Routes
//
//	GET /health    liveness, no middleware
//	GET /ready     readiness, 503 until serving and during shutdown
//	GET /metrics   Prometheus metrics
//
// A handler registered for "/" only matches the root path. Every other
// unmatched path gets a 404 error envelope.
//
// # Errors
//
// Error responses share one envelope:
//
//	{
//	  "error": true,
//	  "code": "INTERNAL",
//	  "message": "Error getting system data",
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2025-01-15T10:30:00Z",
//	  "retryable": true
//	}
//
// # Usage
//
//	s := server.New(
//	    server.WithName("hostmetricsd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/":       snap.HandleSnapshot,
//	        "/docker": snap.HandleContainers,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// Run blocks until ctx is canceled or SIGINT/SIGTERM is received, then
// drains in-flight requests within the configured shutdown timeout.
package server
