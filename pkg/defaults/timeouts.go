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

package defaults

import "time"

// Probe timeouts and sampling for data collection.
const (
	// ProbeTimeout is the default per-probe deadline. A probe that has not
	// returned by then is reported unavailable for that request.
	ProbeTimeout = 10 * time.Second

	// CPUSampleInterval is the window between the two CPU time samples used
	// to compute instantaneous load.
	CPUSampleInterval = 500 * time.Millisecond

	// ContainerStatsConcurrency bounds concurrent stats requests to the
	// container runtime while building the full inventory.
	ContainerStatsConcurrency = 4
)

// Handler timeouts for HTTP request processing.
const (
	// SnapshotHandlerTimeout bounds a whole aggregation cycle for one request.
	// Must exceed ProbeTimeout so per-probe deadlines fire first.
	SnapshotHandlerTimeout = 30 * time.Second

	// HandlerTimeoutMargin separates the probe deadline from the request
	// deadline, and the request deadline from the server write timeout.
	HandlerTimeoutMargin = 5 * time.Second
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading the request.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 45 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// HandlerTimeout returns the request deadline for a given probe timeout. It
// is at least SnapshotHandlerTimeout and ends HandlerTimeoutMargin after the
// probe deadline, so a slow probe only nulls its own section.
func HandlerTimeout(probeTimeout time.Duration) time.Duration {
	return max(SnapshotHandlerTimeout, probeTimeout+HandlerTimeoutMargin)
}

// WriteTimeout returns the server write timeout that leaves room for a
// response after HandlerTimeout(probeTimeout).
func WriteTimeout(probeTimeout time.Duration) time.Duration {
	return max(ServerWriteTimeout, HandlerTimeout(probeTimeout)+HandlerTimeoutMargin)
}
