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

package platform

import (
	"log/slog"
	"time"

	"github.com/byteload/metrics-agent/pkg/defaults"
	"github.com/docker/docker/client"
)

// Option configures a Host.
type Option func(*Host)

// WithCPUSampleInterval sets the gap between the two CPU time readings.
func WithCPUSampleInterval(d time.Duration) Option {
	return func(h *Host) {
		if d > 0 {
			h.cpuSampleInterval = d
		}
	}
}

// WithStatsConcurrency bounds the number of concurrent container stats calls.
func WithStatsConcurrency(n int) Option {
	return func(h *Host) {
		if n > 0 {
			h.statsConcurrency = n
		}
	}
}

// WithContainerRuntime replaces the Docker client, mainly for tests.
func WithContainerRuntime(rt *Runtime) Option {
	return func(h *Host) {
		h.runtime = rt
	}
}

// Host queries the local machine through gopsutil, systemd and Docker.
type Host struct {
	cpuSampleInterval time.Duration
	statsConcurrency  int

	runtime    *Runtime
	runtimeErr error
}

var _ Platform = (*Host)(nil)

// NewHost creates a Host. The Docker client is configured from the
// environment (DOCKER_HOST and friends); it does not connect until used, so a
// missing daemon only surfaces as a container query failure.
func NewHost(opts ...Option) *Host {
	h := &Host{
		cpuSampleInterval: defaults.CPUSampleInterval,
		statsConcurrency:  defaults.ContainerStatsConcurrency,
	}

	for _, opt := range opts {
		opt(h)
	}

	if h.runtime == nil {
		cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
		if err != nil {
			slog.Warn("docker client unavailable", "error", err)
			h.runtimeErr = err
		} else {
			h.runtime = NewDockerRuntime(cli)
		}
	}

	return h
}

// Close releases the container runtime client.
func (h *Host) Close() error {
	if h.runtime == nil {
		return nil
	}
	return h.runtime.Close()
}
