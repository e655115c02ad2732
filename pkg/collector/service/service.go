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

// Package service collects the state of named services.
//
// The requested names are reported in order, including duplicates. A nil
// name list selects the configured defaults; an empty, non-nil list yields an
// empty result without querying the platform.
package service

import (
	"context"

	"github.com/byteload/metrics-agent/pkg/collector/probe"
	"github.com/byteload/metrics-agent/pkg/measurement"
	"github.com/byteload/metrics-agent/pkg/platform"
)

// Name identifies the probe in logs and metrics.
const Name = "services"

// Collector reports service state.
type Collector struct {
	Platform platform.Platform

	// Defaults is used when no names are requested.
	Defaults []string
}

// Collect reports the default services.
func (c *Collector) Collect(ctx context.Context) ([]measurement.Service, error) {
	return c.CollectNamed(ctx, nil)
}

// CollectNamed reports the given services, or the defaults when names is nil.
func (c *Collector) CollectNamed(ctx context.Context, names []string) ([]measurement.Service, error) {
	if names == nil {
		names = c.Defaults
	}
	if len(names) == 0 {
		return []measurement.Service{}, nil
	}

	query := func(ctx context.Context) ([]platform.ServiceState, error) {
		return c.Platform.Services(ctx, names)
	}

	return probe.Fetch(ctx, Name, query, func(raw []platform.ServiceState) ([]measurement.Service, error) {
		return Normalize(names, raw)
	})
}

// Normalize maps service states to the schema, one entry per requested name.
func Normalize(names []string, raw []platform.ServiceState) ([]measurement.Service, error) {
	if len(raw) != len(names) {
		return nil, probe.Malformed("requested %d services, got %d", len(names), len(raw))
	}

	res := make([]measurement.Service, len(raw))
	for i, s := range raw {
		if s.Name != names[i] {
			return nil, probe.Malformed("service %d is %q, want %q", i, s.Name, names[i])
		}
		res[i] = measurement.Service{
			Name:    s.Name,
			Running: s.Running,
			CPU:     measurement.Finite(s.CPUPercent),
			Mem:     measurement.Finite(s.MemPercent),
		}
	}
	return res, nil
}
