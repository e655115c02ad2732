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

	"github.com/byteload/metrics-agent/pkg/measurement"
)

// Snapshotter defines the interface for collecting and emitting host snapshots.
type Snapshotter interface {
	Measure(ctx context.Context) error
}

// Request selects what a single snapshot reports.
type Request struct {
	// Services overrides the configured service list when non-nil.
	// An empty, non-nil slice reports no services.
	Services []string
}

// Snapshot is the aggregated host state for one request. Each section is
// nil when its probe failed.
type Snapshot struct {
	OS         *measurement.OS         `json:"os" yaml:"os"`
	CPU        *measurement.CPU        `json:"cpu" yaml:"cpu"`
	Storage    *measurement.Storage    `json:"storage" yaml:"storage"`
	Memory     *measurement.Memory     `json:"memory" yaml:"memory"`
	Services   []measurement.Service   `json:"services" yaml:"services"`
	Containers []measurement.Container `json:"containers" yaml:"containers"`
}

// NullSections lists the sections that carry no data, in schema order.
func (s *Snapshot) NullSections() []measurement.Type {
	var res []measurement.Type
	if s.OS == nil {
		res = append(res, measurement.TypeOS)
	}
	if s.CPU == nil {
		res = append(res, measurement.TypeCPU)
	}
	if s.Storage == nil {
		res = append(res, measurement.TypeStorage)
	}
	if s.Memory == nil {
		res = append(res, measurement.TypeMemory)
	}
	if s.Services == nil {
		res = append(res, measurement.TypeServices)
	}
	if s.Containers == nil {
		res = append(res, measurement.TypeContainers)
	}
	return res
}
