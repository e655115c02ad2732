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

// Package memory collects physical and swap memory usage.
//
// Used memory is total minus available, so reclaimable page cache does not
// count as used. The active percentage is reported alongside for consumers
// that track the active working set instead.
package memory

import (
	"context"

	"github.com/byteload/metrics-agent/pkg/collector/probe"
	"github.com/byteload/metrics-agent/pkg/measurement"
	"github.com/byteload/metrics-agent/pkg/platform"
)

// Name identifies the probe in logs and metrics.
const Name = "memory"

// Collector reports memory usage.
type Collector struct {
	Platform platform.Platform
}

// Collect returns memory usage or a probe failure.
func (c *Collector) Collect(ctx context.Context) (*measurement.Memory, error) {
	return probe.Fetch(ctx, Name, c.Platform.MemoryStats, Normalize)
}

// Normalize maps raw memory statistics to the schema and derives the used
// figures from them.
func Normalize(raw *platform.MemoryStats) (*measurement.Memory, error) {
	if raw == nil || raw.Virtual == nil {
		return nil, probe.Malformed("no virtual memory statistics")
	}

	vm := raw.Virtual
	if vm.Available > vm.Total {
		return nil, probe.Malformed("available memory %d exceeds total %d", vm.Available, vm.Total)
	}

	res := &measurement.Memory{
		Total:     vm.Total,
		Free:      vm.Free,
		Active:    vm.Active,
		Available: vm.Available,
		BuffCache: vm.Buffers + vm.Cached + vm.Sreclaimable,
	}
	if raw.Swap != nil {
		res.SwapTotal = raw.Swap.Total
		res.SwapUsed = raw.Swap.Used
		res.SwapFree = raw.Swap.Free
	}

	res.Derive()

	return res, nil
}
