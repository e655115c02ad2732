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

package measurement

import (
	"math"

	"k8s.io/utils/ptr"
)

// Finite returns v, or 0 when v is NaN or infinite.
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Percent returns part/whole*100, or nil when whole is zero.
func Percent(part, whole float64) *float64 {
	if whole == 0 || math.IsNaN(whole) || math.IsInf(whole, 0) {
		return nil
	}
	return ptr.To(Finite(part / whole * 100))
}

// UsedPercent returns used/total*100, or nil when total is zero.
func UsedPercent(total, used uint64) *float64 {
	return Percent(float64(used), float64(total))
}

// Sum adds field(item) over items. The sum of an empty slice is zero.
func Sum[T any](items []T, field func(T) uint64) uint64 {
	var total uint64
	for _, it := range items {
		total += field(it)
	}
	return total
}

// StorageTotals returns the summed size and used bytes of disks.
func StorageTotals(disks []Disk) (size, used uint64) {
	size = Sum(disks, func(d Disk) uint64 { return d.Size })
	used = Sum(disks, func(d Disk) uint64 { return d.Used })
	return size, used
}

// NewStorage assembles a Storage from disks, deriving totals and percent.
func NewStorage(disks []Disk) *Storage {
	if disks == nil {
		disks = []Disk{}
	}
	size, used := StorageTotals(disks)
	return &Storage{
		Total:       size,
		Used:        used,
		UsedPercent: UsedPercent(size, used),
		Disks:       disks,
	}
}

// MemoryUsed returns total - available, floored at zero.
func MemoryUsed(total, available uint64) uint64 {
	if available >= total {
		return 0
	}
	return total - available
}

// MemoryUsedPercent returns (total-available)/total*100, or nil when total is zero.
func MemoryUsedPercent(total, available uint64) *float64 {
	return UsedPercent(total, MemoryUsed(total, available))
}

// MemoryActivePercent returns active/total*100, or nil when total is zero.
func MemoryActivePercent(total, active uint64) *float64 {
	return UsedPercent(total, active)
}

// Derive fills the computed fields of m from its raw fields.
func (m *Memory) Derive() {
	m.Used = MemoryUsed(m.Total, m.Available)
	m.UsedPercent = MemoryUsedPercent(m.Total, m.Available)
	m.ActivePercent = MemoryActivePercent(m.Total, m.Active)
}

// BusyPercent returns busy/total*100 clamped to [0, 100]; zero when total is not positive.
func BusyPercent(busy, total float64) float64 {
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return 0
	}
	return clamp(Finite(busy/total*100), 0, 100)
}

// ContainerCPUPercent computes a container's CPU usage the way the Docker CLI
// does: the container's share of host CPU time over the sample window scaled
// by the number of online CPUs.
func ContainerCPUPercent(cpuDelta, systemDelta uint64, onlineCPUs uint32) float64 {
	if cpuDelta == 0 || systemDelta == 0 {
		return 0
	}
	if onlineCPUs == 0 {
		onlineCPUs = 1
	}
	return Finite(float64(cpuDelta) / float64(systemDelta) * float64(onlineCPUs) * 100)
}

// ContainerMemoryUsage subtracts reclaimable page cache from the raw cgroup
// usage. cgroup v2 reports it as inactive_file, cgroup v1 as total_inactive_file.
func ContainerMemoryUsage(usage uint64, stats map[string]uint64) uint64 {
	for _, key := range []string{"inactive_file", "total_inactive_file"} {
		if v, ok := stats[key]; ok {
			if v < usage {
				return usage - v
			}
			return usage
		}
	}
	return usage
}

// Delta returns after - before, or zero when the counter went backwards.
func Delta(before, after uint64) uint64 {
	if after < before {
		return 0
	}
	return after - before
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
