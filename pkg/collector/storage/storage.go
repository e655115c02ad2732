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

// Package storage collects filesystem capacity and usage.
//
// Each mounted filesystem becomes one disk entry, in the order the platform
// lists them. Totals are the sums over all entries; the used percentage is
// null when no capacity was reported.
package storage

import (
	"context"

	"github.com/byteload/metrics-agent/pkg/collector/probe"
	"github.com/byteload/metrics-agent/pkg/measurement"
	"github.com/byteload/metrics-agent/pkg/platform"
	"github.com/shirou/gopsutil/v3/disk"
)

// Name identifies the probe in logs and metrics.
const Name = "storage"

// Collector reports filesystem usage.
type Collector struct {
	Platform platform.Platform
}

// Collect returns storage usage or a probe failure.
func (c *Collector) Collect(ctx context.Context) (*measurement.Storage, error) {
	return probe.Fetch(ctx, Name, c.Platform.FilesystemSizes, Normalize)
}

// Normalize maps filesystem usage to disks and computes totals.
func Normalize(raw []disk.UsageStat) (*measurement.Storage, error) {
	disks := make([]measurement.Disk, 0, len(raw))
	for _, u := range raw {
		if u.Path == "" {
			return nil, probe.Malformed("filesystem without mount point")
		}
		if u.Used > u.Total {
			return nil, probe.Malformed("filesystem %s uses %d of %d bytes", u.Path, u.Used, u.Total)
		}

		disks = append(disks, measurement.Disk{
			Mount:     u.Path,
			Type:      u.Fstype,
			Size:      u.Total,
			Used:      u.Used,
			Available: u.Free,
			Use:       measurement.Finite(u.UsedPercent),
		})
	}

	return measurement.NewStorage(disks), nil
}
