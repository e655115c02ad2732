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
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/byteload/metrics-agent/pkg/collector/file"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

var (
	filePathReleasePrimary  = "/etc/os-release"
	filePathReleaseFallback = "/usr/lib/os-release"
)

// OSInfo returns the host description and the os-release key/value pairs.
// A missing or unreadable os-release file is not an error.
func (h *Host) OSInfo(ctx context.Context) (*OSInfo, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read host info: %w", err)
	}

	release, err := ReadRelease(filePathReleasePrimary, filePathReleaseFallback)
	if err != nil {
		slog.Debug("os release unavailable", "error", err)
	}

	return &OSInfo{Host: info, Release: release}, nil
}

// ReadRelease parses the first existing os-release file from paths.
// Values have their surrounding quotes removed.
func ReadRelease(paths ...string) (map[string]string, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no os release path given")
	}

	path := paths[0]
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			path = p
			break
		}
	}

	parser := file.NewParser(
		file.WithKVDelimiter("="),
		file.WithVTrimChars(`"'`),
		file.WithSkipComments(true),
		file.WithSkipEmptyValues(true),
	)

	params, err := parser.GetMap(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read os release from %s: %w", path, err)
	}

	return params, nil
}

// CPULoad reads aggregate and per-core CPU times twice, sampleInterval apart.
func (h *Host) CPULoad(ctx context.Context) (*CPUSample, error) {
	totalBefore, coresBefore, err := readCPUTimes(ctx)
	if err != nil {
		return nil, err
	}

	timer := time.NewTimer(h.cpuSampleInterval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	totalAfter, coresAfter, err := readCPUTimes(ctx)
	if err != nil {
		return nil, err
	}

	sample := &CPUSample{
		TotalBefore:  totalBefore,
		TotalAfter:   totalAfter,
		CoresBefore:  coresBefore,
		CoresAfter:   coresAfter,
		LogicalCores: len(coresAfter),
	}

	if avg, err := load.AvgWithContext(ctx); err != nil {
		slog.Debug("load average unavailable", "error", err)
	} else {
		sample.Load = avg
	}

	if n, err := cpu.CountsWithContext(ctx, true); err == nil && n > 0 {
		sample.LogicalCores = n
	}

	return sample, nil
}

func readCPUTimes(ctx context.Context) (cpu.TimesStat, []cpu.TimesStat, error) {
	total, err := cpu.TimesWithContext(ctx, false)
	if err != nil {
		return cpu.TimesStat{}, nil, fmt.Errorf("failed to read cpu times: %w", err)
	}
	if len(total) == 0 {
		return cpu.TimesStat{}, nil, fmt.Errorf("no aggregate cpu times reported")
	}

	cores, err := cpu.TimesWithContext(ctx, true)
	if err != nil {
		return cpu.TimesStat{}, nil, fmt.Errorf("failed to read per-core cpu times: %w", err)
	}

	return total[0], cores, nil
}

// FilesystemSizes returns usage for each mounted physical filesystem in the
// order the kernel lists them. Repeated mount points and zero-size pseudo
// filesystems are skipped, as are mounts whose usage cannot be read.
func (h *Host) FilesystemSizes(ctx context.Context) ([]disk.UsageStat, error) {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list partitions: %w", err)
	}

	seen := make(map[string]struct{}, len(parts))
	usages := make([]disk.UsageStat, 0, len(parts))

	for _, p := range parts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if _, ok := seen[p.Mountpoint]; ok {
			continue
		}
		seen[p.Mountpoint] = struct{}{}

		u, err := disk.UsageWithContext(ctx, p.Mountpoint)
		if err != nil {
			slog.Debug("skipping unreadable filesystem",
				"mount", p.Mountpoint,
				"error", err,
			)
			continue
		}
		if u.Total == 0 {
			continue
		}
		if u.Fstype == "" {
			u.Fstype = p.Fstype
		}

		usages = append(usages, *u)
	}

	return usages, nil
}

// MemoryStats returns physical and swap memory usage.
func (h *Host) MemoryStats(ctx context.Context) (*MemoryStats, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read virtual memory: %w", err)
	}

	swap, err := mem.SwapMemoryWithContext(ctx)
	if err != nil {
		slog.Debug("swap memory unavailable", "error", err)
		swap = nil
	}

	return &MemoryStats{Virtual: vm, Swap: swap}, nil
}
