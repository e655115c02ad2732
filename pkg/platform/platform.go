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

	"github.com/docker/docker/api/types/container"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

// Platform exposes one raw query per snapshot section.
type Platform interface {
	OSInfo(ctx context.Context) (*OSInfo, error)
	CPULoad(ctx context.Context) (*CPUSample, error)
	FilesystemSizes(ctx context.Context) ([]disk.UsageStat, error)
	MemoryStats(ctx context.Context) (*MemoryStats, error)
	Services(ctx context.Context, names []string) ([]ServiceState, error)
	ContainerInventory(ctx context.Context) ([]ContainerRecord, error)
	ContainersBrief(ctx context.Context) ([]ContainerRecord, error)
}

// OSInfo pairs the host information with the parsed os-release file.
type OSInfo struct {
	Host *host.InfoStat

	// Release holds os-release keys such as NAME, VERSION_ID and
	// VERSION_CODENAME. Nil when the file could not be read.
	Release map[string]string
}

// CPUSample is two cumulative CPU time readings taken an interval apart.
type CPUSample struct {
	TotalBefore cpu.TimesStat
	TotalAfter  cpu.TimesStat
	CoresBefore []cpu.TimesStat
	CoresAfter  []cpu.TimesStat

	// Load is nil on platforms without load averages.
	Load *load.AvgStat

	LogicalCores int
}

type MemoryStats struct {
	Virtual *mem.VirtualMemoryStat
	Swap    *mem.SwapMemoryStat
}

// ServiceState is the observed state of one named service.
type ServiceState struct {
	Name    string
	Running bool

	// Unit is the systemd unit consulted, empty when systemd was unavailable.
	Unit    string
	MainPID uint32

	PIDs       []int32
	CPUPercent float64
	MemPercent float64
}

// ContainerRecord is everything the runtime reported for one container.
type ContainerRecord struct {
	Summary container.Summary

	// Inspect is nil for brief listings.
	Inspect *container.InspectResponse

	// Stats is nil for stopped containers and brief listings.
	Stats *container.StatsResponse

	// Platform is the OS and architecture the container runs on.
	Platform ocispec.Platform
}
