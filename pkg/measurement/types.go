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

import "time"

// Type identifies the source a measurement was taken from.
type Type string

// String returns the string representation of the measurement Type.
func (mt Type) String() string {
	return string(mt)
}

const (
	TypeOS         Type = "os"
	TypeCPU        Type = "cpu"
	TypeStorage    Type = "storage"
	TypeMemory     Type = "memory"
	TypeServices   Type = "services"
	TypeContainers Type = "containers"
)

// Types is the list of all supported measurement types in snapshot order.
var Types = []Type{
	TypeOS,
	TypeCPU,
	TypeStorage,
	TypeMemory,
	TypeServices,
	TypeContainers,
}

// ParseType parses a string into a measurement Type.
// Returns the Type and true if parsing succeeds, or empty Type and false if the string is invalid.
func ParseType(s string) (Type, bool) {
	for _, mt := range Types {
		if string(mt) == s {
			return mt, true
		}
	}
	return "", false
}

// OS describes the operating system. Empty fields are omitted.
type OS struct {
	Platform string `json:"platform,omitempty" yaml:"platform,omitempty"`
	Distro   string `json:"distro,omitempty" yaml:"distro,omitempty"`
	Release  string `json:"release,omitempty" yaml:"release,omitempty"`
	Codename string `json:"codename,omitempty" yaml:"codename,omitempty"`
	Kernel   string `json:"kernel,omitempty" yaml:"kernel,omitempty"`
	Arch     string `json:"arch,omitempty" yaml:"arch,omitempty"`
}

// CPU is the instantaneous processor load.
type CPU struct {
	// Load is the aggregate busy percentage across all cores (0-100).
	Load float64 `json:"load" yaml:"load"`

	// AvgLoad is the 1-minute load average divided by the logical core count.
	AvgLoad *float64 `json:"avg_load,omitempty" yaml:"avg_load,omitempty"`

	UserLoad   *float64 `json:"user_load,omitempty" yaml:"user_load,omitempty"`
	SystemLoad *float64 `json:"system_load,omitempty" yaml:"system_load,omitempty"`

	// Cores holds per-core busy percentages; index is the core id.
	Cores []float64 `json:"cores" yaml:"cores"`
}

// Disk is the usage of one mounted filesystem.
type Disk struct {
	Mount     string  `json:"mount" yaml:"mount"`
	Type      string  `json:"type" yaml:"type"`
	Size      uint64  `json:"size" yaml:"size"`
	Used      uint64  `json:"used" yaml:"used"`
	Available uint64  `json:"available" yaml:"available"`
	Use       float64 `json:"use" yaml:"use"`
}

// Storage aggregates all mounted filesystems in source order.
type Storage struct {
	Total       uint64   `json:"total" yaml:"total"`
	Used        uint64   `json:"used" yaml:"used"`
	UsedPercent *float64 `json:"used_percent" yaml:"used_percent"`
	Disks       []Disk   `json:"disks" yaml:"disks"`
}

// Memory is physical and swap memory usage in bytes.
type Memory struct {
	Total     uint64 `json:"total" yaml:"total"`
	Free      uint64 `json:"free" yaml:"free"`
	Used      uint64 `json:"used" yaml:"used"`
	Active    uint64 `json:"active" yaml:"active"`
	Available uint64 `json:"available" yaml:"available"`
	BuffCache uint64 `json:"buff_cache" yaml:"buff_cache"`
	SwapTotal uint64 `json:"swap_total" yaml:"swap_total"`
	SwapUsed  uint64 `json:"swap_used" yaml:"swap_used"`
	SwapFree  uint64 `json:"swap_free" yaml:"swap_free"`

	// UsedPercent is (total - available) / total * 100.
	UsedPercent *float64 `json:"used_percent" yaml:"used_percent"`

	// ActivePercent is active / total * 100.
	ActivePercent *float64 `json:"active_percent" yaml:"active_percent"`
}

// Service is the state of one requested service.
type Service struct {
	Name    string  `json:"name" yaml:"name"`
	Running bool    `json:"running" yaml:"running"`
	CPU     float64 `json:"cpu" yaml:"cpu"`
	Mem     float64 `json:"mem" yaml:"mem"`
}

// Port is a published container port.
type Port struct {
	IP          string `json:"ip,omitempty" yaml:"ip,omitempty"`
	PrivatePort uint16 `json:"private_port" yaml:"private_port"`
	PublicPort  uint16 `json:"public_port,omitempty" yaml:"public_port,omitempty"`
	Type        string `json:"type" yaml:"type"`
}

// Mount is a volume or bind mount attached to a container.
type Mount struct {
	Type        string `json:"type" yaml:"type"`
	Source      string `json:"source" yaml:"source"`
	Destination string `json:"destination" yaml:"destination"`
	Mode        string `json:"mode" yaml:"mode"`
	RW          bool   `json:"rw" yaml:"rw"`
}

// ContainerStats is a single resource usage sample of a running container.
type ContainerStats struct {
	CPUPercent    float64 `json:"cpu_percent" yaml:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent" yaml:"memory_percent"`
	MemoryUsage   uint64  `json:"memory_usage" yaml:"memory_usage"`
	MemoryLimit   uint64  `json:"memory_limit" yaml:"memory_limit"`
	Pids          uint64  `json:"pids" yaml:"pids"`
}

// Container is one container known to the container runtime.
type Container struct {
	ID           string          `json:"id" yaml:"id"`
	Name         string          `json:"name" yaml:"name"`
	Image        string          `json:"image" yaml:"image"`
	State        string          `json:"state" yaml:"state"`
	Ports        []Port          `json:"ports" yaml:"ports"`
	Platform     string          `json:"platform" yaml:"platform"`
	StartedAt    *time.Time      `json:"started_at" yaml:"started_at"`
	RestartCount int             `json:"restart_count" yaml:"restart_count"`
	Mounts       []Mount         `json:"mounts" yaml:"mounts"`
	Stats        *ContainerStats `json:"stats,omitempty" yaml:"stats,omitempty"`
}
