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

package container

import (
	"context"
	"strings"
	"time"

	"github.com/byteload/metrics-agent/pkg/collector/probe"
	"github.com/byteload/metrics-agent/pkg/measurement"
	"github.com/byteload/metrics-agent/pkg/platform"
	"github.com/distribution/reference"
	dockercontainer "github.com/docker/docker/api/types/container"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

const (
	// Name identifies the full inventory probe in logs and metrics.
	Name = "containers"

	// BriefName identifies the inventory probe without usage samples.
	BriefName = "containers_brief"

	shortIDLength = 12
)

// Collector reports the container inventory.
type Collector struct {
	Platform platform.Platform
}

// Collect returns all containers with usage samples, or a probe failure.
func (c *Collector) Collect(ctx context.Context) ([]measurement.Container, error) {
	return probe.Fetch(ctx, Name, c.Platform.ContainerInventory, Normalize)
}

// Brief returns all containers without usage samples, or a probe failure.
func (c *Collector) Brief(ctx context.Context) ([]measurement.Container, error) {
	return probe.Fetch(ctx, BriefName, c.Platform.ContainersBrief, func(raw []platform.ContainerRecord) ([]measurement.Container, error) {
		res, err := Normalize(raw)
		for i := range res {
			res[i].Stats = nil
		}
		return res, err
	})
}

// Normalize maps container records to the schema, preserving their order.
func Normalize(raw []platform.ContainerRecord) ([]measurement.Container, error) {
	res := make([]measurement.Container, 0, len(raw))
	for _, r := range raw {
		c, err := normalizeRecord(r)
		if err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, nil
}

func normalizeRecord(r platform.ContainerRecord) (measurement.Container, error) {
	s := r.Summary
	if s.ID == "" {
		return measurement.Container{}, probe.Malformed("container without id")
	}

	c := measurement.Container{
		ID:       ShortID(s.ID),
		Image:    FamiliarImage(s.Image),
		State:    string(s.State),
		Ports:    make([]measurement.Port, 0, len(s.Ports)),
		Platform: FormatPlatform(r.Platform),
		Mounts:   make([]measurement.Mount, 0, len(s.Mounts)),
	}

	if len(s.Names) > 0 {
		c.Name = strings.TrimPrefix(s.Names[0], "/")
	}

	for _, p := range s.Ports {
		c.Ports = append(c.Ports, measurement.Port{
			IP:          p.IP,
			PrivatePort: p.PrivatePort,
			PublicPort:  p.PublicPort,
			Type:        p.Type,
		})
	}

	for _, m := range s.Mounts {
		c.Mounts = append(c.Mounts, measurement.Mount{
			Type:        string(m.Type),
			Source:      m.Source,
			Destination: m.Destination,
			Mode:        m.Mode,
			RW:          m.RW,
		})
	}

	if r.Inspect != nil && r.Inspect.ContainerJSONBase != nil {
		base := r.Inspect.ContainerJSONBase
		c.RestartCount = base.RestartCount
		if c.Name == "" {
			c.Name = strings.TrimPrefix(base.Name, "/")
		}
		if base.State != nil {
			c.StartedAt = StartedAt(base.State.StartedAt)
		}
	}

	if r.Stats != nil {
		c.Stats = Stats(r.Stats)
	}

	return c, nil
}

// ShortID truncates a container id to its conventional short form.
func ShortID(id string) string {
	if len(id) > shortIDLength {
		return id[:shortIDLength]
	}
	return id
}

// FamiliarImage shortens an image reference to the form users type.
// References that do not parse, such as bare image ids, are returned as is.
func FamiliarImage(image string) string {
	named, err := reference.ParseNormalizedNamed(image)
	if err != nil {
		return image
	}
	return reference.FamiliarString(reference.TagNameOnly(named))
}

// FormatPlatform renders os/arch[/variant], or "" when the OS is unknown.
func FormatPlatform(p ocispec.Platform) string {
	if p.OS == "" {
		return ""
	}
	parts := []string{p.OS}
	if p.Architecture != "" {
		parts = append(parts, p.Architecture)
		if p.Variant != "" {
			parts = append(parts, p.Variant)
		}
	}
	return strings.Join(parts, "/")
}

// StartedAt parses the engine's start time. Containers that never started
// report the zero time, which maps to nil.
func StartedAt(v string) *time.Time {
	if v == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil || t.IsZero() || t.Year() <= 1 {
		return nil
	}
	t = t.UTC()
	return &t
}

// Stats converts one engine stats sample to usage figures.
func Stats(s *dockercontainer.StatsResponse) *measurement.ContainerStats {
	cpuDelta := measurement.Delta(s.PreCPUStats.CPUUsage.TotalUsage, s.CPUStats.CPUUsage.TotalUsage)
	sysDelta := measurement.Delta(s.PreCPUStats.SystemUsage, s.CPUStats.SystemUsage)

	cpus := s.CPUStats.OnlineCPUs
	if cpus == 0 {
		cpus = uint32(len(s.CPUStats.CPUUsage.PercpuUsage))
	}

	usage := measurement.ContainerMemoryUsage(s.MemoryStats.Usage, s.MemoryStats.Stats)

	res := &measurement.ContainerStats{
		CPUPercent:  measurement.ContainerCPUPercent(cpuDelta, sysDelta, cpus),
		MemoryUsage: usage,
		MemoryLimit: s.MemoryStats.Limit,
		Pids:        s.PidsStats.Current,
	}
	if p := measurement.UsedPercent(s.MemoryStats.Limit, usage); p != nil {
		res.MemoryPercent = *p
	}
	return res
}
