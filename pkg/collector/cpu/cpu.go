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

package cpu

import (
	"context"

	"github.com/byteload/metrics-agent/pkg/collector/probe"
	"github.com/byteload/metrics-agent/pkg/measurement"
	"github.com/byteload/metrics-agent/pkg/platform"
	"github.com/shirou/gopsutil/v3/cpu"
	"k8s.io/utils/ptr"
)

// Name identifies the probe in logs and metrics.
const Name = "cpu"

// Collector reports CPU load.
type Collector struct {
	Platform platform.Platform
}

// Collect returns CPU load or a probe failure.
func (c *Collector) Collect(ctx context.Context) (*measurement.CPU, error) {
	return probe.Fetch(ctx, Name, c.Platform.CPULoad, Normalize)
}

// Normalize turns a pair of CPU time readings into load percentages.
func Normalize(raw *platform.CPUSample) (*measurement.CPU, error) {
	if raw == nil {
		return nil, probe.Malformed("no cpu sample")
	}
	if len(raw.CoresBefore) != len(raw.CoresAfter) {
		return nil, probe.Malformed("core count changed between samples: %d != %d",
			len(raw.CoresBefore), len(raw.CoresAfter))
	}

	d := diff(raw.TotalBefore, raw.TotalAfter)
	res := &measurement.CPU{
		Load:       measurement.BusyPercent(d.busy(), d.total()),
		UserLoad:   measurement.Percent(d.User+d.Nice, d.total()),
		SystemLoad: measurement.Percent(d.System+d.Irq+d.Softirq, d.total()),
		Cores:      make([]float64, len(raw.CoresAfter)),
	}

	for i := range raw.CoresAfter {
		cd := diff(raw.CoresBefore[i], raw.CoresAfter[i])
		res.Cores[i] = measurement.BusyPercent(cd.busy(), cd.total())
	}

	if raw.Load != nil && raw.LogicalCores > 0 {
		res.AvgLoad = ptr.To(measurement.Finite(raw.Load.Load1 / float64(raw.LogicalCores)))
	}

	return res, nil
}

type times cpu.TimesStat

func diff(before, after cpu.TimesStat) times {
	return times{
		User:    nonNegative(after.User - before.User),
		Nice:    nonNegative(after.Nice - before.Nice),
		System:  nonNegative(after.System - before.System),
		Idle:    nonNegative(after.Idle - before.Idle),
		Iowait:  nonNegative(after.Iowait - before.Iowait),
		Irq:     nonNegative(after.Irq - before.Irq),
		Softirq: nonNegative(after.Softirq - before.Softirq),
		Steal:   nonNegative(after.Steal - before.Steal),
	}
}

func (t times) total() float64 {
	return t.User + t.Nice + t.System + t.Idle + t.Iowait + t.Irq + t.Softirq + t.Steal
}

func (t times) busy() float64 {
	return t.total() - t.Idle - t.Iowait
}

// counters can step backwards across suspend or hotplug
func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
