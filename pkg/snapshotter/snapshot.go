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
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/byteload/metrics-agent/pkg/collector"
	"github.com/byteload/metrics-agent/pkg/defaults"
	"github.com/byteload/metrics-agent/pkg/errors"
	"github.com/byteload/metrics-agent/pkg/measurement"
	"github.com/byteload/metrics-agent/pkg/serializer"

	"golang.org/x/sync/errgroup"
)

// HostSnapshotter collects host state from the current machine.
// It runs the probe adapters in parallel and assembles whatever succeeded.
type HostSnapshotter struct {
	// Version is the agent version.
	Version string

	// Factory creates the probe adapters. Snapshot fails without one.
	Factory collector.Factory

	// Services is reported when a request names none. When nil, the
	// factory's defaults apply.
	Services []string

	// ProbeTimeout bounds each probe. Zero means defaults.ProbeTimeout.
	ProbeTimeout time.Duration

	// IncludeContainers adds the brief container inventory to snapshots.
	IncludeContainers bool

	// Serializer is used by Measure. If nil, stdout JSON is used.
	Serializer serializer.Serializer
}

var _ Snapshotter = (*HostSnapshotter)(nil)

// Snapshot runs one collection cycle. Probe failures leave their section
// nil and are never returned. An error is returned only when the
// snapshotter is misconfigured or ctx ended before the cycle completed.
func (n *HostSnapshotter) Snapshot(ctx context.Context, req Request) (*Snapshot, error) {
	if n.Factory == nil {
		snapshotTotal.WithLabelValues("error").Inc()
		return nil, errors.New(errors.ErrCodeInternal, "snapshotter has no collector factory")
	}
	if err := ctx.Err(); err != nil {
		snapshotTotal.WithLabelValues("error").Inc()
		return nil, errors.Wrap(errors.ErrCodeInternal, "snapshot request ended before collection", err)
	}

	slog.Debug("starting host snapshot")

	start := time.Now()
	defer func() {
		snapshotDuration.Observe(time.Since(start).Seconds())
	}()

	services := req.Services
	if services == nil {
		services = n.Services
	}

	var snap Snapshot

	// Probe failures are absorbed inside each task, so the group never
	// cancels its siblings.
	g := new(errgroup.Group)
	timeout := n.probeTimeout()

	collectInto(ctx, g, timeout, measurement.TypeOS, n.Factory.CreateOSCollector().Collect, &snap.OS)
	collectInto(ctx, g, timeout, measurement.TypeCPU, n.Factory.CreateCPUCollector().Collect, &snap.CPU)
	collectInto(ctx, g, timeout, measurement.TypeStorage, n.Factory.CreateStorageCollector().Collect, &snap.Storage)
	collectInto(ctx, g, timeout, measurement.TypeMemory, n.Factory.CreateMemoryCollector().Collect, &snap.Memory)

	sc := n.Factory.CreateServiceCollector()
	collectInto(ctx, g, timeout, measurement.TypeServices, func(ctx context.Context) ([]measurement.Service, error) {
		return sc.CollectNamed(ctx, services)
	}, &snap.Services)

	if n.IncludeContainers {
		cc := n.Factory.CreateContainerCollector()
		collectInto(ctx, g, timeout, measurement.TypeContainers, cc.Brief, &snap.Containers)
	}

	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		snapshotTotal.WithLabelValues("error").Inc()
		return nil, errors.Wrap(errors.ErrCodeInternal, "snapshot request ended during collection", err)
	}

	nulls := snap.NullSections()
	if !n.IncludeContainers {
		// Disabled inventory is not a failure.
		nulls = slices.DeleteFunc(nulls, func(t measurement.Type) bool {
			return t == measurement.TypeContainers
		})
	}
	snapshotNullSections.Set(float64(len(nulls)))
	snapshotTotal.WithLabelValues("success").Inc()

	slog.Debug("snapshot collection complete",
		slog.Any("null_sections", nulls),
		slog.Duration("duration", time.Since(start)))

	return &snap, nil
}

// collectInto schedules one probe on g. The result is written to dst only
// on success; dst must not be read before g.Wait returns.
func collectInto[T any](ctx context.Context, g *errgroup.Group, timeout time.Duration,
	section measurement.Type, collect func(context.Context) (T, error), dst *T) {
	g.Go(func() error {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		sectionStart := time.Now()
		defer func() {
			snapshotSectionDuration.WithLabelValues(section.String()).Observe(time.Since(sectionStart).Seconds())
		}()

		v, err := collect(pctx)
		if err != nil {
			slog.Debug("section unavailable",
				slog.String("section", section.String()),
				slog.String("error", err.Error()))
			return nil
		}
		*dst = v
		return nil
	})
}

// Containers returns the full container inventory with usage samples.
// Unlike Snapshot, a probe failure is returned since the inventory is the
// whole result.
func (n *HostSnapshotter) Containers(ctx context.Context) ([]measurement.Container, error) {
	if n.Factory == nil {
		return nil, errors.New(errors.ErrCodeInternal, "snapshotter has no collector factory")
	}
	return n.Factory.CreateContainerCollector().Collect(ctx)
}

// Measure collects a snapshot with the configured services and writes it
// through the Serializer.
func (n *HostSnapshotter) Measure(ctx context.Context) error {
	if n.Factory == nil {
		n.Factory = collector.NewDefaultFactory()
	}

	snap, err := n.Snapshot(ctx, Request{})
	if err != nil {
		return err
	}

	ser := n.Serializer
	if ser == nil {
		ser = serializer.NewStdoutWriter(serializer.FormatJSON)
	}

	if err := ser.Serialize(ctx, snap); err != nil {
		slog.Error("failed to serialize", slog.String("error", err.Error()))
		return fmt.Errorf("failed to serialize: %w", err)
	}

	return nil
}

func (n *HostSnapshotter) probeTimeout() time.Duration {
	if n.ProbeTimeout > 0 {
		return n.ProbeTimeout
	}
	return defaults.ProbeTimeout
}
