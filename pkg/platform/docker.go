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
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"golang.org/x/sync/errgroup"
)

const stateRunning = "running"

// ContainerAPI is the part of the Docker client the Runtime needs.
type ContainerAPI interface {
	ContainerList(ctx context.Context, options container.ListOptions) ([]container.Summary, error)
	ContainerInspect(ctx context.Context, containerID string) (container.InspectResponse, error)
	ServerVersion(ctx context.Context) (types.Version, error)
	Close() error
}

// StatsFunc returns a single, non-streaming stats sample for a container.
type StatsFunc func(ctx context.Context, containerID string) (*container.StatsResponse, error)

// Runtime lists and inspects containers through a container engine API.
type Runtime struct {
	api   ContainerAPI
	stats StatsFunc
}

// NewRuntime creates a Runtime. A nil stats func disables stats sampling.
func NewRuntime(api ContainerAPI, stats StatsFunc) *Runtime {
	return &Runtime{api: api, stats: stats}
}

// NewDockerRuntime creates a Runtime backed by a Docker Engine client.
func NewDockerRuntime(cli *client.Client) *Runtime {
	return NewRuntime(cli, func(ctx context.Context, id string) (*container.StatsResponse, error) {
		resp, err := cli.ContainerStats(ctx, id, false)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		var s container.StatsResponse
		if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode stats for container %s: %w", id, err)
		}
		return &s, nil
	})
}

// Close releases the underlying client.
func (r *Runtime) Close() error {
	return r.api.Close()
}

// List returns every container, running or not. A brief listing is a
// single list call. A full listing also inspects each container and samples
// the running ones, with at most concurrency stats calls in flight. A
// container removed between listing and inspection is left out; a failed
// stats call leaves Stats nil.
func (r *Runtime) List(ctx context.Context, full bool, concurrency int) ([]ContainerRecord, error) {
	summaries, err := r.api.ContainerList(ctx, container.ListOptions{All: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	daemon := r.daemonPlatform(ctx)
	records := make([]ContainerRecord, 0, len(summaries))

	for _, s := range summaries {
		rec := ContainerRecord{
			Summary:  s,
			Platform: daemon,
		}
		if !full {
			records = append(records, rec)
			continue
		}

		insp, err := r.api.ContainerInspect(ctx, s.ID)
		if err != nil {
			if client.IsErrNotFound(err) {
				slog.Debug("container vanished before inspect", "id", s.ID)
				continue
			}
			return nil, fmt.Errorf("failed to inspect container %s: %w", s.ID, err)
		}
		rec.Inspect = &insp
		if insp.ContainerJSONBase != nil && insp.Platform != "" {
			rec.Platform.OS = insp.Platform
		}
		records = append(records, rec)
	}

	if full && r.stats != nil {
		if err := r.sampleStats(ctx, records, concurrency); err != nil {
			return nil, err
		}
	}

	return records, nil
}

func (r *Runtime) sampleStats(ctx context.Context, records []ContainerRecord, concurrency int) error {
	g, gctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	var mu sync.Mutex
	for i := range records {
		if records[i].Summary.State != stateRunning {
			continue
		}

		id := records[i].Summary.ID
		g.Go(func() error {
			s, err := r.stats(gctx, id)
			if err != nil {
				slog.Debug("container stats unavailable", "id", id, "error", err)
				return nil
			}
			mu.Lock()
			records[i].Stats = s
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// daemonPlatform asks the engine for its platform, falling back to the
// agent's own when the version call fails.
func (r *Runtime) daemonPlatform(ctx context.Context) ocispec.Platform {
	v, err := r.api.ServerVersion(ctx)
	if err != nil || v.Os == "" {
		return ocispec.Platform{OS: runtime.GOOS, Architecture: runtime.GOARCH}
	}
	return ocispec.Platform{OS: v.Os, Architecture: v.Arch}
}

// ContainerInventory lists all containers with a stats sample for the
// running ones.
func (h *Host) ContainerInventory(ctx context.Context) ([]ContainerRecord, error) {
	rt, err := h.containerRuntime()
	if err != nil {
		return nil, err
	}
	return rt.List(ctx, true, h.statsConcurrency)
}

// ContainersBrief lists all containers from a single list call, without
// inspect details or stats.
func (h *Host) ContainersBrief(ctx context.Context) ([]ContainerRecord, error) {
	rt, err := h.containerRuntime()
	if err != nil {
		return nil, err
	}
	return rt.List(ctx, false, h.statsConcurrency)
}

func (h *Host) containerRuntime() (*Runtime, error) {
	if h.runtime == nil {
		if h.runtimeErr != nil {
			return nil, fmt.Errorf("container runtime unavailable: %w", h.runtimeErr)
		}
		return nil, fmt.Errorf("container runtime not configured")
	}
	return h.runtime, nil
}
