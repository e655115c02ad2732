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

// Package snapshotter aggregates the probe adapters into a single host
// snapshot and serves it over HTTP.
//
// Each call to Snapshot is an independent collection cycle. Every probe
// runs in its own goroutine under its own deadline; a probe that fails,
// panics or times out leaves its section null while the remaining
// sections are still reported.
//
//	s := &snapshotter.HostSnapshotter{
//	    Version:           "v1.0.0",
//	    Factory:           collector.NewDefaultFactory(),
//	    ProbeTimeout:      defaults.ProbeTimeout,
//	    IncludeContainers: true,
//	}
//
//	snap, err := s.Snapshot(ctx, snapshotter.Request{})
//
// Snapshot only returns an error when the snapshotter has no factory or
// the caller's context ended before the cycle completed.
//
// HandleSnapshot and HandleContainers expose the snapshot and the full
// container inventory as JSON:
//
//	GET /?services=nginx,redis
//	GET /docker
//
// Prometheus metrics:
//
//   - hostmetrics_snapshot_duration_seconds: whole cycle duration
//   - hostmetrics_snapshot_total{status}: cycles by outcome
//   - hostmetrics_snapshot_section_duration_seconds{section}: per-probe duration
//   - hostmetrics_snapshot_null_sections: null sections in the last snapshot
package snapshotter
