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

// Package platform isolates the raw operating system and container runtime
// queries behind a single interface.
//
// Every method returns library-native structures (gopsutil stats, Docker API
// types) without interpretation; normalization happens in the probe adapters
// under pkg/collector. Tests substitute the Platform interface with a fake to
// exercise adapters and the aggregator without touching the host.
//
// The production implementation is Host:
//
//	h := platform.NewHost(platform.WithCPUSampleInterval(250 * time.Millisecond))
//	defer h.Close()
//
//	mem, err := h.MemoryStats(ctx)
package platform
