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

// Package collector defines the probes that make up a host snapshot.
//
// # Core Interface
//
// Each probe implements Collector for its section of the snapshot:
//
//	type Collector[T any] interface {
//	    Collect(ctx context.Context) (T, error)
//	}
//
// A successful Collect returns the normalized section. A failed one returns
// the zero value and a *errors.StructuredError with code TIMEOUT or
// SERVICE_UNAVAILABLE; probes never retry and never cache.
//
// # Factory Pattern
//
// Factory abstracts probe construction so the aggregator can be tested
// against fakes. DefaultFactory wires every probe to one platform.Platform:
//
//	factory := collector.NewDefaultFactory(
//	    collector.WithPlatform(platform.NewHost()),
//	    collector.WithServices([]string{"nginx", "mysql"}),
//	)
//	mem, err := factory.CreateMemoryCollector().Collect(ctx)
//
// # Subpackages
//
//   - collector/os - operating system identification
//   - collector/cpu - processor load
//   - collector/storage - filesystem usage
//   - collector/memory - memory usage
//   - collector/service - named service state
//   - collector/container - container inventory
//   - collector/probe - timeout, recovery and metrics shared by all probes
//   - collector/file - key/value file parsing
package collector
