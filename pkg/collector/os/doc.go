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

// Package os collects operating system identification.
//
// The collector combines the host description reported by gopsutil with the
// freedesktop.org os-release file:
//
//   - platform: kernel family (linux, darwin, windows)
//   - distro: os-release NAME, falling back to the title-cased platform id
//   - release: os-release VERSION_ID, falling back to the platform version
//   - codename: os-release VERSION_CODENAME
//   - kernel: running kernel version
//   - arch: kernel architecture
//
// # Usage
//
//	c := &os.Collector{Platform: platform.NewHost()}
//	info, err := c.Collect(ctx)
package os
