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

// Package measurement defines the normalized schema reported by the agent and
// the pure functions that derive ratios and totals from it.
//
// Every entity is a value snapshot built fresh for one request. Entities are
// either fully populated or absent (nil); there is no partially filled form.
//
// Derived metrics never perform I/O and never return NaN or Inf: ratios whose
// denominator is zero are reported as nil, which serializes as JSON null.
//
//	size, used := measurement.StorageTotals(disks)
//	pct := measurement.UsedPercent(size, used) // nil when size == 0
package measurement
