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

// Package probe runs a single platform query on behalf of a collector.
//
// Fetch is the only way collectors touch the platform. It bounds the query by
// the context deadline, converts panics into errors, normalizes the raw
// result, and records the outcome:
//
//	mem, err := probe.Fetch(ctx, "memory", p.MemoryStats, normalize)
//
// Every failure is a *errors.StructuredError with code TIMEOUT when the
// deadline passed and SERVICE_UNAVAILABLE otherwise. A query that ignores its
// context is abandoned once the deadline passes; its goroutine exits on its
// own when the query eventually returns.
package probe
