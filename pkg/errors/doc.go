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

// Package errors provides structured errors shared by probes, the aggregator
// and the HTTP layer.
//
// A probe failure is always a *StructuredError carrying ErrCodeUnavailable or
// ErrCodeTimeout; it never crosses the aggregator boundary. Failures that do
// reach the HTTP layer carry ErrCodeInternal.
//
//	err := errors.Wrap(errors.ErrCodeUnavailable, "memory probe failed", cause)
//	if errors.IsCode(err, errors.ErrCodeTimeout) { ... }
package errors
