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

// Package container collects the container inventory of the local engine.
//
// Two forms are offered. Collect returns every container with a resource
// usage sample for the running ones and backs the container listing
// endpoint. Brief omits the samples and is embedded in the host snapshot.
//
// Identifiers are shortened to 12 characters, names lose the leading slash,
// and image references are shown in their familiar form (nginx:latest rather
// than docker.io/library/nginx:latest).
package container
