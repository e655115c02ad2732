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

// Package config loads the agent configuration.
//
// Values are layered, later sources overriding earlier ones:
//
//  1. built-in defaults (Default)
//  2. an optional YAML or JSON file (CONFIG_FILE or WithFile)
//  3. a .env file in the working directory, if present
//  4. process environment variables
//
// Command-line flags are applied on top by the caller. The result is
// validated once at startup and passed explicitly to the components that
// need it.
//
// Recognized environment variables:
//
//	PORT                listen port (default 3000)
//	ADDRESS             listen address (default all interfaces)
//	SERVICES            comma-separated service names (default nginx,mysql)
//	PROBE_TIMEOUT       per-probe deadline, e.g. 10s
//	CPU_SAMPLE_INTERVAL CPU sampling window, e.g. 500ms
//	INCLUDE_CONTAINERS  add the container inventory to snapshots (true/false)
//	LOG_LEVEL           debug, info, warn or error
//	RATE_LIMIT          API requests per second
//	RATE_LIMIT_BURST    API request burst
//	SHUTDOWN_TIMEOUT    graceful shutdown deadline, e.g. 30s
//
// Durations, in the file or the environment, accept Go duration syntax or a
// plain number of seconds.
package config
