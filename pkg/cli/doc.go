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

// Package cli implements the hostmetrics command-line interface.
//
// # Commands
//
// serve - Run the HTTP API:
//
//	hostmetrics serve [--port 3000] [--address ADDR] [--services a,b]
//
// snapshot - Capture metrics once:
//
//	hostmetrics snapshot [--services a,b] [--output FILE] [--format json|yaml|table]
//
// containers - List containers with usage samples:
//
//	hostmetrics containers [--output FILE] [--format json|yaml|table]
//
// # Global Flags
//
//	--config, -c   Config file, YAML or JSON (env: CONFIG_FILE)
//	--log-level    Log level: debug, info, warn, error
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Configuration
//
// Each command starts from the built-in defaults, then applies the config
// file, a .env file in the working directory, the process environment and
// finally any flag given on the command line. See package config for the
// variable names.
//
// # Exit Codes
//
//	0  Success
//	1  Invalid arguments or configuration, or a failed command
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/byteload/metrics-agent/pkg/cli.version=1.0.0'"
package cli
