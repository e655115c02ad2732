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

// Package logging provides structured logging setup for the agent binaries.
//
// It wraps log/slog with a JSON handler writing to stderr, injects the
// module name and version into every record, and adds source locations
// when running at debug level.
//
// Set the default logger early in main:
//
//	logging.SetDefaultStructuredLogger("hostmetricsd", version)
//	slog.Info("server started", "port", 3000)
//
// LOG_LEVEL (debug, info, warn|warning, error; case-insensitive) selects the
// level when no explicit level is given. Unknown values fall back to info.
package logging
