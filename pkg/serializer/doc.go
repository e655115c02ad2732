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

// Package serializer encodes snapshots for people and programs, and decodes
// structured files.
//
// # Formats
//
//   - json: indented JSON, the wire format of the HTTP API
//   - yaml: YAML with the same keys as JSON
//   - table: one "key  value" row per leaf field, keys built from the JSON
//     field names (memory.used_percent, storage.disks.[0].mount)
//
// # Writing
//
//	w := serializer.NewWriter(serializer.FormatYAML, os.Stdout)
//	defer w.Close()
//	if err := w.Serialize(ctx, snap); err != nil {
//	    return err
//	}
//
// For HTTP responses, RespondJSON encodes into a buffer first so an encoding
// failure never leaves a half-written body behind:
//
//	serializer.RespondJSON(w, http.StatusOK, snap)
//
// # Reading
//
//	cfg := config.Default()
//	err := serializer.DecodeFileInto("/etc/hostmetrics.yaml", cfg)
//
// The format is picked from the file extension and table is write-only.
// Fields absent from the file keep their current values.
package serializer
