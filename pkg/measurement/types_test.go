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

package measurement

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	for _, mt := range Types {
		got, ok := ParseType(mt.String())
		assert.True(t, ok, "type %s should parse", mt)
		assert.Equal(t, mt, got)
	}

	_, ok := ParseType("gpu")
	assert.False(t, ok)
}

func TestContainer_JSONRoundTrip(t *testing.T) {
	started := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	in := Container{
		ID:           "0123456789ab",
		Name:         "web",
		Image:        "nginx:latest",
		State:        "running",
		Ports:        []Port{{IP: "0.0.0.0", PrivatePort: 80, PublicPort: 8080, Type: "tcp"}},
		Platform:     "linux/amd64",
		StartedAt:    &started,
		RestartCount: 2,
		Mounts:       []Mount{{Type: "bind", Source: "/srv", Destination: "/usr/share/nginx/html", Mode: "ro", RW: false}},
		Stats: &ContainerStats{
			CPUPercent:    1.5,
			MemoryPercent: 2.5,
			MemoryUsage:   math.MaxUint64 - 1,
			MemoryLimit:   math.MaxUint64,
			Pids:          3,
		},
	}

	b, err := json.Marshal(in)
	require.NoError(t, err)

	var out Container
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out)
}

func TestMemory_JSONKeys(t *testing.T) {
	m := Memory{Total: 10, Available: 5, Active: 2}
	m.Derive()

	b, err := json.Marshal(m)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	for _, key := range []string{
		"total", "free", "used", "active", "available", "buff_cache",
		"swap_total", "swap_used", "swap_free", "used_percent", "active_percent",
	} {
		assert.Contains(t, raw, key)
	}
	assert.Len(t, raw, 11)
}

func TestOS_OmitsEmptyFields(t *testing.T) {
	b, err := json.Marshal(OS{Platform: "linux"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"platform":"linux"}`, string(b))
}
