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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinite(t *testing.T) {
	assert.Equal(t, 0.0, Finite(math.NaN()))
	assert.Equal(t, 0.0, Finite(math.Inf(1)))
	assert.Equal(t, 0.0, Finite(math.Inf(-1)))
	assert.Equal(t, 42.5, Finite(42.5))
}

func TestUsedPercent(t *testing.T) {
	tests := []struct {
		name  string
		total uint64
		used  uint64
		want  *float64
	}{
		{"zero total", 0, 0, nil},
		{"zero total with used", 0, 10, nil},
		{"half", 200, 100, floatPtr(50)},
		{"full", 10, 10, floatPtr(100)},
		{"empty", 10, 0, floatPtr(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UsedPercent(tt.total, tt.used)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestUsedPercent_ZeroTotalSerializesAsNull(t *testing.T) {
	s := NewStorage(nil)

	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":0,"used":0,"used_percent":null,"disks":[]}`, string(b))
}

func TestStorageTotals(t *testing.T) {
	tests := []struct {
		name     string
		disks    []Disk
		wantSize uint64
		wantUsed uint64
	}{
		{"empty", []Disk{}, 0, 0},
		{"nil", nil, 0, 0},
		{"single", []Disk{{Size: 100, Used: 40}}, 100, 40},
		{"many", []Disk{{Size: 100, Used: 40}, {Size: 1 << 40, Used: 1 << 39}, {Size: 7, Used: 0}}, 100 + 1<<40 + 7, 40 + 1<<39},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			size, used := StorageTotals(tt.disks)
			assert.Equal(t, tt.wantSize, size)
			assert.Equal(t, tt.wantUsed, used)
		})
	}
}

func TestNewStorage(t *testing.T) {
	disks := []Disk{
		{Mount: "/", Size: 1000, Used: 250},
		{Mount: "/data", Size: 3000, Used: 750},
	}

	s := NewStorage(disks)

	assert.Equal(t, uint64(4000), s.Total)
	assert.Equal(t, uint64(1000), s.Used)
	require.NotNil(t, s.UsedPercent)
	assert.InDelta(t, 25.0, *s.UsedPercent, 1e-9)
	assert.Equal(t, "/", s.Disks[0].Mount)
	assert.Equal(t, "/data", s.Disks[1].Mount)
}

func TestMemoryDerive(t *testing.T) {
	m := &Memory{Total: 1000, Available: 400, Active: 300}
	m.Derive()

	assert.Equal(t, uint64(600), m.Used)
	require.NotNil(t, m.UsedPercent)
	assert.InDelta(t, 60.0, *m.UsedPercent, 1e-9)
	require.NotNil(t, m.ActivePercent)
	assert.InDelta(t, 30.0, *m.ActivePercent, 1e-9)
}

func TestMemoryDerive_Edges(t *testing.T) {
	t.Run("zero total", func(t *testing.T) {
		m := &Memory{}
		m.Derive()
		assert.Nil(t, m.UsedPercent)
		assert.Nil(t, m.ActivePercent)
		assert.Zero(t, m.Used)
	})

	t.Run("available above total", func(t *testing.T) {
		m := &Memory{Total: 100, Available: 150}
		m.Derive()
		assert.Zero(t, m.Used)
		require.NotNil(t, m.UsedPercent)
		assert.Equal(t, 0.0, *m.UsedPercent)
	})
}

func TestBusyPercent(t *testing.T) {
	assert.Equal(t, 0.0, BusyPercent(5, 0))
	assert.Equal(t, 0.0, BusyPercent(5, -1))
	assert.InDelta(t, 25.0, BusyPercent(1, 4), 1e-9)
	assert.Equal(t, 100.0, BusyPercent(5, 4))
	assert.Equal(t, 0.0, BusyPercent(-1, 4))
}

func TestContainerCPUPercent(t *testing.T) {
	tests := []struct {
		name        string
		cpuDelta    uint64
		systemDelta uint64
		cpus        uint32
		want        float64
	}{
		{"no cpu delta", 0, 100, 4, 0},
		{"no system delta", 10, 0, 4, 0},
		{"single cpu", 25, 100, 1, 25},
		{"four cpus", 25, 100, 4, 100},
		{"unknown cpus", 50, 100, 0, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ContainerCPUPercent(tt.cpuDelta, tt.systemDelta, tt.cpus), 1e-9)
		})
	}
}

func TestContainerMemoryUsage(t *testing.T) {
	assert.Equal(t, uint64(100), ContainerMemoryUsage(100, nil))
	assert.Equal(t, uint64(70), ContainerMemoryUsage(100, map[string]uint64{"inactive_file": 30}))
	assert.Equal(t, uint64(60), ContainerMemoryUsage(100, map[string]uint64{"total_inactive_file": 40}))
	assert.Equal(t, uint64(100), ContainerMemoryUsage(100, map[string]uint64{"inactive_file": 300}))
}

func TestDelta(t *testing.T) {
	assert.Equal(t, uint64(5), Delta(10, 15))
	assert.Equal(t, uint64(0), Delta(15, 10))
}

func TestSum(t *testing.T) {
	type item struct{ n uint64 }
	assert.Equal(t, uint64(0), Sum([]item{}, func(i item) uint64 { return i.n }))
	assert.Equal(t, uint64(6), Sum([]item{{1}, {2}, {3}}, func(i item) uint64 { return i.n }))
}

func floatPtr(v float64) *float64 { return &v }
