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

package service

import (
	"context"
	"errors"
	"math"
	"testing"

	pkgerrors "github.com/byteload/metrics-agent/pkg/errors"
	"github.com/byteload/metrics-agent/pkg/measurement"
	"github.com/byteload/metrics-agent/pkg/platform"
	"github.com/byteload/metrics-agent/pkg/platform/platformtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoServices(_ context.Context, names []string) ([]platform.ServiceState, error) {
	res := make([]platform.ServiceState, len(names))
	for i, n := range names {
		res[i] = platform.ServiceState{Name: n, Running: n == "nginx", CPUPercent: 1.5, MemPercent: 0.5}
	}
	return res, nil
}

func TestCollectNamed(t *testing.T) {
	fake := &platformtest.Fake{ServicesFunc: echoServices}
	c := &Collector{Platform: fake, Defaults: []string{"nginx", "mysql"}}

	t.Run("nil uses defaults", func(t *testing.T) {
		got, err := c.CollectNamed(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, []measurement.Service{
			{Name: "nginx", Running: true, CPU: 1.5, Mem: 0.5},
			{Name: "mysql", Running: false, CPU: 1.5, Mem: 0.5},
		}, got)
	})

	t.Run("explicit names keep order and duplicates", func(t *testing.T) {
		got, err := c.CollectNamed(context.Background(), []string{"redis", "nginx", "redis"})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "redis", got[0].Name)
		assert.Equal(t, "nginx", got[1].Name)
		assert.Equal(t, "redis", got[2].Name)
	})

	t.Run("empty list skips the platform", func(t *testing.T) {
		before := fake.Calls()
		got, err := c.CollectNamed(context.Background(), []string{})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
		assert.Equal(t, before, fake.Calls())
	})

	t.Run("no defaults", func(t *testing.T) {
		got, err := (&Collector{Platform: fake}).Collect(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []measurement.Service{}, got)
	})
}

func TestCollect_Failure(t *testing.T) {
	c := &Collector{
		Platform: &platformtest.Fake{ServicesFunc: func(context.Context, []string) ([]platform.ServiceState, error) {
			return nil, errors.New("process table unavailable")
		}},
		Defaults: []string{"nginx"},
	}

	got, err := c.Collect(context.Background())
	assert.Nil(t, got)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeUnavailable))
}

func TestNormalize(t *testing.T) {
	t.Run("count mismatch", func(t *testing.T) {
		_, err := Normalize([]string{"a", "b"}, []platform.ServiceState{{Name: "a"}})
		assert.Error(t, err)
	})

	t.Run("name mismatch", func(t *testing.T) {
		_, err := Normalize([]string{"a"}, []platform.ServiceState{{Name: "b"}})
		assert.Error(t, err)
	})

	t.Run("non-finite usage", func(t *testing.T) {
		got, err := Normalize([]string{"a"}, []platform.ServiceState{{Name: "a", CPUPercent: math.Inf(1), MemPercent: math.NaN()}})
		require.NoError(t, err)
		assert.Equal(t, 0.0, got[0].CPU)
		assert.Equal(t, 0.0, got[0].Mem)
	})
}
