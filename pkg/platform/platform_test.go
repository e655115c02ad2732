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

package platform

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/coreos/go-systemd/v22/dbus"
	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRelease(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "os-release")
	fallback := filepath.Join(dir, "usr-os-release")

	content := `# comment
NAME="Ubuntu"
ID=ubuntu
VERSION_ID="22.04"
VERSION_CODENAME=jammy
PRETTY_NAME='Ubuntu 22.04.4 LTS'
MALFORMED
`
	require.NoError(t, os.WriteFile(fallback, []byte(content), 0o600))

	t.Run("falls back when primary missing", func(t *testing.T) {
		got, err := ReadRelease(primary, fallback)
		require.NoError(t, err)
		assert.Equal(t, "Ubuntu", got["NAME"])
		assert.Equal(t, "22.04", got["VERSION_ID"])
		assert.Equal(t, "jammy", got["VERSION_CODENAME"])
		assert.Equal(t, "Ubuntu 22.04.4 LTS", got["PRETTY_NAME"])
		assert.NotContains(t, got, "MALFORMED")
	})

	t.Run("prefers primary", func(t *testing.T) {
		require.NoError(t, os.WriteFile(primary, []byte("ID=debian\n"), 0o600))
		got, err := ReadRelease(primary, fallback)
		require.NoError(t, err)
		assert.Equal(t, "debian", got["ID"])
	})

	t.Run("no paths", func(t *testing.T) {
		_, err := ReadRelease()
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadRelease(filepath.Join(dir, "nope"))
		assert.Error(t, err)
	})
}

func TestMatchesService(t *testing.T) {
	tests := []struct {
		service string
		process string
		want    bool
	}{
		{"mysql", "mysqld", true},
		{"mysql", "mysql", true},
		{"nginx", "nginx", true},
		{"nginx.service", "nginx", true},
		{"sql", "mysqld", false},
		{"nginx", "apache2", false},
		{"", "anything", false},
	}

	for _, tt := range tests {
		t.Run(tt.service+"/"+tt.process, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesService(tt.service, tt.process))
		})
	}
}

func TestUnitName(t *testing.T) {
	assert.Equal(t, "nginx.service", UnitName("nginx"))
	assert.Equal(t, "nginx.service", UnitName("nginx.service"))
}

func TestApplyUnitStatus(t *testing.T) {
	tests := []struct {
		name        string
		status      dbus.UnitStatus
		wantApplied bool
		wantRunning bool
	}{
		{"active running", dbus.UnitStatus{Name: "nginx.service", LoadState: "loaded", ActiveState: "active", SubState: "running"}, true, true},
		{"active exited", dbus.UnitStatus{Name: "nginx.service", LoadState: "loaded", ActiveState: "active", SubState: "exited"}, true, false},
		{"failed", dbus.UnitStatus{Name: "nginx.service", LoadState: "loaded", ActiveState: "failed", SubState: "failed"}, true, false},
		{"not found", dbus.UnitStatus{Name: "nginx.service", LoadState: "not-found", ActiveState: "inactive", SubState: "dead"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ServiceState{Name: "nginx", Running: true}
			applied := ApplyUnitStatus(&s, tt.status)
			assert.Equal(t, tt.wantApplied, applied)
			assert.Equal(t, tt.wantRunning, s.Running)
			if applied {
				assert.Equal(t, "nginx.service", s.Unit)
			}
		})
	}
}

type notFoundError struct{}

func (notFoundError) Error() string { return "no such container" }
func (notFoundError) NotFound()     {}

type fakeAPI struct {
	list       []container.Summary
	listErr    error
	inspect    map[string]container.InspectResponse
	inspectErr map[string]error
	version    types.Version
	versionErr error
	inspects   atomic.Int32
}

func (f *fakeAPI) ContainerList(_ context.Context, _ container.ListOptions) ([]container.Summary, error) {
	return f.list, f.listErr
}

func (f *fakeAPI) ContainerInspect(_ context.Context, id string) (container.InspectResponse, error) {
	f.inspects.Add(1)
	if err := f.inspectErr[id]; err != nil {
		return container.InspectResponse{}, err
	}
	return f.inspect[id], nil
}

func (f *fakeAPI) ServerVersion(_ context.Context) (types.Version, error) {
	return f.version, f.versionErr
}

func (f *fakeAPI) Close() error { return nil }

func inspectResponse(raw string) container.InspectResponse {
	var r container.InspectResponse
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		panic(err)
	}
	return r
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		list: []container.Summary{
			{ID: "aaaaaaaaaaaaaaaa", Names: []string{"/web"}, Image: "nginx", State: "running"},
			{ID: "bbbbbbbbbbbbbbbb", Names: []string{"/gone"}, Image: "redis", State: "running"},
			{ID: "cccccccccccccccc", Names: []string{"/batch"}, Image: "busybox", State: "exited"},
		},
		inspect: map[string]container.InspectResponse{
			"aaaaaaaaaaaaaaaa": inspectResponse(`{"Id": "aaaaaaaaaaaaaaaa", "Platform": "linux", "RestartCount": 1}`),
			"cccccccccccccccc": {},
		},
		inspectErr: map[string]error{
			"bbbbbbbbbbbbbbbb": notFoundError{},
		},
		version: types.Version{Os: "linux", Arch: "arm64"},
	}
}

func TestRuntimeList(t *testing.T) {
	var calls atomic.Int32
	stats := func(_ context.Context, id string) (*container.StatsResponse, error) {
		calls.Add(1)
		return &container.StatsResponse{ID: id}, nil
	}

	t.Run("brief is a single list call", func(t *testing.T) {
		calls.Store(0)
		api := newFakeAPI()
		rt := NewRuntime(api, stats)

		recs, err := rt.List(context.Background(), false, 2)
		require.NoError(t, err)
		require.Len(t, recs, 3)
		for _, rec := range recs {
			assert.Nil(t, rec.Inspect, rec.Summary.ID)
			assert.Nil(t, rec.Stats, rec.Summary.ID)
		}
		assert.Zero(t, api.inspects.Load())
		assert.Zero(t, calls.Load())
		assert.Equal(t, "linux", recs[0].Platform.OS)
		assert.Equal(t, "arm64", recs[0].Platform.Architecture)
	})

	t.Run("full inspects, skips vanished and samples running only", func(t *testing.T) {
		calls.Store(0)
		api := newFakeAPI()
		rt := NewRuntime(api, stats)

		recs, err := rt.List(context.Background(), true, 1)
		require.NoError(t, err)
		require.Len(t, recs, 2)
		assert.Equal(t, "aaaaaaaaaaaaaaaa", recs[0].Summary.ID)
		assert.Equal(t, "cccccccccccccccc", recs[1].Summary.ID)
		assert.Equal(t, int32(3), api.inspects.Load())
		require.NotNil(t, recs[0].Inspect)
		assert.Equal(t, 1, recs[0].Inspect.RestartCount)
		require.NotNil(t, recs[0].Stats)
		assert.Equal(t, "aaaaaaaaaaaaaaaa", recs[0].Stats.ID)
		assert.Nil(t, recs[1].Stats)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("stats failure leaves stats nil", func(t *testing.T) {
		rt := NewRuntime(newFakeAPI(), func(context.Context, string) (*container.StatsResponse, error) {
			return nil, errors.New("boom")
		})

		recs, err := rt.List(context.Background(), true, 2)
		require.NoError(t, err)
		assert.Nil(t, recs[0].Stats)
	})

	t.Run("list failure", func(t *testing.T) {
		api := newFakeAPI()
		api.listErr = errors.New("daemon down")

		_, err := NewRuntime(api, stats).List(context.Background(), false, 1)
		assert.Error(t, err)
	})

	t.Run("inspect failure", func(t *testing.T) {
		api := newFakeAPI()
		api.inspectErr["aaaaaaaaaaaaaaaa"] = errors.New("permission denied")

		_, err := NewRuntime(api, stats).List(context.Background(), true, 1)
		assert.Error(t, err)
	})

	t.Run("version failure falls back to agent platform", func(t *testing.T) {
		api := newFakeAPI()
		api.versionErr = errors.New("nope")

		recs, err := NewRuntime(api, stats).List(context.Background(), false, 1)
		require.NoError(t, err)
		assert.NotEmpty(t, recs[1].Platform.Architecture)
	})
}

func TestHostContainersWithoutRuntime(t *testing.T) {
	h := &Host{runtimeErr: errors.New("no docker")}

	_, err := h.ContainersBrief(context.Background())
	assert.ErrorContains(t, err, "no docker")

	_, err = (&Host{}).ContainerInventory(context.Background())
	assert.Error(t, err)
}

func TestHostServicesEmpty(t *testing.T) {
	h := &Host{}

	got, err := h.Services(context.Background(), []string{})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestHostCPULoadCanceled(t *testing.T) {
	if testing.Short() {
		t.Skip("reads host cpu times")
	}

	h := NewHost(WithContainerRuntime(NewRuntime(newFakeAPI(), nil)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.CPULoad(ctx)
	assert.Error(t, err)
}

func TestHostMemoryStats(t *testing.T) {
	if testing.Short() {
		t.Skip("reads host memory")
	}

	h := NewHost(WithContainerRuntime(NewRuntime(newFakeAPI(), nil)))
	got, err := h.MemoryStats(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got.Virtual)
	assert.Positive(t, got.Virtual.Total)
}
