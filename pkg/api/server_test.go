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

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/byteload/metrics-agent/pkg/collector"
	"github.com/byteload/metrics-agent/pkg/config"
	"github.com/byteload/metrics-agent/pkg/defaults"
	"github.com/byteload/metrics-agent/pkg/platform"
	"github.com/byteload/metrics-agent/pkg/platform/platformtest"
	"github.com/byteload/metrics-agent/pkg/server"
	"github.com/byteload/metrics-agent/pkg/snapshotter"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestConstants(t *testing.T) {
	assert.Equal(t, "hostmetricsd", name)
	assert.Equal(t, "dev", versionDefault)
	assert.NotEmpty(t, version)
	assert.NotEmpty(t, commit)
	assert.NotEmpty(t, date)
}

func TestServerConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Address = "127.0.0.1"
	cfg.Port = 8181
	cfg.RateLimit = 7
	cfg.RateLimitBurst = 9
	cfg.ShutdownTimeout = 3 * time.Second

	routes := map[string]http.HandlerFunc{"/": func(http.ResponseWriter, *http.Request) {}}
	sc := ServerConfig(cfg, routes)

	assert.Equal(t, name, sc.Name)
	assert.Equal(t, version, sc.Version)
	assert.Equal(t, "127.0.0.1", sc.Address)
	assert.Equal(t, 8181, sc.Port)
	assert.Equal(t, rate.Limit(7), sc.RateLimit)
	assert.Equal(t, 9, sc.RateLimitBurst)
	assert.Equal(t, 3*time.Second, sc.ShutdownTimeout)
	assert.Len(t, sc.Handlers, 1)
	assert.Equal(t, defaults.ServerWriteTimeout, sc.WriteTimeout)
	assert.Equal(t, map[string]int{"/docker": containersRouteCost}, sc.RouteCost)
}

func TestServerConfig_LongSectionTimeout(t *testing.T) {
	cfg := config.Default()
	cfg.ProbeTimeout = 40 * time.Second
	require.NoError(t, cfg.Validate())

	sc := ServerConfig(cfg, nil)
	assert.Greater(t, sc.WriteTimeout, defaults.HandlerTimeout(cfg.ProbeTimeout))
	assert.Greater(t, defaults.HandlerTimeout(cfg.ProbeTimeout), cfg.ProbeTimeout)
}

func TestNewSnapshotter(t *testing.T) {
	cfg := config.Default()
	cfg.Services = []string{"sshd"}
	cfg.ProbeTimeout = 4 * time.Second
	cfg.IncludeContainers = false

	snap, h := NewSnapshotter(cfg, "v9")
	t.Cleanup(func() { _ = h.Close() })

	assert.Equal(t, "v9", snap.Version)
	assert.Equal(t, []string{"sshd"}, snap.Services)
	assert.Equal(t, 4*time.Second, snap.ProbeTimeout)
	assert.False(t, snap.IncludeContainers)
	require.NotNil(t, snap.Factory)
}

func TestRoutesThroughServer(t *testing.T) {
	fake := &platformtest.Fake{
		OSInfoFunc: platformtest.Value(&platform.OSInfo{Host: &host.InfoStat{OS: "linux"}}),
	}
	snap := &snapshotter.HostSnapshotter{
		Factory:      collector.NewDefaultFactory(collector.WithPlatform(fake)),
		Services:     []string{},
		ProbeTimeout: time.Second,
	}

	cfg := config.Default()
	s := server.New(server.WithConfig(ServerConfig(cfg, Routes(snap))))
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	t.Run("snapshot with failing probes", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.JSONEq(t, `{"platform":"linux"}`, string(body["os"]))
		assert.Equal(t, "null", string(body["cpu"]))
		assert.Equal(t, "[]", string(body["services"]))
		assert.Equal(t, "null", string(body["containers"]))
	})

	t.Run("docker failure", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/docker")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		var body server.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.True(t, body.Error)
		assert.Equal(t, snapshotter.MessageContainersFailed, body.Message)
		assert.NotEmpty(t, body.RequestID)
	})

	t.Run("unknown path", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/unknown")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestRun_StopsOnCancel(t *testing.T) {
	if testing.Short() {
		t.Skip("binds a local port")
	}

	cfg := config.Default()
	cfg.Address = "127.0.0.1"
	cfg.Port = 0
	cfg.ShutdownTimeout = time.Second
	cfg.IncludeContainers = false

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	require.NoError(t, Run(ctx, cfg))
}
