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
	"log/slog"
	"net/http"

	"github.com/byteload/metrics-agent/pkg/collector"
	"github.com/byteload/metrics-agent/pkg/config"
	"github.com/byteload/metrics-agent/pkg/defaults"
	"github.com/byteload/metrics-agent/pkg/logging"
	"github.com/byteload/metrics-agent/pkg/platform"
	"github.com/byteload/metrics-agent/pkg/server"
	"github.com/byteload/metrics-agent/pkg/snapshotter"
	"golang.org/x/time/rate"
)

const (
	name           = "hostmetricsd"
	versionDefault = "dev"

	// containersRouteCost is the rate-limit weight of a full container
	// inventory, which inspects and samples every container.
	containersRouteCost = 10
)

var (
	// overridden during build with ldflags to reflect actual version info
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve loads the configuration from the environment and runs the API
// server until SIGINT or SIGTERM.
func Serve() error {
	logging.SetDefaultStructuredLogger(name, version)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		return err
	}

	return Run(context.Background(), cfg)
}

// Run serves the API with cfg until ctx is canceled or a termination
// signal arrives.
func Run(ctx context.Context, cfg *config.Config) error {
	logging.SetDefaultStructuredLoggerWithLevel(name, version, cfg.LogLevel)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"port", cfg.Port,
		"services", cfg.Services,
		"includeContainers", cfg.IncludeContainers,
	)

	snap, host := NewSnapshotter(cfg, version)
	defer func() {
		if err := host.Close(); err != nil {
			slog.Warn("failed to close platform", "error", err)
		}
	}()

	s := server.New(server.WithConfig(ServerConfig(cfg, Routes(snap))))

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

// NewSnapshotter builds the aggregator over the local host. The returned
// host must be closed once the snapshotter is no longer used.
func NewSnapshotter(cfg *config.Config, version string) (*snapshotter.HostSnapshotter, *platform.Host) {
	host := platform.NewHost(
		platform.WithCPUSampleInterval(cfg.CPUSampleInterval),
	)

	factory := collector.NewDefaultFactory(
		collector.WithPlatform(host),
		collector.WithServices(cfg.Services),
	)

	return &snapshotter.HostSnapshotter{
		Version:           version,
		Factory:           factory,
		Services:          cfg.Services,
		ProbeTimeout:      cfg.ProbeTimeout,
		IncludeContainers: cfg.IncludeContainers,
	}, host
}

const (
	routeSnapshot   = "/"
	routeContainers = "/docker"
)

// Routes maps the API paths to the snapshotter handlers.
func Routes(s *snapshotter.HostSnapshotter) map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		routeSnapshot:   s.HandleSnapshot,
		routeContainers: s.HandleContainers,
	}
}

// ServerConfig translates the agent configuration into server settings.
func ServerConfig(cfg *config.Config, routes map[string]http.HandlerFunc) *server.Config {
	sc := server.NewConfig()
	sc.Name = name
	sc.Version = version
	sc.Handlers = routes
	sc.Address = cfg.Address
	sc.Port = cfg.Port
	sc.RateLimit = rate.Limit(cfg.RateLimit)
	sc.RateLimitBurst = cfg.RateLimitBurst
	sc.ShutdownTimeout = cfg.ShutdownTimeout
	sc.WriteTimeout = defaults.WriteTimeout(cfg.ProbeTimeout)
	sc.RouteCost = map[string]int{routeContainers: containersRouteCost}
	return sc
}
