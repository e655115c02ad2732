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

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/byteload/metrics-agent/pkg/api"
	"github.com/byteload/metrics-agent/pkg/config"
	"github.com/byteload/metrics-agent/pkg/logging"
	"github.com/byteload/metrics-agent/pkg/serializer"
	"github.com/byteload/metrics-agent/pkg/snapshotter"
)

const (
	name           = "hostmetrics"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"

	// newSnapshotter builds the aggregator for the local host; tests swap it
	// for one backed by a fake platform.
	newSnapshotter = func(cfg *config.Config) (*snapshotter.HostSnapshotter, io.Closer) {
		return api.NewSnapshotter(cfg, version)
	}
)

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "host metrics agent",
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		HideHelpCommand:       true,
		Description: `Reports operating system, CPU, storage, memory, service and container
metrics of the local host, either as a one-off snapshot or over HTTP.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML or JSON config file",
				Sources: cli.EnvVars(config.EnvConfigFile),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			serveCmd(),
			snapshotCmd(),
			containersCmd(),
		},
		ShellComplete: commandLister,
	}
}

// commandLister prints the visible subcommands for shell completion.
func commandLister(_ context.Context, cmd *cli.Command) {
	if cmd == nil {
		return
	}
	w := cmd.Writer
	if w == nil {
		w = os.Stdout
	}
	for _, c := range cmd.Commands {
		if c.Hidden {
			continue
		}
		fmt.Fprintln(w, c.Name)
	}
}

func outputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file path (default: stdout)",
	}
}

func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatJSON),
		Usage:   fmt.Sprintf("output format (supported values: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}
}

func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(strings.ToLower(strings.TrimSpace(cmd.String("format"))))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q (supported: %s)",
			cmd.String("format"), strings.Join(serializer.SupportedFormats(), ", "))
	}
	return f, nil
}

// loadConfig layers the flags that were set explicitly over the file and
// environment configuration, then configures the default logger.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(config.WithFile(cmd.String("config")))
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}
	if cmd.IsSet("port") {
		cfg.Port = cmd.Int("port")
	}
	if cmd.IsSet("address") {
		cfg.Address = cmd.String("address")
	}
	if cmd.IsSet("services") {
		cfg.Services = config.ParseServices(cmd.String("services"))
	}
	if cmd.IsSet("probe-timeout") {
		cfg.ProbeTimeout = cmd.Duration("probe-timeout")
	}
	if cmd.IsSet("include-containers") {
		cfg.IncludeContainers = cmd.Bool("include-containers")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logging.SetDefaultStructuredLoggerWithLevel(name, version, cfg.LogLevel)
	slog.Debug("configuration loaded",
		"command", cmd.Name,
		"version", version,
		"services", cfg.Services,
		"probeTimeout", cfg.ProbeTimeout)

	return cfg, nil
}

func servicesFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "services",
		Usage: "comma-separated service names to report (overrides SERVICES)",
	}
}

func probeTimeoutFlag() *cli.DurationFlag {
	return &cli.DurationFlag{
		Name:  "probe-timeout",
		Usage: "upper bound on a single probe (overrides PROBE_TIMEOUT)",
	}
}

func includeContainersFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:  "include-containers",
		Usage: "include the container summary in snapshots (overrides INCLUDE_CONTAINERS)",
	}
}
