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
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/byteload/metrics-agent/pkg/serializer"
)

func snapshotCmd() *cli.Command {
	return &cli.Command{
		Name:                  "snapshot",
		EnableShellCompletion: true,
		Usage:                 "Capture a one-off host metrics snapshot",
		Description: `Capture OS, CPU, storage, memory, service and container metrics once and
write them in JSON, YAML or table format. Sections whose probe fails are
written as null.

# Examples

  hostmetrics snapshot --services nginx,sshd --format yaml
  hostmetrics snapshot --include-containers=false --output host.json`,
		Flags: []cli.Flag{
			servicesFlag(),
			probeTimeoutFlag(),
			includeContainersFlag(),
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			snap, closer := newSnapshotter(cfg)
			defer closeQuietly(closer)

			w := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer closeQuietly(w)
			snap.Serializer = w

			return snap.Measure(ctx)
		},
	}
}

func containersCmd() *cli.Command {
	return &cli.Command{
		Name:  "containers",
		Usage: "List containers with resource usage",
		Description: `Query the container runtime for every container, running or not, with
inspect details and a CPU, memory and process count sample for the running ones.`,
		Flags: []cli.Flag{
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			snap, closer := newSnapshotter(cfg)
			defer closeQuietly(closer)

			containers, err := snap.Containers(ctx)
			if err != nil {
				return fmt.Errorf("failed to list containers: %w", err)
			}

			w := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer closeQuietly(w)

			return w.Serialize(ctx, containers)
		},
	}
}

func closeQuietly(c interface{ Close() error }) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		slog.Warn("failed to close", "error", err)
	}
}
