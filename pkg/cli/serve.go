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

	"github.com/urfave/cli/v3"

	"github.com/byteload/metrics-agent/pkg/api"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve host metrics over HTTP",
		Description: `Start the HTTP API. GET / returns the full snapshot and GET /docker the
container inventory. /health, /ready and /metrics are always available.

Flags override the config file and the environment (PORT, ADDRESS, SERVICES,
PROBE_TIMEOUT, INCLUDE_CONTAINERS, LOG_LEVEL).`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "port to listen on (overrides PORT)",
			},
			&cli.StringFlag{
				Name:  "address",
				Usage: "address to bind (overrides ADDRESS, default: all interfaces)",
			},
			servicesFlag(),
			probeTimeoutFlag(),
			includeContainersFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return api.Run(ctx, cfg)
		},
	}
}
