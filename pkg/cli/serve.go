// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

	"github.com/nutrihelp/nutrihelp-api/pkg/api"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the API server",
		Description: `Start the HTTP API host. On startup the uploads directory and its temp
subdirectory are created, a reclamation cycle runs, and cycles then repeat
every --interval until the process receives SIGINT or SIGTERM.

Flags override the matching environment variables.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:  "uploads-dir",
				Usage: "Uploads directory served under /uploads/ (env: UPLOADS_DIR)",
			},
			&cli.StringFlag{
				Name:  "scratch-dir",
				Usage: "Scratch directory to reclaim (default: <uploads-dir>/temp, env: SCRATCH_DIR)",
			},
			&cli.DurationFlag{
				Name:  "retention",
				Usage: "Delete scratch entries older than this (env: SCRATCH_RETENTION)",
			},
			&cli.DurationFlag{
				Name:  "interval",
				Usage: "Time between reclamation cycles (env: SCRATCH_INTERVAL)",
			},
			&cli.StringFlag{
				Name:  "api-doc",
				Usage: "OpenAPI YAML document served under /api-docs (env: API_DOC_PATH)",
			},
			&cli.BoolFlag{
				Name:  "no-watch",
				Usage: "Disable the scratch directory watcher",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return api.Serve(ctx, serveConfig(cmd))
		},
	}
}

// serveConfig layers the flags that were set over api.NewConfig.
func serveConfig(cmd *cli.Command) *api.Config {
	cfg := api.NewConfig()
	cfg.LogLevel = cmd.String("log-level")

	if cmd.IsSet("port") {
		cfg.Server.Port = cmd.Int("port")
	}
	if cmd.IsSet("uploads-dir") {
		cfg.UploadsDir = cmd.String("uploads-dir")
	}
	if cmd.IsSet("scratch-dir") {
		cfg.ScratchDir = cmd.String("scratch-dir")
	}
	if cmd.IsSet("retention") {
		cfg.Retention = cmd.Duration("retention")
	}
	if cmd.IsSet("interval") {
		cfg.Interval = cmd.Duration("interval")
	}
	if cmd.IsSet("api-doc") {
		cfg.DocPath = cmd.String("api-doc")
	}
	if cmd.Bool("no-watch") {
		cfg.Watch = false
	}
	return cfg
}
