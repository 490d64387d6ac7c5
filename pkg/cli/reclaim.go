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
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/nutrihelp/nutrihelp-api/pkg/api"
	"github.com/nutrihelp/nutrihelp-api/pkg/defaults"
	"github.com/nutrihelp/nutrihelp-api/pkg/scratch"
	"github.com/nutrihelp/nutrihelp-api/pkg/serializer"
)

func reclaimCmd() *cli.Command {
	return &cli.Command{
		Name:                  "reclaim",
		EnableShellCompletion: true,
		Usage:                 "Delete expired entries from a scratch directory once",
		Description: `Run a single reclamation cycle and print its report. Entries whose age is
strictly greater than --max-age are deleted; entries exactly at the threshold
are kept.

Use --dry-run to list expired entries without deleting them.

# Examples

  nutrihelpd reclaim --dir uploads/temp --max-age 24h
  nutrihelpd reclaim --dry-run --format json --output report.json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Scratch directory (default: <UPLOADS_DIR>/temp)",
				Sources: cli.EnvVars("SCRATCH_DIR"),
			},
			&cli.DurationFlag{
				Name:    "max-age",
				Value:   defaults.ScratchRetention,
				Usage:   "Delete entries older than this",
				Sources: cli.EnvVars("SCRATCH_RETENTION"),
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Report expired entries without deleting them",
			},
			&cli.BoolFlag{
				Name:  "create",
				Usage: "Create the directory when it does not exist",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			dir := cmd.String("dir")
			if dir == "" {
				dir = api.NewConfig().ScratchPath()
			}

			if cmd.Bool("create") {
				if err := scratch.EnsureDirectory(dir); err != nil {
					return err
				}
			}

			r, err := scratch.NewReclaimer(dir,
				scratch.WithMaxAge(cmd.Duration("max-age")),
				scratch.WithDryRun(cmd.Bool("dry-run")),
			)
			if err != nil {
				return fmt.Errorf("failed to create reclaimer: %w", err)
			}

			rep := r.Reclaim(ctx)

			ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer func() {
				if err := ser.Close(); err != nil {
					slog.Warn("failed to close serializer", "error", err)
				}
			}()

			if err := ser.Serialize(ctx, rep); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}

			if n := len(rep.Failures); n > 0 {
				return fmt.Errorf("reclamation of %s finished with %d failure(s): %w", dir, n, rep.Err())
			}
			return nil
		},
	}
}
