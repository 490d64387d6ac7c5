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

package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/nutrihelp/nutrihelp-api/pkg/apidoc"
	"github.com/nutrihelp/nutrihelp-api/pkg/logging"
	"github.com/nutrihelp/nutrihelp-api/pkg/schedule"
	"github.com/nutrihelp/nutrihelp-api/pkg/scratch"
	"github.com/nutrihelp/nutrihelp-api/pkg/server"
)

const (
	name           = "nutrihelpd"
	versionDefault = "dev"

	reclaimTaskName = "scratch-reclaim"
	watchTaskName   = "scratch-watcher"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/nutrihelp/nutrihelp-api/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Version returns the build version.
func Version() string {
	return version
}

// Serve starts the API server and blocks until ctx is canceled or the
// process receives SIGINT/SIGTERM.
func Serve(ctx context.Context, cfg *Config) error {
	if cfg == nil {
		cfg = NewConfig()
	}

	logging.SetDefaultStructuredLoggerWithLevel(name, version, cfg.LogLevel)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	opts, err := buildOptions(cfg)
	if err != nil {
		return err
	}

	if err := server.New(opts...).Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}
	return nil
}

// buildOptions prepares directories and background tasks and returns the
// server options for them.
func buildOptions(cfg *Config) ([]server.Option, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	scratchDir := cfg.ScratchPath()

	// Writers to a missing directory fail on their own; keep serving.
	for _, dir := range []string{cfg.UploadsDir, scratchDir} {
		if err := scratch.EnsureDirectory(dir); err != nil {
			slog.Error("failed to prepare directory", "path", dir, "error", err)
		}
	}

	reclaimer, err := scratch.NewReclaimer(scratchDir, scratch.WithMaxAge(cfg.Retention))
	if err != nil {
		return nil, fmt.Errorf("failed to create reclaimer: %w", err)
	}

	task := schedule.New(cfg.Interval, func(ctx context.Context) error {
		rep := reclaimer.Reclaim(ctx)
		return rep.Err()
	}, schedule.WithName(reclaimTaskName))

	var watcher *scratch.Watcher
	if cfg.Watch {
		if watcher, err = scratch.NewWatcher(scratchDir); err != nil {
			slog.Warn("scratch watcher disabled", "directory", scratchDir, "error", err)
		}
	}

	doc, err := apidoc.Load(cfg.DocPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load API document: %w", err)
	}
	docs, err := apidoc.NewHandler(doc)
	if err != nil {
		return nil, err
	}

	sh := scratch.NewHandler(reclaimer, task, watcher)
	routes := map[string]http.HandlerFunc{
		"/v1/scratch":         sh.HandleStatus,
		"/v1/scratch/reclaim": sh.HandleReclaim,
	}
	for path, h := range docs.Routes() {
		routes[path] = h
	}

	opts := []server.Option{
		server.WithConfig(cfg.Server),
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(routes),
		server.WithStaticDir("/uploads/", cfg.UploadsDir),
		server.WithTask(reclaimTaskName, task.Run),
	}
	if watcher != nil {
		opts = append(opts, server.WithTask(watchTaskName, watcher.Run))
	}

	slog.Debug("application configured",
		"uploads", cfg.UploadsDir,
		"scratch", scratchDir,
		"retention", cfg.Retention.String(),
		"interval", cfg.Interval.String(),
		"apiDoc", doc.Source(),
		"watch", watcher != nil,
	)

	return opts, nil
}
