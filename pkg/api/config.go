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
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/nutrihelp/nutrihelp-api/pkg/defaults"
	"github.com/nutrihelp/nutrihelp-api/pkg/server"
)

// Config holds the application settings layered on top of server.Config.
type Config struct {
	// UploadsDir is served under /uploads/.
	UploadsDir string

	// ScratchDir holds transient upload files and is reclaimed on a timer.
	// Defaults to <UploadsDir>/temp.
	ScratchDir string

	// Retention is the age above which scratch entries are deleted.
	Retention time.Duration

	// Interval is the time between reclamation cycles.
	Interval time.Duration

	// DocPath is an OpenAPI YAML file. The embedded document is used when empty.
	DocPath string

	// Watch enables the scratch directory watcher.
	Watch bool

	// LogLevel is one of debug, info, warn or error.
	LogLevel string

	// Server is passed to server.WithConfig.
	Server *server.Config
}

// NewConfig returns defaults overridden by environment variables.
func NewConfig() *Config {
	cfg := &Config{
		UploadsDir: defaults.UploadsDir,
		Retention:  defaults.ScratchRetention,
		Interval:   defaults.ScratchReclaimInterval,
		Watch:      true,
		LogLevel:   os.Getenv("LOG_LEVEL"),
		Server:     server.NewConfig(),
	}

	if dir := os.Getenv("UPLOADS_DIR"); dir != "" {
		cfg.UploadsDir = dir
	}
	if dir := os.Getenv("SCRATCH_DIR"); dir != "" {
		cfg.ScratchDir = dir
	}
	cfg.Retention = envDuration("SCRATCH_RETENTION", cfg.Retention)
	cfg.Interval = envDuration("SCRATCH_INTERVAL", cfg.Interval)
	if path := os.Getenv("API_DOC_PATH"); path != "" {
		cfg.DocPath = path
	}

	return cfg
}

// envDuration parses a Go duration from key, keeping def when unset or invalid.
func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("ignoring invalid duration", "variable", key, "value", v)
		return def
	}
	return d
}

// ScratchPath returns ScratchDir, or the default temp folder under UploadsDir.
func (c *Config) ScratchPath() string {
	if c.ScratchDir != "" {
		return c.ScratchDir
	}
	return filepath.Join(c.UploadsDir, defaults.ScratchSubdir)
}

// Validate checks the reclamation settings.
func (c *Config) Validate() error {
	if c.UploadsDir == "" {
		return fmt.Errorf("uploads directory cannot be empty")
	}
	if c.Retention < 0 {
		return fmt.Errorf("retention cannot be negative, got %v", c.Retention)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %v", c.Interval)
	}
	return nil
}
