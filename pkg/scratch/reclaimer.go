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

package scratch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/nutrihelp/nutrihelp-api/pkg/defaults"
	apperrors "github.com/nutrihelp/nutrihelp-api/pkg/errors"
)

// RemoveFunc deletes the entry at path.
type RemoveFunc func(path string) error

// Option configures a Reclaimer.
type Option func(*Reclaimer)

// WithMaxAge sets the retention threshold. Entries strictly older are removed.
func WithMaxAge(d time.Duration) Option {
	return func(r *Reclaimer) {
		r.maxAge = d
	}
}

// WithClock sets the clock used to compute entry ages.
func WithClock(c Clock) Option {
	return func(r *Reclaimer) {
		r.clock = c
	}
}

// WithRemoveFunc replaces the function used to delete entries.
func WithRemoveFunc(fn RemoveFunc) Option {
	return func(r *Reclaimer) {
		r.remove = fn
	}
}

// WithDryRun reports expired entries without deleting them.
func WithDryRun(dryRun bool) Option {
	return func(r *Reclaimer) {
		r.dryRun = dryRun
	}
}

// Reclaimer removes expired entries from a scratch directory.
// It is safe for concurrent use, but callers are expected to serialize cycles
// (see pkg/schedule); concurrent cycles only race on which one deletes an entry.
type Reclaimer struct {
	dir    string
	maxAge time.Duration
	clock  Clock
	remove RemoveFunc
	dryRun bool

	mu   sync.RWMutex
	last *Report
}

// NewReclaimer creates a Reclaimer for dir. The retention threshold defaults
// to defaults.ScratchRetention.
func NewReclaimer(dir string, opts ...Option) (*Reclaimer, error) {
	if dir == "" {
		return nil, fmt.Errorf("scratch directory cannot be empty")
	}

	r := &Reclaimer{
		dir:    filepath.Clean(dir),
		maxAge: defaults.ScratchRetention,
		clock:  SystemClock{},
		remove: removeEntry,
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.maxAge < 0 {
		return nil, fmt.Errorf("max age cannot be negative, got %v", r.maxAge)
	}
	if r.clock == nil {
		r.clock = SystemClock{}
	}
	if r.remove == nil {
		r.remove = removeEntry
	}
	return r, nil
}

// Reclaim lists the directory once and returns a Report for dir using a
// fixed reference time. It is a convenience for one-shot callers.
func Reclaim(ctx context.Context, dir string, maxAge time.Duration, now time.Time) Report {
	r, err := NewReclaimer(dir, WithMaxAge(maxAge), WithClock(NewFixedClock(now)))
	if err != nil {
		rep := Report{Directory: dir, StartedAt: now, MaxAge: maxAge}
		rep.addFailure("", apperrors.Wrap(apperrors.ErrCodeListing, "invalid reclaimer configuration", err))
		return rep
	}
	return r.Reclaim(ctx)
}

// Directory returns the scratch directory.
func (r *Reclaimer) Directory() string {
	return r.dir
}

// MaxAge returns the retention threshold.
func (r *Reclaimer) MaxAge() time.Duration {
	return r.maxAge
}

// Last returns the report of the most recent cycle, if any.
func (r *Reclaimer) Last() (Report, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.last == nil {
		return Report{}, false
	}
	return *r.last, true
}

// Reclaim runs one cycle. Errors never escape: they are logged, counted and
// recorded in the returned Report.
func (r *Reclaimer) Reclaim(ctx context.Context) Report {
	start := time.Now()
	now := r.clock.Now()

	rep := Report{
		Directory: r.dir,
		StartedAt: now.UTC(),
		MaxAge:    r.maxAge,
		DryRun:    r.dryRun,
	}

	r.scan(ctx, now, &rep)

	rep.Duration = time.Since(start)
	r.record(&rep)
	return rep
}

func (r *Reclaimer) scan(ctx context.Context, now time.Time, rep *Report) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		se := apperrors.WrapWithContext(apperrors.ErrCodeListing,
			"failed to list scratch directory", err, map[string]any{"directory": r.dir})
		rep.addFailure("", se)
		slog.Error("error during scratch cleanup", "directory", r.dir, "error", se)
		return
	}

	slog.Info("checking scratch entries for cleanup",
		"directory", r.dir,
		"entries", len(entries),
		"maxAge", r.maxAge.String(),
	)

	for _, de := range entries {
		if ctx.Err() != nil {
			rep.Interrupted = true
			slog.Warn("scratch cleanup interrupted",
				"directory", r.dir,
				"examined", rep.Examined,
				"remaining", len(entries)-rep.Examined,
			)
			return
		}
		rep.Examined++
		r.visit(de, now, rep)
	}
}

func (r *Reclaimer) visit(de fs.DirEntry, now time.Time, rep *Report) {
	name := de.Name()
	path := filepath.Join(r.dir, name)

	info, err := de.Info()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("scratch entry vanished before stat", "path", path)
			return
		}
		r.fail(rep, name, "failed to stat scratch entry", path, err)
		return
	}

	age := now.Sub(info.ModTime())
	if age <= r.maxAge {
		rep.Retained++
		return
	}
	rep.Expired++

	if r.dryRun {
		rep.Removed = append(rep.Removed, name)
		slog.Debug("scratch entry expired (dry run)", "path", path, "age", age.String())
		return
	}

	if err := r.remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("scratch entry vanished before removal", "path", path)
			return
		}
		r.fail(rep, name, "failed to remove scratch entry", path, err)
		return
	}

	rep.Deleted++
	rep.Removed = append(rep.Removed, name)
	slog.Debug("removed expired scratch entry",
		"path", path,
		"age", age.String(),
		"size", info.Size(),
	)
}

func (r *Reclaimer) fail(rep *Report, name, msg, path string, err error) {
	se := apperrors.WrapWithContext(apperrors.ErrCodeEntryAccess, msg, err,
		map[string]any{"path": path})
	rep.addFailure(name, se)
	slog.Error("error checking scratch entry", "path", path, "error", se)
}

func (r *Reclaimer) record(rep *Report) {
	result := rep.result()
	reclaimCycles.WithLabelValues(result).Inc()
	reclaimDuration.Observe(rep.Duration.Seconds())
	entriesExamined.Add(float64(rep.Examined))
	entriesDeleted.Add(float64(rep.Deleted))
	for _, f := range rep.Failures {
		entryErrors.WithLabelValues(string(f.Code)).Inc()
	}
	if rep.Listed() {
		lastSuccess.SetToCurrentTime()
	}

	if rep.Deleted > 0 {
		slog.Info("cleaned up old scratch entries",
			"directory", r.dir,
			"deleted", rep.Deleted,
		)
	}
	slog.Debug("scratch cleanup finished",
		"directory", r.dir,
		"result", result,
		"examined", rep.Examined,
		"expired", rep.Expired,
		"deleted", rep.Deleted,
		"retained", rep.Retained,
		"failures", len(rep.Failures),
		"duration", rep.Duration.String(),
	)

	last := *rep
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = &last
}

// removeEntry deletes a file or symlink, or a directory with its contents.
func removeEntry(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return os.RemoveAll(path)
	}
	return os.Remove(path)
}
