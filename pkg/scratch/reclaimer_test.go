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
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/nutrihelp/nutrihelp-api/pkg/errors"
)

// refTime is truncated to whole seconds so modification times survive
// filesystems with coarse timestamps.
var refTime = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func touch(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(name), 0o600))
	mtime := refTime.Add(-age)
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func TestReclaim_RemovesOnlyEntriesOlderThanThreshold(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, dir, "a", 25*time.Hour)
	b := touch(t, dir, "b", 23*time.Hour)
	c := touch(t, dir, "c", 24*time.Hour)

	rep := Reclaim(context.Background(), dir, 24*time.Hour, refTime)

	assert.Equal(t, 3, rep.Examined)
	assert.Equal(t, 1, rep.Expired)
	assert.Equal(t, 1, rep.Deleted)
	assert.Equal(t, 2, rep.Retained)
	assert.Equal(t, []string{"a"}, rep.Removed)
	assert.Empty(t, rep.Failures)
	assert.NoError(t, rep.Err())

	assert.False(t, exists(a), "a is older than the threshold")
	assert.True(t, exists(b), "b is younger than the threshold")
	assert.True(t, exists(c), "c is exactly at the threshold")
}

func TestReclaim_Idempotent(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "old-1", 48*time.Hour)
	touch(t, dir, "old-2", 30*time.Hour)
	touch(t, dir, "fresh", time.Minute)

	first := Reclaim(context.Background(), dir, 24*time.Hour, refTime)
	require.Equal(t, 2, first.Deleted)

	second := Reclaim(context.Background(), dir, 24*time.Hour, refTime)
	assert.Equal(t, 0, second.Deleted)
	assert.Equal(t, 1, second.Examined)
	assert.Equal(t, 1, second.Retained)
}

func TestReclaim_PartialFailureIsolation(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, dir, "a", 30*time.Hour)
	b := touch(t, dir, "b", 30*time.Hour)
	c := touch(t, dir, "c", 30*time.Hour)

	denied := errors.New("permission denied")
	r, err := NewReclaimer(dir,
		WithMaxAge(24*time.Hour),
		WithClock(NewFixedClock(refTime)),
		WithRemoveFunc(func(path string) error {
			if filepath.Base(path) == "b" {
				return denied
			}
			return os.Remove(path)
		}),
	)
	require.NoError(t, err)

	rep := r.Reclaim(context.Background())

	assert.Equal(t, 3, rep.Examined)
	assert.Equal(t, 3, rep.Expired)
	assert.Equal(t, 2, rep.Deleted)
	sort.Strings(rep.Removed)
	assert.Equal(t, []string{"a", "c"}, rep.Removed)

	require.Len(t, rep.Failures, 1)
	assert.Equal(t, "b", rep.Failures[0].Name)
	assert.Equal(t, apperrors.ErrCodeEntryAccess, rep.Failures[0].Code)
	assert.ErrorIs(t, rep.Failures[0].Err(), denied)

	assert.True(t, apperrors.HasCode(rep.Err(), apperrors.ErrCodeEntryAccess))
	assert.True(t, rep.Listed())
	assert.Equal(t, "partial", rep.result())

	assert.False(t, exists(a))
	assert.True(t, exists(b))
	assert.False(t, exists(c))
}

func TestReclaim_ListingError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	rep := Reclaim(context.Background(), missing, 24*time.Hour, refTime)

	assert.Equal(t, 0, rep.Examined)
	assert.Equal(t, 0, rep.Deleted)
	require.Len(t, rep.Failures, 1)
	assert.Equal(t, apperrors.ErrCodeListing, rep.Failures[0].Code)
	assert.Empty(t, rep.Failures[0].Name)
	assert.False(t, rep.Listed())
	assert.Equal(t, "listing_error", rep.result())
	assert.ErrorIs(t, rep.Err(), fs.ErrNotExist)
}

func TestReclaim_VanishedEntryIsNotAFailure(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "gone", 30*time.Hour)

	r, err := NewReclaimer(dir,
		WithMaxAge(24*time.Hour),
		WithClock(NewFixedClock(refTime)),
		WithRemoveFunc(func(string) error {
			return &fs.PathError{Op: "remove", Path: "gone", Err: fs.ErrNotExist}
		}),
	)
	require.NoError(t, err)

	rep := r.Reclaim(context.Background())

	assert.Equal(t, 1, rep.Examined)
	assert.Equal(t, 1, rep.Expired)
	assert.Equal(t, 0, rep.Deleted)
	assert.Empty(t, rep.Failures)
}

func TestReclaim_DryRun(t *testing.T) {
	dir := t.TempDir()
	old := touch(t, dir, "old", 30*time.Hour)
	touch(t, dir, "new", time.Hour)

	r, err := NewReclaimer(dir, WithClock(NewFixedClock(refTime)), WithDryRun(true))
	require.NoError(t, err)

	rep := r.Reclaim(context.Background())

	assert.True(t, rep.DryRun)
	assert.Equal(t, 1, rep.Expired)
	assert.Equal(t, 0, rep.Deleted)
	assert.Equal(t, []string{"old"}, rep.Removed)
	assert.True(t, exists(old), "dry run must not delete")
}

func TestReclaim_RemovesExpiredSubdirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "chunked-upload")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "part-1"), []byte("x"), 0o600))
	mtime := refTime.Add(-30 * time.Hour)
	require.NoError(t, os.Chtimes(sub, mtime, mtime))

	rep := Reclaim(context.Background(), dir, 24*time.Hour, refTime)

	assert.Equal(t, 1, rep.Deleted)
	assert.False(t, exists(sub))
}

func TestReclaim_DoesNotFollowSymlinks(t *testing.T) {
	outside := t.TempDir()
	target := touch(t, outside, "target", 72*time.Hour)

	dir := t.TempDir()
	link := filepath.Join(dir, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	// The link itself was just created, so by its own timestamp it is fresh
	// even though its target is old.
	rep := Reclaim(context.Background(), dir, 24*time.Hour, time.Now())

	assert.Equal(t, 0, rep.Deleted)
	assert.True(t, exists(link))
	assert.True(t, exists(target))
}

func TestReclaim_StopsWhenContextCanceled(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a", 30*time.Hour)
	touch(t, dir, "b", 30*time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep := Reclaim(ctx, dir, 24*time.Hour, refTime)

	assert.True(t, rep.Interrupted)
	assert.Equal(t, 0, rep.Examined)
	assert.Equal(t, "interrupted", rep.result())
}

func TestReclaim_EmptyDirectory(t *testing.T) {
	rep := Reclaim(context.Background(), t.TempDir(), 24*time.Hour, refTime)

	assert.Equal(t, 0, rep.Examined)
	assert.Empty(t, rep.Failures)
	assert.Equal(t, "success", rep.result())
}

func TestReclaimer_ClockAdvanceExpiresEntries(t *testing.T) {
	dir := t.TempDir()
	path := touch(t, dir, "upload.tmp", time.Hour)

	clock := NewFixedClock(refTime)
	r, err := NewReclaimer(dir, WithMaxAge(24*time.Hour), WithClock(clock))
	require.NoError(t, err)

	rep := r.Reclaim(context.Background())
	require.Equal(t, 0, rep.Deleted)
	require.True(t, exists(path))

	clock.Advance(23 * time.Hour)
	rep = r.Reclaim(context.Background())
	require.Equal(t, 0, rep.Deleted, "exactly at the threshold is retained")

	clock.Advance(time.Second)
	rep = r.Reclaim(context.Background())
	assert.Equal(t, 1, rep.Deleted)
	assert.False(t, exists(path))
}

func TestReclaimer_Last(t *testing.T) {
	dir := t.TempDir()
	r, err := NewReclaimer(dir, WithClock(NewFixedClock(refTime)))
	require.NoError(t, err)

	_, ok := r.Last()
	assert.False(t, ok)

	touch(t, dir, "old", 48*time.Hour)
	rep := r.Reclaim(context.Background())

	last, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, rep.Deleted, last.Deleted)
	assert.Equal(t, refTime, last.StartedAt)
	assert.Equal(t, 24*time.Hour, last.MaxAge)
	assert.Equal(t, filepath.Clean(dir), last.Directory)
}

func TestNewReclaimer_Validation(t *testing.T) {
	tests := []struct {
		name    string
		dir     string
		opts    []Option
		wantErr bool
	}{
		{"valid defaults", "/tmp/uploads/temp", nil, false},
		{"empty directory", "", nil, true},
		{"negative max age", "/tmp/uploads/temp", []Option{WithMaxAge(-time.Second)}, true},
		{"zero max age", "/tmp/uploads/temp", []Option{WithMaxAge(0)}, false},
		{"nil clock falls back", "/tmp/uploads/temp", []Option{WithClock(nil)}, false},
		{"nil remove falls back", "/tmp/uploads/temp", []Option{WithRemoveFunc(nil)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewReclaimer(tt.dir, tt.opts...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, r.clock)
			assert.NotNil(t, r.remove)
		})
	}
}

func TestReclaim_InvalidConfigurationReported(t *testing.T) {
	rep := Reclaim(context.Background(), "", 24*time.Hour, refTime)

	require.Len(t, rep.Failures, 1)
	assert.Equal(t, apperrors.ErrCodeListing, rep.Failures[0].Code)
}

func TestRemoveEntry(t *testing.T) {
	dir := t.TempDir()

	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))
	require.NoError(t, removeEntry(file))
	assert.False(t, exists(file))

	nested := filepath.Join(dir, "nested")
	require.NoError(t, os.MkdirAll(filepath.Join(nested, "deeper"), 0o755))
	require.NoError(t, removeEntry(nested))
	assert.False(t, exists(nested))

	assert.ErrorIs(t, removeEntry(filepath.Join(dir, "missing")), fs.ErrNotExist)
}
