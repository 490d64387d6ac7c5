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
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// Watcher observes the scratch directory and counts entries created and
// removed by any writer. It only feeds logs and metrics; reclamation does
// not depend on it.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	dir       string
	created   atomic.Int64
	removed   atomic.Int64
}

// NewWatcher starts watching dir. Subdirectories are not watched.
func NewWatcher(dir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	dir = filepath.Clean(dir)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %q: %w", dir, err)
	}

	return &Watcher{
		fsWatcher: fsw,
		dir:       dir,
	}, nil
}

// Run processes events until ctx is canceled, then releases the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsWatcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("scratch watcher error", "directory", w.dir, "error", err)
		}
	}
}

// Counts returns the number of created and removed entries observed so far.
func (w *Watcher) Counts() (created, removed int64) {
	return w.created.Load(), w.removed.Load()
}

func (w *Watcher) handle(event fsnotify.Event) {
	switch {
	case event.Has(fsnotify.Create):
		w.created.Add(1)
		entriesCreated.Inc()
		slog.Debug("scratch entry created", "path", event.Name)
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		w.removed.Add(1)
		entriesRemoved.Inc()
		slog.Debug("scratch entry removed", "path", event.Name)
	}
}
