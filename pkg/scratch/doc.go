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

// Package scratch bounds the lifetime of transient upload files.
//
// Uploads are staged in a scratch directory (uploads/temp by default) and are
// never cleaned up by the code that writes them. A Reclaimer lists the direct
// entries of that directory and removes every entry whose age, measured from
// its last-modified time, is strictly greater than the retention threshold.
// An entry exactly at the threshold is kept.
//
// # Failure handling
//
// Nothing in this package terminates the process:
//
//   - EnsureDirectory returns a DIRECTORY_CREATION error; callers log it and
//     carry on, writers to that path fail on their own later.
//   - A directory that cannot be listed yields a LISTING failure and ends the
//     cycle; the next scheduled cycle tries again.
//   - An entry that cannot be stat'ed or removed yields an ENTRY_ACCESS failure
//     and the scan moves on to the remaining entries.
//   - An entry that disappears between listing and removal is ignored.
//
// All failures are logged, counted in Prometheus metrics, and recorded in the
// cycle Report.
//
// # Usage
//
//	if err := scratch.EnsureDirectory(dir); err != nil {
//	    slog.Error("failed to create scratch directory", "error", err)
//	}
//
//	r, err := scratch.NewReclaimer(dir, scratch.WithMaxAge(24*time.Hour))
//	if err != nil {
//	    return err
//	}
//	report := r.Reclaim(ctx)
//	slog.Info("reclaimed", "deleted", report.Deleted)
//
// The recurring cadence is provided by pkg/schedule.
package scratch
