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

package defaults

import "time"

// Request limits.
const (
	// MaxRequestBodyBytes caps JSON and form bodies (50 MiB).
	MaxRequestBodyBytes int64 = 50 << 20

	// RateLimitWindow is the window over which RateLimitRequests are allowed per client.
	RateLimitWindow = 15 * time.Minute

	// RateLimitRequests is the number of requests a single client may issue per window.
	RateLimitRequests = 1000

	// RateLimitClientIdle is how long an idle client limiter is kept before pruning.
	RateLimitClientIdle = RateLimitWindow
)

// Scratch directory settings.
const (
	// ScratchRetention is the maximum age of a scratch entry before it is reclaimed.
	ScratchRetention = 24 * time.Hour

	// ScratchReclaimInterval is the cadence of reclamation cycles.
	ScratchReclaimInterval = 3 * time.Hour

	// UploadsDir is the default uploads directory, relative to the working directory.
	UploadsDir = "uploads"

	// ScratchSubdir is the scratch directory name under UploadsDir.
	ScratchSubdir = "temp"

	// DirMode is the permission used when creating upload directories.
	DirMode = 0o755
)
