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

// Handler timeouts for HTTP request processing.
const (
	// ReclaimHandlerTimeout bounds an operator-triggered reclamation cycle.
	ReclaimHandlerTimeout = 60 * time.Second

	// DocsCacheTTL is the cache duration for the API document response.
	DocsCacheTTL = 10 * time.Minute

	// SlowRequestThreshold is the response time above which requests are
	// logged at warn level.
	SlowRequestThreshold = 2 * time.Second
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading the entire request.
	// Uploads of up to MaxRequestBodyBytes must fit in this window.
	ServerReadTimeout = 60 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 60 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// Background task timeouts.
const (
	// TaskStopTimeout is how long shutdown waits for an in-flight
	// background run to observe cancellation.
	TaskStopTimeout = 10 * time.Second
)
