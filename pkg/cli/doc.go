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

// Package cli implements the nutrihelpd command-line interface.
//
// # Commands
//
// serve - Start the API server (default when no command is given):
//
//	nutrihelpd serve [--port 8080] [--uploads-dir uploads] [--retention 24h] [--interval 3h]
//
// Starts the HTTP API, creates the uploads and scratch directories, and runs
// the scratch reclaimer once at startup and then on every interval.
//
// reclaim - Run one reclamation cycle:
//
//	nutrihelpd reclaim --dir uploads/temp [--max-age 24h] [--dry-run] [--format yaml|json|table]
//
// Deletes scratch entries older than --max-age and prints the cycle report.
// With --dry-run the expired entries are listed but kept. The command exits
// non-zero when the directory cannot be listed or any entry failed.
//
// # Global Flags
//
//	--log-level    Log level: debug, info, warn, error (env: LOG_LEVEL)
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Output Flags (reclaim)
//
//	--output, -o   Output file path (default: stdout)
//	--format, -t   Output format: yaml, json, table (default: yaml)
package cli
