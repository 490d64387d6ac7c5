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

// Package api is the NutriHelp API host.
//
// It wires the reusable pkg/server with the application pieces: the upload
// and scratch directories, the scratch reclaimer and its schedule, the
// scratch directory watcher, and the OpenAPI docs.
//
// # Usage
//
//	cfg := api.NewConfig()
//	if err := api.Serve(ctx, cfg); err != nil {
//	    log.Fatalf("server error: %v", err)
//	}
//
// Serve creates the uploads directory and its temp subdirectory. Failing to
// create either is logged and the server still starts. The reclaimer runs
// once at startup and then every Config.Interval, deleting scratch entries
// older than Config.Retention.
//
// # Endpoints
//
// Application endpoints (rate limited):
//   - GET  /v1/scratch                 scratch directory status and last report
//   - POST /v1/scratch/reclaim         run a reclamation cycle now
//   - GET  /api-docs                   Swagger UI
//   - GET  /api-docs/openapi.json      OpenAPI document (JSON)
//   - GET  /api-docs/openapi.yaml      OpenAPI document (YAML)
//   - GET  /uploads/...                uploaded files
//
// System endpoints (no rate limiting):
//   - GET /health  - liveness probe
//   - GET /ready   - readiness probe
//   - GET /metrics - Prometheus metrics
//
// # Environment
//
//   - UPLOADS_DIR: uploads directory (default "uploads")
//   - SCRATCH_DIR: scratch directory (default "<UPLOADS_DIR>/temp")
//   - SCRATCH_RETENTION: maximum entry age, e.g. "24h"
//   - SCRATCH_INTERVAL: time between cycles, e.g. "3h"
//   - API_DOC_PATH: OpenAPI YAML file replacing the embedded one
//   - LOG_LEVEL: debug, info, warn or error
//
// Server variables (PORT, CORS_ORIGIN, NODE_ENV, ...) are described in pkg/server.
package api
