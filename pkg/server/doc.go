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

// Package server hosts the NutriHelp HTTP API.
//
// The server is assembled from functional options and runs application
// handlers behind a fixed middleware chain:
//
//	metrics -> request ID -> panic recovery -> security headers -> CORS ->
//	rate limit -> body limit -> API version -> logging -> handler
//
// System endpoints bypass the chain and are never rate limited:
//
//	GET /health   liveness probe
//	GET /ready    readiness probe, 503 until the listener is up and during shutdown
//	GET /metrics  Prometheus metrics
//
// Unless a handler is registered for "/", the root route lists the registered
// application routes and answers 404 for any path nothing else matched.
//
// # Usage
//
//	s := server.New(
//	    server.WithName("nutrihelpd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/scratch": h.HandleStatus,
//	    }),
//	    server.WithStaticDir("/uploads/", "uploads"),
//	    server.WithTask("scratch-reclaim", task.Run),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// Run stops on SIGINT or SIGTERM, shuts the listener down within
// Config.ShutdownTimeout and waits for every registered task to return.
// When started by systemd it reports READY=1 and STOPPING=1.
//
// # Rate Limiting
//
// Each client address gets a token bucket refilled at Config.RateLimit with
// capacity Config.RateLimitBurst. The defaults allow 1000 requests per 15
// minutes. Responses carry RateLimit-Limit, RateLimit-Remaining and
// RateLimit-Reset; rejected requests get 429 with Retry-After. With
// Config.TrustProxy the client is the last X-Forwarded-For hop.
//
// # Errors
//
// Every error is a JSON ErrorResponse:
//
//	{
//	  "success": false,
//	  "code": "RATE_LIMIT_EXCEEDED",
//	  "message": "Too many requests, please try again later.",
//	  "error": "Too many requests, please try again later.",
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2025-01-01T00:00:00Z",
//	  "retryable": true
//	}
//
// Handlers report failures with WriteError or WriteErrorFromErr, which maps
// structured error codes from pkg/errors to status codes. In production
// (APP_ENV or NODE_ENV set to "production") messages and details of 5xx
// responses are replaced by "Internal Server Error".
//
// # Configuration
//
// NewConfig reads these environment variables:
//
//	PORT                      listen port (default 8080)
//	SHUTDOWN_TIMEOUT_SECONDS  graceful shutdown budget (default 30)
//	CORS_ORIGIN               comma-separated allowed origins (default http://localhost:3000)
//	APP_ENV, NODE_ENV         "production" hides internal error messages
package server
