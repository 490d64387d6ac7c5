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

// Package defaults provides centralized configuration constants for the NutriHelp API.
//
// Timeouts, limits and retention values used across the codebase live here so
// tuning happens in one place.
//
// # Categories
//
//   - Server timeouts: HTTP server configuration and graceful shutdown
//   - Handler timeouts: HTTP request processing
//   - Request limits: body size and rate limiting
//   - Scratch settings: retention threshold and reclamation cadence
//
// # Usage
//
//	import "github.com/nutrihelp/nutrihelp-api/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.ReclaimHandlerTimeout)
//	defer cancel()
package defaults
