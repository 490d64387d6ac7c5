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

// Package apidoc serves the OpenAPI description of the API.
//
// The document is read once at startup from a YAML file, or from the copy
// embedded in the binary when no path is configured. A top-level
// externalDocs block is removed so the browser UI does not try to fetch
// cross-origin resources.
//
// Routes registered by Handler.Routes:
//
//	GET /api-docs               Swagger UI page
//	GET /api-docs/openapi.json  document as JSON
//	GET /api-docs/openapi.yaml  document as YAML
package apidoc
