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

// Package serializer writes values as JSON, YAML or a flattened table.
//
// Writers are used by the CLI to print reclamation reports:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path)
//	defer w.Close()
//	if err := w.Serialize(ctx, report); err != nil {
//		return err
//	}
//
// HTTP handlers use the Respond helpers, which buffer the encoded body
// before writing headers so an encoding failure never yields a partial
// response:
//
//	serializer.RespondJSON(w, http.StatusOK, report)
//	serializer.RespondYAML(w, http.StatusOK, doc)
//
// Formats:
//   - json: indented, machine readable
//   - yaml: gopkg.in/yaml.v3 with two-space indentation
//   - table: nested fields flattened to dotted keys, sorted
package serializer
