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
	"fmt"
	"log/slog"
	"os"

	"github.com/nutrihelp/nutrihelp-api/pkg/defaults"
	apperrors "github.com/nutrihelp/nutrihelp-api/pkg/errors"
)

// EnsureDirectory makes sure a directory exists at path, creating missing
// parents. It is a no-op when the directory already exists.
func EnsureDirectory(path string) error {
	if path == "" {
		return apperrors.New(apperrors.ErrCodeDirectoryCreation, "directory path cannot be empty")
	}

	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return nil
		}
		return apperrors.NewWithContext(apperrors.ErrCodeDirectoryCreation,
			fmt.Sprintf("path %q exists and is not a directory", path),
			map[string]any{"path": path})
	}

	if err := os.MkdirAll(path, defaults.DirMode); err != nil {
		return apperrors.WrapWithContext(apperrors.ErrCodeDirectoryCreation,
			"failed to create directory", err, map[string]any{"path": path})
	}

	slog.Info("created directory", "path", path)
	return nil
}
