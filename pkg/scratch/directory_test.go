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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/nutrihelp/nutrihelp-api/pkg/errors"
)

func TestEnsureDirectory(t *testing.T) {
	t.Run("creates missing parents", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "uploads", "temp")

		require.NoError(t, EnsureDirectory(path))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("second call is a no-op", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "uploads")
		require.NoError(t, EnsureDirectory(path))

		marker := filepath.Join(path, "keep.txt")
		require.NoError(t, os.WriteFile(marker, []byte("x"), 0o600))

		require.NoError(t, EnsureDirectory(path))
		_, err := os.Stat(marker)
		assert.NoError(t, err, "existing contents must be left alone")
	})

	t.Run("existing file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "not-a-dir")
		require.NoError(t, os.WriteFile(path, nil, 0o600))

		err := EnsureDirectory(path)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeDirectoryCreation, apperrors.CodeOf(err))
	})

	t.Run("parent is a file", func(t *testing.T) {
		parent := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(parent, nil, 0o600))

		err := EnsureDirectory(filepath.Join(parent, "child"))
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeDirectoryCreation))
	})

	t.Run("empty path", func(t *testing.T) {
		err := EnsureDirectory("")
		assert.Equal(t, apperrors.ErrCodeDirectoryCreation, apperrors.CodeOf(err))
	})
}
