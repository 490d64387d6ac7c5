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

package server

import (
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"

	apperrors "github.com/nutrihelp/nutrihelp-api/pkg/errors"
)

// staticDir serves files from dir under the URL prefix.
type staticDir struct {
	prefix string
	dir    string
}

func (sd staticDir) handler() http.HandlerFunc {
	files := http.StripPrefix(strings.TrimSuffix(sd.prefix, "/"),
		http.FileServer(noListingFS{root: http.Dir(sd.dir)}))

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			writeMethodNotAllowed(w, r, http.MethodGet, http.MethodHead)
			return
		}
		files.ServeHTTP(w, r)
	}
}

// noListingFS hides directory listings. A directory is only served when it
// holds an index.html.
type noListingFS struct {
	root http.FileSystem
}

func (n noListingFS) Open(name string) (http.File, error) {
	f, err := n.root.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if !info.IsDir() {
		return f, nil
	}

	index, err := n.root.Open(path.Join(name, "index.html"))
	if err != nil {
		f.Close()
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fs.ErrNotExist
		}
		return nil, err
	}
	index.Close()
	return f, nil
}

func normalizePrefix(prefix string) (string, error) {
	if prefix == "" || !strings.HasPrefix(prefix, "/") {
		return "", apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"static prefix must start with /", map[string]any{"prefix": prefix})
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix, nil
}
