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

package apidoc

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"os"

	apperrors "github.com/nutrihelp/nutrihelp-api/pkg/errors"

	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var defaultDocument []byte

//go:embed ui.html
var uiTemplate string

var uiPage = template.Must(template.New("ui").Parse(uiTemplate))

// Document is a parsed OpenAPI document.
type Document struct {
	content map[string]any
	source  string
}

// Load reads the document at path, or the embedded default when path is empty.
func Load(path string) (*Document, error) {
	if path == "" {
		doc, err := Parse(defaultDocument)
		if err != nil {
			return nil, err
		}
		doc.source = "embedded"
		return doc, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeNotFound,
			"failed to read API document", err, map[string]any{"path": path})
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	doc.source = path
	return doc, nil
}

// Parse decodes an OpenAPI YAML (or JSON) document and drops externalDocs.
func Parse(data []byte) (*Document, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "failed to parse API document", err)
	}

	content, ok := normalize(raw).(map[string]any)
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "API document must be a mapping")
	}
	if _, ok := content["openapi"]; !ok {
		if _, ok := content["swagger"]; !ok {
			return nil, apperrors.New(apperrors.ErrCodeInvalidRequest,
				"API document has neither an openapi nor a swagger version")
		}
	}

	delete(content, "externalDocs")

	return &Document{content: content}, nil
}

// normalize converts YAML mappings with non-string keys (such as response
// codes) into map[string]any so the document can be encoded as JSON.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalize(val)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		for i, val := range t {
			t[i] = normalize(val)
		}
		return t
	default:
		return v
	}
}

// Content returns the decoded document.
func (d *Document) Content() map[string]any {
	return d.content
}

// Source returns the file the document was read from, or "embedded".
func (d *Document) Source() string {
	return d.source
}

// Title returns info.title, if present.
func (d *Document) Title() string {
	return d.info("title")
}

// Version returns info.version, if present.
func (d *Document) Version() string {
	return d.info("version")
}

func (d *Document) info(key string) string {
	info, ok := d.content["info"].(map[string]any)
	if !ok {
		return ""
	}
	s, _ := info[key].(string)
	return s
}

func renderUI(title, specURL string) ([]byte, error) {
	if title == "" {
		title = "API Docs"
	}
	var buf bytes.Buffer
	err := uiPage.Execute(&buf, struct {
		Title   string
		SpecURL string
	}{
		Title:   title,
		SpecURL: specURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render docs page: %w", err)
	}
	return buf.Bytes(), nil
}
