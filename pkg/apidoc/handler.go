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
	"fmt"
	"log/slog"
	"net/http"

	"github.com/nutrihelp/nutrihelp-api/pkg/defaults"
	apperrors "github.com/nutrihelp/nutrihelp-api/pkg/errors"
	"github.com/nutrihelp/nutrihelp-api/pkg/serializer"
	"github.com/nutrihelp/nutrihelp-api/pkg/server"
)

const (
	// BasePath is where the docs UI is served.
	BasePath = "/api-docs"
	jsonPath = BasePath + "/openapi.json"
	yamlPath = BasePath + "/openapi.yaml"
)

// Handler serves a Document.
type Handler struct {
	doc *Document
	ui  []byte
}

// NewHandler renders the UI page for doc.
func NewHandler(doc *Document) (*Handler, error) {
	ui, err := renderUI(doc.Title(), jsonPath)
	if err != nil {
		return nil, err
	}
	return &Handler{doc: doc, ui: ui}, nil
}

// Routes returns the docs routes keyed by path.
func (h *Handler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		BasePath: h.HandleUI,
		jsonPath: h.HandleJSON,
		yamlPath: h.HandleYAML,
	}
}

// HandleUI serves the Swagger UI page.
func (h *Handler) HandleUI(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}
	setCacheHeaders(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(h.ui); err != nil {
		slog.Warn("response write failed", "error", err)
	}
}

// HandleJSON serves the document as JSON.
func (h *Handler) HandleJSON(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}
	setCacheHeaders(w)
	serializer.RespondJSON(w, http.StatusOK, h.doc.Content())
}

// HandleYAML serves the document as YAML.
func (h *Handler) HandleYAML(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}
	setCacheHeaders(w)
	serializer.RespondYAML(w, http.StatusOK, h.doc.Content())
}

func allowRead(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
	server.WriteError(w, r, http.StatusMethodNotAllowed, apperrors.ErrCodeMethodNotAllowed,
		"Method not allowed", false, map[string]any{"method": r.Method})
	return false
}

func setCacheHeaders(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(defaults.DocsCacheTTL.Seconds())))
}
