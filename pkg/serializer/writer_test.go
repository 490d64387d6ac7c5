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

package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

type testEntry struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

type testReport struct {
	Directory string        `json:"directory"`
	MaxAge    time.Duration `json:"maxAge"`
	Removed   []string      `json:"removed"`
	Hidden    string        `json:"-"`
	Nested    *testEntry    `json:"nested,omitempty"`
}

func TestWriter_SerializeJSON(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatJSON, &buf)

	data := []testEntry{{Name: "a.tmp", Count: 1}, {Name: "b.tmp", Count: 2}}
	if err := writer.Serialize(context.Background(), data); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	var result []testEntry
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}
	if len(result) != 2 || result[1].Name != "b.tmp" {
		t.Errorf("unexpected data: %+v", result)
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Error("expected indented JSON output")
	}
}

func TestWriter_SerializeYAML(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatYAML, &buf)

	data := testEntry{Name: "a.tmp", Count: 3}
	if err := writer.Serialize(context.Background(), data); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	var result testEntry
	if err := yaml.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal YAML: %v", err)
	}
	if result != data {
		t.Errorf("expected %+v, got %+v", data, result)
	}
}

func TestWriter_SerializeTable(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatTable, &buf)

	data := testReport{
		Directory: "/tmp/uploads/temp",
		MaxAge:    24 * time.Hour,
		Removed:   []string{"a.tmp"},
		Hidden:    "secret",
		Nested:    &testEntry{Name: "n", Count: 7},
	}
	if err := writer.Serialize(context.Background(), data); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"FIELD", "VALUE",
		"directory", "/tmp/uploads/temp",
		"maxAge", "24h0m0s",
		"removed.[0]", "a.tmp",
		"nested.count", "7",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected table output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "secret") {
		t.Error("fields tagged json:\"-\" must not be printed")
	}
}

func TestWriter_SerializeTable_EmptyData(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatTable, &buf)

	if err := writer.Serialize(context.Background(), map[string]any{}); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "<empty>" {
		t.Errorf("expected <empty>, got %q", buf.String())
	}
}

func TestWriter_SerializeTable_Scalars(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatTable, &buf)

	if err := writer.Serialize(context.Background(), 42); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if !strings.Contains(buf.String(), defaultValueKey) {
		t.Errorf("expected %q key for scalar, got %q", defaultValueKey, buf.String())
	}
}

func TestWriter_SerializeJSON_Error(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatJSON, &buf)

	if err := writer.Serialize(context.Background(), make(chan int)); err == nil {
		t.Error("expected error for unencodable value")
	}
}

func TestWriter_SerializeYAML_Error(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatYAML, &buf)

	err := writer.Serialize(context.Background(), map[string]any{"bad": func() {}})
	if err == nil {
		t.Fatal("expected error for unencodable value")
	}
	if buf.Len() != 0 {
		t.Errorf("expected no partial output, got %q", buf.String())
	}
}

func TestNewWriter_NilOutputUsesStdout(t *testing.T) {
	writer := NewWriter(FormatJSON, nil)
	if writer.output != os.Stdout {
		t.Error("expected stdout when output is nil")
	}
}

func TestNewWriter_UnknownFormat(t *testing.T) {
	writer := NewWriter(Format("xml"), &bytes.Buffer{})
	if writer.format != FormatJSON {
		t.Errorf("expected fallback to %s, got %s", FormatJSON, writer.format)
	}
}

func TestFormat_IsUnknown(t *testing.T) {
	tests := []struct {
		format Format
		want   bool
	}{
		{FormatJSON, false},
		{FormatYAML, false},
		{FormatTable, false},
		{Format("xml"), true},
		{Format(""), true},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			if got := tt.format.IsUnknown(); got != tt.want {
				t.Errorf("IsUnknown() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{" YAML ", FormatYAML, false},
		{"Table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{"csv", "", true},
		{"xml", "", true},
		{"unknown", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewFileWriterOrStdout_EmptyPath(t *testing.T) {
	writer := NewFileWriterOrStdout(FormatJSON, "  ")
	if writer.output != os.Stdout {
		t.Error("expected stdout for empty path")
	}
	if err := writer.Close(); err != nil {
		t.Errorf("Close on stdout writer: %v", err)
	}
}

func TestNewFileWriterOrStdout_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	writer := NewFileWriterOrStdout(FormatYAML, path)

	if err := writer.Serialize(context.Background(), testEntry{Name: "x", Count: 1}); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if !strings.Contains(string(content), "name: x") {
		t.Errorf("unexpected file content: %s", content)
	}
}

func TestNewFileWriterOrStdout_InvalidPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "out.json")
	writer := NewFileWriterOrStdout(FormatJSON, path)
	if writer.output != os.Stdout {
		t.Error("expected stdout fallback for uncreatable path")
	}
}
