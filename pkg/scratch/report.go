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
	"encoding/json"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/nutrihelp/nutrihelp-api/pkg/errors"

	"gopkg.in/yaml.v3"
)

// Failure records an error raised while processing a cycle.
// Name is empty for directory-level failures.
type Failure struct {
	Name    string              `json:"name,omitempty" yaml:"name,omitempty"`
	Code    apperrors.ErrorCode `json:"code" yaml:"code"`
	Message string              `json:"message" yaml:"message"`

	err error
}

// Err returns the underlying error.
func (f Failure) Err() error {
	return f.err
}

// Report summarizes one reclamation cycle.
type Report struct {
	Directory string        `json:"directory" yaml:"directory"`
	StartedAt time.Time     `json:"startedAt" yaml:"startedAt"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
	MaxAge    time.Duration `json:"maxAge" yaml:"maxAge"`
	DryRun    bool          `json:"dryRun,omitempty" yaml:"dryRun,omitempty"`

	// Examined counts every listed entry, including ones that vanished mid-cycle.
	Examined int `json:"examined" yaml:"examined"`
	// Expired counts entries older than MaxAge.
	Expired int `json:"expired" yaml:"expired"`
	// Deleted counts entries actually removed. Always zero for a dry run.
	Deleted int `json:"deleted" yaml:"deleted"`
	// Retained counts entries at or below MaxAge.
	Retained int `json:"retained" yaml:"retained"`

	// Removed lists deleted entry names, or the would-be deletions for a dry run.
	Removed  []string  `json:"removed,omitempty" yaml:"removed,omitempty"`
	Failures []Failure `json:"failures,omitempty" yaml:"failures,omitempty"`

	// Interrupted is set when the context ended before every entry was visited.
	Interrupted bool `json:"interrupted,omitempty" yaml:"interrupted,omitempty"`
}

// reportWire is the encoded form of Report. Durations are Go duration
// strings ("24h0m0s"), the same form the status endpoint uses.
type reportWire struct {
	Directory   string    `json:"directory" yaml:"directory"`
	StartedAt   time.Time `json:"startedAt" yaml:"startedAt"`
	Duration    string    `json:"duration" yaml:"duration"`
	MaxAge      string    `json:"maxAge" yaml:"maxAge"`
	DryRun      bool      `json:"dryRun,omitempty" yaml:"dryRun,omitempty"`
	Examined    int       `json:"examined" yaml:"examined"`
	Expired     int       `json:"expired" yaml:"expired"`
	Deleted     int       `json:"deleted" yaml:"deleted"`
	Retained    int       `json:"retained" yaml:"retained"`
	Removed     []string  `json:"removed,omitempty" yaml:"removed,omitempty"`
	Failures    []Failure `json:"failures,omitempty" yaml:"failures,omitempty"`
	Interrupted bool      `json:"interrupted,omitempty" yaml:"interrupted,omitempty"`
}

func (r Report) wire() reportWire {
	return reportWire{
		Directory:   r.Directory,
		StartedAt:   r.StartedAt,
		Duration:    r.Duration.String(),
		MaxAge:      r.MaxAge.String(),
		DryRun:      r.DryRun,
		Examined:    r.Examined,
		Expired:     r.Expired,
		Deleted:     r.Deleted,
		Retained:    r.Retained,
		Removed:     r.Removed,
		Failures:    r.Failures,
		Interrupted: r.Interrupted,
	}
}

func (r *Report) fromWire(w reportWire) error {
	duration, err := parseDuration(w.Duration)
	if err != nil {
		return fmt.Errorf("invalid duration: %w", err)
	}
	maxAge, err := parseDuration(w.MaxAge)
	if err != nil {
		return fmt.Errorf("invalid maxAge: %w", err)
	}
	*r = Report{
		Directory:   w.Directory,
		StartedAt:   w.StartedAt,
		Duration:    duration,
		MaxAge:      maxAge,
		DryRun:      w.DryRun,
		Examined:    w.Examined,
		Expired:     w.Expired,
		Deleted:     w.Deleted,
		Retained:    w.Retained,
		Removed:     w.Removed,
		Failures:    w.Failures,
		Interrupted: w.Interrupted,
	}
	return nil
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

// MarshalJSON implements json.Marshaler.
func (r Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.wire())
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Report) UnmarshalJSON(data []byte) error {
	var w reportWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	return r.fromWire(w)
}

// MarshalYAML implements yaml.Marshaler.
func (r Report) MarshalYAML() (any, error) {
	return r.wire(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *Report) UnmarshalYAML(node *yaml.Node) error {
	var w reportWire
	if err := node.Decode(&w); err != nil {
		return err
	}
	return r.fromWire(w)
}

// Listed reports whether the directory listing succeeded.
func (r *Report) Listed() bool {
	for _, f := range r.Failures {
		if f.Code == apperrors.ErrCodeListing {
			return false
		}
	}
	return true
}

// Err joins every failure of the cycle, or returns nil for a clean cycle.
func (r *Report) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, f.err)
	}
	return errors.Join(errs...)
}

// result classifies the cycle for metrics.
func (r *Report) result() string {
	switch {
	case !r.Listed():
		return "listing_error"
	case r.Interrupted:
		return "interrupted"
	case len(r.Failures) > 0:
		return "partial"
	default:
		return "success"
	}
}

func (r *Report) addFailure(name string, err *apperrors.StructuredError) {
	r.Failures = append(r.Failures, Failure{
		Name:    name,
		Code:    err.Code,
		Message: err.Error(),
		err:     err,
	})
}
