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
	"context"
	"errors"
	"net/http"

	"github.com/nutrihelp/nutrihelp-api/pkg/defaults"
	apperrors "github.com/nutrihelp/nutrihelp-api/pkg/errors"
	"github.com/nutrihelp/nutrihelp-api/pkg/schedule"
	"github.com/nutrihelp/nutrihelp-api/pkg/serializer"
	"github.com/nutrihelp/nutrihelp-api/pkg/server"
)

// Trigger runs fn on demand under the scheduler's overlap guard and returns
// schedule.ErrBusy when a run is already in progress.
type Trigger interface {
	TriggerWith(ctx context.Context, fn schedule.Action) error
	Stats() schedule.Stats
}

// Handler exposes the reclaimer over HTTP.
type Handler struct {
	reclaimer *Reclaimer
	trigger   Trigger
	watcher   *Watcher
}

// NewHandler returns a Handler for r. When t is nil, reclaim requests run
// the reclaimer directly.
func NewHandler(r *Reclaimer, t Trigger, w *Watcher) *Handler {
	return &Handler{
		reclaimer: r,
		trigger:   t,
		watcher:   w,
	}
}

// WatcherCounts holds the entry events observed in the scratch directory.
type WatcherCounts struct {
	Created int64 `json:"created" yaml:"created"`
	Removed int64 `json:"removed" yaml:"removed"`
}

// StatusResponse is returned by GET /v1/scratch.
type StatusResponse struct {
	Directory string          `json:"directory" yaml:"directory"`
	MaxAge    string          `json:"maxAge" yaml:"maxAge"`
	Schedule  *schedule.Stats `json:"schedule,omitempty" yaml:"schedule,omitempty"`
	Watcher   *WatcherCounts  `json:"watcher,omitempty" yaml:"watcher,omitempty"`
	Last      *Report         `json:"last,omitempty" yaml:"last,omitempty"`
}

// HandleStatus handles GET /v1/scratch.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
		server.WriteError(w, r, http.StatusMethodNotAllowed, apperrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{"method": r.Method})
		return
	}

	resp := StatusResponse{
		Directory: h.reclaimer.Directory(),
		MaxAge:    h.reclaimer.MaxAge().String(),
	}
	if h.trigger != nil {
		stats := h.trigger.Stats()
		resp.Schedule = &stats
	}
	if h.watcher != nil {
		created, removed := h.watcher.Counts()
		resp.Watcher = &WatcherCounts{Created: created, Removed: removed}
	}
	if last, ok := h.reclaimer.Last(); ok {
		resp.Last = &last
	}

	w.Header().Set("Cache-Control", "no-store")
	serializer.RespondJSON(w, http.StatusOK, resp)
}

// HandleReclaim handles POST /v1/scratch/reclaim. It runs one cycle and
// returns its Report, or 409 when a cycle is already running.
func (h *Handler) HandleReclaim(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		server.WriteError(w, r, http.StatusMethodNotAllowed, apperrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{"method": r.Method})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.ReclaimHandlerTimeout)
	defer cancel()

	if h.trigger == nil {
		rep := h.reclaimer.Reclaim(ctx)
		serializer.RespondJSON(w, http.StatusOK, rep)
		return
	}

	var (
		rep Report
		ran bool
	)
	err := h.trigger.TriggerWith(ctx, func(ctx context.Context) error {
		rep = h.reclaimer.Reclaim(ctx)
		ran = true
		return rep.Err()
	})
	if errors.Is(err, schedule.ErrBusy) {
		server.WriteError(w, r, http.StatusConflict, apperrors.ErrCodeConflict,
			"Reclamation already in progress", true, map[string]any{
				"directory": h.reclaimer.Directory(),
			})
		return
	}

	// Entry failures are part of the report; only answer with an error when
	// the cycle did not complete.
	if !ran {
		if err == nil {
			err = apperrors.New(apperrors.ErrCodeInternal, "reclamation produced no report")
		}
		server.WriteErrorFromErr(w, r, err, "Reclamation failed", nil)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, rep)
}
