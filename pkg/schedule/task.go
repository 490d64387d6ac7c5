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

package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nutrihelp/nutrihelp-api/pkg/defaults"
)

var (
	// ErrBusy is returned by Trigger when a run is already in progress.
	ErrBusy = errors.New("task is already running")

	// ErrAlreadyStarted is returned when Start is called more than once.
	ErrAlreadyStarted = errors.New("task already started")
)

// Action is the unit of work executed by a Task.
type Action func(ctx context.Context) error

// Option configures a Task.
type Option func(*Task)

// WithName sets the task name used in logs and metric labels.
func WithName(name string) Option {
	return func(t *Task) {
		t.name = name
	}
}

// WithStopTimeout bounds how long Run waits for an in-flight action after
// its context ends.
func WithStopTimeout(d time.Duration) Option {
	return func(t *Task) {
		t.stopTimeout = d
	}
}

// Stats is a point-in-time view of a task's counters.
type Stats struct {
	Runs     int64     `json:"runs" yaml:"runs"`
	Failures int64     `json:"failures" yaml:"failures"`
	Skipped  int64     `json:"skipped" yaml:"skipped"`
	Running  bool      `json:"running" yaml:"running"`
	LastRun  time.Time `json:"lastRun,omitempty" yaml:"lastRun,omitempty"`
}

// Task runs an Action immediately and then every interval, skipping ticks
// while a previous run is still executing.
type Task struct {
	name        string
	interval    time.Duration
	action      Action
	stopTimeout time.Duration

	running  atomic.Bool
	runs     atomic.Int64
	failures atomic.Int64
	skipped  atomic.Int64
	lastRun  atomic.Int64 // unix nanos

	mu       sync.Mutex
	started  bool
	cancel   context.CancelFunc
	done     chan struct{}
	inFlight sync.WaitGroup
}

// New creates a Task. It does nothing until Start or Run is called.
func New(interval time.Duration, action Action, opts ...Option) *Task {
	t := &Task{
		name:        "task",
		interval:    interval,
		action:      action,
		stopTimeout: defaults.TaskStopTimeout,
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name returns the task name.
func (t *Task) Name() string {
	return t.name
}

// Start launches the task loop and returns immediately. The action runs once
// right away and then on every interval until ctx is canceled or Stop is called.
func (t *Task) Start(ctx context.Context) error {
	if t.interval <= 0 {
		return fmt.Errorf("task %q: interval must be positive, got %v", t.name, t.interval)
	}
	if t.action == nil {
		return fmt.Errorf("task %q: action is required", t.name)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started {
		return ErrAlreadyStarted
	}
	t.started = true

	loopCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel

	slog.Info("task started",
		"task", t.name,
		"interval", t.interval.String(),
	)

	go t.loop(loopCtx)
	return nil
}

// Run starts the task and blocks until ctx is canceled, then waits up to the
// stop timeout for an in-flight action to return.
func (t *Task) Run(ctx context.Context) error {
	if err := t.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	t.Stop()

	waitCtx, cancel := context.WithTimeout(context.Background(), t.stopTimeout)
	defer cancel()
	if err := t.WaitContext(waitCtx); err != nil {
		slog.Warn("task did not stop in time",
			"task", t.name,
			"timeout", t.stopTimeout.String(),
		)
	}
	return nil
}

// Stop cancels the timer. It is safe to call more than once and before Start.
func (t *Task) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
	}
}

// Wait blocks until the loop has exited and any in-flight run has returned.
// It must only be called after Start.
func (t *Task) Wait() {
	<-t.done
	t.inFlight.Wait()
}

// WaitContext is Wait bounded by ctx.
func (t *Task) WaitContext(ctx context.Context) error {
	ch := make(chan struct{})
	go func() {
		t.Wait()
		close(ch)
	}()
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Trigger runs the action synchronously in the caller's goroutine unless a
// run is already in progress, in which case it returns ErrBusy.
func (t *Task) Trigger(ctx context.Context) error {
	return t.TriggerWith(ctx, t.action)
}

// TriggerWith is Trigger with fn in place of the task action. fn runs under
// the same guard and is counted as a manual run of the task, so callers can
// capture the result of exactly this run.
func (t *Task) TriggerWith(ctx context.Context, fn Action) error {
	if fn == nil {
		return fmt.Errorf("task %q: action is required", t.name)
	}
	if !t.running.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer t.running.Store(false)
	return t.run(ctx, "manual", fn)
}

// Stats returns the task counters.
func (t *Task) Stats() Stats {
	s := Stats{
		Runs:     t.runs.Load(),
		Failures: t.failures.Load(),
		Skipped:  t.skipped.Load(),
		Running:  t.running.Load(),
	}
	if n := t.lastRun.Load(); n > 0 {
		s.LastRun = time.Unix(0, n).UTC()
	}
	return s
}

func (t *Task) loop(ctx context.Context) {
	defer close(t.done)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	t.fire(ctx)
	for {
		select {
		case <-ctx.Done():
			slog.Info("task stopped", "task", t.name)
			return
		case <-ticker.C:
			t.fire(ctx)
		}
	}
}

// fire starts a run in its own goroutine so a slow action cannot delay the
// ticker; the running flag keeps runs from overlapping.
func (t *Task) fire(ctx context.Context) {
	if !t.running.CompareAndSwap(false, true) {
		t.skipped.Add(1)
		taskSkipped.WithLabelValues(t.name).Inc()
		slog.Warn("task run skipped, previous run still in progress", "task", t.name)
		return
	}

	t.inFlight.Add(1)
	go func() {
		defer t.inFlight.Done()
		defer t.running.Store(false)
		if err := t.execute(ctx, "scheduled"); err != nil {
			slog.Error("task run failed", "task", t.name, "error", err)
		}
	}()
}

func (t *Task) execute(ctx context.Context, trigger string) error {
	return t.run(ctx, trigger, t.action)
}

func (t *Task) run(ctx context.Context, trigger string, fn Action) (err error) {
	start := time.Now()
	t.lastRun.Store(start.UnixNano())
	t.runs.Add(1)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task %q panicked: %v", t.name, r)
		}

		result := "success"
		if err != nil {
			result = "error"
			t.failures.Add(1)
		}
		taskRuns.WithLabelValues(t.name, trigger, result).Inc()
		taskDuration.WithLabelValues(t.name).Observe(time.Since(start).Seconds())
	}()

	slog.Debug("task run started", "task", t.name, "trigger", trigger)
	return fn(ctx)
}
