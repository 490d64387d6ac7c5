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

// Package schedule runs maintenance actions on a fixed cadence.
//
// A Task invokes its action once immediately when started and then on every
// tick of its interval until the context is canceled or Stop is called.
// Runs never overlap: a tick that arrives while the previous run is still in
// progress is skipped, not queued, and counted in
// nutrihelp_schedule_skipped_total.
//
// # Usage
//
//	task := schedule.New(3*time.Hour, func(ctx context.Context) error {
//	    reclaimer.Reclaim(ctx)
//	    return nil
//	}, schedule.WithName("scratch-reclaim"))
//
//	if err := task.Start(ctx); err != nil {
//	    return err
//	}
//	defer task.Stop()
//
// Task.Run blocks until the context ends, which makes it a good fit for an
// errgroup alongside the HTTP server.
package schedule
