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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	taskRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutrihelp_schedule_runs_total",
			Help: "Total number of scheduled task runs",
		},
		[]string{"task", "trigger", "result"},
	)

	taskSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutrihelp_schedule_skipped_total",
			Help: "Total number of task ticks skipped because the previous run was still in progress",
		},
		[]string{"task"},
	)

	taskDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nutrihelp_schedule_run_duration_seconds",
			Help:    "Duration of scheduled task runs in seconds",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 30, 120, 600},
		},
		[]string{"task"},
	)
)
