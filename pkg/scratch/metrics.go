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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reclaimCycles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutrihelp_scratch_reclaim_cycles_total",
			Help: "Total number of scratch reclamation cycles by result",
		},
		[]string{"result"},
	)

	reclaimDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nutrihelp_scratch_reclaim_duration_seconds",
			Help:    "Duration of scratch reclamation cycles in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30},
		},
	)

	entriesExamined = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nutrihelp_scratch_entries_examined_total",
			Help: "Total number of scratch entries examined",
		},
	)

	entriesDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nutrihelp_scratch_entries_deleted_total",
			Help: "Total number of expired scratch entries deleted",
		},
	)

	entryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutrihelp_scratch_entry_errors_total",
			Help: "Total number of scratch reclamation errors by code",
		},
		[]string{"code"},
	)

	lastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nutrihelp_scratch_last_success_timestamp_seconds",
			Help: "Unix time of the last reclamation cycle that listed the directory",
		},
	)

	entriesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nutrihelp_scratch_entries_created_total",
			Help: "Total number of entries created in the scratch directory",
		},
	)

	entriesRemoved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nutrihelp_scratch_entries_removed_total",
			Help: "Total number of entries removed from the scratch directory by any writer",
		},
	)
)
