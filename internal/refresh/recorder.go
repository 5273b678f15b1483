// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package refresh

import "time"

// Recorder receives the results of cycles and dashboard refreshes, e.g. to export metrics.
type Recorder interface {
	CycleFinished(result string, finishedAt time.Time)
	DashboardFinished(status string, wait time.Duration)
}

const (
	CycleIdle      = "idle"
	CycleCompleted = "completed"
	CycleAborted   = "aborted"
)

type noopRecorder struct{}

func (noopRecorder) CycleFinished(string, time.Time)        {}
func (noopRecorder) DashboardFinished(string, time.Duration) {}
