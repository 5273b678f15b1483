// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package refresh

import (
	"time"

	"github.com/google/uuid"
)

type OutcomeStatus string

const (
	OutcomeRefreshed OutcomeStatus = "refreshed"
	OutcomeFailed    OutcomeStatus = "failed"
	OutcomeNotFound  OutcomeStatus = "not-found"
)

// Outcome is the result for one requested dashboard, or one workbook if a name exists in
// several folders.
type Outcome struct {
	Dashboard string
	Folder    string
	ID        string
	JobID     string
	Status    OutcomeStatus
	Err       error
}

// Report summarizes one refresh cycle.
type Report struct {
	ID         uuid.UUID
	StartedAt  time.Time
	FinishedAt time.Time
	Outcomes   []Outcome
}

func newReport(now time.Time) *Report {
	return &Report{ID: uuid.New(), StartedAt: now}
}

func (r *Report) Count(status OutcomeStatus) int {
	var count = 0
	for _, outcome := range r.Outcomes {
		if outcome.Status == status {
			count++
		}
	}
	return count
}

// Errors returns the per-dashboard failures of the cycle.
func (r *Report) Errors() []error {
	var errs []error
	for _, outcome := range r.Outcomes {
		if outcome.Err != nil {
			errs = append(errs, outcome.Err)
		}
	}
	return errs
}
