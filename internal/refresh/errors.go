// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package refresh

import (
	"errors"
	"fmt"
)

var ErrDashboardNotFound = errors.New("dashboard not found in any configured folder")

type Stage string

const (
	StageConsume      Stage = "consume"
	StageAuthenticate Stage = "authenticate"
	StageCatalog      Stage = "catalog"
	StageSession      Stage = "session"
	StageRequest      Stage = "request"
	StageWait         Stage = "wait"
)

// CycleError aborts a whole refresh cycle.
type CycleError struct {
	Stage Stage
	Err   error
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("refresh cycle aborted during %s: %v", e.Stage, e.Err)
}

func (e *CycleError) Unwrap() error {
	return e.Err
}

// ItemError is the failure of a single dashboard. The cycle continues with the next one.
type ItemError struct {
	Stage     Stage
	Dashboard string
	Err       error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("refresh of %s failed during %s: %v", e.Dashboard, e.Stage, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

// ExitCode maps the outcome of a cycle to the process exit status.
func ExitCode(err error) int {
	var cycleErr *CycleError
	if errors.As(err, &cycleErr) {
		return 1
	}
	return 0
}
