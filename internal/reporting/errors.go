// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package reporting

import (
	"errors"
	"fmt"
)

var (
	ErrJobFailed       = errors.New("job failed")
	ErrJobCancelled    = errors.New("job was cancelled")
	ErrJobTimeout      = errors.New("job did not finish in time")
	ErrNotSignedIn     = errors.New("no active session")
	ErrUnexpectedReply = errors.New("unexpected reply from reporting server")
)

// APIError is an error answer of the REST API.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Summary string `json:"summary"`
	Detail  string `json:"detail"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("reporting server answered with status %d", e.Status)
	}
	return fmt.Sprintf("reporting server answered with status %d: %s (%s): %s", e.Status, e.Summary, e.Code, e.Detail)
}
