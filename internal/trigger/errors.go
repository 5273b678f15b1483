// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package trigger

import "errors"

var (
	ErrSentinelLocked     = errors.New("trigger file cannot be deleted")
	ErrSentinelUnreadable = errors.New("trigger file cannot be inspected")
)
