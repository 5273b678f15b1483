// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package refresh

type State string

const (
	StateIdle            State = "IDLE"
	StateTriggerDetected State = "TRIGGER_DETECTED"
	StateAuthenticating  State = "AUTHENTICATING"
	StateCatalogFetch    State = "CATALOG_FETCH"
	StateDispatching     State = "DISPATCHING"
	StateDone            State = "DONE"
)

func (s State) String() string {
	return string(s)
}
