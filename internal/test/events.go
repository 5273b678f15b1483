// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

//go:build testing

package test

import (
	"slices"
	"strings"
	"sync"
)

// EventLog records calls in the order they happen across several fakes.
type EventLog struct {
	mu     sync.Mutex
	events []string
}

func (l *EventLog) Add(event string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
}

func (l *EventLog) Events() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.events)
}

// Index returns the position of the first event with the given prefix or -1.
func (l *EventLog) Index(prefix string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.IndexFunc(l.events, func(event string) bool {
		return strings.HasPrefix(event, prefix)
	})
}

func (l *EventLog) Count(prefix string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	var count = 0
	for _, event := range l.events {
		if strings.HasPrefix(event, prefix) {
			count++
		}
	}
	return count
}
