// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"cmp"
	"context"
	"os"
	"os/signal"
	"slices"
	"sync"
	"syscall"

	"github.com/rs/zerolog/log"
)

var (
	shutdownHooks []ShutdownHook
	hooksMutex    sync.Mutex
)

type ShutdownHook struct {
	Priority int
	Func     ShutdownFunc
}

type ShutdownFunc func()

func init() {
	shutdownHooks = make([]ShutdownHook, 0)
}

// RegisterShutdownHook adds a function that runs on shutdown. Hooks with a lower priority run first.
func RegisterShutdownHook(shutdownFunc ShutdownFunc, priority int) {
	hooksMutex.Lock()
	defer hooksMutex.Unlock()

	shutdownHooks = append(shutdownHooks, ShutdownHook{priority, shutdownFunc})
}

// WithShutdownSignal returns a context that is cancelled on SIGINT or SIGTERM.
func WithShutdownSignal(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
}

// GracefulShutdown runs all registered hooks once and forgets them.
func GracefulShutdown() {
	hooksMutex.Lock()
	var hooks = shutdownHooks
	shutdownHooks = make([]ShutdownHook, 0)
	hooksMutex.Unlock()

	slices.SortStableFunc(hooks, func(a, b ShutdownHook) int {
		return cmp.Compare(a.Priority, b.Priority)
	})

	log.Info().Msg("Shutting down...")
	for _, hook := range hooks {
		hook.Func()
	}
}
