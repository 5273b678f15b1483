// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/telekom/refresher/internal/refresh"
)

// Runner performs a single refresh cycle.
type Runner interface {
	Run(ctx context.Context) (*refresh.Report, error)
}

// Watcher runs a refresh cycle whenever the trigger file is created. The directory of the
// trigger file is watched with fsnotify; a periodic poll covers filesystems that do not deliver
// events (network shares).
type Watcher struct {
	runner   Runner
	path     string
	interval time.Duration
	debounce time.Duration
	logger   *zerolog.Logger

	requests chan struct{}
	mu       sync.Mutex
	timer    *time.Timer
}

func NewWatcher(runner Runner, path string, interval time.Duration, debounce time.Duration, logger *zerolog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &Watcher{
		runner:   runner,
		path:     filepath.Clean(path),
		interval: interval,
		debounce: debounce,
		logger:   logger,
		requests: make(chan struct{}, 1),
	}
}

// Run blocks until ctx is done. The trigger file is checked once on start.
func (w *Watcher) Run(ctx context.Context) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create file watcher: %w", err)
	}
	defer fsWatcher.Close()

	var dir = filepath.Dir(w.path)
	if err := fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("could not watch %s: %w", dir, err)
	}
	defer w.stopTimer()

	var ticks <-chan time.Time
	if w.interval > 0 {
		var ticker = time.NewTicker(w.interval)
		defer ticker.Stop()
		ticks = ticker.C
	}

	w.logger.Info().Fields(map[string]any{
		"path":     w.path,
		"interval": w.interval.String(),
	}).Msg("Watching for trigger file")
	w.request()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("Stopped watching for trigger file")
			return nil

		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) == w.path && event.Has(fsnotify.Create|fsnotify.Write) {
				w.logger.Debug().Str("event", event.Op.String()).Msg("Trigger file event")
				w.debounced()
			}

		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("File watcher reported an error")

		case <-ticks:
			w.request()

		case <-w.requests:
			w.runCycle(ctx)
		}
	}
}

func (w *Watcher) runCycle(ctx context.Context) {
	report, err := w.runner.Run(ctx)
	if err != nil {
		w.logger.Error().Err(err).Int("exitCode", refresh.ExitCode(err)).Msg("Refresh cycle aborted")
		return
	}
	if report != nil {
		w.logger.Debug().Str("cycle", report.ID.String()).Int("outcomes", len(report.Outcomes)).Msg("Refresh cycle finished")
	}
}

// request queues a cycle unless one is already queued.
func (w *Watcher) request() {
	select {
	case w.requests <- struct{}{}:
	default:
	}
}

// debounced queues a cycle once events for the trigger file stopped arriving for the debounce
// period. Creating a file usually emits a create and one or more write events.
func (w *Watcher) debounced() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer == nil {
		w.timer = time.AfterFunc(w.debounce, w.request)
		return
	}
	w.timer.Reset(w.debounce)
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
}
