// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

//go:build testing

package test

import (
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var LogRecorder *LogRecorderHook

// InstallLogRecorder hooks a recorder into the global logger.
func InstallLogRecorder() {
	if LogRecorder == nil {
		LogRecorder = NewLogRecorderHook()
		log.Logger = log.Logger.Hook(LogRecorder).Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
}

// NewRecordedLogger returns a debug logger writing to stdout whose events are counted by the
// returned hook.
func NewRecordedLogger() (*zerolog.Logger, *LogRecorderHook) {
	var hook = NewLogRecorderHook()
	var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
		Level(zerolog.DebugLevel).
		With().Timestamp().Logger().
		Hook(hook)
	return &logger, hook
}

type LogRecorderHook struct {
	mu       sync.Mutex
	records  map[zerolog.Level]int
	messages []string
}

func NewLogRecorderHook() *LogRecorderHook {
	return &LogRecorderHook{records: make(map[zerolog.Level]int)}
}

func (h *LogRecorderHook) Run(_ *zerolog.Event, level zerolog.Level, message string) {
	h.record(level, message)
}

func (h *LogRecorderHook) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = make(map[zerolog.Level]int)
	h.messages = nil
}

func (h *LogRecorderHook) GetRecordCount(levels ...zerolog.Level) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	var count = 0
	for _, level := range levels {
		count += h.records[level]
	}
	return count
}

// HasMessage reports whether any recorded message contains the given text.
func (h *LogRecorderHook) HasMessage(text string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, message := range h.messages {
		if strings.Contains(message, text) {
			return true
		}
	}
	return false
}

func (h *LogRecorderHook) record(level zerolog.Level, message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records[level]++
	h.messages = append(h.messages, message)
}
