// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/telekom/refresher/internal/config"
)

const (
	TimeFormat     = "2006-01-02 15:04:05"
	fileNameLayout = "2006-01-02150405"
)

// Sink is the log destination of a single process run. Every line goes to a file named after
// the startup timestamp and, filtered by the configured level, to the console.
type Sink struct {
	logger zerolog.Logger
	file   *os.File
	path   string
	once   sync.Once
}

// Open creates the log directory and file and returns a sink writing to the file and stdout.
func Open(cfg config.LogConfiguration, level string, startedAt time.Time) (*Sink, error) {
	return OpenWithConsole(cfg, level, startedAt, os.Stdout)
}

// OpenWithConsole is like Open but writes console output to the given writer.
func OpenWithConsole(cfg config.LogConfiguration, level string, startedAt time.Time, console io.Writer) (*Sink, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create log directory %s: %w", cfg.Dir, err)
	}

	var path = FileName(cfg, startedAt)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("could not open log file %s: %w", path, err)
	}

	consoleLevel, err := zerolog.ParseLevel(level)
	if err != nil || consoleLevel == zerolog.NoLevel {
		consoleLevel = zerolog.InfoLevel
	}

	var writer = zerolog.MultiLevelWriter(
		filtered(zerolog.ConsoleWriter{Out: file, NoColor: true, TimeFormat: TimeFormat}, zerolog.DebugLevel),
		filtered(zerolog.ConsoleWriter{Out: console, TimeFormat: TimeFormat}, consoleLevel),
	)

	var sink = &Sink{
		logger: zerolog.New(writer).Level(zerolog.DebugLevel).With().Timestamp().Logger(),
		file:   file,
		path:   path,
	}
	sink.logger.Info().Str("file", path).Msg("Logging started")
	return sink, nil
}

// FileName returns the log file path for a run started at the given time.
func FileName(cfg config.LogConfiguration, startedAt time.Time) string {
	return filepath.Join(cfg.Dir, fmt.Sprintf("%s%s.log", cfg.Prefix, startedAt.Format(fileNameLayout)))
}

func (s *Sink) Logger() *zerolog.Logger {
	return &s.logger
}

func (s *Sink) Path() string {
	return s.path
}

// Close writes the completion marker and releases the file. Calling it more than once is a no-op.
func (s *Sink) Close() error {
	var err error
	s.once.Do(func() {
		s.logger.Info().Msg("Logging completed")
		if syncErr := s.file.Sync(); syncErr != nil {
			err = syncErr
		}
		if closeErr := s.file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	})
	return err
}

func filtered(out io.Writer, level zerolog.Level) zerolog.LevelWriter {
	return &zerolog.FilteredLevelWriter{
		Writer: zerolog.LevelWriterAdapter{Writer: out},
		Level:  level,
	}
}
