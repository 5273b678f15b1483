// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/telekom/refresher/internal/config"
)

func TestFileName(t *testing.T) {
	var startedAt = time.Date(2024, 3, 7, 14, 5, 9, 0, time.UTC)
	var cfg = config.LogConfiguration{Dir: "logs", Prefix: "refresher-"}

	assert.Equal(t, filepath.Join("logs", "refresher-2024-03-07140509.log"), FileName(cfg, startedAt))
}

func TestSink(t *testing.T) {
	var assertions = assert.New(t)
	var console bytes.Buffer
	var cfg = config.LogConfiguration{Dir: filepath.Join(t.TempDir(), "nested"), Prefix: "test-"}

	sink, err := OpenWithConsole(cfg, "info", time.Now(), &console)
	assertions.NoError(err)

	sink.Logger().Debug().Msg("only in file")
	sink.Logger().Info().Msg("Trigger file received")
	sink.Logger().Error().Msg("Refresh failed for: Sales")
	assertions.NoError(sink.Close())
	assertions.NoError(sink.Close(), "closing twice must be a no-op")

	content, err := os.ReadFile(sink.Path())
	assertions.NoError(err)

	var file = string(content)
	assertions.Contains(file, "INF Logging started")
	assertions.Less(strings.Index(file, "Logging started"), strings.Index(file, "Logging completed"))
	assertions.Contains(file, "DBG only in file")
	assertions.Contains(file, "INF Trigger file received")
	assertions.Contains(file, "ERR Refresh failed for: Sales")
	assertions.Contains(file, "INF Logging completed")

	assertions.NotContains(console.String(), "only in file")
	assertions.Contains(console.String(), "Trigger file received")
	assertions.Contains(console.String(), "Logging completed")
}

func TestSink_InvalidLevelFallsBackToInfo(t *testing.T) {
	var assertions = assert.New(t)
	var console bytes.Buffer

	sink, err := OpenWithConsole(config.LogConfiguration{Dir: t.TempDir()}, "verbose", time.Now(), &console)
	assertions.NoError(err)
	defer sink.Close()

	sink.Logger().Debug().Msg("hidden")
	sink.Logger().Info().Msg("visible")

	assertions.NotContains(console.String(), "hidden")
	assertions.Contains(console.String(), "visible")
}

func TestOpen_UnwritableDirectory(t *testing.T) {
	var blocker = filepath.Join(t.TempDir(), "file")
	assert.NoError(t, os.WriteFile(blocker, nil, 0o600))

	_, err := Open(config.LogConfiguration{Dir: filepath.Join(blocker, "logs")}, "info", time.Now())
	assert.Error(t, err)
}
