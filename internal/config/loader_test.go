// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const testConfig = `
logLevel: debug
dashboards:
  - Sales
  - Finance
folders:
  - Reports
trigger:
  path: /tmp/refresh.trigger
reporting:
  address: https://tableau.example.com
  site: horizon
  tokenName: refresher
  tokenSecret: secret
  jobTimeout: 10m
`

func writeConfig(t *testing.T, content string) string {
	var file = filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(file, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return file
}

func TestLoadConfiguration(t *testing.T) {
	var assertions = assert.New(t)

	config, err := LoadConfiguration(writeConfig(t, testConfig))
	assertions.NoError(err)

	assertions.Equal("debug", config.LogLevel)
	assertions.Equal([]string{"Sales", "Finance"}, config.Dashboards)
	assertions.Equal([]string{"Reports"}, config.Folders)
	assertions.Equal("/tmp/refresh.trigger", config.Trigger.Path)
	assertions.Equal("https://tableau.example.com", config.Reporting.Address)
	assertions.Equal("horizon", config.Reporting.Site)
	assertions.Equal(10*time.Minute, config.Reporting.JobTimeout)
	assertions.NoError(config.Validate())
}

func TestLoadConfiguration_Defaults(t *testing.T) {
	var assertions = assert.New(t)

	config, err := LoadConfiguration(filepath.Join(t.TempDir(), "missing.yml"))
	assertions.NoError(err)

	assertions.Equal("info", config.LogLevel)
	assertions.Equal("logs", config.Log.Dir)
	assertions.Equal("3.4", config.Reporting.ApiVersion)
	assertions.Equal(100, config.Reporting.PageSize)
	assertions.Equal(30*time.Second, config.Reporting.RequestTimeout)
	assertions.Equal(30*time.Minute, config.Reporting.JobTimeout)
	assertions.Equal(5*time.Second, config.Reporting.PollInterval)
	assertions.Equal(time.Minute, config.Watch.Interval)
	assertions.Equal(8080, config.Metrics.Port)
	assertions.Equal(8081, config.Api.Port)
}

func TestLoadConfiguration_EnvOverride(t *testing.T) {
	var assertions = assert.New(t)
	t.Setenv("REFRESHER_REPORTING_ADDRESS", "https://override.example.com")
	t.Setenv("REFRESHER_REPORTING_JOBTIMEOUT", "90s")

	config, err := LoadConfiguration(writeConfig(t, testConfig))
	assertions.NoError(err)

	assertions.Equal("https://override.example.com", config.Reporting.Address)
	assertions.Equal(90*time.Second, config.Reporting.JobTimeout)
}

func TestLoadConfiguration_InvalidFile(t *testing.T) {
	_, err := LoadConfiguration(writeConfig(t, "dashboards: [unterminated"))
	assert.Error(t, err)
}

func TestWriteDefaultConfiguration(t *testing.T) {
	var assertions = assert.New(t)
	var file = filepath.Join(t.TempDir(), "config.yml")

	assertions.NoError(WriteDefaultConfiguration(file))
	assertions.FileExists(file)
	assertions.Error(WriteDefaultConfiguration(file), "existing configuration must not be overwritten")

	config, err := LoadConfiguration(file)
	assertions.NoError(err)
	assertions.Equal("refresh.trigger", config.Trigger.Path)
}

func TestValidate(t *testing.T) {
	var assertions = assert.New(t)

	var config = new(Configuration)
	config.Api.Enabled = true
	config.Api.Security.Enabled = true

	err := config.Validate()
	assertions.ErrorIs(err, ErrMissingAddress)
	assertions.ErrorIs(err, ErrMissingCredentials)
	assertions.ErrorIs(err, ErrMissingDashboards)
	assertions.ErrorIs(err, ErrMissingFolders)
	assertions.ErrorIs(err, ErrMissingTrigger)
	assertions.ErrorIs(err, ErrMissingApiSecret)
}
