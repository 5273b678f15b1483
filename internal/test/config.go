// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

//go:build testing

package test

import (
	"path/filepath"
	"time"

	"github.com/telekom/refresher/internal/config"
	"github.com/telekom/refresher/internal/reporting"
)

// BuildBaseTestConfig creates a configuration pointing at the fake Tableau server with logs and
// the trigger file placed in dir.
func BuildBaseTestConfig(dir string) *config.Configuration {
	testConfig := new(config.Configuration)
	testConfig.LogLevel = "debug"
	testConfig.Log.Dir = filepath.Join(dir, "logs")
	testConfig.Log.Prefix = "refresher-"
	testConfig.Trigger.Path = filepath.Join(dir, "refresh.trigger")

	testConfig.Dashboards = []string{"Sales", "Finance", "Operations"}
	testConfig.Folders = []string{"Reports", "Controlling"}

	testConfig.Reporting.Address = FakeTableauAddress
	testConfig.Reporting.ApiVersion = "3.4"
	testConfig.Reporting.Site = "horizon"
	testConfig.Reporting.TokenName = "refresher"
	testConfig.Reporting.TokenSecret = "secret"
	testConfig.Reporting.PageSize = 2
	testConfig.Reporting.RequestTimeout = 5 * time.Second
	testConfig.Reporting.JobTimeout = 5 * time.Second
	testConfig.Reporting.PollInterval = 10 * time.Millisecond

	testConfig.Watch.Interval = time.Hour
	testConfig.Watch.Debounce = 20 * time.Millisecond

	return testConfig
}

// TestCatalog returns workbooks matching, partly matching and not matching BuildBaseTestConfig.
func TestCatalog() []reporting.Workbook {
	return []reporting.Workbook{
		{ID: "wb-sales", Name: "Sales", ProjectID: "p-reports", ProjectName: "Reports"},
		{ID: "wb-finance", Name: "Finance", ProjectID: "p-controlling", ProjectName: "Controlling"},
		{ID: "wb-sales-draft", Name: "Sales", ProjectID: "p-sandbox", ProjectName: "Sandbox"},
		{ID: "wb-hr", Name: "HR", ProjectID: "p-reports", ProjectName: "Reports"},
		{ID: "wb-operations", Name: "Operations", ProjectID: "p-reports", ProjectName: "Reports"},
	}
}
