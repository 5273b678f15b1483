// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package config

import "errors"

// Validate reports every missing setting that would make a refresh cycle impossible.
func (c *Configuration) Validate() error {
	var errs []error

	if c.Reporting.Address == "" {
		errs = append(errs, ErrMissingAddress)
	}
	if c.Reporting.TokenName == "" || c.Reporting.TokenSecret == "" {
		errs = append(errs, ErrMissingCredentials)
	}
	if len(c.Dashboards) == 0 {
		errs = append(errs, ErrMissingDashboards)
	}
	if len(c.Folders) == 0 {
		errs = append(errs, ErrMissingFolders)
	}
	if c.Trigger.Path == "" {
		errs = append(errs, ErrMissingTrigger)
	}
	if c.Api.Enabled && c.Api.Security.Enabled && c.Api.Security.Secret == "" {
		errs = append(errs, ErrMissingApiSecret)
	}

	return errors.Join(errs...)
}
