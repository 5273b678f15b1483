// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package config

import "errors"

var (
	ErrMissingAddress     = errors.New("reporting.address is required")
	ErrMissingCredentials = errors.New("reporting.tokenName and reporting.tokenSecret are required")
	ErrMissingDashboards  = errors.New("at least one dashboard is required")
	ErrMissingFolders     = errors.New("at least one folder is required")
	ErrMissingTrigger     = errors.New("trigger.path is required")
	ErrMissingApiSecret   = errors.New("api.security.secret is required when api security is enabled")
)
