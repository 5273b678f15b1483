// Copyright 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package config

type ApiConfiguration struct {
	Enabled  bool        `mapstructure:"enabled"`
	Port     int         `mapstructure:"port"`
	LogLevel string      `mapstructure:"logLevel"`
	Security ApiSecurity `mapstructure:"security"`
}

type ApiSecurity struct {
	Enabled        bool     `mapstructure:"enabled"`
	Secret         string   `mapstructure:"secret"`
	TrustedClients []string `mapstructure:"trustedClients"`
}
