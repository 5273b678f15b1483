// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package config

import "time"

type Configuration struct {
	LogLevel   string                 `mapstructure:"logLevel"`
	Log        LogConfiguration       `mapstructure:"log"`
	Trigger    TriggerConfiguration   `mapstructure:"trigger"`
	Dashboards []string               `mapstructure:"dashboards"`
	Folders    []string               `mapstructure:"folders"`
	Reporting  ReportingConfiguration `mapstructure:"reporting"`
	Watch      WatchConfiguration     `mapstructure:"watch"`
	Metrics    MetricsConfiguration   `mapstructure:"metrics"`
	Api        ApiConfiguration       `mapstructure:"api"`
}

type LogConfiguration struct {
	Dir    string `mapstructure:"dir"`
	Prefix string `mapstructure:"prefix"`
}

type TriggerConfiguration struct {
	Path string `mapstructure:"path"`
}

type ReportingConfiguration struct {
	Address            string        `mapstructure:"address"`
	ApiVersion         string        `mapstructure:"apiVersion"`
	Site               string        `mapstructure:"site"`
	TokenName          string        `mapstructure:"tokenName"`
	TokenSecret        string        `mapstructure:"tokenSecret"`
	InsecureSkipVerify bool          `mapstructure:"insecureSkipVerify"`
	PageSize           int           `mapstructure:"pageSize"`
	RequestTimeout     time.Duration `mapstructure:"requestTimeout"`
	JobTimeout         time.Duration `mapstructure:"jobTimeout"`
	PollInterval       time.Duration `mapstructure:"pollInterval"`
}

type WatchConfiguration struct {
	Interval time.Duration `mapstructure:"interval"`
	Debounce time.Duration `mapstructure:"debounce"`
}
