// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/telekom/refresher/internal/config"
	"github.com/telekom/refresher/internal/refresh"
	"github.com/telekom/refresher/internal/reporting"
	"github.com/telekom/refresher/internal/trigger"
)

func configFile(cmd *cobra.Command) string {
	var path, _ = cmd.Flags().GetString("config")
	return path
}

// loadConfiguration terminates the process if the configuration cannot be used.
func loadConfiguration(cmd *cobra.Command) *config.Configuration {
	cfg, err := config.LoadConfiguration(configFile(cmd))
	if err != nil {
		log.Fatal().Err(err).Msg("Could not load configuration!")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration!")
	}
	return cfg
}

func newDispatcher(cfg *config.Configuration, logger *zerolog.Logger, opts ...refresh.Option) *refresh.Dispatcher {
	var sentinel = trigger.NewSentinel(cfg.Trigger.Path, nil)
	var client = reporting.NewTableauClient(cfg.Reporting, reporting.WithLogger(logger))
	return refresh.NewDispatcher(cfg, sentinel, client, logger, opts...)
}
