// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/telekom/refresher/internal/config"
	"github.com/telekom/refresher/internal/trigger"
)

func newTriggerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "trigger",
		Short: "Creates the trigger file so that the next cycle refreshes the dashboards",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfiguration(configFile(cmd))
			if err != nil {
				return err
			}

			var sentinel = trigger.NewSentinel(cfg.Trigger.Path, nil)
			if err := sentinel.Touch(); err != nil {
				return err
			}
			log.Info().Str("path", sentinel.Path()).Msg("Trigger file created")
			return nil
		},
	}
}
